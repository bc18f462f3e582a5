package stage

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrStageIsNotConstructed is returned when a Stage instance was not created
	// through the NewStage factory method.
	ErrStageIsNotConstructed = errors.New("Stage must be created via NewStage constructor")

	ErrNameIsRequired = errors.New("stage name is required")
	ErrCodeIsRequired = errors.New("stage code is required")
)

// Policy bundles the gating flags of a stage as one typed value, resolved
// once per task transition instead of being re-read flag by flag.
type Policy struct {
	// IsMandatory forbids skipping the stage for non-elevated actors
	IsMandatory bool

	// IsSkippable marks the stage as freely skippable
	IsSkippable bool

	// RequiresPhoto forbids completion without at least one attached photo
	RequiresPhoto bool

	// RequiresApproval forbids completion until the task is approved
	RequiresApproval bool

	// NotifyCustomer triggers a customer notification on completion
	NotifyCustomer bool
}

// Stage is one ordered step in a tenant's production pipeline.
//
// Stage follows these invariants:
//   - Must have a valid unique identifier and tenant
//   - Name and code are non-empty
//   - stageOrder is dense and unique per tenant, defining the strict total
//     order used for next-stage lookup
//   - Only active stages participate in task generation and advancement
type Stage struct {
	// id is the unique identifier for the stage
	id kernel.UUID

	// tenantID scopes the stage to one tenant's catalog
	tenantID kernel.UUID

	// name is the display name, e.g. "Embroidery"
	name string

	// code is the short machine-readable code, e.g. "EMB"
	code string

	// stageOrder is the position in the pipeline, dense and unique per tenant
	stageOrder int

	// policy carries the gating flags applied to this stage's tasks
	policy Policy

	// isActive controls participation in generation and advancement
	isActive bool

	// isConstructed ensures the stage was created via NewStage
	isConstructed bool
}

// NewStage creates a Stage with validation. Stage definitions normally arrive
// from the master-data collaborators; this constructor is the single gate
// through which they enter the domain.
func NewStage(
	id kernel.UUID,
	tenantID kernel.UUID,
	name string,
	code string,
	stageOrder int,
	policy Policy,
	isActive bool,
) (*Stage, error) {
	stage := &Stage{
		policy:        policy,
		isActive:      isActive,
		isConstructed: true,
	}

	if err := errors.Join(
		stage.setID(id),
		stage.setTenantID(tenantID),
		stage.setName(name),
		stage.setCode(code),
		stage.setStageOrder(stageOrder),
	); err != nil {
		return nil, err
	}

	return stage, nil
}

// Validate ensures the Stage instance was properly constructed through NewStage.
func (s *Stage) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStageIsNotConstructed
	}
	return nil
}

// IsEqual compares two stages by their unique identifiers.
func (s *Stage) IsEqual(other *Stage) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the stage's unique identifier.
func (s *Stage) ID() kernel.UUID {
	return s.id
}

// TenantID returns the tenant the stage belongs to.
func (s *Stage) TenantID() kernel.UUID {
	return s.tenantID
}

// Name returns the stage's display name.
func (s *Stage) Name() string {
	return s.name
}

// Code returns the stage's short code.
func (s *Stage) Code() string {
	return s.code
}

// StageOrder returns the stage's position in the pipeline.
func (s *Stage) StageOrder() int {
	return s.stageOrder
}

// Policy returns the gating flags applied to this stage's tasks.
func (s *Stage) Policy() Policy {
	return s.policy
}

// IsActive reports whether the stage participates in generation and advancement.
func (s *Stage) IsActive() bool {
	return s.isActive
}

// NextAfter returns the active stage with the smallest stageOrder strictly
// greater than currentStageOrder, or nil when currentStageOrder is already the
// last. The stages slice is the tenant's catalog in any order; inactive stages
// never win.
func NextAfter(stages []*Stage, currentStageOrder int) *Stage {
	var next *Stage
	for _, candidate := range stages {
		if candidate == nil || !candidate.isActive || candidate.stageOrder <= currentStageOrder {
			continue
		}
		if next == nil || candidate.stageOrder < next.stageOrder {
			next = candidate
		}
	}
	return next
}

func (s *Stage) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Stage) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	s.tenantID = tenantID
	return nil
}

func (s *Stage) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Stage) setCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}
	s.code = code
	return nil
}

func (s *Stage) setStageOrder(stageOrder int) error {
	if stageOrder < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stage order is invalid",
			fmt.Errorf("%d is negative", stageOrder))
	}
	s.stageOrder = stageOrder
	return nil
}
