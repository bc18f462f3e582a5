package task

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrTaskIsNotConstructed is returned when a Task instance was not created
	// through the NewTask or RestoreTask factory methods.
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask or RestoreTask constructor")

	// ErrPhotoRefIsRequired is returned when attaching an empty photo reference.
	ErrPhotoRefIsRequired = errors.New("photo reference is required")
)

// Task is the aggregate tracking one (order item, stage) unit of work.
//
// Task follows these invariants:
//   - Exactly one task exists per (order, order item, stage) per tenant
//   - Completed and Skipped are terminal; no transition leaves them
//   - startedAt is recorded on first entry into InProgress only
//   - Skipping records completedAt/completedBy like completion (closure, not failure)
//   - Tasks are never deleted; they form the order's audit trail
//
// Stage policy gating (photo, approval, mandatory-skip permission) is applied
// by the transition methods, which receive the owning stage's Policy resolved
// once per transition by the caller.
type Task struct {
	// id is the unique identifier for the task
	id kernel.UUID

	// tenantID scopes the task to one tenant
	tenantID kernel.UUID

	// orderID is the owning order
	orderID kernel.UUID

	// orderItemID is the owning order item; nil for order-level tasks
	orderItemID *kernel.UUID

	// stageID is the production stage this task tracks
	stageID kernel.UUID

	// status is the current state in the task lifecycle
	status Status

	// assignee is the worker-XOR-user owner of the task
	assignee Assignee

	// dueDate is the optional target date for the task
	dueDate *time.Time

	// startedAt records the first entry into InProgress
	startedAt *time.Time

	// completedAt records closure (completion or skip)
	completedAt *time.Time

	// photos is the ordered list of attachment references
	photos []string

	// photoVerified marks the attached photos as checked
	photoVerified bool

	// requiresApproval is copied from the stage policy at generation time
	requiresApproval bool

	// isApproved is set by the external approval collaborator
	isApproved bool

	// approvedBy is the user who granted approval
	approvedBy *kernel.UUID

	// completedBy is the user who closed the task; nil for system closures
	completedBy *kernel.UUID

	// completedBySystem tags automation-initiated closures
	completedBySystem bool

	// notes carries free-form remarks attached on transitions
	notes string

	// isConstructed ensures the task was created via a constructor
	isConstructed bool
}

// NewTask creates a pending Task for one (order item, stage) pair.
// requiresApproval is copied from the owning stage's policy so that later
// policy edits do not retroactively change tasks already generated.
func NewTask(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	orderItemID *kernel.UUID,
	stageID kernel.UUID,
	requiresApproval bool,
	dueDate *time.Time,
) (*Task, error) {
	t := &Task{
		status:           Pending,
		assignee:         NoAssignee(),
		requiresApproval: requiresApproval,
		dueDate:          dueDate,
		isConstructed:    true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setTenantID(tenantID),
		t.setOrderID(orderID),
		t.setOrderItemID(orderItemID),
		t.setStageID(stageID),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Snapshot carries the complete persisted state of a task for RestoreTask.
type Snapshot struct {
	ID                kernel.UUID
	TenantID          kernel.UUID
	OrderID           kernel.UUID
	OrderItemID       *kernel.UUID
	StageID           kernel.UUID
	Status            Status
	Assignee          Assignee
	DueDate           *time.Time
	StartedAt         *time.Time
	CompletedAt       *time.Time
	Photos            []string
	PhotoVerified     bool
	RequiresApproval  bool
	IsApproved        bool
	ApprovedBy        *kernel.UUID
	CompletedBy       *kernel.UUID
	CompletedBySystem bool
	Notes             string
}

// RestoreTask reconstructs a Task from persistence, revalidating invariants.
func RestoreTask(snapshot Snapshot) (*Task, error) {
	t := &Task{
		assignee:          snapshot.Assignee,
		dueDate:           snapshot.DueDate,
		startedAt:         snapshot.StartedAt,
		completedAt:       snapshot.CompletedAt,
		photos:            snapshot.Photos,
		photoVerified:     snapshot.PhotoVerified,
		requiresApproval:  snapshot.RequiresApproval,
		isApproved:        snapshot.IsApproved,
		approvedBy:        snapshot.ApprovedBy,
		completedBy:       snapshot.CompletedBy,
		completedBySystem: snapshot.CompletedBySystem,
		notes:             snapshot.Notes,
		isConstructed:     true,
	}

	if err := snapshot.Status.Validate(); err != nil {
		return nil, err
	}
	t.status = snapshot.Status

	if err := snapshot.Assignee.Validate(); err != nil {
		return nil, err
	}

	if err := errors.Join(
		t.setID(snapshot.ID),
		t.setTenantID(snapshot.TenantID),
		t.setOrderID(snapshot.OrderID),
		t.setOrderItemID(snapshot.OrderItemID),
		t.setStageID(snapshot.StageID),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate ensures the Task instance was properly constructed.
func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

// IsEqual compares two tasks by their unique identifiers.
func (t *Task) IsEqual(other *Task) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the task's unique identifier.
func (t *Task) ID() kernel.UUID {
	return t.id
}

// TenantID returns the tenant the task belongs to.
func (t *Task) TenantID() kernel.UUID {
	return t.tenantID
}

// OrderID returns the owning order's id.
func (t *Task) OrderID() kernel.UUID {
	return t.orderID
}

// OrderItemID returns the owning order item's id, or nil for order-level tasks.
func (t *Task) OrderItemID() *kernel.UUID {
	return t.orderItemID
}

// StageID returns the production stage this task tracks.
func (t *Task) StageID() kernel.UUID {
	return t.stageID
}

// Status returns the current status of the task.
func (t *Task) Status() Status {
	return t.status
}

// Assignee returns the task's owner variant.
func (t *Task) Assignee() Assignee {
	return t.assignee
}

// DueDate returns the optional target date.
func (t *Task) DueDate() *time.Time {
	return t.dueDate
}

// StartedAt returns when work first started, or nil.
func (t *Task) StartedAt() *time.Time {
	return t.startedAt
}

// CompletedAt returns when the task was closed, or nil.
func (t *Task) CompletedAt() *time.Time {
	return t.completedAt
}

// Photos returns the ordered attachment references.
func (t *Task) Photos() []string {
	return t.photos
}

// PhotoVerified reports whether the attached photos were checked.
func (t *Task) PhotoVerified() bool {
	return t.photoVerified
}

// RequiresApproval reports whether completion needs a prior approval.
func (t *Task) RequiresApproval() bool {
	return t.requiresApproval
}

// IsApproved reports whether approval has been granted.
func (t *Task) IsApproved() bool {
	return t.isApproved
}

// ApprovedBy returns the approving user, or nil.
func (t *Task) ApprovedBy() *kernel.UUID {
	return t.approvedBy
}

// CompletedBy returns the user who closed the task; nil when open or when the
// closure was system-initiated.
func (t *Task) CompletedBy() *kernel.UUID {
	return t.completedBy
}

// CompletedBySystem reports whether the closure was automation-initiated.
func (t *Task) CompletedBySystem() bool {
	return t.completedBySystem
}

// Notes returns the free-form remarks attached to the task.
func (t *Task) Notes() string {
	return t.notes
}

// IsTerminal reports whether the task is closed (completed or skipped).
func (t *Task) IsTerminal() bool {
	return t.status.IsTerminal()
}

// Start moves the task into InProgress. startedAt is recorded on the first
// entry only; starting an already in-progress task is idempotent.
func (t *Task) Start(now time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.status.IsTerminal() {
		return NewInvalidTransitionError(t.id, t.status, InProgress)
	}

	newStatus, err := t.status.Start()
	if err != nil {
		return NewInvalidTransitionError(t.id, t.status, InProgress)
	}

	if t.startedAt == nil {
		startedAt := now
		t.startedAt = &startedAt
	}
	t.status = newStatus
	return nil
}

// Complete closes the task as done.
//
// Gating, applied against the owning stage's policy:
//   - a stage requiring a photo rejects completion with PhotoRequiredError
//     while no photo is attached
//   - a task requiring approval rejects completion with ApprovalRequiredError
//     until approval is granted
//
// On success completedAt and the closing actor are recorded. The caller is
// responsible for advancing the owning item to its next stage afterwards.
func (t *Task) Complete(actor Actor, policy stage.Policy, stageName string, now time.Time) error {
	if err := errors.Join(t.Validate(), actor.Validate()); err != nil {
		return err
	}
	if t.status.IsTerminal() {
		return NewInvalidTransitionError(t.id, t.status, Completed)
	}
	if policy.RequiresPhoto && len(t.photos) == 0 {
		return NewPhotoRequiredError(t.id, stageName)
	}
	if t.requiresApproval && !t.isApproved {
		return NewApprovalRequiredError(t.id, stageName)
	}

	newStatus, err := t.status.Complete()
	if err != nil {
		return NewInvalidTransitionError(t.id, t.status, Completed)
	}

	t.status = newStatus
	t.close(actor, now)
	return nil
}

// Skip closes the task without doing its work.
//
// Mandatory stages may only be skipped by elevated actors; others may be
// skipped by anyone. A skip records completedAt/completedBy like a completion:
// it is a form of closure, not a failure.
func (t *Task) Skip(actor Actor, policy stage.Policy, stageName string, now time.Time) error {
	if err := errors.Join(t.Validate(), actor.Validate()); err != nil {
		return err
	}
	if t.status.IsTerminal() {
		return NewInvalidTransitionError(t.id, t.status, Skipped)
	}
	if policy.IsMandatory && !actor.IsElevated() {
		return NewPermissionError(t.id, stageName, actor.Role())
	}

	newStatus, err := t.status.Skip()
	if err != nil {
		return NewInvalidTransitionError(t.id, t.status, Skipped)
	}

	t.status = newStatus
	t.close(actor, now)
	return nil
}

// Block halts the task while an external dependency (e.g. missing material)
// prevents work. Blocking an already blocked task is idempotent.
func (t *Task) Block() error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.status.IsTerminal() {
		return NewInvalidTransitionError(t.id, t.status, Blocked)
	}

	newStatus, err := t.status.Block()
	if err != nil {
		return NewInvalidTransitionError(t.id, t.status, Blocked)
	}

	t.status = newStatus
	return nil
}

// Assign sets the task's owner. Terminal tasks cannot be reassigned.
func (t *Task) Assign(assignee Assignee) error {
	if err := errors.Join(t.Validate(), assignee.Validate()); err != nil {
		return err
	}
	if t.status.IsTerminal() {
		return NewInvalidTransitionError(t.id, t.status, t.status)
	}

	t.assignee = assignee
	return nil
}

// AttachPhoto appends an attachment reference to the task's photo list.
// Photo storage mechanics live outside the core; refs are opaque here.
func (t *Task) AttachPhoto(ref string) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if ref == "" {
		return ErrPhotoRefIsRequired
	}
	if t.status.IsTerminal() {
		return NewInvalidTransitionError(t.id, t.status, t.status)
	}

	t.photos = append(t.photos, ref)
	return nil
}

// MarkPhotoVerified records that the attached photos were checked.
func (t *Task) MarkPhotoVerified() error {
	if err := t.Validate(); err != nil {
		return err
	}
	if len(t.photos) == 0 {
		return errs.NewValueIsRequiredError("photos")
	}

	t.photoVerified = true
	return nil
}

// Approve grants the approval required for completion. The approval workflow
// itself lives with an external collaborator; this only records its outcome.
func (t *Task) Approve(actor Actor) error {
	if err := errors.Join(t.Validate(), actor.Validate()); err != nil {
		return err
	}
	if t.status.IsTerminal() {
		return NewInvalidTransitionError(t.id, t.status, t.status)
	}

	t.isApproved = true
	if userID, ok := actor.UserID(); ok {
		approvedBy := userID
		t.approvedBy = &approvedBy
	}
	return nil
}

// AppendNotes attaches free-form remarks supplied with a transition.
func (t *Task) AppendNotes(notes string) {
	if notes == "" {
		return
	}
	if t.notes == "" {
		t.notes = notes
		return
	}
	t.notes = t.notes + "\n" + notes
}

// close records the closure moment and actor shared by Complete and Skip.
func (t *Task) close(actor Actor, now time.Time) {
	completedAt := now
	t.completedAt = &completedAt
	if userID, ok := actor.UserID(); ok {
		completedBy := userID
		t.completedBy = &completedBy
		t.completedBySystem = false
		return
	}
	t.completedBy = nil
	t.completedBySystem = true
}

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	t.tenantID = tenantID
	return nil
}

func (t *Task) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	t.orderID = orderID
	return nil
}

func (t *Task) setOrderItemID(orderItemID *kernel.UUID) error {
	if orderItemID == nil {
		return nil
	}
	if err := orderItemID.Validate(); err != nil {
		return err
	}
	itemID := *orderItemID
	t.orderItemID = &itemID
	return nil
}

func (t *Task) setStageID(stageID kernel.UUID) error {
	if err := stageID.Validate(); err != nil {
		return err
	}
	t.stageID = stageID
	return nil
}
