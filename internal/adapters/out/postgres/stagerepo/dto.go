// Package stagerepo provides data transfer objects and mapping functions for
// stage catalog persistence. The catalog is read-mostly master data; the
// workflow never writes it, so the repository only exposes reads.
package stagerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"

	"github.com/google/uuid"
)

// StageDTO represents the database structure for persisting stages.
type StageDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID `gorm:"type:uuid;index"`
	Name             string
	Code             string
	StageOrder       int
	IsMandatory      bool
	IsSkippable      bool
	RequiresPhoto    bool
	RequiresApproval bool
	NotifyCustomer   bool
	IsActive         bool
}

// TableName specifies the database table name for stages.
func (StageDTO) TableName() string {
	return "stages"
}

func fromDomain(s *stage.Stage) StageDTO {
	policy := s.Policy()
	return StageDTO{
		ID:               s.ID().Bytes(),
		TenantID:         s.TenantID().Bytes(),
		Name:             s.Name(),
		Code:             s.Code(),
		StageOrder:       s.StageOrder(),
		IsMandatory:      policy.IsMandatory,
		IsSkippable:      policy.IsSkippable,
		RequiresPhoto:    policy.RequiresPhoto,
		RequiresApproval: policy.RequiresApproval,
		NotifyCustomer:   policy.NotifyCustomer,
		IsActive:         s.IsActive(),
	}
}

func toDomain(dto StageDTO) (*stage.Stage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	policy := stage.Policy{
		IsMandatory:      dto.IsMandatory,
		IsSkippable:      dto.IsSkippable,
		RequiresPhoto:    dto.RequiresPhoto,
		RequiresApproval: dto.RequiresApproval,
		NotifyCustomer:   dto.NotifyCustomer,
	}

	return stage.NewStage(id, tenantID, dto.Name, dto.Code, dto.StageOrder, policy, dto.IsActive)
}
