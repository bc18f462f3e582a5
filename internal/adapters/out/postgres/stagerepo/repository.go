package stagerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStageRepository implements StageRepository using GORM.
type GormStageRepository struct {
	db *gorm.DB
}

// NewGormStageRepository creates a new GORM stage repository.
func NewGormStageRepository(db *gorm.DB) *GormStageRepository {
	return &GormStageRepository{db: db}
}

// Get retrieves a stage by ID within a tenant.
func (r *GormStageRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*stage.Stage, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto StageDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID.Bytes(), id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stage", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOrdered retrieves every stage of a tenant sorted by stage order.
func (r *GormStageRepository) GetAllOrdered(ctx context.Context, tenantID kernel.UUID) ([]*stage.Stage, error) {
	return r.find(ctx, tenantID, false)
}

// GetActiveOrdered retrieves the tenant's active stages sorted by stage order.
func (r *GormStageRepository) GetActiveOrdered(ctx context.Context, tenantID kernel.UUID) ([]*stage.Stage, error) {
	return r.find(ctx, tenantID, true)
}

func (r *GormStageRepository) find(ctx context.Context, tenantID kernel.UUID, activeOnly bool) ([]*stage.Stage, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID.Bytes())
	if activeOnly {
		query = query.Where("is_active")
	}

	var dtos []StageDTO
	if err := query.Order("stage_order").Find(&dtos).Error; err != nil {
		return nil, err
	}

	stages := make([]*stage.Stage, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}

	return stages, nil
}
