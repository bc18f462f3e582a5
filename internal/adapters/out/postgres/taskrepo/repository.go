package taskrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/task"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTaskRepository implements TaskRepository using GORM.
type GormTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTaskRepository creates a new GORM task repository.
func NewGormTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskRepository {
	return &GormTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new task to the database.
func (r *GormTaskRepository) Add(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AddBatch saves a set of freshly generated tasks in one insert.
func (r *GormTaskRepository) AddBatch(ctx context.Context, aggregates []*task.Task) error {
	if len(aggregates) == 0 {
		return nil
	}

	dtos := make([]TaskDTO, 0, len(aggregates))
	for _, aggregate := range aggregates {
		if err := aggregate.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(aggregate))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	for _, aggregate := range aggregates {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
	return nil
}

// Update saves changes to an existing task in the database.
func (r *GormTaskRepository) Update(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Where("id = ?", dto.ID).
		Select("Status", "AssigneeKind", "AssigneeID", "DueDate", "StartedAt",
			"CompletedAt", "Photos", "PhotoVerified", "IsApproved", "ApprovedBy",
			"CompletedBy", "CompletedBySystem", "Notes").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a task by ID within a tenant.
func (r *GormTaskRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*task.Task, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto TaskDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID.Bytes(), id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForOrder retrieves every task of an order.
func (r *GormTaskRepository) GetForOrder(
	ctx context.Context,
	tenantID kernel.UUID,
	orderID kernel.UUID,
) ([]*task.Task, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return r.find(ctx, "tenant_id = ? AND order_id = ?", tenantID.Bytes(), orderID.Bytes())
}

// GetForItem retrieves every task of a single order item.
func (r *GormTaskRepository) GetForItem(
	ctx context.Context,
	tenantID kernel.UUID,
	orderItemID kernel.UUID,
) ([]*task.Task, error) {
	if err := errors.Join(tenantID.Validate(), orderItemID.Validate()); err != nil {
		return nil, err
	}

	return r.find(ctx, "tenant_id = ? AND order_item_id = ?", tenantID.Bytes(), orderItemID.Bytes())
}

// PendingCount returns how many tasks of an order are neither completed nor
// skipped.
func (r *GormTaskRepository) PendingCount(
	ctx context.Context,
	tenantID kernel.UUID,
	orderID kernel.UUID,
) (int, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Where("tenant_id = ? AND order_id = ? AND status NOT IN (?, ?)",
			tenantID.Bytes(), orderID.Bytes(), int(task.Completed), int(task.Skipped)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r *GormTaskRepository) find(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	var dtos []TaskDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Find(&dtos).Error; err != nil {
		return nil, err
	}

	tasks := make([]*task.Task, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, aggregate)
	}

	return tasks, nil
}
