package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/task"
)

// TaskRepository defines the persistence contract for workflow tasks.
type TaskRepository interface {
	// Add persists a new task.
	Add(ctx context.Context, aggregate *task.Task) error

	// AddBatch persists a set of freshly generated tasks in one statement.
	// Used by task generation, which creates one task per (item, stage) pair.
	AddBatch(ctx context.Context, aggregates []*task.Task) error

	// Update persists changes to an existing task.
	Update(ctx context.Context, aggregate *task.Task) error

	// Get retrieves a task by its unique identifier within a tenant.
	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*task.Task, error)

	// GetForOrder retrieves every task of an order, item scoped and order
	// scoped alike.
	GetForOrder(ctx context.Context, tenantID kernel.UUID, orderID kernel.UUID) ([]*task.Task, error)

	// GetForItem retrieves every task of a single order item.
	GetForItem(ctx context.Context, tenantID kernel.UUID, orderItemID kernel.UUID) ([]*task.Task, error)

	// PendingCount returns how many tasks of an order are still open, that is
	// not completed and not skipped.
	PendingCount(ctx context.Context, tenantID kernel.UUID, orderID kernel.UUID) (int, error)
}
