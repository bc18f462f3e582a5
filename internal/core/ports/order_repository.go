package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their line items. Orders and items are stored separately because items carry
// their own pipeline position and are updated independently of the order.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier within a tenant.
	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*order.Order, error)

	// AddItem persists a new order line item.
	AddItem(ctx context.Context, item *order.Item) error

	// UpdateItem persists changes to an existing line item, including its
	// current stage pointer.
	UpdateItem(ctx context.Context, item *order.Item) error

	// GetItem retrieves a single line item by its unique identifier within a tenant.
	GetItem(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*order.Item, error)

	// GetItems retrieves all line items of an order.
	GetItems(ctx context.Context, tenantID kernel.UUID, orderID kernel.UUID) ([]*order.Item, error)
}
