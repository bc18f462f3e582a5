package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
)

// StageRepository defines the persistence contract for the stage catalog.
// The catalog is tenant scoped master data; the workflow only reads it.
type StageRepository interface {
	// Get retrieves a single stage by its unique identifier within a tenant.
	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*stage.Stage, error)

	// GetAllOrdered retrieves every stage of a tenant, active and inactive,
	// sorted by stage order ascending.
	GetAllOrdered(ctx context.Context, tenantID kernel.UUID) ([]*stage.Stage, error)

	// GetActiveOrdered retrieves the tenant's active stages sorted by stage
	// order ascending. This is the pipeline new items travel through.
	GetActiveOrdered(ctx context.Context, tenantID kernel.UUID) ([]*stage.Stage, error)
}
