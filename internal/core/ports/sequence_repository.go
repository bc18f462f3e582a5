package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sequence"
)

// SequenceRepository defines the persistence contract for sequence counters.
//
// Number generation is correct only when the counter row is read under a
// pessimistic row lock inside the surrounding transaction, so the repository
// must always be used through a UnitOfWork.
type SequenceRepository interface {
	// GetForUpdate retrieves the counter for (tenant, sequence type) holding a
	// row level lock until the transaction ends. Returns errs.ObjectNotFoundError
	// when no counter is configured for the pair, and
	// errs.TransientLockTimeoutError when the lock could not be acquired within
	// the configured lock timeout.
	GetForUpdate(ctx context.Context, tenantID kernel.UUID, sequenceType sequence.SequenceType) (*sequence.Counter, error)

	// Add persists a newly configured counter.
	Add(ctx context.Context, counter *sequence.Counter) error

	// Update persists the counter after a number was drawn from it.
	Update(ctx context.Context, counter *sequence.Counter) error
}
