package sequencerepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sequence"
	"fulfillment/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockNotAvailable is the SQLSTATE raised when lock_timeout expires while
// waiting for the counter row.
const lockNotAvailable = "55P03"

// GormSequenceRepository implements SequenceRepository using GORM.
type GormSequenceRepository struct {
	db          *gorm.DB
	tracker     aggregateTracker
	lockTimeout time.Duration
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSequenceRepository creates a new GORM sequence repository.
// lockTimeout bounds how long GetForUpdate waits for the counter row before
// giving up with a transient error.
func NewGormSequenceRepository(db *gorm.DB, tracker aggregateTracker, lockTimeout time.Duration) *GormSequenceRepository {
	return &GormSequenceRepository{
		db:          db,
		tracker:     tracker,
		lockTimeout: lockTimeout,
	}
}

// GetForUpdate retrieves the counter for (tenant, sequence type) under a row
// level lock. Must run inside a transaction; SET LOCAL scopes the lock timeout
// to it. The lock is released by the surrounding commit or rollback.
func (r *GormSequenceRepository) GetForUpdate(
	ctx context.Context,
	tenantID kernel.UUID,
	sequenceType sequence.SequenceType,
) (*sequence.Counter, error) {
	if err := errors.Join(tenantID.Validate(), sequenceType.Validate()); err != nil {
		return nil, err
	}

	timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
	if err := r.db.WithContext(ctx).Exec(timeout).Error; err != nil {
		return nil, err
	}

	var dto CounterDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "tenant_id = ? AND sequence_type = ?", tenantID.Bytes(), int(sequenceType)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sequence counter",
				fmt.Sprintf("%s/%s", tenantID, sequenceType))
		}
		if isLockTimeout(err) {
			return nil, errs.NewTransientLockTimeoutErrorWithCause("sequence counter", err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Add saves a new counter to the database.
func (r *GormSequenceRepository) Add(ctx context.Context, counter *sequence.Counter) error {
	if err := counter.Validate(); err != nil {
		return err
	}

	dto := fromDomain(counter)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(counter.ID(), counter)
	return nil
}

// Update saves a drawn-from counter to the database.
func (r *GormSequenceRepository) Update(ctx context.Context, counter *sequence.Counter) error {
	if err := counter.Validate(); err != nil {
		return err
	}

	dto := fromDomain(counter)
	result := r.db.WithContext(ctx).Model(&CounterDTO{}).
		Where("id = ?", dto.ID).
		Select("CurrentNumber", "FiscalYear", "LastResetDate").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(counter.ID(), counter)
	return nil
}

func isLockTimeout(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == lockNotAvailable
	}
	return false
}
