// Package sequencerepo provides data transfer objects and mapping functions for
// sequence counter persistence. Counters are the hot rows of the system: every
// issued document number passes through a SELECT FOR UPDATE on exactly one of
// them, so the table stays small and the composite (tenant, type) key unique.
package sequencerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sequence"

	"github.com/google/uuid"
)

// CounterDTO represents the database structure for persisting sequence counters.
type CounterDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_counter_tenant_type"`
	SequenceType  int       `gorm:"uniqueIndex:idx_counter_tenant_type"`
	Prefix        string
	Suffix        string
	CurrentNumber int64
	PaddingLength int
	FiscalYear    string
	ResetYearly   bool
	LastResetDate *time.Time
}

// TableName specifies the database table name for sequence counters.
func (CounterDTO) TableName() string {
	return "sequence_counters"
}

func fromDomain(counter *sequence.Counter) CounterDTO {
	return CounterDTO{
		ID:            counter.ID().Bytes(),
		TenantID:      counter.TenantID().Bytes(),
		SequenceType:  int(counter.SequenceType()),
		Prefix:        counter.Prefix(),
		Suffix:        counter.Suffix(),
		CurrentNumber: counter.CurrentNumber(),
		PaddingLength: counter.PaddingLength(),
		FiscalYear:    counter.FiscalYear(),
		ResetYearly:   counter.ResetsYearly(),
		LastResetDate: counter.LastResetDate(),
	}
}

func toDomain(dto CounterDTO) (*sequence.Counter, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return sequence.RestoreCounter(
		id,
		tenantID,
		sequence.SequenceType(dto.SequenceType),
		dto.Prefix,
		dto.Suffix,
		dto.CurrentNumber,
		dto.PaddingLength,
		dto.FiscalYear,
		dto.ResetYearly,
		dto.LastResetDate,
	)
}
