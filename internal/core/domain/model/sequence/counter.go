package sequence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrCounterIsNotConstructed is returned when a Counter instance was not created
	// through the NewCounter or RestoreCounter factory methods.
	ErrCounterIsNotConstructed = errors.New("Counter must be created via NewCounter or RestoreCounter constructor")
)

const (
	minPaddingLength = 1
	maxPaddingLength = 12
)

// Counter is the aggregate behind one (tenant, sequence type) numbering stream.
// It issues strictly increasing, gap-free numbers and formats them into the
// externally visible identifier string.
//
// Counter follows these invariants:
//   - At most one counter exists per (tenant, sequence type, fiscal year)
//   - currentNumber never decreases, except for the fiscal-year reset to zero
//   - The formatted output concatenates prefix, fiscal year (when carried),
//     the zero-padded number, and suffix
//   - Can only be created through NewCounter or RestoreCounter
//
// Counter holds no locking itself; callers must serialize Next via the
// persistence layer's pessimistic row lock so that two concurrent callers
// never observe the same currentNumber.
type Counter struct {
	// id is the unique identifier for the counter row
	id kernel.UUID

	// tenantID scopes the counter to one tenant
	tenantID kernel.UUID

	// sequenceType identifies the numbering stream this counter serves
	sequenceType SequenceType

	// prefix is prepended to every formatted number, e.g. "ORD-"
	prefix string

	// suffix is appended to every formatted number, usually empty
	suffix string

	// currentNumber is the last issued number; 0 means nothing issued yet
	currentNumber int64

	// paddingLength is the zero-padded width of the numeric part
	paddingLength int

	// fiscalYear is the "YYYY-YY" label the counter is currently numbering in;
	// empty when the counter does not carry a fiscal year
	fiscalYear string

	// resetYearly indicates the counter restarts from 1 each fiscal year
	resetYearly bool

	// lastResetDate records when the last fiscal-year rollover happened
	lastResetDate *time.Time

	// isConstructed ensures the counter was created via a constructor
	isConstructed bool
}

// NewCounter creates a fresh Counter for a (tenant, sequence type) pair.
// Counters are created lazily on first use or pre-seeded at tenant onboarding;
// currentNumber starts at zero so the first issued number is 1.
//
// When resetYearly is true the counter is stamped with the fiscal year of the
// moment of creation and will roll over on the next April boundary.
func NewCounter(
	id kernel.UUID,
	tenantID kernel.UUID,
	sequenceType SequenceType,
	prefix string,
	suffix string,
	paddingLength int,
	resetYearly bool,
	now time.Time,
) (*Counter, error) {
	counter := &Counter{
		isConstructed: true,
		resetYearly:   resetYearly,
		prefix:        strings.TrimSpace(prefix),
		suffix:        strings.TrimSpace(suffix),
	}

	if resetYearly {
		counter.fiscalYear = FiscalYearAt(now)
	}

	if err := errors.Join(
		counter.setID(id),
		counter.setTenantID(tenantID),
		counter.setSequenceType(sequenceType),
		counter.setPaddingLength(paddingLength),
	); err != nil {
		return nil, err
	}

	return counter, nil
}

// RestoreCounter reconstructs a Counter from persistence.
// All invariants are revalidated so corrupt rows are rejected on load.
func RestoreCounter(
	id kernel.UUID,
	tenantID kernel.UUID,
	sequenceType SequenceType,
	prefix string,
	suffix string,
	currentNumber int64,
	paddingLength int,
	fiscalYear string,
	resetYearly bool,
	lastResetDate *time.Time,
) (*Counter, error) {
	counter := &Counter{
		isConstructed: true,
		prefix:        prefix,
		suffix:        suffix,
		fiscalYear:    fiscalYear,
		resetYearly:   resetYearly,
		lastResetDate: lastResetDate,
	}

	if currentNumber < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("current number is invalid",
			fmt.Errorf("%d is negative", currentNumber))
	}
	counter.currentNumber = currentNumber

	if err := errors.Join(
		counter.setID(id),
		counter.setTenantID(tenantID),
		counter.setSequenceType(sequenceType),
		counter.setPaddingLength(paddingLength),
	); err != nil {
		return nil, err
	}

	return counter, nil
}

// Validate ensures the Counter instance was properly constructed.
func (c *Counter) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCounterIsNotConstructed
	}
	return nil
}

// ID returns the counter's unique identifier.
func (c *Counter) ID() kernel.UUID {
	return c.id
}

// TenantID returns the tenant the counter belongs to.
func (c *Counter) TenantID() kernel.UUID {
	return c.tenantID
}

// SequenceType returns the numbering stream this counter serves.
func (c *Counter) SequenceType() SequenceType {
	return c.sequenceType
}

// Prefix returns the formatted-number prefix.
func (c *Counter) Prefix() string {
	return c.prefix
}

// Suffix returns the formatted-number suffix.
func (c *Counter) Suffix() string {
	return c.suffix
}

// CurrentNumber returns the last issued number.
func (c *Counter) CurrentNumber() int64 {
	return c.currentNumber
}

// PaddingLength returns the zero-padded width of the numeric part.
func (c *Counter) PaddingLength() int {
	return c.paddingLength
}

// FiscalYear returns the fiscal year label the counter carries, or "" if none.
func (c *Counter) FiscalYear() string {
	return c.fiscalYear
}

// ResetsYearly reports whether the counter restarts each fiscal year.
func (c *Counter) ResetsYearly() bool {
	return c.resetYearly
}

// LastResetDate returns when the last fiscal-year rollover happened, or nil.
func (c *Counter) LastResetDate() *time.Time {
	return c.lastResetDate
}

// Next issues the next number as of the given instant and returns its
// formatted string.
//
// If the counter resets yearly and the fiscal year at now differs from the
// stored one, currentNumber falls back to zero and the fiscal year and reset
// date are updated before incrementing. The increment is always exactly 1, so
// the stream stays gap-free. The caller must hold the counter's row lock and
// persist the counter in the same transaction.
func (c *Counter) Next(now time.Time) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	if c.resetYearly {
		if current := FiscalYearAt(now); current != c.fiscalYear {
			c.currentNumber = 0
			c.fiscalYear = current
			resetAt := now
			c.lastResetDate = &resetAt
		}
	}

	c.currentNumber++
	return c.format(c.currentNumber), nil
}

// format concatenates prefix, fiscal year (empty when the counter carries
// none), the zero-padded number, and suffix. No separators are inserted;
// counters wanting them carry them in their prefix or suffix.
func (c *Counter) format(number int64) string {
	padded := fmt.Sprintf("%0*d", c.paddingLength, number)
	return c.prefix + c.fiscalYear + padded + c.suffix
}

func (c *Counter) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Counter) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *Counter) setSequenceType(sequenceType SequenceType) error {
	if err := sequenceType.Validate(); err != nil {
		return err
	}
	c.sequenceType = sequenceType
	return nil
}

func (c *Counter) setPaddingLength(paddingLength int) error {
	if paddingLength < minPaddingLength || paddingLength > maxPaddingLength {
		return errs.NewValueIsOutOfRangeError("padding length", paddingLength, minPaddingLength, maxPaddingLength)
	}
	c.paddingLength = paddingLength
	return nil
}
