package sequence_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sequence"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var midFiscalYear = time.Date(2025, time.September, 1, 10, 0, 0, 0, time.UTC)

func newTestCounter(t *testing.T, resetYearly bool) *sequence.Counter {
	t.Helper()
	counter, err := sequence.NewCounter(
		kernel.NewUUID(),
		kernel.NewUUID(),
		sequence.OrderNumber,
		"ORD-",
		"",
		5,
		resetYearly,
		midFiscalYear,
	)
	require.NoError(t, err)
	return counter
}

func TestNewCounter(t *testing.T) {
	t.Run("creates counter starting at zero", func(t *testing.T) {
		counter := newTestCounter(t, true)

		assert.NoError(t, counter.Validate())
		assert.Equal(t, int64(0), counter.CurrentNumber())
		assert.Equal(t, "2025-26", counter.FiscalYear())
		assert.True(t, counter.ResetsYearly())
		assert.Nil(t, counter.LastResetDate())
	})

	t.Run("non yearly counter carries no fiscal year", func(t *testing.T) {
		counter := newTestCounter(t, false)
		assert.Empty(t, counter.FiscalYear())
	})

	t.Run("invalid id rejected", func(t *testing.T) {
		_, err := sequence.NewCounter(
			kernel.UUID{}, kernel.NewUUID(), sequence.OrderNumber, "ORD-", "", 5, true, midFiscalYear)
		require.Error(t, err)
	})

	t.Run("invalid sequence type rejected", func(t *testing.T) {
		_, err := sequence.NewCounter(
			kernel.NewUUID(), kernel.NewUUID(), sequence.UnknownType, "ORD-", "", 5, true, midFiscalYear)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("padding out of range rejected", func(t *testing.T) {
		_, err := sequence.NewCounter(
			kernel.NewUUID(), kernel.NewUUID(), sequence.OrderNumber, "ORD-", "", 0, true, midFiscalYear)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = sequence.NewCounter(
			kernel.NewUUID(), kernel.NewUUID(), sequence.OrderNumber, "ORD-", "", 13, true, midFiscalYear)
		require.Error(t, err)
	})
}

func TestCounter_Validate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var counter sequence.Counter
		require.ErrorIs(t, counter.Validate(), sequence.ErrCounterIsNotConstructed)
	})

	t.Run("nil counter is not constructed", func(t *testing.T) {
		var counter *sequence.Counter
		require.ErrorIs(t, counter.Validate(), sequence.ErrCounterIsNotConstructed)
	})
}

func TestCounter_Next(t *testing.T) {
	t.Run("issues sequential formatted numbers", func(t *testing.T) {
		counter := newTestCounter(t, true)

		first, err := counter.Next(midFiscalYear)
		require.NoError(t, err)
		assert.Equal(t, "ORD-2025-2600001", first)

		second, err := counter.Next(midFiscalYear)
		require.NoError(t, err)
		assert.Equal(t, "ORD-2025-2600002", second)
		assert.Equal(t, int64(2), counter.CurrentNumber())
	})

	t.Run("formats without fiscal year when none carried", func(t *testing.T) {
		counter := newTestCounter(t, false)

		formatted, err := counter.Next(midFiscalYear)
		require.NoError(t, err)
		assert.Equal(t, "ORD-00001", formatted)
	})

	t.Run("applies suffix", func(t *testing.T) {
		counter, err := sequence.NewCounter(
			kernel.NewUUID(), kernel.NewUUID(), sequence.InvoiceGST, "INV/", "/G", 4, true, midFiscalYear)
		require.NoError(t, err)

		formatted, err := counter.Next(midFiscalYear)
		require.NoError(t, err)
		assert.Equal(t, "INV/2025-260001/G", formatted)
	})

	t.Run("resets on fiscal year rollover", func(t *testing.T) {
		counter, err := sequence.RestoreCounter(
			kernel.NewUUID(), kernel.NewUUID(), sequence.OrderNumber,
			"ORD-", "", 17, 4, "2024-25", true, nil)
		require.NoError(t, err)

		nextYear := time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC)
		formatted, err := counter.Next(nextYear)
		require.NoError(t, err)

		assert.Equal(t, "ORD-2025-260001", formatted)
		assert.Equal(t, int64(1), counter.CurrentNumber())
		assert.Equal(t, "2025-26", counter.FiscalYear())
		require.NotNil(t, counter.LastResetDate())
		assert.Equal(t, nextYear, *counter.LastResetDate())
	})

	t.Run("does not reset within the same fiscal year", func(t *testing.T) {
		counter, err := sequence.RestoreCounter(
			kernel.NewUUID(), kernel.NewUUID(), sequence.OrderNumber,
			"ORD-", "", 17, 4, "2025-26", true, nil)
		require.NoError(t, err)

		formatted, err := counter.Next(midFiscalYear)
		require.NoError(t, err)
		assert.Equal(t, "ORD-2025-260018", formatted)
	})

	t.Run("non yearly counter never resets", func(t *testing.T) {
		counter, err := sequence.RestoreCounter(
			kernel.NewUUID(), kernel.NewUUID(), sequence.CustomerCode,
			"CUST-", "", 41, 4, "", false, nil)
		require.NoError(t, err)

		formatted, err := counter.Next(time.Date(2030, time.April, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "CUST-0042", formatted)
	})

	t.Run("unconstructed counter rejected", func(t *testing.T) {
		var counter sequence.Counter
		_, err := counter.Next(midFiscalYear)
		require.ErrorIs(t, err, sequence.ErrCounterIsNotConstructed)
	})
}

func TestRestoreCounter(t *testing.T) {
	t.Run("negative current number rejected", func(t *testing.T) {
		_, err := sequence.RestoreCounter(
			kernel.NewUUID(), kernel.NewUUID(), sequence.OrderNumber,
			"ORD-", "", -1, 4, "2025-26", true, nil)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("restores full state", func(t *testing.T) {
		resetAt := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
		counter, err := sequence.RestoreCounter(
			kernel.NewUUID(), kernel.NewUUID(), sequence.PaymentNumber,
			"PAY-", "-A", 7, 6, "2025-26", true, &resetAt)
		require.NoError(t, err)

		assert.Equal(t, sequence.PaymentNumber, counter.SequenceType())
		assert.Equal(t, "PAY-", counter.Prefix())
		assert.Equal(t, "-A", counter.Suffix())
		assert.Equal(t, int64(7), counter.CurrentNumber())
		assert.Equal(t, 6, counter.PaddingLength())
		assert.Equal(t, "2025-26", counter.FiscalYear())
		require.NotNil(t, counter.LastResetDate())
	})
}
