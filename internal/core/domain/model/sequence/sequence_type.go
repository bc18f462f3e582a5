package sequence

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// SequenceType identifies which business numbering a counter serves.
// Every entity that needs a human-readable sequential code draws from its own
// per-tenant counter keyed by this type. GST and non-GST invoices number
// independently, so they are distinct types sharing the same counter mechanics.
type SequenceType int

const (
	// UnknownType represents an invalid or undefined sequence type.
	// This value (0) helps catch uninitialized SequenceType values.
	UnknownType SequenceType = iota

	// OrderNumber numbers customer orders.
	OrderNumber

	// InvoiceGST numbers GST invoices.
	InvoiceGST

	// InvoiceNonGST numbers non-GST invoices, independently of GST ones.
	InvoiceNonGST

	// InquiryCode numbers customer inquiries.
	InquiryCode

	// CustomerCode numbers customer master records.
	CustomerCode

	// WorkerCode numbers worker master records.
	WorkerCode

	// PaymentNumber numbers recorded payments.
	PaymentNumber
)

// getSequenceTypeStrings returns a map of SequenceType values to their string representations.
func getSequenceTypeStrings() map[SequenceType]string {
	return map[SequenceType]string{
		UnknownType:   "unknown",
		OrderNumber:   "order",
		InvoiceGST:    "invoice_gst",
		InvoiceNonGST: "invoice_non_gst",
		InquiryCode:   "inquiry",
		CustomerCode:  "customer",
		WorkerCode:    "worker",
		PaymentNumber: "payment",
	}
}

// getValidSequenceTypeStrings returns a map of only valid SequenceType values.
func getValidSequenceTypeStrings() map[SequenceType]string {
	//nolint:exhaustive // UnknownType is intentionally excluded as it's invalid
	return map[SequenceType]string{
		OrderNumber:   "order",
		InvoiceGST:    "invoice_gst",
		InvoiceNonGST: "invoice_non_gst",
		InquiryCode:   "inquiry",
		CustomerCode:  "customer",
		WorkerCode:    "worker",
		PaymentNumber: "payment",
	}
}

// Validate checks if the SequenceType value is one of the fixed enumeration.
// UnknownType (0) and any other values are invalid. Used to reject malformed
// input before any counter mutation happens.
func (t SequenceType) Validate() error {
	if _, ok := getValidSequenceTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("sequence type is invalid",
			fmt.Errorf("%d is not a valid sequence type", t))
	}
	return nil
}

// String returns the wire name of the sequence type, e.g. "invoice_gst".
// Implements fmt.Stringer and is safe to call on any value.
func (t SequenceType) String() string {
	if str, ok := getSequenceTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// SequenceTypeFromString parses a wire name into a SequenceType.
// Returns an error for names outside the fixed enumeration.
func SequenceTypeFromString(s string) (SequenceType, error) {
	for seqType, str := range getValidSequenceTypeStrings() {
		if str == s {
			return seqType, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("sequence type is invalid",
		fmt.Errorf("%q is not a valid sequence type", s))
}
