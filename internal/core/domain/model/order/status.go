package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the business lifecycle state of a garment order.
// It implements a state machine with defined transitions:
//
//	Draft ──> Confirmed ──> InProduction ──> Ready ──> Delivered
//	  │           │              │             │
//	  └───────────┴──────────────┴─────────────┴──> Cancelled
//
// Delivered and Cancelled are final states. The Ready transition is reserved
// for completion propagation: it fires when every task of the order has
// reached a terminal state.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Draft is the initial status when an order is captured.
	Draft

	// Confirmed indicates the customer confirmed the order.
	// Confirmation triggers the first-stage auto-completion.
	Confirmed

	// InProduction indicates production work has begun.
	InProduction

	// Ready indicates every workflow task of the order is completed or
	// skipped and the order awaits delivery.
	Ready

	// Delivered indicates the order was handed to the customer. Final.
	Delivered

	// Cancelled indicates the order was abandoned. Final.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		Draft:         "draft",
		Confirmed:     "confirmed",
		InProduction:  "in_production",
		Ready:         "ready",
		Delivered:     "delivered",
		Cancelled:     "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:        "draft",
		Confirmed:    "confirmed",
		InProduction: "in_production",
		Ready:        "ready",
		Delivered:    "delivered",
		Cancelled:    "cancelled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "in_production".
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString converts a wire name back to a Status.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%s is not a valid status", value))
}

// IsFinal reports whether no further transitions leave the status.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions: Draft -> Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Draft {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to confirm", s))
	}
	return Confirmed, nil
}

// StartProduction transitions the status to InProduction.
//
// Valid transitions: Confirmed -> InProduction.
func (s Status) StartProduction() (Status, error) {
	if s != Confirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to start production", s))
	}
	return InProduction, nil
}

// MarkReady transitions the status to Ready.
//
// Valid transitions: Confirmed -> Ready, InProduction -> Ready. Completion can
// propagate straight from Confirmed when every production stage was skipped.
func (s Status) MarkReady() (Status, error) {
	if s != Confirmed && s != InProduction {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to mark ready", s))
	}
	return Ready, nil
}

// MarkDelivered transitions the status to Delivered.
//
// Valid transitions: Ready -> Delivered.
func (s Status) MarkDelivered() (Status, error) {
	if s != Ready {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s))
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid from any non-final status.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsFinal() {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s))
	}
	return Cancelled, nil
}
