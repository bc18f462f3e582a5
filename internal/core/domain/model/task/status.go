package task

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a workflow task.
// It implements a state machine with defined transitions to ensure
// tasks follow the correct production workflow.
//
// State transitions:
//
//	Pending ──┬──> InProgress ──┬──> Completed
//	          │        │ ▲      │
//	          │        ▼ │      └──> Skipped
//	          └────> Blocked ───────> Completed | Skipped
//
// Completed and Skipped are terminal; no transition leaves them.
// Blocked is entered while an external dependency (e.g. missing material)
// halts work, and is left by resuming, completing, or skipping.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Pending is the initial status when a task is generated for a stage.
	Pending

	// InProgress indicates work on the task has started.
	InProgress

	// Completed indicates the task's work is done. Terminal.
	Completed

	// Skipped indicates the task was closed without doing its work. Terminal.
	// Skipping is recorded as a form of closure, not failure.
	Skipped

	// Blocked indicates work is halted by an external dependency.
	Blocked
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		Pending:       "pending",
		InProgress:    "in_progress",
		Completed:     "completed",
		Skipped:       "skipped",
		Blocked:       "blocked",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		InProgress: "in_progress",
		Completed:  "completed",
		Skipped:    "skipped",
		Blocked:    "blocked",
	}
}

// Validate checks if the Status value is valid.
// UnknownStatus (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "in_progress".
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a wire name into a Status.
// Returns an error for names outside the valid set.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Skipped
}

// canTransition reports whether the status is a valid source for any transition.
func (s Status) canTransition() bool {
	return s == Pending || s == InProgress || s == Blocked
}

// Start transitions the status to InProgress.
//
// Valid sources: Pending (begin work), InProgress (idempotent), Blocked (resume).
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Start() (Status, error) {
	if !s.canTransition() {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to start from", s))
	}
	return InProgress, nil
}

// Complete transitions the status to Completed.
//
// Valid sources: Pending, InProgress, Blocked. Completion from Pending is
// allowed because administrative stages are auto-completed without being
// started first.
func (s Status) Complete() (Status, error) {
	if !s.canTransition() {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to complete from", s))
	}
	return Completed, nil
}

// Skip transitions the status to Skipped.
//
// Valid sources: Pending, InProgress, Blocked.
func (s Status) Skip() (Status, error) {
	if !s.canTransition() {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to skip from", s))
	}
	return Skipped, nil
}

// Block transitions the status to Blocked.
//
// Valid sources: Pending, InProgress, Blocked (idempotent).
func (s Status) Block() (Status, error) {
	if !s.canTransition() {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to block from", s))
	}
	return Blocked, nil
}
