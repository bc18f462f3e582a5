package task

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// Sentinel errors for the task gating taxonomy. All four are terminal,
// user-correctable failures: the attempted mutation leaves no side effects
// and the message carries enough context to render an actionable response.
var (
	ErrInvalidTransition = errors.New("invalid task transition")
	ErrPhotoRequired     = errors.New("photo required before completion")
	ErrApprovalRequired  = errors.New("approval required before completion")
	ErrPermissionDenied  = errors.New("permission denied")
)

// InvalidTransitionError indicates an attempt to move a task along an edge the
// state machine does not define, including any transition out of a terminal
// status (no resurrecting completed or skipped tasks).
type InvalidTransitionError struct {
	TaskID kernel.UUID
	From   Status
	To     Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given edge.
func NewInvalidTransitionError(taskID kernel.UUID, from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{TaskID: taskID, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: task is: %s, from is: %s, to is: %s",
		ErrInvalidTransition, e.TaskID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// PhotoRequiredError indicates a completion attempt on a task whose stage
// requires a photo while the task has none attached.
type PhotoRequiredError struct {
	TaskID    kernel.UUID
	StageName string
}

// NewPhotoRequiredError creates a PhotoRequiredError for the given task and stage.
func NewPhotoRequiredError(taskID kernel.UUID, stageName string) *PhotoRequiredError {
	return &PhotoRequiredError{TaskID: taskID, StageName: stageName}
}

func (e *PhotoRequiredError) Error() string {
	return fmt.Sprintf("%s: task is: %s, stage is: %s", ErrPhotoRequired, e.TaskID, e.StageName)
}

func (e *PhotoRequiredError) Unwrap() error {
	return ErrPhotoRequired
}

// ApprovalRequiredError indicates a completion attempt on a task that requires
// approval and has not been approved. Approval itself is granted by an
// external collaborator; this core only checks the flag.
type ApprovalRequiredError struct {
	TaskID    kernel.UUID
	StageName string
}

// NewApprovalRequiredError creates an ApprovalRequiredError for the given task and stage.
func NewApprovalRequiredError(taskID kernel.UUID, stageName string) *ApprovalRequiredError {
	return &ApprovalRequiredError{TaskID: taskID, StageName: stageName}
}

func (e *ApprovalRequiredError) Error() string {
	return fmt.Sprintf("%s: task is: %s, stage is: %s", ErrApprovalRequired, e.TaskID, e.StageName)
}

func (e *ApprovalRequiredError) Unwrap() error {
	return ErrApprovalRequired
}

// PermissionError indicates a skip attempt on a mandatory stage by an actor
// without an elevated role.
type PermissionError struct {
	TaskID    kernel.UUID
	StageName string
	Role      Role
}

// NewPermissionError creates a PermissionError for the given task, stage and role.
func NewPermissionError(taskID kernel.UUID, stageName string, role Role) *PermissionError {
	return &PermissionError{TaskID: taskID, StageName: stageName, Role: role}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: task is: %s, stage is: %s, role is: %s",
		ErrPermissionDenied, e.TaskID, e.StageName, e.Role)
}

func (e *PermissionError) Unwrap() error {
	return ErrPermissionDenied
}
