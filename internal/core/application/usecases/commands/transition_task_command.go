package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/task"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrTransitionTaskCommandIsNotConstructed = errors.New(
		"TransitionTaskCommand must be created via NewTransitionTaskCommand constructor",
	)
	ErrTargetStatusIsInvalid = errors.New("target status must be in_progress, completed, skipped or blocked")
)

// TransitionTaskCommand represents a request to move a workflow task to a new
// status on behalf of an actor.
//
// The target status selects the transition: in_progress starts or resumes the
// task, completed and skipped settle it, blocked parks it. Pending is never a
// valid target.
//
// Example:
//
//	actor, _ := task.NewActor(userID, task.RoleStaff)
//	cmd, err := NewTransitionTaskCommand(tenantID, taskID, task.Completed, actor, "pleated to measure")
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//
//	handler := NewTransitionTaskCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errs from the gating rules surface here, e.g. *task.PhotoRequiredError
//	    return err
//	}
type TransitionTaskCommand struct { //nolint:recvcheck //using for validation
	tenantID     kernel.UUID
	taskID       kernel.UUID
	targetStatus task.Status
	actor        task.Actor
	notes        string

	guard guard.ConstructorGuard
}

// NewTransitionTaskCommand creates a command to transition a task.
// notes is optional and appended to the task's notes when present.
func NewTransitionTaskCommand(
	tenantID kernel.UUID,
	taskID kernel.UUID,
	targetStatus task.Status,
	actor task.Actor,
	notes string,
) (TransitionTaskCommand, error) {
	command := TransitionTaskCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTenantID(tenantID),
		command.setTaskID(taskID),
		command.setTargetStatus(targetStatus),
		command.setActor(actor),
	); err != nil {
		return TransitionTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionTaskCommand) Validate() error {
	return c.guard.Validate(ErrTransitionTaskCommandIsNotConstructed)
}

// TenantID returns the tenant the task belongs to.
func (c TransitionTaskCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// TaskID returns the task to transition.
func (c TransitionTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// TargetStatus returns the requested status.
func (c TransitionTaskCommand) TargetStatus() task.Status {
	return c.targetStatus
}

// Actor returns who requests the transition.
func (c TransitionTaskCommand) Actor() task.Actor {
	return c.actor
}

// Notes returns the optional note to append to the task.
func (c TransitionTaskCommand) Notes() string {
	return c.notes
}

func (c *TransitionTaskCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *TransitionTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *TransitionTaskCommand) setTargetStatus(targetStatus task.Status) error {
	switch targetStatus {
	case task.InProgress, task.Completed, task.Skipped, task.Blocked:
		c.targetStatus = targetStatus
		return nil
	default:
		return fmt.Errorf("%w: got %s", ErrTargetStatusIsInvalid, targetStatus)
	}
}

func (c *TransitionTaskCommand) setActor(actor task.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
