package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/task"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignTaskCommandIsNotConstructed = errors.New(
	"AssignTaskCommand must be created via NewAssignTaskCommand constructor",
)

// AssignTaskCommand represents a request to hand a task to a staff user or an
// external worker, or to clear the assignment with task.NoAssignee.
type AssignTaskCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.UUID
	taskID   kernel.UUID
	assignee task.Assignee

	guard guard.ConstructorGuard
}

// NewAssignTaskCommand creates a command to change a task's assignment.
func NewAssignTaskCommand(tenantID kernel.UUID, taskID kernel.UUID, assignee task.Assignee) (AssignTaskCommand, error) {
	command := AssignTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTenantID(tenantID),
		command.setTaskID(taskID),
		command.setAssignee(assignee),
	); err != nil {
		return AssignTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignTaskCommand) Validate() error {
	return c.guard.Validate(ErrAssignTaskCommandIsNotConstructed)
}

// TenantID returns the tenant the task belongs to.
func (c AssignTaskCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// TaskID returns the task to assign.
func (c AssignTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Assignee returns who the task goes to.
func (c AssignTaskCommand) Assignee() task.Assignee {
	return c.assignee
}

func (c *AssignTaskCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *AssignTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *AssignTaskCommand) setAssignee(assignee task.Assignee) error {
	if err := assignee.Validate(); err != nil {
		return err
	}

	c.assignee = assignee
	return nil
}
