package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateItemTasksCommandIsNotConstructed = errors.New(
	"CreateItemTasksCommand must be created via NewCreateItemTasksCommand constructor",
)

// CreateItemTasksCommand represents a request to generate the workflow task set
// for one order item: one task per active stage of the tenant's pipeline.
//
// Generation is idempotent. Stages the item already has a task for are passed
// over, so the command doubles as the repair operation for incomplete task sets.
type CreateItemTasksCommand struct { //nolint:recvcheck //using for validation
	tenantID    kernel.UUID
	orderItemID kernel.UUID
	dueDate     *time.Time

	guard guard.ConstructorGuard
}

// NewCreateItemTasksCommand creates a command to generate tasks for an order
// item. dueDate is optional and copied onto every generated task.
func NewCreateItemTasksCommand(tenantID kernel.UUID, orderItemID kernel.UUID, dueDate *time.Time) (CreateItemTasksCommand, error) {
	command := CreateItemTasksCommand{
		dueDate: dueDate,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTenantID(tenantID),
		command.setOrderItemID(orderItemID),
	); err != nil {
		return CreateItemTasksCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateItemTasksCommand) Validate() error {
	return c.guard.Validate(ErrCreateItemTasksCommandIsNotConstructed)
}

// TenantID returns the tenant the item belongs to.
func (c CreateItemTasksCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// OrderItemID returns the item to generate tasks for.
func (c CreateItemTasksCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

// DueDate returns the optional due date for the generated tasks.
func (c CreateItemTasksCommand) DueDate() *time.Time {
	return c.dueDate
}

func (c *CreateItemTasksCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateItemTasksCommand) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}

	c.orderItemID = orderItemID
	return nil
}
