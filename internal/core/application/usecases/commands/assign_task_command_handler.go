package commands

import (
	"context"
)

// AssignTaskCommandHandler handles task assignment changes.
type AssignTaskCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

// NewAssignTaskCommandHandler creates a handler for task assignment.
func NewAssignTaskCommandHandler(uowFactory WorkflowUoWFactory) AssignTaskCommandHandler {
	return AssignTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command. Settled tasks reject reassignment,
// which surfaces from the aggregate as an errs.ValueIsInvalidError.
func (h *AssignTaskCommandHandler) Handle(ctx context.Context, cmd AssignTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.TaskRepository()
	t, err := taskRepo.Get(ctx, cmd.TenantID(), cmd.TaskID())
	if err != nil {
		return err
	}

	if err = t.Assign(cmd.Assignee()); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
