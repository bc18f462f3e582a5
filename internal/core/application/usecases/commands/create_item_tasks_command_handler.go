package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/task"
)

// CreateItemTasksCommandHandler handles workflow task generation for an order
// item. One task per active stage, existing tasks are kept untouched, and the
// item's pipeline pointer is set to the first active stage when the item has
// not entered the pipeline yet.
type CreateItemTasksCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewCreateItemTasksCommandHandler creates a handler for task generation.
// Requires a TaskUoWFactory for transactional persistence.
func NewCreateItemTasksCommandHandler(uowFactory TaskUoWFactory) CreateItemTasksCommandHandler {
	return CreateItemTasksCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the task generation command and returns how many tasks were
// created. Zero with a nil error means the item's task set was already complete.
func (h *CreateItemTasksCommandHandler) Handle(ctx context.Context, cmd CreateItemTasksCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := uow.OrderRepository().GetItem(ctx, cmd.TenantID(), cmd.OrderItemID())
	if err != nil {
		return 0, err
	}

	created, err := generateTasksForItem(ctx, uow, item, cmd.DueDate())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return created, nil
}

// generateTasksForItem creates the missing tasks of an item's task set, one per
// active stage, and enters the item into the pipeline when it has no current
// stage yet. Shared by explicit generation, order intake and the backfill job.
func generateTasksForItem(ctx context.Context, uow TaskUoW, item *order.Item, dueDate *time.Time) (int, error) {
	stages, err := uow.StageRepository().GetActiveOrdered(ctx, item.TenantID())
	if err != nil {
		return 0, err
	}

	taskRepo := uow.TaskRepository()
	existing, err := taskRepo.GetForItem(ctx, item.TenantID(), item.ID())
	if err != nil {
		return 0, err
	}

	covered := make(map[kernel.UUID]bool, len(existing))
	for _, t := range existing {
		covered[t.StageID()] = true
	}

	itemID := item.ID()
	generated := make([]*task.Task, 0, len(stages))
	for _, s := range stages {
		if covered[s.ID()] {
			continue
		}

		t, err := task.NewTask(
			kernel.NewUUID(),
			item.TenantID(),
			item.OrderID(),
			&itemID,
			s.ID(),
			s.Policy().RequiresApproval,
			dueDate,
		)
		if err != nil {
			return 0, err
		}
		generated = append(generated, t)
	}

	if len(generated) > 0 {
		if err = taskRepo.AddBatch(ctx, generated); err != nil {
			return 0, err
		}
	}

	if item.CurrentStageID() == nil && len(stages) > 0 {
		firstStageID := stages[0].ID()
		if err = item.AdvanceToStage(&firstStageID); err != nil {
			return 0, err
		}
		if err = uow.OrderRepository().UpdateItem(ctx, item); err != nil {
			return 0, err
		}
	}

	return len(generated), nil
}
