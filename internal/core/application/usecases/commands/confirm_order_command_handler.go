package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/task"
	"fulfillment/internal/core/domain/services"
)

// ConfirmOrderCommandHandler handles order confirmation. Confirming flips the
// order from Draft to Confirmed and runs the confirmation automation: pending
// tasks of the first active stage, typically an order-received checkpoint, are
// completed by the system and their items advance to the next stage.
//
// Tasks the gating rules would reject, for example a first stage that demands
// a photo, are left pending for a person to finish.
type ConfirmOrderCommandHandler struct {
	uowFactory WorkflowUoWFactory
	advancer   services.WorkflowAdvancer
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
// Requires a WorkflowUoWFactory for transactional persistence.
func NewConfirmOrderCommandHandler(uowFactory WorkflowUoWFactory) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		advancer:   services.NewWorkflowAdvancer(),
	}
}

// Handle processes the confirmation command.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Confirm(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	stages, err := uow.StageRepository().GetAllOrdered(ctx, cmd.TenantID())
	if err != nil {
		return err
	}

	settled, err := h.autoCompleteFirstStage(ctx, uow, stages, cmd)
	if err != nil {
		return err
	}

	for _, t := range settled {
		if err = advanceSettledItem(ctx, uow, h.advancer, stages, t); err != nil {
			return err
		}
	}

	if len(settled) > 0 {
		if err = propagateOrderCompletion(ctx, uow, cmd.TenantID(), cmd.OrderID()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// autoCompleteFirstStage completes each item's pending first-stage task as the
// system actor and returns the ones that settled. Completion goes straight
// from pending; a task the gating rules reject is left untouched.
func (h *ConfirmOrderCommandHandler) autoCompleteFirstStage(
	ctx context.Context,
	uow WorkflowUoW,
	stages []*stage.Stage,
	cmd ConfirmOrderCommand,
) ([]*task.Task, error) {
	first := firstActiveStage(stages)
	if first == nil {
		return nil, nil
	}

	items, err := uow.OrderRepository().GetItems(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return nil, err
	}

	taskRepo := uow.TaskRepository()
	system := task.SystemActor()
	now := time.Now()

	var settled []*task.Task
	for _, item := range items {
		tasks, err := taskRepo.GetForItem(ctx, cmd.TenantID(), item.ID())
		if err != nil {
			return nil, err
		}

		for _, t := range tasks {
			if !t.StageID().IsEqual(first.ID()) || t.Status() != task.Pending {
				continue
			}

			if err = t.Complete(system, first.Policy(), first.Name(), now); err != nil {
				continue
			}

			if err = taskRepo.Update(ctx, t); err != nil {
				return nil, err
			}
			settled = append(settled, t)
		}
	}

	return settled, nil
}

func firstActiveStage(stages []*stage.Stage) *stage.Stage {
	for _, s := range stages {
		if s.IsActive() {
			return s
		}
	}
	return nil
}
