package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/task"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// TransitionTaskCommandHandler handles the task transition workflow. It applies
// the requested status change with the owning stage's gating rules, then runs
// the knock-on effects inside the same transaction:
//
//   - a first started task moves a confirmed order into production
//   - a settled item task moves the item to its next active stage and carries
//     the assignee forward
//   - the last settled task of an order marks the whole order ready
type TransitionTaskCommandHandler struct {
	uowFactory WorkflowUoWFactory
	advancer   services.WorkflowAdvancer
}

// NewTransitionTaskCommandHandler creates a handler for task transitions.
// Requires a WorkflowUoWFactory for transactional persistence.
func NewTransitionTaskCommandHandler(uowFactory WorkflowUoWFactory) TransitionTaskCommandHandler {
	return TransitionTaskCommandHandler{
		uowFactory: uowFactory,
		advancer:   services.NewWorkflowAdvancer(),
	}
}

// Handle processes the transition command. Gating failures surface as the typed
// errors of the task package (*task.PhotoRequiredError and friends) so callers
// can map them to precise responses.
func (h *TransitionTaskCommandHandler) Handle(ctx context.Context, cmd TransitionTaskCommand) error {
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

	stages, err := uow.StageRepository().GetAllOrdered(ctx, cmd.TenantID())
	if err != nil {
		return err
	}

	owningStage := findStage(stages, t.StageID())
	if owningStage == nil {
		return errs.NewObjectNotFoundError("stage", t.StageID())
	}

	now := time.Now()
	switch cmd.TargetStatus() {
	case task.InProgress:
		err = t.Start(now)
	case task.Completed:
		err = t.Complete(cmd.Actor(), owningStage.Policy(), owningStage.Name(), now)
	case task.Skipped:
		err = t.Skip(cmd.Actor(), owningStage.Policy(), owningStage.Name(), now)
	case task.Blocked:
		err = t.Block()
	default:
		err = ErrTargetStatusIsInvalid
	}
	if err != nil {
		return err
	}

	if cmd.Notes() != "" {
		t.AppendNotes(cmd.Notes())
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return err
	}

	if cmd.TargetStatus() == task.InProgress {
		if err = h.startProduction(ctx, uow, t); err != nil {
			return err
		}
	}

	if t.IsTerminal() {
		if err = advanceSettledItem(ctx, uow, h.advancer, stages, t); err != nil {
			return err
		}
		if err = propagateOrderCompletion(ctx, uow, t.TenantID(), t.OrderID()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// startProduction moves a confirmed order into production the first time one
// of its tasks is started. Orders already in production are left alone.
func (h *TransitionTaskCommandHandler) startProduction(ctx context.Context, uow WorkflowUoW, t *task.Task) error {
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, t.TenantID(), t.OrderID())
	if err != nil {
		return err
	}

	if o.Status() != order.Confirmed {
		return nil
	}

	if err = o.StartProduction(); err != nil {
		return err
	}

	return orderRepo.Update(ctx, o)
}

// advanceSettledItem moves the settled task's item to its next active stage.
// Order scoped tasks have no item and nothing to advance.
func advanceSettledItem(ctx context.Context, uow WorkflowUoW, advancer services.WorkflowAdvancer, stages []*stage.Stage, settled *task.Task) error {
	itemID := settled.OrderItemID()
	if itemID == nil {
		return nil
	}

	taskRepo := uow.TaskRepository()
	itemTasks, err := taskRepo.GetForItem(ctx, settled.TenantID(), *itemID)
	if err != nil {
		return err
	}

	adv, err := advancer.Advance(settled, stages, itemTasks)
	if err != nil {
		return err
	}

	// The last active stage leaves the item pointed at that final stage.
	if adv.NextStage == nil {
		return nil
	}

	if adv.CarriedAssignment {
		if err = taskRepo.Update(ctx, adv.NextTask); err != nil {
			return err
		}
	}

	orderRepo := uow.OrderRepository()
	item, err := orderRepo.GetItem(ctx, settled.TenantID(), *itemID)
	if err != nil {
		return err
	}

	nextStageID := adv.NextStage.ID()
	if err = item.AdvanceToStage(&nextStageID); err != nil {
		return err
	}

	return orderRepo.UpdateItem(ctx, item)
}

func findStage(stages []*stage.Stage, stageID kernel.UUID) *stage.Stage {
	for _, s := range stages {
		if s.ID().IsEqual(stageID) {
			return s
		}
	}
	return nil
}

// propagateOrderCompletion marks an order ready once its last open task
// settles. Orders that are not yet confirmed, or already past ready, are left
// untouched even when their pending count reaches zero.
func propagateOrderCompletion(ctx context.Context, uow WorkflowUoW, tenantID kernel.UUID, orderID kernel.UUID) error {
	pending, err := uow.TaskRepository().PendingCount(ctx, tenantID, orderID)
	if err != nil {
		return err
	}
	if pending > 0 {
		return nil
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, tenantID, orderID)
	if err != nil {
		return err
	}

	if o.Status() != order.Confirmed && o.Status() != order.InProduction {
		return nil
	}

	if err = o.MarkReady(); err != nil {
		return err
	}

	return orderRepo.Update(ctx, o)
}
