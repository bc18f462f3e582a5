package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/task"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)

type transitionFixture struct {
	tenantID kernel.UUID
	orderID  kernel.UUID
	itemID   kernel.UUID
	actor    task.Actor

	orderRepo *MockOrderRepository
	stageRepo *MockStageRepository
	taskRepo  *MockTaskRepository
	uow       *MockUoW
	factory   *MockWorkflowUoWFactory
	handler   commands.TransitionTaskCommandHandler
}

func newTransitionFixture(t *testing.T) (*transitionFixture, func()) {
	t.Helper()

	f := &transitionFixture{
		tenantID:  kernel.NewUUID(),
		orderID:   kernel.NewUUID(),
		itemID:    kernel.NewUUID(),
		orderRepo: new(MockOrderRepository),
		stageRepo: new(MockStageRepository),
		taskRepo:  new(MockTaskRepository),
		uow:       new(MockUoW),
		factory:   new(MockWorkflowUoWFactory),
	}

	actor, err := task.NewActor(kernel.NewUUID(), task.RoleStaff)
	require.NoError(t, err)
	f.actor = actor

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("StageRepository").Return(f.stageRepo)
	f.uow.On("TaskRepository").Return(f.taskRepo)
	f.uow.On("OrderRepository").Return(f.orderRepo)
	f.factory.On("Create").Return(f.uow).Once()
	f.handler = commands.NewTransitionTaskCommandHandler(f.factory)

	return f, func() {
		f.orderRepo.AssertExpectations(t)
		f.stageRepo.AssertExpectations(t)
		f.taskRepo.AssertExpectations(t)
		f.uow.AssertExpectations(t)
		f.factory.AssertExpectations(t)
	}
}

func inProductionOrder(t *testing.T, tenantID, orderID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(orderID, tenantID, "ORD-2025-2600001", order.InProduction, decimal.NewFromInt(100))
	require.NoError(t, err)
	return o
}

func newPhotoStage(tenantID kernel.UUID) (*stage.Stage, error) {
	return stage.NewStage(kernel.NewUUID(), tenantID, "Quality Check", "QC", 10,
		stage.Policy{RequiresPhoto: true}, true)
}

func newMandatoryStage(tenantID kernel.UUID) (*stage.Stage, error) {
	return stage.NewStage(kernel.NewUUID(), tenantID, "Measurement", "MEASURE", 10,
		stage.Policy{IsMandatory: true}, true)
}

func stagesOf(stages ...*stage.Stage) []*stage.Stage {
	return stages
}

// settle closes a pending task for tests that need a terminal starting point.
func settle(t *testing.T, tk *task.Task) {
	t.Helper()
	require.NoError(t, tk.Start(testNow))
	require.NoError(t, tk.Complete(task.SystemActor(), stage.Policy{}, "stage", testNow))
}

func TestTransitionTaskCommandHandler_Handle_CompleteAdvancesItem(t *testing.T) {
	ctx := t.Context()
	f, verify := newTransitionFixture(t)
	defer verify()

	stages := testStages(t, f.tenantID)
	current, err := task.NewTask(kernel.NewUUID(), f.tenantID, f.orderID, &f.itemID, stages[0].ID(), false, nil)
	require.NoError(t, err)
	next, err := task.NewTask(kernel.NewUUID(), f.tenantID, f.orderID, &f.itemID, stages[1].ID(), true, nil)
	require.NoError(t, err)

	firstStageID := stages[0].ID()
	item, err := order.RestoreItem(f.itemID, f.tenantID, f.orderID, "lehenga", 1, &firstStageID)
	require.NoError(t, err)

	f.taskRepo.On("Get", ctx, f.tenantID, current.ID()).Return(current, nil).Once()
	f.stageRepo.On("GetAllOrdered", ctx, f.tenantID).Return(stages, nil).Once()
	f.taskRepo.On("Update", ctx, current).Return(nil).Once()
	f.taskRepo.On("GetForItem", ctx, f.tenantID, f.itemID).Return([]*task.Task{current, next}, nil).Once()
	f.orderRepo.On("GetItem", ctx, f.tenantID, f.itemID).Return(item, nil).Once()
	f.orderRepo.On("UpdateItem", ctx, item).Return(nil).Once()
	f.taskRepo.On("PendingCount", ctx, f.tenantID, f.orderID).Return(1, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewTransitionTaskCommand(f.tenantID, current.ID(), task.Completed, f.actor, "hem done")
	require.NoError(t, err)

	require.NoError(t, f.handler.Handle(ctx, cmd))

	assert.Equal(t, task.Completed, current.Status())
	assert.Equal(t, "hem done", current.Notes())
	require.NotNil(t, item.CurrentStageID())
	assert.True(t, item.CurrentStageID().IsEqual(stages[1].ID()))
}

func TestTransitionTaskCommandHandler_Handle_PhotoGate(t *testing.T) {
	ctx := t.Context()
	f, _ := newTransitionFixture(t)

	photoStage, err := newPhotoStage(f.tenantID)
	require.NoError(t, err)
	current, err := task.NewTask(kernel.NewUUID(), f.tenantID, f.orderID, &f.itemID, photoStage.ID(), false, nil)
	require.NoError(t, err)

	f.taskRepo.On("Get", ctx, f.tenantID, current.ID()).Return(current, nil).Once()
	f.stageRepo.On("GetAllOrdered", ctx, f.tenantID).Return(stagesOf(photoStage), nil).Once()

	cmd, err := commands.NewTransitionTaskCommand(f.tenantID, current.ID(), task.Completed, f.actor, "")
	require.NoError(t, err)

	err = f.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrPhotoRequired)
	var photoErr *task.PhotoRequiredError
	assert.ErrorAs(t, err, &photoErr)
	assert.Equal(t, task.Pending, current.Status())
	f.taskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionTaskCommandHandler_Handle_MandatorySkipNeedsElevation(t *testing.T) {
	ctx := t.Context()
	f, _ := newTransitionFixture(t)

	mandatoryStage, err := newMandatoryStage(f.tenantID)
	require.NoError(t, err)
	current, err := task.NewTask(kernel.NewUUID(), f.tenantID, f.orderID, &f.itemID, mandatoryStage.ID(), false, nil)
	require.NoError(t, err)

	f.taskRepo.On("Get", ctx, f.tenantID, current.ID()).Return(current, nil).Once()
	f.stageRepo.On("GetAllOrdered", ctx, f.tenantID).Return(stagesOf(mandatoryStage), nil).Once()

	cmd, err := commands.NewTransitionTaskCommand(f.tenantID, current.ID(), task.Skipped, f.actor, "")
	require.NoError(t, err)

	err = f.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrPermissionDenied)
	assert.Equal(t, task.Pending, current.Status())
}

func TestTransitionTaskCommandHandler_Handle_LastTaskMarksOrderReady(t *testing.T) {
	ctx := t.Context()
	f, verify := newTransitionFixture(t)
	defer verify()

	stages := testStages(t, f.tenantID)
	lastStageID := stages[2].ID()
	current, err := task.NewTask(kernel.NewUUID(), f.tenantID, f.orderID, &f.itemID, lastStageID, false, nil)
	require.NoError(t, err)
	item, err := order.RestoreItem(f.itemID, f.tenantID, f.orderID, "lehenga", 1, &lastStageID)
	require.NoError(t, err)
	o := inProductionOrder(t, f.tenantID, f.orderID)

	f.taskRepo.On("Get", ctx, f.tenantID, current.ID()).Return(current, nil).Once()
	f.stageRepo.On("GetAllOrdered", ctx, f.tenantID).Return(stages, nil).Once()
	f.taskRepo.On("Update", ctx, current).Return(nil).Once()
	f.taskRepo.On("GetForItem", ctx, f.tenantID, f.itemID).Return([]*task.Task{current}, nil).Once()
	f.taskRepo.On("PendingCount", ctx, f.tenantID, f.orderID).Return(0, nil).Once()
	f.orderRepo.On("Get", ctx, f.tenantID, f.orderID).Return(o, nil).Once()
	f.orderRepo.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewTransitionTaskCommand(f.tenantID, current.ID(), task.Completed, f.actor, "")
	require.NoError(t, err)

	require.NoError(t, f.handler.Handle(ctx, cmd))

	assert.Equal(t, order.Ready, o.Status())
	require.NotNil(t, item.CurrentStageID())
	assert.True(t, item.CurrentStageID().IsEqual(lastStageID))
	f.orderRepo.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
}

func TestTransitionTaskCommandHandler_Handle_CompleteCarriesAssigneeForward(t *testing.T) {
	ctx := t.Context()
	f, verify := newTransitionFixture(t)
	defer verify()

	stages := testStages(t, f.tenantID)
	current, err := task.NewTask(kernel.NewUUID(), f.tenantID, f.orderID, &f.itemID, stages[0].ID(), false, nil)
	require.NoError(t, err)
	assignee, err := task.AssignToWorker(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, current.Assign(assignee))
	next, err := task.NewTask(kernel.NewUUID(), f.tenantID, f.orderID, &f.itemID, stages[1].ID(), true, nil)
	require.NoError(t, err)

	firstStageID := stages[0].ID()
	item, err := order.RestoreItem(f.itemID, f.tenantID, f.orderID, "lehenga", 1, &firstStageID)
	require.NoError(t, err)

	f.taskRepo.On("Get", ctx, f.tenantID, current.ID()).Return(current, nil).Once()
	f.stageRepo.On("GetAllOrdered", ctx, f.tenantID).Return(stages, nil).Once()
	f.taskRepo.On("Update", ctx, current).Return(nil).Once()
	f.taskRepo.On("GetForItem", ctx, f.tenantID, f.itemID).Return([]*task.Task{current, next}, nil).Once()
	f.taskRepo.On("Update", ctx, next).Return(nil).Once()
	f.orderRepo.On("GetItem", ctx, f.tenantID, f.itemID).Return(item, nil).Once()
	f.orderRepo.On("UpdateItem", ctx, item).Return(nil).Once()
	f.taskRepo.On("PendingCount", ctx, f.tenantID, f.orderID).Return(1, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewTransitionTaskCommand(f.tenantID, current.ID(), task.Completed, f.actor, "")
	require.NoError(t, err)

	require.NoError(t, f.handler.Handle(ctx, cmd))

	assert.Equal(t, assignee, next.Assignee())
}

func TestTransitionTaskCommandHandler_Handle_StartMovesOrderIntoProduction(t *testing.T) {
	ctx := t.Context()
	f, verify := newTransitionFixture(t)
	defer verify()

	stages := testStages(t, f.tenantID)
	current, err := task.NewTask(kernel.NewUUID(), f.tenantID, f.orderID, &f.itemID, stages[0].ID(), false, nil)
	require.NoError(t, err)
	o, err := order.RestoreOrder(f.orderID, f.tenantID, "ORD-2025-2600001", order.Confirmed, decimal.NewFromInt(100))
	require.NoError(t, err)

	f.taskRepo.On("Get", ctx, f.tenantID, current.ID()).Return(current, nil).Once()
	f.stageRepo.On("GetAllOrdered", ctx, f.tenantID).Return(stages, nil).Once()
	f.taskRepo.On("Update", ctx, current).Return(nil).Once()
	f.orderRepo.On("Get", ctx, f.tenantID, f.orderID).Return(o, nil).Once()
	f.orderRepo.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewTransitionTaskCommand(f.tenantID, current.ID(), task.InProgress, f.actor, "")
	require.NoError(t, err)

	require.NoError(t, f.handler.Handle(ctx, cmd))

	assert.Equal(t, task.InProgress, current.Status())
	assert.Equal(t, order.InProduction, o.Status())
}

func TestTransitionTaskCommandHandler_Handle_TerminalTaskRejectsTransition(t *testing.T) {
	ctx := t.Context()
	f, _ := newTransitionFixture(t)

	stages := testStages(t, f.tenantID)
	current, err := task.NewTask(kernel.NewUUID(), f.tenantID, f.orderID, &f.itemID, stages[0].ID(), false, nil)
	require.NoError(t, err)
	settle(t, current)

	f.taskRepo.On("Get", ctx, f.tenantID, current.ID()).Return(current, nil).Once()
	f.stageRepo.On("GetAllOrdered", ctx, f.tenantID).Return(stages, nil).Once()

	cmd, err := commands.NewTransitionTaskCommand(f.tenantID, current.ID(), task.InProgress, f.actor, "")
	require.NoError(t, err)

	err = f.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrInvalidTransition)
	var invalidErr *task.InvalidTransitionError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestNewTransitionTaskCommand_Validation(t *testing.T) {
	tenantID := kernel.NewUUID()
	taskID := kernel.NewUUID()
	actor, err := task.NewActor(kernel.NewUUID(), task.RoleManager)
	require.NoError(t, err)

	t.Run("should reject pending as a target", func(t *testing.T) {
		_, err := commands.NewTransitionTaskCommand(tenantID, taskID, task.Pending, actor, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrTargetStatusIsInvalid)
	})

	t.Run("should reject invalid actor", func(t *testing.T) {
		var badActor task.Actor

		_, err := commands.NewTransitionTaskCommand(tenantID, taskID, task.Completed, badActor, "")

		require.Error(t, err)
	})

	t.Run("should fail validation for zero value command", func(t *testing.T) {
		var cmd commands.TransitionTaskCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrTransitionTaskCommandIsNotConstructed)
	})
}
