package commands_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/sequence"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/task"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockSequenceRepository struct{ mock.Mock }

func (m *MockSequenceRepository) GetForUpdate(ctx context.Context, tenantID kernel.UUID, sequenceType sequence.SequenceType) (*sequence.Counter, error) {
	args := m.Called(ctx, tenantID, sequenceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sequence.Counter), args.Error(1)
}

func (m *MockSequenceRepository) Add(ctx context.Context, counter *sequence.Counter) error {
	args := m.Called(ctx, counter)
	return args.Error(0)
}

func (m *MockSequenceRepository) Update(ctx context.Context, counter *sequence.Counter) error {
	args := m.Called(ctx, counter)
	return args.Error(0)
}

type MockStageRepository struct{ mock.Mock }

func (m *MockStageRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*stage.Stage, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stage.Stage), args.Error(1)
}

func (m *MockStageRepository) GetAllOrdered(ctx context.Context, tenantID kernel.UUID) ([]*stage.Stage, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stage.Stage), args.Error(1)
}

func (m *MockStageRepository) GetActiveOrdered(ctx context.Context, tenantID kernel.UUID) ([]*stage.Stage, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stage.Stage), args.Error(1)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, aggregate *task.Task) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTaskRepository) AddBatch(ctx context.Context, aggregates []*task.Task) error {
	args := m.Called(ctx, aggregates)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, aggregate *task.Task) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTaskRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*task.Task, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) GetForOrder(ctx context.Context, tenantID kernel.UUID, orderID kernel.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) GetForItem(ctx context.Context, tenantID kernel.UUID, orderItemID kernel.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, tenantID, orderItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) PendingCount(ctx context.Context, tenantID kernel.UUID, orderID kernel.UUID) (int, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Int(0), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AddItem(ctx context.Context, item *order.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateItem(ctx context.Context, item *order.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) GetItem(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*order.Item, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Item), args.Error(1)
}

func (m *MockOrderRepository) GetItems(ctx context.Context, tenantID kernel.UUID, orderID kernel.UUID) ([]*order.Item, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Item), args.Error(1)
}

// MockUoW satisfies every unit of work flavour the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) SequenceRepository() ports.SequenceRepository {
	args := m.Called()
	return args.Get(0).(ports.SequenceRepository)
}

func (m *MockUoW) StageRepository() ports.StageRepository {
	args := m.Called()
	return args.Get(0).(ports.StageRepository)
}

func (m *MockUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockSequenceUoWFactory struct{ mock.Mock }

func (m *MockSequenceUoWFactory) Create() commands.SequenceUoW {
	args := m.Called()
	return args.Get(0).(commands.SequenceUoW)
}

type MockTaskUoWFactory struct{ mock.Mock }

func (m *MockTaskUoWFactory) Create() commands.TaskUoW {
	args := m.Called()
	return args.Get(0).(commands.TaskUoW)
}

type MockIntakeUoWFactory struct{ mock.Mock }

func (m *MockIntakeUoWFactory) Create() commands.IntakeUoW {
	args := m.Called()
	return args.Get(0).(commands.IntakeUoW)
}

type MockWorkflowUoWFactory struct{ mock.Mock }

func (m *MockWorkflowUoWFactory) Create() commands.WorkflowUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkflowUoW)
}
