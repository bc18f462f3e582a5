package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	tenantID   kernel.UUID
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))

	suite.tenantID = kernel.NewUUID()
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(number string) *order.Order {
	testOrder, err := order.NewOrder(kernel.NewUUID(), suite.tenantID, number, decimal.NewFromInt(8500))
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestItem(orderID kernel.UUID) *order.Item {
	item, err := order.NewItem(kernel.NewUUID(), suite.tenantID, orderID, "Kurta, cream silk", 2)
	suite.Require().NoError(err)
	return item
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-2025-2600001")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-2025-2600002")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, suite.tenantID, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(testOrder.ID().IsEqual(retrieved.ID()))
	suite.Equal("ORD-2025-2600002", retrieved.Number())
	suite.Equal(order.Draft, retrieved.Status())
	suite.True(decimal.NewFromInt(8500).Equal(retrieved.TotalAmount()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_WrongTenant_ReturnsNotFoundError() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-2025-2600003")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	_, err = suite.repository.Get(ctx, kernel.NewUUID(), testOrder.ID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, suite.tenantID, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusTransition() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-2025-2600004")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = testOrder.Confirm()
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, suite.tenantID, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, retrieved.Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	nonExistent := suite.createTestOrder("ORD-2025-2600005")

	err := suite.repository.Update(ctx, nonExistent)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestItems_AddUpdateRetrieve() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-2025-2600006")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	first := suite.createTestItem(testOrder.ID())
	second := suite.createTestItem(testOrder.ID())

	suite.Require().NoError(suite.repository.AddItem(ctx, first))
	suite.Require().NoError(suite.repository.AddItem(ctx, second))

	items, err := suite.repository.GetItems(ctx, suite.tenantID, testOrder.ID())
	suite.Require().NoError(err)
	suite.Len(items, 2)

	// Move the first item to a stage, then verify the pointer roundtrips.
	stageID := kernel.NewUUID()
	suite.Require().NoError(first.AdvanceToStage(&stageID))
	suite.Require().NoError(suite.repository.UpdateItem(ctx, first))

	retrieved, err := suite.repository.GetItem(ctx, suite.tenantID, first.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.CurrentStageID())
	suite.True(stageID.IsEqual(*retrieved.CurrentStageID()))

	// And back out of the pipeline, pointer becomes NULL.
	suite.Require().NoError(first.AdvanceToStage(nil))
	suite.Require().NoError(suite.repository.UpdateItem(ctx, first))

	retrieved, err = suite.repository.GetItem(ctx, suite.tenantID, first.ID())
	suite.Require().NoError(err)
	suite.Nil(retrieved.CurrentStageID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetItem_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.GetItem(ctx, suite.tenantID, kernel.NewUUID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

// TestOrderRepositoryIntegration runs the integration test suite.
// Requires Docker for PostgreSQL container.
func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
