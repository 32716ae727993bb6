package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite provides integration tests for DeliveryRepository
// using PostgreSQL containers to verify database persistence behavior.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container          *postgres.PostgresContainer
	db                 *gorm.DB
	deliveryRepository *deliveryrepo.GormDeliveryRepository
	tracker            *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&deliveryrepo.DeliveryDTO{}))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.deliveryRepository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrips() {
	ctx := context.Background()

	original := suite.createOfferedDelivery(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.deliveryRepository.Add(ctx, original))

	retrieved, err := suite.deliveryRepository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.OrderID(), retrieved.OrderID())
	suite.Equal(original.CourierID(), retrieved.CourierID())
	suite.Equal(delivery.Offered, retrieved.Status())
	suite.InDelta(original.DistanceKm(), retrieved.DistanceKm(), 1e-9)
	suite.True(original.Payout().IsEqual(retrieved.Payout()))
	suite.Equal(original.Version(), retrieved.Version())
	suite.InDelta(original.Pickup().Latitude(), retrieved.Pickup().Latitude(), 1e-9)
	suite.InDelta(original.Dropoff().Longitude(), retrieved.Dropoff().Longitude(), 1e-9)
	suite.WithinDuration(original.OfferedAt(), retrieved.OfferedAt(), time.Millisecond)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NonExistentDelivery_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.deliveryRepository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndBumpsVersion() {
	ctx := context.Background()

	d := suite.createOfferedDelivery(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.deliveryRepository.Add(ctx, d))

	suite.Require().NoError(d.Accept(d.CourierID()))
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.deliveryRepository.Update(ctx, d))

	retrieved, err := suite.deliveryRepository.Get(ctx, d.ID())
	suite.Require().NoError(err)

	suite.Equal(delivery.Accepted, retrieved.Status())
	suite.Equal(int64(2), retrieved.Version())
	suite.NotNil(retrieved.AcceptedAt())
	suite.tracker.AssertExpectations(suite.T())
}

// TestUpdate_StaleVersion_ReturnsConflictingUpdate simulates the courier app
// and the cancellation path writing the same delivery concurrently.
func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflictingUpdate() {
	ctx := context.Background()

	d := suite.createOfferedDelivery(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.deliveryRepository.Add(ctx, d))

	first, err := suite.deliveryRepository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	second, err := suite.deliveryRepository.Get(ctx, d.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Accept(first.CourierID()))
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.deliveryRepository.Update(ctx, first))

	suite.Require().NoError(second.Cancel())
	err = suite.deliveryRepository.Update(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflictingUpdate)

	// The acceptance won; the cancellation was never persisted
	retrieved, err := suite.deliveryRepository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Accepted, retrieved.Status())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetActiveByOrderID_ReturnsNonTerminalDelivery() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	active := suite.createOfferedDelivery(orderID)
	suite.tracker.On("TrackAggregate", active.ID(), active).Once()
	suite.Require().NoError(suite.deliveryRepository.Add(ctx, active))

	retrieved, err := suite.deliveryRepository.GetActiveByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(active.ID(), retrieved.ID())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetActiveByOrderID_IgnoresTerminalDeliveries() {
	ctx := context.Background()

	orderID := kernel.NewUUID()

	cancelled := suite.createOfferedDelivery(orderID)
	suite.Require().NoError(cancelled.Cancel())
	suite.tracker.On("TrackAggregate", cancelled.ID(), cancelled).Once()
	suite.Require().NoError(suite.deliveryRepository.Add(ctx, cancelled))

	retrieved, err := suite.deliveryRepository.GetActiveByOrderID(ctx, orderID)
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetActiveByCourierID_ReturnsNonTerminalDelivery() {
	ctx := context.Background()

	active := suite.createOfferedDelivery(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", active.ID(), active).Once()
	suite.Require().NoError(suite.deliveryRepository.Add(ctx, active))

	retrieved, err := suite.deliveryRepository.GetActiveByCourierID(ctx, active.CourierID())
	suite.Require().NoError(err)
	suite.Equal(active.ID(), retrieved.ID())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetActiveByCourierID_IgnoresTerminalDeliveries() {
	ctx := context.Background()

	cancelled := suite.createOfferedDelivery(kernel.NewUUID())
	suite.Require().NoError(cancelled.Cancel())
	suite.tracker.On("TrackAggregate", cancelled.ID(), cancelled).Once()
	suite.Require().NoError(suite.deliveryRepository.Add(ctx, cancelled))

	retrieved, err := suite.deliveryRepository.GetActiveByCourierID(ctx, cancelled.CourierID())
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetAllStaleOffered_AppliesCutoffAndStatus() {
	ctx := context.Background()

	stale := suite.createOfferedDelivery(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", stale.ID(), stale).Once()
	suite.Require().NoError(suite.deliveryRepository.Add(ctx, stale))

	accepted := suite.createOfferedDelivery(kernel.NewUUID())
	suite.Require().NoError(accepted.Accept(accepted.CourierID()))
	suite.tracker.On("TrackAggregate", accepted.ID(), accepted).Once()
	suite.Require().NoError(suite.deliveryRepository.Add(ctx, accepted))

	// Cutoff in the future makes every offered delivery stale
	staleDeliveries, err := suite.deliveryRepository.GetAllStaleOffered(ctx, time.Now().UTC().Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(staleDeliveries, 1)
	suite.Equal(stale.ID(), staleDeliveries[0].ID())

	// Cutoff in the past matches nothing
	staleDeliveries, err = suite.deliveryRepository.GetAllStaleOffered(ctx, time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Empty(staleDeliveries)
	suite.tracker.AssertExpectations(suite.T())
}

// createOfferedDelivery builds a freshly offered delivery for the given order.
func (suite *DeliveryRepositoryIntegrationTestSuite) createOfferedDelivery(orderID kernel.UUID) *delivery.Delivery {
	pickup, err := kernel.NewGeoPoint(41.311081, 69.240562)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(41.326545, 69.228482)
	suite.Require().NoError(err)

	payout, err := kernel.NewMoneyFromString("4.12")
	suite.Require().NoError(err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		orderID,
		kernel.NewUUID(),
		pickup,
		dropoff,
		1.97,
		payout,
	)
	suite.Require().NoError(err)

	return d
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
