package routerepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/routerepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker
// interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// RouteRepositoryIntegrationTestSuite verifies route persistence, including
// the partial unique index backing the one-active-route-per-city rule.
type RouteRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *routerepo.GormRouteRepository
	tracker    *MockAggregateTracker
}

const activeRouteIndexSQL = `
	CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_route_per_city
	ON delivery_routes (lower(trim(city)))
	WHERE status IN ('pending', 'processing')
`

func (suite *RouteRepositoryIntegrationTestSuite) SetupSuite() {
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

	// TranslateError turns the unique violation into gorm.ErrDuplicatedKey,
	// which Add maps to errs.ErrObjectAlreadyExists
	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&routerepo.RouteDTO{}))
	suite.Require().NoError(db.Exec(activeRouteIndexSQL).Error)
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_routes").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = routerepo.NewGormRouteRepository(suite.db, suite.tracker)
}

func (suite *RouteRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	testRoute := suite.newRoute("Leeds")
	suite.tracker.On("TrackAggregate", testRoute.ID(), testRoute).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	loaded, err := suite.repository.Get(ctx, testRoute.ID())
	suite.Require().NoError(err)
	suite.True(testRoute.ID().IsEqual(loaded.ID()))
	suite.Equal("Leeds", loaded.City())
	suite.Equal(kernel.Pending, loaded.Status())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAdd_SecondActiveRouteForCity_Conflicts() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, suite.newRoute("Leeds")))

	// same city, different spelling, still one active route allowed
	err := suite.repository.Add(ctx, suite.newRoute("  LEEDS "))
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)

	// other cities are unaffected
	suite.Require().NoError(suite.repository.Add(ctx, suite.newRoute("York")))
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAdd_InactiveRouteDoesNotBlockNewActiveOne() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	finished := suite.newRoute("Leeds")
	suite.Require().NoError(suite.repository.Add(ctx, finished))
	suite.Require().NoError(finished.ChangeStatus(kernel.Delivered))
	suite.Require().NoError(suite.repository.Update(ctx, finished))

	// the delivered route has left the partial index
	suite.Require().NoError(suite.repository.Add(ctx, suite.newRoute("Leeds")))
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGetActiveByCity_MatchesCaseInsensitively() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testRoute := suite.newRoute("Leeds")
	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	found, err := suite.repository.GetActiveByCity(ctx, " LEEDS ")
	suite.Require().NoError(err)
	suite.True(testRoute.ID().IsEqual(found.ID()))

	_, err = suite.repository.GetActiveByCity(ctx, "York")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGetActiveByCity_IgnoresFinishedRoutes() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	finished := suite.newRoute("Leeds")
	suite.Require().NoError(suite.repository.Add(ctx, finished))
	suite.Require().NoError(finished.ChangeStatus(kernel.Delivered))
	suite.Require().NoError(suite.repository.Update(ctx, finished))

	_, err := suite.repository.GetActiveByCity(ctx, "Leeds")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestDelete_RemovesRoute() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testRoute := suite.newRoute("Leeds")
	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	suite.Require().NoError(suite.repository.Delete(ctx, testRoute.ID()))

	_, err := suite.repository.Get(ctx, testRoute.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	// deleting again reports not found
	err = suite.repository.Delete(ctx, testRoute.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) newRoute(city string) *route.DeliveryRoute {
	aggregate, err := route.NewRoute(kernel.NewUUID(), city, time.Now().UTC().AddDate(0, 0, 2))
	suite.Require().NoError(err)
	return aggregate
}

func TestRouteRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(RouteRepositoryIntegrationTestSuite))
}
