package pricingrepo_test

import (
	"context"
	"testing"
	"time"

	"pricing/internal/adapters/out/postgres/pricingrepo"
	"pricing/internal/core/domain/model/pricing"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(key string, aggregate any) {
	m.Called(key, aggregate)
}

// PricingRepositoryIntegrationTestSuite verifies pricing persistence against PostgreSQL.
type PricingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *pricingrepo.GormPricingRepository
	tracker    *MockAggregateTracker
}

func (suite *PricingRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&pricingrepo.PricingDTO{}))
}

func (suite *PricingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE pricing").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = pricingrepo.NewGormPricingRepository(suite.db, suite.tracker)
}

func (suite *PricingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PricingRepositoryIntegrationTestSuite) TestAddAndGet_KeepsDecimals() {
	ctx := context.Background()
	record, err := pricing.NewRecord("sku-1", decimal.NewFromInt(100), decimal.RequireFromString("1.5"), 25)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, record))
	retrieved, err := suite.repository.Get(ctx, "sku-1")

	suite.Require().NoError(err)
	suite.Equal("137.5", retrieved.CurrentPrice().String())
	suite.Equal("100", retrieved.BasePrice().String())
	suite.Equal("1.5", retrieved.PriceFactor().String())
}

func (suite *PricingRepositoryIntegrationTestSuite) TestUpdate_WritesCurrentPriceOnly() {
	ctx := context.Background()
	record, _ := pricing.NewRecord("sku-1", decimal.NewFromInt(100), decimal.RequireFromString("1.5"), 20)
	suite.Require().NoError(suite.repository.Add(ctx, record))

	tampered, err := pricing.RestoreRecord("sku-1", decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(1))
	suite.Require().NoError(err)
	_, err = tampered.Reprice(21)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, tampered))

	retrieved, err := suite.repository.Get(ctx, "sku-1")
	suite.Require().NoError(err)
	suite.Equal("22", retrieved.CurrentPrice().String())
	suite.Equal("100", retrieved.BasePrice().String(), "base price is set once")
	suite.Equal("1.5", retrieved.PriceFactor().String(), "price factor is set once")
}

func (suite *PricingRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), "sku-unknown")

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PricingRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsError() {
	record, _ := pricing.NewRecord("sku-1", decimal.NewFromInt(100), decimal.RequireFromString("1.5"), 20)

	err := suite.repository.Update(context.Background(), record)

	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestPricingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PricingRepositoryIntegrationTestSuite))
}
