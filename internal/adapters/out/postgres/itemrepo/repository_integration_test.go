package itemrepo_test

import (
	"context"
	"testing"
	"time"

	"custody/internal/adapters/out/postgres/itemrepo"
	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"

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

// ItemRepositoryIntegrationTestSuite provides integration tests for the tracked
// item repository using PostgreSQL containers.
type ItemRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *itemrepo.GormItemRepository
	tracker    *MockAggregateTracker
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&itemrepo.ItemDTO{}))
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE tracked_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = itemrepo.NewGormItemRepository(suite.db, suite.tracker)
}

func (suite *ItemRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ItemRepositoryIntegrationTestSuite) createTestItem() *item.TrackedItem {
	id := kernel.NewUUID()
	ref, err := kernel.GenerateReferenceNumber(time.Now().UTC(), id)
	suite.Require().NoError(err)

	it, err := item.NewTrackedItem(
		id, ref, "Signed contract", "original copy", "contract", "proj-7",
		item.PriorityNormal, kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)
	return it
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAdd_ValidItem_Success() {
	ctx := context.Background()
	testItem := suite.createTestItem()

	suite.tracker.On("TrackAggregate", testItem.ID(), testItem).Once()

	err := suite.repository.Add(ctx, testItem)
	suite.Require().NoError(err)

	stored, err := suite.repository.Get(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.True(stored.ID().IsEqual(testItem.ID()))
	suite.Equal(testItem.ReferenceNumber().String(), stored.ReferenceNumber().String())
	suite.Equal(testItem.Subject(), stored.Subject())
	suite.True(stored.IsHeldBy(testItem.CreatedBy()))
	suite.Equal(1, stored.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAdd_DuplicateReference_Fails() {
	ctx := context.Background()
	testItem := suite.createTestItem()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, testItem))

	// same reference number on a different row violates the unique index
	clone, err := item.NewTrackedItem(
		kernel.NewUUID(), testItem.ReferenceNumber(), "Another subject", "", "", "",
		item.PriorityNormal, kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, clone)
	suite.Require().Error(err)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	testItem := suite.createTestItem()
	target := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", testItem.ID(), testItem)

	suite.Require().NoError(suite.repository.Add(ctx, testItem))
	suite.Require().NoError(testItem.TransferTo(target))
	suite.Require().NoError(suite.repository.Update(ctx, testItem))

	stored, err := suite.repository.Get(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsHeldBy(target))
	suite.Equal(2, stored.Version())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()
	testItem := suite.createTestItem()

	suite.tracker.On("TrackAggregate", testItem.ID(), testItem)

	suite.Require().NoError(suite.repository.Add(ctx, testItem))

	// commit one update
	suite.Require().NoError(testItem.TransferTo(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, testItem))

	// replay the same version; the stored row is already past it
	err := suite.repository.Update(ctx, testItem)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_PersistsArchiveFields() {
	ctx := context.Background()
	testItem := suite.createTestItem()
	locationID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", testItem.ID(), testItem)

	suite.Require().NoError(suite.repository.Add(ctx, testItem))
	suite.Require().NoError(testItem.Archive(locationID, "shelf B3", "scan-0042.pdf"))
	suite.Require().NoError(suite.repository.Update(ctx, testItem))

	stored, err := suite.repository.Get(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsArchived())
	suite.Require().NotNil(stored.ArchiveLocation())
	suite.True(stored.ArchiveLocation().IsEqual(locationID))
	suite.Equal("shelf B3", stored.PhysicalLocationNote())
	suite.Equal("scan-0042.pdf", stored.AttachmentRef())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGetForUpdate_ReturnsItem() {
	ctx := context.Background()
	testItem := suite.createTestItem()

	suite.tracker.On("TrackAggregate", testItem.ID(), testItem)

	suite.Require().NoError(suite.repository.Add(ctx, testItem))

	stored, err := suite.repository.GetForUpdate(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.True(stored.ID().IsEqual(testItem.ID()))
}

func (suite *ItemRepositoryIntegrationTestSuite) TestExistsByReference() {
	ctx := context.Background()
	testItem := suite.createTestItem()

	suite.tracker.On("TrackAggregate", testItem.ID(), testItem)

	exists, err := suite.repository.ExistsByReference(ctx, testItem.ReferenceNumber())
	suite.Require().NoError(err)
	suite.False(exists)

	suite.Require().NoError(suite.repository.Add(ctx, testItem))

	exists, err = suite.repository.ExistsByReference(ctx, testItem.ReferenceNumber())
	suite.Require().NoError(err)
	suite.True(exists)
}

func TestItemRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepositoryIntegrationTestSuite))
}
