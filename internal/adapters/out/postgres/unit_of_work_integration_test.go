package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "custody/internal/adapters/out/postgres"
	"custody/internal/adapters/out/postgres/itemrepo"
	"custody/internal/adapters/out/postgres/movementrepo"
	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based Unit of Work against
// a real PostgreSQL database, including the atomicity of the ledger-append plus
// holder-update pairing.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and runs migrations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&itemrepo.ItemDTO{}, &movementrepo.MovementDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE tracked_items, movements").Error
	suite.Require().NoError(err)
}

// TearDownSuite terminates the PostgreSQL container.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func createTestItem(suite *UnitOfWorkIntegrationTestSuite, creator kernel.UUID) *item.TrackedItem {
	id := kernel.NewUUID()
	ref, err := kernel.GenerateReferenceNumber(time.Now().UTC(), id)
	suite.Require().NoError(err)

	it, err := item.NewTrackedItem(
		id, ref, "Signed contract", "original copy", "contract", "proj-7",
		item.PriorityNormal, creator, time.Now().UTC())
	suite.Require().NoError(err)
	return it
}

func createTestMovement(
	suite *UnitOfWorkIntegrationTestSuite,
	itemID kernel.UUID,
	from kernel.UUID,
	to kernel.UUID,
	action movement.Action,
) *movement.Movement {
	m, err := movement.NewMovement(
		kernel.NewUUID(), itemID, from, to, action, "", time.Now().UTC())
	suite.Require().NoError(err)
	return m
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.ItemRepository())
	suite.NotNil(uow1.MovementLedger())
	suite.NotNil(uow2.ItemRepository())
	suite.NotNil(uow2.MovementLedger())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// Verifies the ledger append and the holder update persist together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AppendAndUpdateCommitTogether() {
	ctx := context.Background()
	creator := kernel.NewUUID()
	target := kernel.NewUUID()

	testItem := createTestItem(suite, creator)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ItemRepository().Add(ctx, testItem))
	suite.Require().NoError(uow.MovementLedger().Append(ctx,
		createTestMovement(suite, testItem.ID(), creator, creator, movement.ActionCreated)))
	suite.Require().NoError(uow.Commit(ctx))

	// forward inside one transaction
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.ItemRepository().GetForUpdate(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.TransferTo(target))
	suite.Require().NoError(uow.MovementLedger().Append(ctx,
		createTestMovement(suite, locked.ID(), creator, target, movement.ActionForwarded)))
	suite.Require().NoError(uow.ItemRepository().Update(ctx, locked))
	suite.Require().NoError(uow.Commit(ctx))

	// both writes are visible from a fresh unit of work
	verify := suite.factory.Create()
	stored, err := verify.ItemRepository().Get(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsHeldBy(target))
	suite.Equal(2, stored.Version())

	history, err := verify.MovementLedger().ListForItem(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.Len(history, 2)
	suite.Equal(movement.ActionCreated, history[0].Action())
	suite.Equal(movement.ActionForwarded, history[1].Action())
}

// Verifies rollback discards both the ledger entry and the holder update.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	creator := kernel.NewUUID()
	target := kernel.NewUUID()

	testItem := createTestItem(suite, creator)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ItemRepository().Add(ctx, testItem))
	suite.Require().NoError(uow.MovementLedger().Append(ctx,
		createTestMovement(suite, testItem.ID(), creator, creator, movement.ActionCreated)))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.ItemRepository().GetForUpdate(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.TransferTo(target))
	suite.Require().NoError(uow.MovementLedger().Append(ctx,
		createTestMovement(suite, locked.ID(), creator, target, movement.ActionForwarded)))
	suite.Require().NoError(uow.ItemRepository().Update(ctx, locked))
	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	stored, err := verify.ItemRepository().Get(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsHeldBy(creator), "holder update should be discarded")
	suite.Equal(1, stored.Version())

	history, err := verify.MovementLedger().ListForItem(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.Len(history, 1, "ledger append should be discarded")
}

// Two transactions racing on the same item serialize at the row lock; the
// loser of the race observes the winner's version and fails its stale update.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentForwardsSerialize() {
	ctx := context.Background()
	creator := kernel.NewUUID()

	testItem := createTestItem(suite, creator)

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.ItemRepository().Add(ctx, testItem))
	suite.Require().NoError(setup.Commit(ctx))

	// first transaction wins the row lock and commits
	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	winner, err := first.ItemRepository().GetForUpdate(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(winner.TransferTo(kernel.NewUUID()))
	suite.Require().NoError(first.ItemRepository().Update(ctx, winner))
	suite.Require().NoError(first.Commit(ctx))

	// a stale aggregate read before the first transaction cannot overwrite it
	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	suite.Require().NoError(testItem.TransferTo(kernel.NewUUID()))
	err = second.ItemRepository().Update(ctx, testItem)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Require().NoError(second.Rollback(ctx))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
