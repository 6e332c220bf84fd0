// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern for the custody engine. Every transfer operation pairs an append to
// the movement ledger with an update of the item's current holder; the unit of
// work wraps both in one database transaction so they commit or roll back
// together.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	it, err := uow.ItemRepository().GetForUpdate(ctx, itemID)
//	if err != nil {
//	    return err
//	}
//	// mutate the aggregate, append the matching movement
//	if err := uow.MovementLedger().Append(ctx, entry); err != nil {
//	    return err
//	}
//	if err := uow.ItemRepository().Update(ctx, it); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency: each UnitOfWork instance is single-use and confined to one
// operation. GetForUpdate takes a row lock on the item, so two units of work
// mutating the same item serialize at the database.
package postgres

import (
	"context"

	"custody/internal/adapters/out/postgres/itemrepo"
	"custody/internal/adapters/out/postgres/movementrepo"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using a shared GORM
// connection. Each business operation gets a fresh unit of work with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for one custody operation.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the item
// repository and the movement ledger, and tracks the aggregates modified
// within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Repeated calls on the same instance are safe and do not nest transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction and
// releases any row locks taken by GetForUpdate.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists; handlers run it deferred,
// where it is a no-op after a successful commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// ItemRepository provides access to tracked item persistence within the unit
// of work. Operations execute inside the current transaction if one is active,
// otherwise against the main connection.
func (uow *GormUnitOfWork) ItemRepository() ports.TrackedItemRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return itemrepo.NewGormItemRepository(db, uow)
}

// MovementLedger provides access to the custody ledger within the unit of work.
func (uow *GormUnitOfWork) MovementLedger() ports.MovementLedger {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return movementrepo.NewGormMovementLedger(db)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Called by repository implementations on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
