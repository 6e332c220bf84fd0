// Package commands contains the transfer operations that modify custody state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// atomic ledger-append + holder-update, and persistence.
package commands

import (
	"context"

	"custody/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Every transfer operation pairs a ledger append with an item update, so one
// unit of work spans both repositories.
type (
	// TxManager handles transaction lifecycle.
	// Ensures the ledger append and the holder update commit or roll back together.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ItemRepoFactory provides access to the item repository within a transaction.
	ItemRepoFactory interface {
		ItemRepository() ports.TrackedItemRepository
	}

	// LedgerFactory provides access to the movement ledger within a transaction.
	LedgerFactory interface {
		MovementLedger() ports.MovementLedger
	}

	// UoW manages a transaction across the item store and the movement ledger.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   itemRepo := uow.ItemRepository()
	//   ledger := uow.MovementLedger()
	//   // ... append movement and update holder
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ItemRepoFactory
		LedgerFactory
	}

	// UoWFactory creates new unit of work instances, one per operation.
	UoWFactory interface {
		Create() UoW
	}
)
