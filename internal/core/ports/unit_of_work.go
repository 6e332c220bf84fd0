package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary scoped to a single
// custody operation. The pairing of "append movement" and "update current
// holder" for an item MUST happen inside one unit of work so the two writes are
// a single atomic unit. Client code manages the transaction lifecycle explicitly.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ItemRepository returns a TrackedItemRepository bound to the current transaction.
	ItemRepository() TrackedItemRepository

	// MovementLedger returns a MovementLedger bound to the current transaction.
	MovementLedger() MovementLedger
}
