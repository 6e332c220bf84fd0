// Package ports defines the repository and collaborator interfaces of the
// custody-tracking engine. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
)

// TrackedItemRepository defines the persistence contract for tracked item aggregates.
// Items are never physically deleted; archiving is a logical terminal state retained
// for audit, so the contract has no delete operation.
type TrackedItemRepository interface {
	// Add persists a new tracked item aggregate.
	// The item must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *item.TrackedItem) error

	// Update persists changes to an existing item using optimistic concurrency:
	// the write succeeds only if the stored version is exactly one behind the
	// aggregate's, otherwise a version conflict is returned and the caller
	// retries the whole operation against fresh state.
	Update(ctx context.Context, aggregate *item.TrackedItem) error

	// Get retrieves an item aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*item.TrackedItem, error)

	// GetForUpdate retrieves an item while taking the per-item exclusive lock of
	// the backing store, so that the subsequent ledger append and holder update
	// form one atomic unit. Two concurrent mutators on the same item serialize:
	// the second observes the first's outcome, never silently overwriting it.
	// The lock is scoped to the enclosing unit of work and released on
	// commit or rollback.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*item.TrackedItem, error)

	// ExistsByReference reports whether any item already carries the given
	// reference number. Reference numbers are unique for the lifetime of the
	// system, so Create verifies this inside its transaction.
	ExistsByReference(ctx context.Context, ref kernel.ReferenceNumber) (bool, error)
}
