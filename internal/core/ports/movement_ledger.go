package ports

import (
	"context"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
)

// MovementLedger defines the persistence contract for the append-only custody
// ledger. Entries are immutable once written; the only write operation is Append.
// Because nothing is ever updated or removed, concurrent readers need no locking
// and may tolerate a slightly stale tail for display purposes.
type MovementLedger interface {
	// Append persists a new ledger entry for its item. The entry's date must not
	// violate total ordering with the item's existing entries; the engine assigns
	// dates server-side at append time, which makes violations impossible in
	// practice.
	Append(ctx context.Context, entry *movement.Movement) error

	// ListForItem retrieves the full ledger of an item ordered oldest to newest,
	// ties broken by insertion order. The returned slice is a snapshot: later
	// appends do not mutate it.
	ListForItem(ctx context.Context, itemID kernel.UUID) ([]*movement.Movement, error)

	// LatestForItem retrieves the most recent entry of an item's ledger, or an
	// ObjectNotFoundError if the item has no history (impossible post-creation,
	// since Create seeds the ledger in the same transaction).
	LatestForItem(ctx context.Context, itemID kernel.UUID) (*movement.Movement, error)

	// MarkRead flips the observer-acknowledgement flag of an entry. This is the
	// only field of a written entry that may change, and it never participates in
	// custody state derivation.
	MarkRead(ctx context.Context, entryID kernel.UUID) error
}
