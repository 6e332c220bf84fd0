package services

import (
	"fmt"

	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/pkg/errs"
)

// Category is the per-actor derived view classification of a tracked item.
// Categories are never stored; they are recomputed from the item and its ledger
// on every read so a mutation can never leave a stale cached view behind.
type Category int

const (
	// CategoryUnknown represents an invalid or undefined category.
	CategoryUnknown Category = iota

	// CategoryInbox: custody points at the viewer but was not yet formally accepted.
	CategoryInbox

	// CategoryProcessing: the viewer holds the item and has accepted custody
	// (or created it and never handed it off).
	CategoryProcessing

	// CategoryOutbox: the viewer handled the item before but no longer holds it.
	CategoryOutbox

	// CategoryArchived: the item reached its terminal state.
	CategoryArchived

	// CategoryHidden: the item is not visible to the viewer.
	CategoryHidden
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		CategoryUnknown:    "Unknown",
		CategoryInbox:      "Inbox",
		CategoryProcessing: "Processing",
		CategoryOutbox:     "Outbox",
		CategoryArchived:   "Archived",
		CategoryHidden:     "Hidden",
	}
}

// String returns the human-readable name of the category.
func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "Unknown"
}

// CategoryFromString parses a category name as produced by String.
// Unknown and unparseable names return an error.
func CategoryFromString(s string) (Category, error) {
	for c, str := range getCategoryStrings() {
		if c != CategoryUnknown && str == s {
			return c, nil
		}
	}
	return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause("category",
		fmt.Errorf("%q is not a valid category", s))
}

// CustodyDeriver is the pure domain service that derives per-actor view state
// from an item and an immutable snapshot of its ledger. It holds no state and
// performs no I/O, so it is safe to run concurrently on any snapshot.
//
// Distinguishing Inbox from Processing models a real-world in-tray workflow:
// an item is not considered in hand for action purposes until explicitly
// received, even though the holder field already points at the viewer. This
// protects against silently treating unacknowledged hand-offs as accepted.
//
// Example usage:
//
//	deriver := services.NewCustodyDeriver()
//	category, err := deriver.Categorize(trackedItem, ledgerEntries, viewerID)
//	if err != nil {
//	    // invalid item or ledger snapshot
//	}
//	switch category {
//	case services.CategoryInbox:
//	    // offer a Receive action
//	}
type CustodyDeriver struct{}

// NewCustodyDeriver creates a new CustodyDeriver instance.
func NewCustodyDeriver() CustodyDeriver {
	return CustodyDeriver{}
}

// Categorize maps (item, ledger snapshot, viewer) to a view category.
//
// Rules, evaluated in order:
//   - Archived items categorize as Archived for every viewer.
//   - A viewer who is not the current holder sees Outbox if they created the item
//     or ever appear as the sender of one of its movements, otherwise Hidden.
//   - The current holder sees Inbox while the latest movement is a hand-off
//     (Forwarded or Returned) addressed to them that they have not yet received,
//     and Processing otherwise.
//
// The ledger slice must be ordered oldest to newest, as produced by the ledger port.
func (d CustodyDeriver) Categorize(
	it *item.TrackedItem,
	ledger []*movement.Movement,
	viewer kernel.UUID,
) (Category, error) {
	if err := it.Validate(); err != nil {
		return CategoryUnknown, err
	}

	if err := viewer.Validate(); err != nil {
		return CategoryUnknown, err
	}

	if it.IsArchived() {
		return CategoryArchived, nil
	}

	if !it.IsHeldBy(viewer) {
		if it.CreatedBy().IsEqual(viewer) || d.hasHandled(ledger, viewer) {
			return CategoryOutbox, nil
		}
		return CategoryHidden, nil
	}

	last := latest(ledger)
	if last == nil {
		// impossible post-creation, the ledger is seeded with a Created movement
		return CategoryProcessing, nil
	}

	switch last.Action() {
	case movement.ActionForwarded, movement.ActionReturned:
		if last.To().IsEqual(viewer) {
			return CategoryInbox, nil
		}
		return CategoryProcessing, nil
	case movement.ActionCreated, movement.ActionReceived, movement.ActionArchived:
		return CategoryProcessing, nil
	case movement.ActionUnknown:
		fallthrough
	default:
		return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid action in the ledger", last.Action()))
	}
}

// ReturnTarget resolves whom a Return by the given actor should unwind to: the
// sender of the MOST RECENT movement addressed to the actor by someone else.
// Ties on date are broken by entry order, which the ledger snapshot preserves.
//
// Unwinding to the most recent distinct sender, not the original creator, is a
// deliberate rule: multi-hop chains return one hop at a time.
//
// Returns the sender and true, or the zero UUID and false when no qualifying
// inbound movement exists (e.g., a creator who never received from anyone).
func (d CustodyDeriver) ReturnTarget(ledger []*movement.Movement, actor kernel.UUID) (kernel.UUID, bool) {
	for i := len(ledger) - 1; i >= 0; i-- {
		m := ledger[i]
		if m.To().IsEqual(actor) && !m.From().IsEqual(actor) {
			return m.From(), true
		}
	}
	return kernel.UUID{}, false
}

// hasHandled reports whether the viewer appears as the sender of any movement.
func (d CustodyDeriver) hasHandled(ledger []*movement.Movement, viewer kernel.UUID) bool {
	for _, m := range ledger {
		if m.From().IsEqual(viewer) {
			return true
		}
	}
	return false
}

// latest returns the newest entry of an oldest-to-newest ledger snapshot, or nil.
func latest(ledger []*movement.Movement) *movement.Movement {
	if len(ledger) == 0 {
		return nil
	}
	return ledger[len(ledger)-1]
}
