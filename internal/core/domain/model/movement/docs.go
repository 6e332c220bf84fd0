// Package movement contains the Movement ledger-entry entity and the Action
// enumeration of custody events.
//
// An item's ledger is the append-only, totally ordered record of every custody
// event for that item. Entries are immutable once written; the ledger's only
// write operation is append. Ordering is by server-assigned date, with ties
// broken by insertion order for determinism.
package movement
