// Package services contains stateless domain services for the custody-tracking
// engine.
//
// The CustodyDeriver implements the custody state derivation: a pure function
// over an item and an immutable ledger snapshot producing the per-actor view
// category (Inbox, Processing, Outbox, Archived, Hidden) and resolving Return
// targets. Because it is side-effect free it is recomputed on every read rather
// than cached, so views can never go stale across a mutation.
package services
