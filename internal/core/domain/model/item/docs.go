// Package item contains the TrackedItem aggregate root and its supporting value
// objects for the custody-tracking domain.
//
// A TrackedItem is an item whose custody is tracked: it records who currently
// holds it, its urgency classification, and its lifecycle status. Custody history
// lives in the movement ledger (see the movement package); the aggregate keeps
// only the derived current holder, which the application layer updates atomically
// with every ledger append.
//
// Key components:
//   - TrackedItem: The aggregate root managing identity, holder, and archiving
//   - Status: One-way Active -> Archived lifecycle state machine
//   - Priority: Closed urgency classification (Normal, Urgent, TopPriority)
//
// The package enforces encapsulation through private fields and factory
// constructors, following the same conventions as the rest of the domain model.
package item
