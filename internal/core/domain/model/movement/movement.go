package movement

import (
	"errors"
	"fmt"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
)

var (
	// ErrMovementIsNotConstructed is returned when a Movement instance was not created
	// through the NewMovement or RestoreMovement factory methods.
	ErrMovementIsNotConstructed = errors.New("Movement must be created via NewMovement constructor")
)

// Movement is one immutable entry in an item's custody ledger. Once appended it never
// changes and is never removed; the full ordered sequence of an item's movements is
// the authoritative custody history from which views are derived.
//
// The only exception to immutability is the isRead flag, an observer-acknowledgement
// marker that is not part of custody state and never feeds state derivation.
//
// Invariants enforced at construction:
//   - Hand-off actions (Forwarded, Returned) require from != to
//   - Self actions (Created, Received, Archived) require from == to
//   - The date is the ordering key and must be set; the engine assigns it server-side
//     at append time so client clock skew cannot break total ordering
type Movement struct {
	id         kernel.UUID
	itemID     kernel.UUID
	date       time.Time
	fromUserID kernel.UUID
	toUserID   kernel.UUID
	action     Action
	notes      string
	isRead     bool

	isConstructed bool
}

// NewMovement creates a new ledger entry with validation.
//
// Parameters:
//   - id: Unique identifier of the entry
//   - itemID: The tracked item this entry belongs to
//   - from, to: The actors involved; equality must match the action's shape
//   - action: The custody event recorded
//   - notes: Optional free text
//   - date: Server-assigned ordering timestamp
//
// Returns the movement, or a validation error joining every violated rule.
func NewMovement(
	id kernel.UUID,
	itemID kernel.UUID,
	from kernel.UUID,
	to kernel.UUID,
	action Action,
	notes string,
	date time.Time,
) (*Movement, error) {
	m := &Movement{
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		m.setID(id),
		m.setItemID(itemID),
		m.setActors(from, to, action),
		m.setDate(date),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMovement reconstructs a ledger entry from persistence, including its
// acknowledgement flag.
func RestoreMovement(
	id kernel.UUID,
	itemID kernel.UUID,
	from kernel.UUID,
	to kernel.UUID,
	action Action,
	notes string,
	date time.Time,
	isRead bool,
) (*Movement, error) {
	m, err := NewMovement(id, itemID, from, to, action, notes, date)
	if err != nil {
		return nil, err
	}

	m.isRead = isRead
	return m, nil
}

// Validate ensures the Movement was properly constructed through a factory.
func (m *Movement) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMovementIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (m *Movement) ID() kernel.UUID {
	return m.id
}

// ItemID returns the tracked item this entry belongs to.
func (m *Movement) ItemID() kernel.UUID {
	return m.itemID
}

// Date returns the server-assigned ordering timestamp.
func (m *Movement) Date() time.Time {
	return m.date
}

// From returns the actor custody moved from.
func (m *Movement) From() kernel.UUID {
	return m.fromUserID
}

// To returns the actor custody moved to.
func (m *Movement) To() kernel.UUID {
	return m.toUserID
}

// Action returns the custody event recorded by this entry.
func (m *Movement) Action() Action {
	return m.action
}

// Notes returns the free-text note attached to the entry, if any.
func (m *Movement) Notes() string {
	return m.notes
}

// IsRead reports whether the recipient acknowledged this entry.
func (m *Movement) IsRead() bool {
	return m.isRead
}

// MarkRead flips the observer-acknowledgement flag. This is not a custody mutation:
// the flag never participates in state derivation and the ledger remains append-only
// with respect to custody history.
func (m *Movement) MarkRead() {
	m.isRead = true
}

func (m *Movement) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Movement) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	m.itemID = itemID
	return nil
}

func (m *Movement) setActors(from kernel.UUID, to kernel.UUID, action Action) error {
	if err := action.Validate(); err != nil {
		return err
	}

	if err := from.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("fromUserId", err)
	}

	if err := to.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("toUserId", err)
	}

	if action.IsHandOff() && from.IsEqual(to) {
		return errs.NewValueIsInvalidErrorWithCause("toUserId",
			fmt.Errorf("%s movement requires distinct actors", action))
	}

	if !action.IsHandOff() && !from.IsEqual(to) {
		return errs.NewValueIsInvalidErrorWithCause("toUserId",
			fmt.Errorf("%s movement requires from and to to be the same actor", action))
	}

	m.fromUserID = from
	m.toUserID = to
	m.action = action
	return nil
}

func (m *Movement) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	m.date = date
	return nil
}
