package item

import (
	"fmt"

	"custody/internal/pkg/errs"
)

// Status represents the lifecycle state of a tracked item.
// It implements a state machine with a single one-way transition:
//
//	Active ──> Archived
//
// Archived is the terminal state. An archived item accepts no further custody
// movements and is retained for audit only.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusActive is the initial status when an item is created.
	// Active items circulate between actors via Forward, Return and Receive.
	StatusActive

	// StatusArchived indicates the item has been placed into permanent storage.
	// This is a final state with no further transitions allowed.
	StatusArchived
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "Unknown",
		StatusActive:   "Active",
		StatusArchived: "Archived",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusActive:   "Active",
		StatusArchived: "Archived",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Active, Archived. StatusUnknown (0) and any other
// values are invalid. Used to vet Status values coming from persistence
// or external callers before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateMutable checks whether the status still permits custody movements
// without performing any transition. Only Active items are mutable.
func (s Status) ValidateMutable() error {
	if s != StatusActive {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a status that permits movements", s.String()),
		)
	}
	return nil
}

// Archive transitions the status to Archived.
//
// Valid transitions:
//   - Active -> Archived
//
// Invalid transitions:
//   - Archived -> Archived (already terminal)
//   - Unknown -> Archived (invalid initial state)
//
// Returns (StatusArchived, nil) on a valid transition, or (0, error) otherwise.
func (s Status) Archive() (Status, error) {
	if s != StatusActive {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to archive", s.String()),
		)
	}

	return StatusArchived, nil
}
