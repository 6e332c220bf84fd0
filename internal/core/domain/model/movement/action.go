package movement

import (
	"fmt"

	"custody/internal/pkg/errs"
)

// Action is the closed enumeration of custody events a movement can record.
// Replacing the stringly-typed labels of older trackers with a tagged enum means
// every switch over Action in the deriver and the transfer operations is
// compile-time checkable when a new action is added.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionCreated seeds the ledger when an item is created; from and to are the creator.
	ActionCreated

	// ActionReceived records that the holder formally accepted custody; from and to are the holder.
	ActionReceived

	// ActionForwarded records a hand-off from the holder to another actor.
	ActionForwarded

	// ActionReturned records unwinding a hand-off back to the previous distinct sender.
	ActionReturned

	// ActionArchived is the terminal movement recorded when the item is archived.
	ActionArchived
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:   "Unknown",
		ActionCreated:   "Created",
		ActionReceived:  "Received",
		ActionForwarded: "Forwarded",
		ActionReturned:  "Returned",
		ActionArchived:  "Archived",
	}
}

func getValidActionStrings() map[Action]string {
	//nolint:exhaustive // ActionUnknown is intentionally excluded as it's invalid
	return map[Action]string{
		ActionCreated:   "Created",
		ActionReceived:  "Received",
		ActionForwarded: "Forwarded",
		ActionReturned:  "Returned",
		ActionArchived:  "Archived",
	}
}

// Validate checks if the Action value is one of the defined custody events.
func (a Action) Validate() error {
	if _, ok := getValidActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// String returns the human-readable name of the action.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "Unknown"
}

// IsHandOff reports whether the action moves custody between two distinct actors.
// Hand-off movements require from != to; all others require from == to.
func (a Action) IsHandOff() bool {
	return a == ActionForwarded || a == ActionReturned
}
