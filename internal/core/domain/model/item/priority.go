package item

import (
	"fmt"

	"custody/internal/pkg/errs"
)

// Priority represents the urgency classification of a tracked item.
// Unlike Status it carries no transitions: priority is set at creation
// and is purely descriptive for display and ordering.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// PriorityNormal is the default classification.
	PriorityNormal

	// PriorityUrgent marks items that should be handled ahead of normal ones.
	PriorityUrgent

	// PriorityTop marks the highest urgency classification.
	PriorityTop
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "Unknown",
		PriorityNormal:  "Normal",
		PriorityUrgent:  "Urgent",
		PriorityTop:     "TopPriority",
	}
}

func getValidPriorityStrings() map[Priority]string {
	//nolint:exhaustive // PriorityUnknown is intentionally excluded as it's invalid
	return map[Priority]string{
		PriorityNormal: "Normal",
		PriorityUrgent: "Urgent",
		PriorityTop:    "TopPriority",
	}
}

// Validate checks if the Priority value is one of the defined classifications.
func (p Priority) Validate() error {
	if _, ok := getValidPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority is invalid", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the human-readable name of the priority.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// PriorityFromString parses the human-readable name back into a Priority.
// Only valid classifications parse; anything else is a validation error.
func PriorityFromString(s string) (Priority, error) {
	for p, str := range getValidPriorityStrings() {
		if str == s {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause(
		"priority is invalid", fmt.Errorf("%q is not a valid priority", s))
}
