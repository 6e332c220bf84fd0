package kernel

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

// ReferenceNumberMaxLength is the maximum accepted length of a reference number.
const ReferenceNumberMaxLength = 64

// ErrReferenceNumberIsNotConstructed is returned when attempting to use an improperly
// initialized ReferenceNumber. Reference numbers must be created using NewReferenceNumber
// or GenerateReferenceNumber to ensure validity.
var ErrReferenceNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"reference number must be created via NewReferenceNumber or GenerateReferenceNumber constructors")

// referenceNumberPattern accepts uppercase alphanumeric segments joined by dashes,
// e.g. "CT-20260830-4F2A9C1B".
var referenceNumberPattern = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*$`)

// ReferenceNumber is the human-readable unique code assigned to a tracked item at
// creation. It is immutable for the lifetime of the item and unique across all items.
//
// The zero value of ReferenceNumber is invalid and will fail validation - use the
// constructors to create instances.
//
// Example:
//
//	ref, err := kernel.NewReferenceNumber("CT-20260830-4F2A9C1B")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(ref) // Output: CT-20260830-4F2A9C1B
type ReferenceNumber struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewReferenceNumber creates a ReferenceNumber from its string form.
// The value must be non-empty, at most ReferenceNumberMaxLength characters, and
// consist of uppercase alphanumeric segments joined by dashes.
//
// Returns:
//   - ReferenceNumber: A valid reference number instance
//   - error: Validation error if the value is empty or malformed
func NewReferenceNumber(value string) (ReferenceNumber, error) {
	if value == "" {
		return ReferenceNumber{}, errs.NewValueIsRequiredError("referenceNumber")
	}

	if len(value) > ReferenceNumberMaxLength {
		return ReferenceNumber{}, errs.NewValueIsOutOfRangeError(
			"referenceNumber length", len(value), 1, ReferenceNumberMaxLength)
	}

	if !referenceNumberPattern.MatchString(value) {
		return ReferenceNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"referenceNumber",
			fmt.Errorf("%q does not match the expected format", value),
		)
	}

	return ReferenceNumber{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// GenerateReferenceNumber produces a fresh reference number of the form
// "CT-<yyyymmdd>-<8 hex chars>", deriving the suffix from the given item identifier.
// Collisions are possible only if the same item identifier is reused, so the caller
// still verifies uniqueness against the item store before committing.
//
// Example:
//
//	ref, err := kernel.GenerateReferenceNumber(time.Now(), kernel.NewUUID())
//	// ref is e.g. "CT-20260830-4F2A9C1B"
func GenerateReferenceNumber(now time.Time, id UUID) (ReferenceNumber, error) {
	if err := id.Validate(); err != nil {
		return ReferenceNumber{}, err
	}

	raw := id.Bytes()
	suffix := strings.ToUpper(fmt.Sprintf("%x", raw[:4]))
	return NewReferenceNumber(fmt.Sprintf("CT-%s-%s", now.UTC().Format("20060102"), suffix))
}

// String returns the reference number in its canonical string form.
func (r ReferenceNumber) String() string {
	return r.value
}

// IsEqual compares two reference numbers for equality.
func (r ReferenceNumber) IsEqual(other ReferenceNumber) bool {
	return r.value == other.value
}

// Validate checks that the ReferenceNumber was properly constructed.
// Returns ErrReferenceNumberIsNotConstructed for zero-value instances.
func (r ReferenceNumber) Validate() error {
	if err := r.guard.Validate(ErrReferenceNumberIsNotConstructed); err != nil {
		return err
	}
	if r.value == "" {
		return ErrReferenceNumberIsNotConstructed
	}
	return nil
}
