package kernel

import (
	"fmt"

	"custody/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through one of the constructor functions.
// This error is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object that identifies everything the engine tracks: items,
// ledger entries, actors, and archive locations all carry one. It wraps the
// github.com/google/uuid implementation to provide domain-specific behavior
// and ensure immutability.
//
// The zero value of UUID is invalid and must be constructed using one of the
// provided factory functions: NewUUID, UUIDFromString, or UUIDFromBytes.
//
// UUID is immutable and thread-safe, making it suitable for concurrent use.
//
// Example usage:
//
//	// Mint an identifier for a new ledger entry
//	entryID := kernel.NewUUID()
//
//	// Parse an actor identifier arriving from the presentation layer
//	actorID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
// This is the primary way to mint identifiers for items and ledger entries.
// The generated UUID is guaranteed to be valid and unique with
// extremely high probability.
//
// Example:
//
//	itemID := kernel.NewUUID()
//	fmt.Println(itemID.String()) // e.g., "550e8400-e29b-41d4-a716-446655440000"
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation.
// It accepts standard UUID formats including:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// Returns an error if the string is not a valid UUID format.
// Typically used for actor and item identifiers arriving over the API, and
// when reconstructing aggregates from persistence.
//
// Example:
//
//	targetID, err := kernel.UUIDFromString(request.TargetID)
//	if err != nil {
//	    return fmt.Errorf("invalid forward target: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a byte slice.
// The byte slice must be exactly 16 bytes long.
// Returns an error if the byte slice is not valid for UUID construction.
//
// Used when scanning item and movement rows whose identifier columns come
// back from the database in binary form.
//
// Example:
//
//	holderID, err := kernel.UUIDFromBytes(row.CurrentHolderID)
//	if err != nil {
//	    return fmt.Errorf("invalid holder ID: %w", err)
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the standard string representation of the UUID.
// The format is "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" where x is a hexadecimal digit.
// For a zero value UUID, this returns "00000000-0000-0000-0000-000000000000".
//
// Commonly used when logging custody operations, serializing API responses,
// and carrying item/actor context inside error messages.
//
// Example:
//
//	id := kernel.NewUUID()
//	fmt.Printf("Tracked item created with ID: %s\n", id.String())
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying UUID value.
// Note: This returns the internal uuid.UUID type, not a byte slice.
// For a byte slice representation, use id.Bytes()[:].
//
// The persistence DTOs use this when mapping aggregates to rows; direct
// access elsewhere should be minimized to maintain encapsulation.
//
// Example:
//
//	id := kernel.NewUUID()
//	googleUUID := id.Bytes()
//	byteSlice := googleUUID[:]
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality.
// Returns true if both UUIDs represent the same value, false otherwise.
// The deriver leans on this when matching the viewing actor against ledger
// senders and recipients.
//
// Example:
//
//	holder := kernel.NewUUID()
//	viewer := kernel.NewUUID()
//	self := holder
//
//	fmt.Println(holder.IsEqual(viewer)) // false (different actors)
//	fmt.Println(holder.IsEqual(self))   // true (same actor)
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate checks if the UUID is properly constructed.
// Returns ErrUUIDIsNotConstructed if the UUID is a zero value (nil UUID).
// A valid UUID is any UUID that was created through one of the constructor functions.
//
// This method is useful for validating domain objects during construction
// or when receiving data from external sources.
//
// Example:
//
//	func NewMovement(id kernel.UUID, itemID kernel.UUID) (*Movement, error) {
//	    if err := id.Validate(); err != nil {
//	        return nil, fmt.Errorf("invalid movement ID: %w", err)
//	    }
//	    if err := itemID.Validate(); err != nil {
//	        return nil, fmt.Errorf("invalid item ID: %w", err)
//	    }
//	    // ...
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
