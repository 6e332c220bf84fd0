package item

import (
	"errors"
	"fmt"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when a TrackedItem instance was not created
	// through the NewTrackedItem or RestoreTrackedItem factory methods.
	ErrItemIsNotConstructed = errors.New("TrackedItem must be created via NewTrackedItem constructor")
)

// TrackedItem represents an item under custody tracking. It is the aggregate root
// that owns the item lifecycle from creation through hand-offs to archiving.
//
// TrackedItem follows these invariants:
//   - Must have a valid unique identifier and reference number
//   - Subject and priority are required at creation
//   - currentHolderID always equals the recipient of the item's most recent movement;
//     the application layer keeps this pairing atomic
//   - Status transitions one way: Active -> Archived
//   - Archive location and physical note are set only on archiving, then immutable
//   - Can only be created through NewTrackedItem or restored via RestoreTrackedItem
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods. The version counter increments on every
// mutation and is the optimistic-concurrency handle used by persistence: two
// concurrent mutators on the same item serialize on it, the loser observing a
// version conflict instead of silently overwriting.
type TrackedItem struct {
	id              kernel.UUID
	referenceNumber kernel.ReferenceNumber

	// descriptive fields, opaque to the engine
	subject     string
	description string
	typeID      string
	projectID   string

	priority Priority
	status   Status

	createdByUserID kernel.UUID
	creationDate    time.Time

	// currentHolderID is the actor presently accountable for the item
	currentHolderID kernel.UUID

	// archive fields, set once on archiving
	archiveLocationID    *kernel.UUID
	physicalLocationNote string
	attachmentRef        string

	// version is the per-item mutation counter for optimistic concurrency
	version int

	isConstructed bool
}

// NewTrackedItem creates a new TrackedItem with validation. This is the only way to
// create a valid item, ensuring all business invariants are maintained.
//
// The item starts Active, held by its creator. The caller is responsible for seeding
// the movement ledger with the matching Created movement in the same transaction.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - referenceNumber: Human-readable unique code assigned at creation
//   - subject: Required short description
//   - description, typeID, projectID: Optional descriptive fields, opaque to the engine
//   - priority: Urgency classification (must be valid)
//   - createdBy: The creating actor, who becomes the initial holder
//   - creationDate: Server-assigned creation timestamp
//
// Returns the created item, or a validation error joining every violated rule.
func NewTrackedItem(
	id kernel.UUID,
	referenceNumber kernel.ReferenceNumber,
	subject string,
	description string,
	typeID string,
	projectID string,
	priority Priority,
	createdBy kernel.UUID,
	creationDate time.Time,
) (*TrackedItem, error) {
	it := &TrackedItem{
		status:        StatusActive,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		it.setID(id),
		it.setReferenceNumber(referenceNumber),
		it.setSubject(subject),
		it.setPriority(priority),
		it.setCreator(createdBy),
		it.setCreationDate(creationDate),
	); err != nil {
		return nil, err
	}

	it.description = description
	it.typeID = typeID
	it.projectID = projectID
	it.currentHolderID = createdBy

	return it, nil
}

// RestoreTrackedItem reconstructs a TrackedItem from persistence without re-running
// creation-time business rules. Status, priority, and identifiers are still validated
// so corrupt rows cannot re-enter the domain.
func RestoreTrackedItem(
	id kernel.UUID,
	referenceNumber kernel.ReferenceNumber,
	subject string,
	description string,
	typeID string,
	projectID string,
	priority Priority,
	status Status,
	createdBy kernel.UUID,
	creationDate time.Time,
	currentHolder kernel.UUID,
	archiveLocationID *kernel.UUID,
	physicalLocationNote string,
	attachmentRef string,
	version int,
) (*TrackedItem, error) {
	if err := errors.Join(
		id.Validate(),
		referenceNumber.Validate(),
		priority.Validate(),
		status.Validate(),
		createdBy.Validate(),
		currentHolder.Validate(),
	); err != nil {
		return nil, err
	}

	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a positive version", version))
	}

	if status == StatusArchived && archiveLocationID == nil {
		return nil, errs.NewValueIsRequiredError("archiveLocationId for archived item")
	}

	return &TrackedItem{
		id:                   id,
		referenceNumber:      referenceNumber,
		subject:              subject,
		description:          description,
		typeID:               typeID,
		projectID:            projectID,
		priority:             priority,
		status:               status,
		createdByUserID:      createdBy,
		creationDate:         creationDate,
		currentHolderID:      currentHolder,
		archiveLocationID:    archiveLocationID,
		physicalLocationNote: physicalLocationNote,
		attachmentRef:        attachmentRef,
		version:              version,
		isConstructed:        true,
	}, nil
}

// Validate ensures the TrackedItem instance was properly constructed through a factory.
// Returns ErrItemIsNotConstructed otherwise. Call when receiving items from the outside.
func (t *TrackedItem) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// IsEqual compares two items by their unique identifiers.
func (t *TrackedItem) IsEqual(other *TrackedItem) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (t *TrackedItem) ID() kernel.UUID {
	return t.id
}

// ReferenceNumber returns the item's human-readable unique code.
func (t *TrackedItem) ReferenceNumber() kernel.ReferenceNumber {
	return t.referenceNumber
}

// Subject returns the item's short description.
func (t *TrackedItem) Subject() string {
	return t.subject
}

// Description returns the item's long description.
func (t *TrackedItem) Description() string {
	return t.description
}

// TypeID returns the opaque document-type reference.
func (t *TrackedItem) TypeID() string {
	return t.typeID
}

// ProjectID returns the opaque project reference.
func (t *TrackedItem) ProjectID() string {
	return t.projectID
}

// Priority returns the item's urgency classification.
func (t *TrackedItem) Priority() Priority {
	return t.priority
}

// Status returns the current lifecycle status of the item.
func (t *TrackedItem) Status() Status {
	return t.status
}

// CreatedBy returns the actor that created the item.
func (t *TrackedItem) CreatedBy() kernel.UUID {
	return t.createdByUserID
}

// CreationDate returns the item's creation timestamp.
func (t *TrackedItem) CreationDate() time.Time {
	return t.creationDate
}

// CurrentHolder returns the actor presently accountable for the item.
func (t *TrackedItem) CurrentHolder() kernel.UUID {
	return t.currentHolderID
}

// ArchiveLocation returns the archive location reference, or nil if not archived.
func (t *TrackedItem) ArchiveLocation() *kernel.UUID {
	return t.archiveLocationID
}

// PhysicalLocationNote returns the free-text note recorded at archiving.
func (t *TrackedItem) PhysicalLocationNote() string {
	return t.physicalLocationNote
}

// AttachmentRef returns the opaque reference to external content, if any.
func (t *TrackedItem) AttachmentRef() string {
	return t.attachmentRef
}

// Version returns the item's mutation counter.
func (t *TrackedItem) Version() int {
	return t.version
}

// IsHeldBy reports whether the given actor is the item's current holder.
func (t *TrackedItem) IsHeldBy(actor kernel.UUID) bool {
	return t.currentHolderID.IsEqual(actor)
}

// IsArchived reports whether the item has reached its terminal state.
func (t *TrackedItem) IsArchived() bool {
	return t.status == StatusArchived
}

// TransferTo hands custody to the target actor (a Forward).
//
// Business rules:
//   - The item must be Active
//   - The target must be a valid actor distinct from the current holder
//
// On success the current holder becomes the target and the version increments.
// The caller appends the matching Forwarded movement in the same atomic unit.
func (t *TrackedItem) TransferTo(target kernel.UUID) error {
	if err := t.status.ValidateMutable(); err != nil {
		return err
	}

	if err := target.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("targetId", err)
	}

	if t.currentHolderID.IsEqual(target) {
		return errs.NewValueIsInvalidErrorWithCause("targetId",
			fmt.Errorf("target %s already holds the item", target))
	}

	t.currentHolderID = target
	t.version++
	return nil
}

// ReturnTo hands custody back to a prior sender (a Return). The sender is resolved
// by the caller from the movement ledger; this method only applies the hand-off.
func (t *TrackedItem) ReturnTo(sender kernel.UUID) error {
	return t.TransferTo(sender)
}

// AcknowledgeReceipt records that the holder formally accepted custody (a Receive).
// The holder does not change; only the version increments so concurrent mutators
// on the item still serialize.
func (t *TrackedItem) AcknowledgeReceipt() error {
	if err := t.status.ValidateMutable(); err != nil {
		return err
	}

	t.version++
	return nil
}

// Archive transitions the item to its terminal state and records where the physical
// item was stored.
//
// Business rules:
//   - The item must be Active
//   - The archive location must be a valid reference
//
// After archiving no further movement may be applied; the archive fields are immutable.
func (t *TrackedItem) Archive(locationID kernel.UUID, physicalNote string, attachmentRef string) error {
	if err := locationID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("archiveLocationId", err)
	}

	newStatus, err := t.status.Archive()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.archiveLocationID = &locationID
	t.physicalLocationNote = physicalNote
	if attachmentRef != "" {
		t.attachmentRef = attachmentRef
	}
	t.version++
	return nil
}

// AttachReference records an opaque reference to external content on an active item.
func (t *TrackedItem) AttachReference(ref string) error {
	if err := t.status.ValidateMutable(); err != nil {
		return err
	}

	t.attachmentRef = ref
	t.version++
	return nil
}

func (t *TrackedItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *TrackedItem) setReferenceNumber(ref kernel.ReferenceNumber) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	t.referenceNumber = ref
	return nil
}

func (t *TrackedItem) setSubject(subject string) error {
	if subject == "" {
		return errs.NewValueIsRequiredError("subject")
	}
	t.subject = subject
	return nil
}

func (t *TrackedItem) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	t.priority = priority
	return nil
}

func (t *TrackedItem) setCreator(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdByUserId", err)
	}
	t.createdByUserID = createdBy
	return nil
}

func (t *TrackedItem) setCreationDate(creationDate time.Time) error {
	if creationDate.IsZero() {
		return errs.NewValueIsRequiredError("creationDate")
	}
	t.creationDate = creationDate
	return nil
}
