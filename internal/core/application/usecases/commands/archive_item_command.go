package commands

import (
	"errors"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var (
	ErrArchiveItemCommandIsNotConstructed = errors.New(
		"ArchiveItemCommand must be created via NewArchiveItemCommand constructor",
	)
)

// ArchiveItemCommand closes the custody lifecycle of an item and records the
// physical archive location it ends up in.
type ArchiveItemCommand struct { //nolint:recvcheck //using for validation
	itemID            kernel.UUID
	actorID           kernel.UUID
	archiveLocationID kernel.UUID
	physicalNote      string
	attachmentRef     string
	notes             string

	guard guard.ConstructorGuard
}

// NewArchiveItemCommand creates a command to archive an item. The archive
// location is mandatory; the physical note and attachment reference are
// optional enrichments.
func NewArchiveItemCommand(
	itemID kernel.UUID,
	actorID kernel.UUID,
	archiveLocationID kernel.UUID,
	physicalNote string,
	attachmentRef string,
	notes string,
) (ArchiveItemCommand, error) {
	cmd := ArchiveItemCommand{
		physicalNote:  physicalNote,
		attachmentRef: attachmentRef,
		notes:         notes,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemID(itemID),
		cmd.setActorID(actorID),
		cmd.setArchiveLocationID(archiveLocationID),
	); err != nil {
		return ArchiveItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ArchiveItemCommand) Validate() error {
	return c.guard.Validate(ErrArchiveItemCommandIsNotConstructed)
}

// ItemID returns the tracked item being archived.
func (c ArchiveItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// ActorID returns the acting holder.
func (c ArchiveItemCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ArchiveLocationID returns the physical archive location.
func (c ArchiveItemCommand) ArchiveLocationID() kernel.UUID {
	return c.archiveLocationID
}

// PhysicalNote returns the optional note on where the item physically sits.
func (c ArchiveItemCommand) PhysicalNote() string {
	return c.physicalNote
}

// AttachmentRef returns the optional reference to a scan or file.
func (c ArchiveItemCommand) AttachmentRef() string {
	return c.attachmentRef
}

// Notes returns the optional free-text note for the movement.
func (c ArchiveItemCommand) Notes() string {
	return c.notes
}

func (c *ArchiveItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	c.itemID = itemID
	return nil
}

func (c *ArchiveItemCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	c.actorID = actorID
	return nil
}

func (c *ArchiveItemCommand) setArchiveLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("archiveLocationId", err)
	}
	c.archiveLocationID = locationID
	return nil
}
