package commands

import (
	"errors"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var (
	ErrReturnItemCommandIsNotConstructed = errors.New(
		"ReturnItemCommand must be created via NewReturnItemCommand constructor",
	)
)

// ReturnItemCommand sends an item back to the actor it most recently came
// from. The target is not supplied by the caller; the handler derives it from
// the movement ledger.
type ReturnItemCommand struct { //nolint:recvcheck //using for validation
	itemID  kernel.UUID
	actorID kernel.UUID
	notes   string

	guard guard.ConstructorGuard
}

// NewReturnItemCommand creates a command to return an item to its sender.
func NewReturnItemCommand(itemID kernel.UUID, actorID kernel.UUID, notes string) (ReturnItemCommand, error) {
	cmd := ReturnItemCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemID(itemID),
		cmd.setActorID(actorID),
	); err != nil {
		return ReturnItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnItemCommand) Validate() error {
	return c.guard.Validate(ErrReturnItemCommandIsNotConstructed)
}

// ItemID returns the tracked item being returned.
func (c ReturnItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// ActorID returns the acting holder.
func (c ReturnItemCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Notes returns the optional free-text note for the movement.
func (c ReturnItemCommand) Notes() string {
	return c.notes
}

func (c *ReturnItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	c.itemID = itemID
	return nil
}

func (c *ReturnItemCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	c.actorID = actorID
	return nil
}
