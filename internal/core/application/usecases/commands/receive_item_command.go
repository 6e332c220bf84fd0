package commands

import (
	"errors"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var (
	ErrReceiveItemCommandIsNotConstructed = errors.New(
		"ReceiveItemCommand must be created via NewReceiveItemCommand constructor",
	)
)

// ReceiveItemCommand represents the holder formally accepting custody of an item
// whose latest movement handed it to them. Receiving is idempotent in effect:
// repeating it appends another Received entry but the holder and the derived
// category are unchanged.
type ReceiveItemCommand struct { //nolint:recvcheck //using for validation
	itemID  kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReceiveItemCommand creates a command for the acting holder to accept custody.
func NewReceiveItemCommand(itemID kernel.UUID, actorID kernel.UUID) (ReceiveItemCommand, error) {
	cmd := ReceiveItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemID(itemID),
		cmd.setActorID(actorID),
	); err != nil {
		return ReceiveItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveItemCommand) Validate() error {
	return c.guard.Validate(ErrReceiveItemCommandIsNotConstructed)
}

// ItemID returns the tracked item being received.
func (c ReceiveItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// ActorID returns the actor accepting custody.
func (c ReceiveItemCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ReceiveItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	c.itemID = itemID
	return nil
}

func (c *ReceiveItemCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	c.actorID = actorID
	return nil
}
