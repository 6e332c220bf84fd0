package commands

import (
	"errors"
	"fmt"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var (
	ErrForwardItemCommandIsNotConstructed = errors.New(
		"ForwardItemCommand must be created via NewForwardItemCommand constructor",
	)
)

// ForwardItemCommand represents a hand-off of custody from the current holder
// to another actor.
//
// Example:
//
//	cmd, err := NewForwardItemCommand(itemID, holderID, targetID, "please review")
//	if err != nil {
//	    return err
//	}
//	mv, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrNotAuthorized) {
//	    // caller is no longer the holder
//	}
type ForwardItemCommand struct { //nolint:recvcheck //using for validation
	itemID   kernel.UUID
	actorID  kernel.UUID
	targetID kernel.UUID
	notes    string

	guard guard.ConstructorGuard
}

// NewForwardItemCommand creates a command to forward an item. The target actor
// must be specified and distinct from the acting holder.
func NewForwardItemCommand(
	itemID kernel.UUID,
	actorID kernel.UUID,
	targetID kernel.UUID,
	notes string,
) (ForwardItemCommand, error) {
	cmd := ForwardItemCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemID(itemID),
		cmd.setActorID(actorID),
		cmd.setTargetID(targetID),
	); err != nil {
		return ForwardItemCommand{}, err
	}

	if actorID.IsEqual(targetID) {
		return ForwardItemCommand{}, errs.NewValueIsInvalidErrorWithCause("targetId",
			fmt.Errorf("cannot forward an item to its current holder"))
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ForwardItemCommand) Validate() error {
	return c.guard.Validate(ErrForwardItemCommandIsNotConstructed)
}

// ItemID returns the tracked item being forwarded.
func (c ForwardItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// ActorID returns the acting holder.
func (c ForwardItemCommand) ActorID() kernel.UUID {
	return c.actorID
}

// TargetID returns the actor receiving custody.
func (c ForwardItemCommand) TargetID() kernel.UUID {
	return c.targetID
}

// Notes returns the optional free-text note for the movement.
func (c ForwardItemCommand) Notes() string {
	return c.notes
}

func (c *ForwardItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	c.itemID = itemID
	return nil
}

func (c *ForwardItemCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	c.actorID = actorID
	return nil
}

func (c *ForwardItemCommand) setTargetID(targetID kernel.UUID) error {
	if err := targetID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("targetId", err)
	}
	c.targetID = targetID
	return nil
}
