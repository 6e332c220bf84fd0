package commands

import (
	"errors"

	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var (
	ErrCreateItemCommandIsNotConstructed = errors.New(
		"CreateItemCommand must be created via NewCreateItemCommand constructor",
	)
)

// CreateItemCommand represents a request to register a new tracked item.
// The creator becomes the initial holder and the ledger is seeded with the
// item's Created movement in the same transaction.
//
// Example:
//
//	cmd, err := NewCreateItemCommand("Q3 budget review", "", "", "", item.PriorityUrgent, creatorID)
//	if err != nil {
//	    return fmt.Errorf("invalid item data: %w", err)
//	}
//
//	handler := NewCreateItemCommandHandler(uowFactory, sink, directory)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create item: %w", err)
//	}
//	fmt.Printf("Item %s registered", created.ReferenceNumber())
type CreateItemCommand struct { //nolint:recvcheck //using for validation
	subject     string
	description string
	typeID      string
	projectID   string
	priority    item.Priority
	creatorID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateItemCommand creates a command to register a new tracked item.
// Subject and a valid priority are required; description, typeID, and projectID
// are optional descriptive fields opaque to the engine.
func NewCreateItemCommand(
	subject string,
	description string,
	typeID string,
	projectID string,
	priority item.Priority,
	creatorID kernel.UUID,
) (CreateItemCommand, error) {
	cmd := CreateItemCommand{
		description: description,
		typeID:      typeID,
		projectID:   projectID,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSubject(subject),
		cmd.setPriority(priority),
		cmd.setCreatorID(creatorID),
	); err != nil {
		return CreateItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateItemCommandIsNotConstructed if validation fails.
func (c CreateItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateItemCommandIsNotConstructed)
}

// Subject returns the required short description of the item.
func (c CreateItemCommand) Subject() string {
	return c.subject
}

// Description returns the optional long description.
func (c CreateItemCommand) Description() string {
	return c.description
}

// TypeID returns the opaque document-type reference.
func (c CreateItemCommand) TypeID() string {
	return c.typeID
}

// ProjectID returns the opaque project reference.
func (c CreateItemCommand) ProjectID() string {
	return c.projectID
}

// Priority returns the urgency classification for the new item.
func (c CreateItemCommand) Priority() item.Priority {
	return c.priority
}

// CreatorID returns the actor registering the item.
func (c CreateItemCommand) CreatorID() kernel.UUID {
	return c.creatorID
}

func (c *CreateItemCommand) setSubject(subject string) error {
	if subject == "" {
		return errs.NewValueIsRequiredError("subject")
	}
	c.subject = subject
	return nil
}

func (c *CreateItemCommand) setPriority(priority item.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	c.priority = priority
	return nil
}

func (c *CreateItemCommand) setCreatorID(creatorID kernel.UUID) error {
	if err := creatorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("creatorId", err)
	}
	c.creatorID = creatorID
	return nil
}
