package commands

import (
	"context"
	"fmt"
	"time"

	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"
)

// CreateItemCommandHandler handles the business logic for item registration.
// Generates the item's reference number, verifies its uniqueness inside the
// transaction, and seeds the movement ledger with the Created movement so the
// holder/ledger invariant holds from the first committed state onward.
type CreateItemCommandHandler struct {
	uowFactory UoWFactory
	audit      auditEmitter
}

// NewCreateItemCommandHandler creates a handler for item registration.
// Requires a UoWFactory for transactional persistence; sink and directory feed
// the post-commit audit notification.
func NewCreateItemCommandHandler(
	uowFactory UoWFactory,
	sink ports.AuditSink,
	directory ports.UserDirectory,
) CreateItemCommandHandler {
	return CreateItemCommandHandler{
		uowFactory: uowFactory,
		audit:      newAuditEmitter(sink, directory),
	}
}

// Handle processes the item registration command.
// Returns the created item with its assigned reference number, or a validation
// error when required fields are missing or the generated reference collides.
func (h CreateItemCommandHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*item.TrackedItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	itemID := kernel.NewUUID()

	ref, err := kernel.GenerateReferenceNumber(now, itemID)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.ItemRepository()

	exists, err := itemRepo.ExistsByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewValueIsInvalidErrorWithCause("referenceNumber",
			fmt.Errorf("%s is already assigned", ref))
	}

	created, err := item.NewTrackedItem(
		itemID,
		ref,
		cmd.Subject(),
		cmd.Description(),
		cmd.TypeID(),
		cmd.ProjectID(),
		cmd.Priority(),
		cmd.CreatorID(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = itemRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	seed, err := movement.NewMovement(
		kernel.NewUUID(),
		itemID,
		cmd.CreatorID(),
		cmd.CreatorID(),
		movement.ActionCreated,
		"",
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.MovementLedger().Append(ctx, seed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.audit.emit(ctx, ports.AuditOperationCreate, created, cmd.CreatorID())
	return created, nil
}
