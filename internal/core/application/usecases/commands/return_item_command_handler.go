package commands

import (
	"context"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/core/domain/services"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"
)

// ReturnItemCommandHandler handles sending an item back to its sender.
type ReturnItemCommandHandler struct {
	uowFactory UoWFactory
	deriver    services.CustodyDeriver
	audit      auditEmitter
}

// NewReturnItemCommandHandler creates a handler for returning items.
func NewReturnItemCommandHandler(
	uowFactory UoWFactory,
	deriver services.CustodyDeriver,
	sink ports.AuditSink,
	directory ports.UserDirectory,
) ReturnItemCommandHandler {
	return ReturnItemCommandHandler{
		uowFactory: uowFactory,
		deriver:    deriver,
		audit:      newAuditEmitter(sink, directory),
	}
}

// Handle processes the return.
// The target is the most recent actor that handed the item to the caller,
// derived from the ledger inside the same transaction that appends the
// Returned movement. An item the caller created and never received from
// anyone has no return target and the operation fails with NoReturnTarget.
func (h ReturnItemCommandHandler) Handle(ctx context.Context, cmd ReturnItemCommand) (*movement.Movement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.ItemRepository()
	ledger := uow.MovementLedger()

	it, err := itemRepo.GetForUpdate(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	if it.IsArchived() {
		return nil, errs.NewAlreadyArchivedError(it.ID().String(), cmd.ActorID().String(), "Return")
	}

	if !it.IsHeldBy(cmd.ActorID()) {
		return nil, errs.NewNotAuthorizedError(it.ID().String(), cmd.ActorID().String(), "Return")
	}

	history, err := ledger.ListForItem(ctx, it.ID())
	if err != nil {
		return nil, err
	}

	target, ok := h.deriver.ReturnTarget(history, cmd.ActorID())
	if !ok {
		return nil, errs.NewNoReturnTargetError(it.ID().String(), cmd.ActorID().String())
	}

	if err = it.ReturnTo(target); err != nil {
		return nil, err
	}

	returned, err := movement.NewMovement(
		kernel.NewUUID(),
		it.ID(),
		cmd.ActorID(),
		target,
		movement.ActionReturned,
		cmd.Notes(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = ledger.Append(ctx, returned); err != nil {
		return nil, err
	}

	if err = itemRepo.Update(ctx, it); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.audit.emit(ctx, ports.AuditOperationReturn, it, cmd.ActorID())

	return returned, nil
}
