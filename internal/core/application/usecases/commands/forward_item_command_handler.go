package commands

import (
	"context"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"
)

// ForwardItemCommandHandler handles hand-offs of custody to another actor.
type ForwardItemCommandHandler struct {
	uowFactory UoWFactory
	audit      auditEmitter
}

// NewForwardItemCommandHandler creates a handler for forwarding items.
func NewForwardItemCommandHandler(
	uowFactory UoWFactory,
	sink ports.AuditSink,
	directory ports.UserDirectory,
) ForwardItemCommandHandler {
	return ForwardItemCommandHandler{
		uowFactory: uowFactory,
		audit:      newAuditEmitter(sink, directory),
	}
}

// Handle processes the hand-off.
// The holder check runs against the authoritative state under the per-item
// lock, so two racing forwards of the same item serialize and the loser gets
// NotAuthorized. On success the item's holder becomes the target and a
// Forwarded movement is appended; returns the appended movement.
func (h ForwardItemCommandHandler) Handle(ctx context.Context, cmd ForwardItemCommand) (*movement.Movement, error) {
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
		return nil, errs.NewAlreadyArchivedError(it.ID().String(), cmd.ActorID().String(), "Forward")
	}

	if !it.IsHeldBy(cmd.ActorID()) {
		return nil, errs.NewNotAuthorizedError(it.ID().String(), cmd.ActorID().String(), "Forward")
	}

	if err = it.TransferTo(cmd.TargetID()); err != nil {
		return nil, err
	}

	forwarded, err := movement.NewMovement(
		kernel.NewUUID(),
		it.ID(),
		cmd.ActorID(),
		cmd.TargetID(),
		movement.ActionForwarded,
		cmd.Notes(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = ledger.Append(ctx, forwarded); err != nil {
		return nil, err
	}

	if err = itemRepo.Update(ctx, it); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.audit.emit(ctx, ports.AuditOperationForward, it, cmd.ActorID())

	return forwarded, nil
}
