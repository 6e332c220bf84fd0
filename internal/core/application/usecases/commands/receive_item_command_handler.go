package commands

import (
	"context"
	"errors"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/pkg/errs"
)

// ReceiveItemCommandHandler handles formal acceptance of custody.
// Receive is recorded in the ledger but is a lower-visibility event: unlike the
// other transfer operations it emits no audit record.
type ReceiveItemCommandHandler struct {
	uowFactory UoWFactory
}

// NewReceiveItemCommandHandler creates a handler for custody acceptance.
func NewReceiveItemCommandHandler(uowFactory UoWFactory) ReceiveItemCommandHandler {
	return ReceiveItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the custody acceptance.
// Re-reads the authoritative holder under the per-item lock, rejects non-holders
// with NotAuthorized and archived items with AlreadyArchived, then appends a
// Received movement (from = to = actor) and acknowledges the inbound hand-off.
// Returns the appended movement.
func (h ReceiveItemCommandHandler) Handle(ctx context.Context, cmd ReceiveItemCommand) (*movement.Movement, error) {
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
		return nil, errs.NewAlreadyArchivedError(it.ID().String(), cmd.ActorID().String(), "Receive")
	}

	if !it.IsHeldBy(cmd.ActorID()) {
		return nil, errs.NewNotAuthorizedError(it.ID().String(), cmd.ActorID().String(), "Receive")
	}

	// acknowledge the hand-off that put the item into the actor's inbox, if any
	last, err := ledger.LatestForItem(ctx, it.ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	if last != nil && last.Action().IsHandOff() && last.To().IsEqual(cmd.ActorID()) && !last.IsRead() {
		if err = ledger.MarkRead(ctx, last.ID()); err != nil {
			return nil, err
		}
	}

	if err = it.AcknowledgeReceipt(); err != nil {
		return nil, err
	}

	received, err := movement.NewMovement(
		kernel.NewUUID(),
		it.ID(),
		cmd.ActorID(),
		cmd.ActorID(),
		movement.ActionReceived,
		"",
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = ledger.Append(ctx, received); err != nil {
		return nil, err
	}

	if err = itemRepo.Update(ctx, it); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return received, nil
}
