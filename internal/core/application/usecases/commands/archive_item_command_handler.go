package commands

import (
	"context"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/movement"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"
)

// ArchiveItemCommandHandler handles closing the custody lifecycle of an item.
type ArchiveItemCommandHandler struct {
	uowFactory UoWFactory
	locations  ports.ArchiveLocationRegistry
	audit      auditEmitter
}

// NewArchiveItemCommandHandler creates a handler for archiving items.
func NewArchiveItemCommandHandler(
	uowFactory UoWFactory,
	locations ports.ArchiveLocationRegistry,
	sink ports.AuditSink,
	directory ports.UserDirectory,
) ArchiveItemCommandHandler {
	return ArchiveItemCommandHandler{
		uowFactory: uowFactory,
		locations:  locations,
		audit:      newAuditEmitter(sink, directory),
	}
}

// Handle processes the archival.
// Archiving is terminal: the item's status becomes Archived and every later
// transfer operation on it fails with AlreadyArchived. The archive location
// must be known to the registry.
func (h ArchiveItemCommandHandler) Handle(ctx context.Context, cmd ArchiveItemCommand) (*movement.Movement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	known, err := h.locations.LocationExists(ctx, cmd.ArchiveLocationID())
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, errs.NewObjectNotFoundError("archiveLocationId", cmd.ArchiveLocationID())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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
		return nil, errs.NewAlreadyArchivedError(it.ID().String(), cmd.ActorID().String(), "Archive")
	}

	if !it.IsHeldBy(cmd.ActorID()) {
		return nil, errs.NewNotAuthorizedError(it.ID().String(), cmd.ActorID().String(), "Archive")
	}

	if err = it.Archive(cmd.ArchiveLocationID(), cmd.PhysicalNote(), cmd.AttachmentRef()); err != nil {
		return nil, err
	}

	archived, err := movement.NewMovement(
		kernel.NewUUID(),
		it.ID(),
		cmd.ActorID(),
		cmd.ActorID(),
		movement.ActionArchived,
		cmd.Notes(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = ledger.Append(ctx, archived); err != nil {
		return nil, err
	}

	if err = itemRepo.Update(ctx, it); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.audit.emit(ctx, ports.AuditOperationArchive, it, cmd.ActorID())

	return archived, nil
}
