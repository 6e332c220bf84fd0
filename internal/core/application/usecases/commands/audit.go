package commands

import (
	"context"
	"time"

	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
)

// auditEmitter sends one audit record per state-changing operation to the
// external sink, after the transaction committed. Emission is best effort and
// off the critical path: a nil sink or a failed name lookup never fails the
// operation.
type auditEmitter struct {
	sink      ports.AuditSink
	directory ports.UserDirectory
}

func newAuditEmitter(sink ports.AuditSink, directory ports.UserDirectory) auditEmitter {
	return auditEmitter{sink: sink, directory: directory}
}

// emit records the operation against the audit sink, enriching the record with
// the actor's display name when the directory can resolve it.
func (e auditEmitter) emit(ctx context.Context, operation string, it *item.TrackedItem, actor kernel.UUID) {
	if e.sink == nil {
		return
	}

	var actorName string
	if e.directory != nil {
		if name, err := e.directory.ResolveUser(ctx, actor); err == nil {
			actorName = name
		}
	}

	e.sink.Record(ctx, ports.AuditRecord{
		Operation:       operation,
		ItemID:          it.ID(),
		ReferenceNumber: it.ReferenceNumber(),
		ActorID:         actor,
		ActorName:       actorName,
		OccurredAt:      time.Now().UTC(),
	})
}
