package ports

import (
	"context"
	"time"

	"custody/internal/core/domain/model/kernel"
)

// Audit operation kinds emitted by state-changing custody operations.
// Receive is recorded in the ledger but is a lower-visibility event and emits
// no audit record.
const (
	AuditOperationCreate  = "Create"
	AuditOperationForward = "Forward"
	AuditOperationReturn  = "Return"
	AuditOperationArchive = "Archive"
)

// AuditRecord is the notification sent to the external audit sink on every
// state-changing custody operation. It identifies the operation kind, the item
// reference, and the acting user, which together correlate with the error
// context carried by the errs package.
type AuditRecord struct {
	Operation       string
	ItemID          kernel.UUID
	ReferenceNumber kernel.ReferenceNumber
	ActorID         kernel.UUID

	// ActorName is resolved through the UserDirectory for display; it is never
	// used for validation.
	ActorName string

	OccurredAt time.Time
}

// AuditSink receives audit records off the critical path. Implementations queue
// asynchronously and deliver best effort: a delayed or lost delivery must never
// fail the originating operation, only produce a warning.
type AuditSink interface {
	Record(ctx context.Context, rec AuditRecord)
}

// UserDirectory resolves actor identities to display names. Used for audit and
// display enrichment only, never for validation; an unknown user resolves to an
// ObjectNotFoundError which callers may ignore for display purposes.
type UserDirectory interface {
	ResolveUser(ctx context.Context, id kernel.UUID) (string, error)
}

// ArchiveLocationRegistry validates final storage targets. Archive consults it
// before accepting a location reference.
type ArchiveLocationRegistry interface {
	LocationExists(ctx context.Context, id kernel.UUID) (bool, error)
}

// Actor roles understood by the permission gate.
const (
	RoleAdmin    = "admin"
	RoleOfficer  = "officer"
	RoleReadOnly = "readonly"
)

// PermissionGate authorizes create/update/delete per actor role. It is enforced
// by the presentation layer before invoking mutating operations; the engine
// itself only enforces holder-based authorization.
type PermissionGate interface {
	CanCreate(role string) bool
	CanUpdate(role string) bool
	CanDelete(role string) bool
}
