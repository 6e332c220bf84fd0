// Package auditlog delivers audit records of custody operations to durable
// storage. Delivery is asynchronous and best effort: the originating operation
// never waits on the sink and never fails because of it.
package auditlog

import (
	"time"

	"custody/internal/core/ports"

	"github.com/google/uuid"
)

// AuditEntryDTO represents the database structure of a delivered audit record.
// Rows are append-only.
type AuditEntryDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Operation       string    `gorm:"index"`
	ItemID          uuid.UUID `gorm:"type:uuid;index"`
	ReferenceNumber string    `gorm:"type:varchar(64)"`
	ActorID         uuid.UUID `gorm:"type:uuid;index"`
	ActorName       string
	OccurredAt      time.Time `gorm:"index"`
	RecordedAt      time.Time
}

// TableName specifies the database table name for audit entries.
func (AuditEntryDTO) TableName() string {
	return "audit_log"
}

func fromRecord(rec ports.AuditRecord, recordedAt time.Time) AuditEntryDTO {
	return AuditEntryDTO{
		ID:              uuid.New(),
		Operation:       rec.Operation,
		ItemID:          rec.ItemID.Bytes(),
		ReferenceNumber: rec.ReferenceNumber.String(),
		ActorID:         rec.ActorID.Bytes(),
		ActorName:       rec.ActorName,
		OccurredAt:      rec.OccurredAt,
		RecordedAt:      recordedAt,
	}
}
