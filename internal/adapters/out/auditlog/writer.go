package auditlog

import (
	"context"
	"time"

	"custody/internal/core/ports"

	"gorm.io/gorm"
)

// Writer persists a single audit record. The async sink retries through the
// same interface, so implementations must tolerate repeated delivery of the
// same logical record.
type Writer interface {
	Write(ctx context.Context, rec ports.AuditRecord) error
}

var _ Writer = &GormAuditWriter{}

// GormAuditWriter appends audit records to the audit_log table.
type GormAuditWriter struct {
	db *gorm.DB
}

func NewGormAuditWriter(db *gorm.DB) *GormAuditWriter {
	return &GormAuditWriter{db: db}
}

func (w *GormAuditWriter) Write(ctx context.Context, rec ports.AuditRecord) error {
	dto := fromRecord(rec, time.Now().UTC())
	return w.db.WithContext(ctx).Create(&dto).Error
}
