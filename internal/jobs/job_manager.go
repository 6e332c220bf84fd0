// Package jobs hosts the scheduled background work of the custody engine:
// redelivering parked audit records and watching for hand-offs that sit
// unacknowledged past their threshold.
package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	auditRetryJob   *AuditRetryJob
	staleHandOffJob *StaleHandOffJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	flusher AuditFlusher,
	db *gorm.DB,
	staleThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		auditRetryJob:   NewAuditRetryJob(flusher, logger),
		staleHandOffJob: NewStaleHandOffJob(db, staleThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.auditRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start audit retry job: %w", err)
	}

	if err := jm.staleHandOffJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.auditRetryJob.Stop()
		return fmt.Errorf("failed to start stale hand-off job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.auditRetryJob.Stop()
	jm.staleHandOffJob.Stop()
}
