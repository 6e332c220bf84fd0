package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// AuditFlusher redelivers parked audit records. Implemented by the async
// audit sink.
type AuditFlusher interface {
	Flush(ctx context.Context) error
	PendingCount() int
}

// AuditRetryJob periodically redelivers audit records whose first delivery
// failed. Runs every 30 seconds; a record that keeps failing stays parked and
// is retried on the next tick.
type AuditRetryJob struct {
	flusher AuditFlusher
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAuditRetryJob creates a new job for retrying audit delivery.
func NewAuditRetryJob(flusher AuditFlusher, logger *slog.Logger) *AuditRetryJob {
	return &AuditRetryJob{
		flusher: flusher,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "audit_retry_job"),
	}
}

// Start begins the audit retry job to run every 30 seconds.
func (j *AuditRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		pending := j.flusher.PendingCount()
		if pending == 0 {
			return
		}

		if err := j.flusher.Flush(ctx); err != nil {
			j.logger.WarnContext(ctx, "Audit retry left records pending",
				"pending", j.flusher.PendingCount(), "error", err)
			return
		}
		j.logger.InfoContext(ctx, "Audit retry delivered parked records", "delivered", pending)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Audit retry job started (running every 30 seconds)")
	return nil
}

// Stop stops the audit retry job.
func (j *AuditRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Audit retry job stopped")
}
