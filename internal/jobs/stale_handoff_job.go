package jobs

import (
	"context"
	"log/slog"
	"time"

	"custody/internal/core/domain/model/movement"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StaleHandOffJob watches for forwarded items whose hand-off has not been
// acknowledged within the threshold. Runs every minute and logs a warning per
// stale hand-off so operators can chase the receiving actor. The job never
// mutates custody state.
type StaleHandOffJob struct {
	db        *gorm.DB
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleHandOffJob creates a new job for detecting unacknowledged hand-offs.
func NewStaleHandOffJob(db *gorm.DB, threshold time.Duration, logger *slog.Logger) *StaleHandOffJob {
	return &StaleHandOffJob{
		db:        db,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_handoff_job"),
	}
}

// Start begins the stale hand-off job to run every minute.
func (j *StaleHandOffJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if err := j.scan(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale hand-off scan failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale hand-off job started (running every minute)",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the stale hand-off job.
func (j *StaleHandOffJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale hand-off job stopped")
}

// scan finds items whose newest ledger entry is an unacknowledged forward
// older than the threshold.
func (j *StaleHandOffJob) scan(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.threshold)

	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT m.item_id, m.to_user_id, m.date
		FROM movements m
		WHERE m.action = @action
		  AND m.is_read = FALSE
		  AND m.date < @cutoff
		  AND NOT EXISTS (
			SELECT 1 FROM movements newer
			WHERE newer.item_id = m.item_id
			  AND (newer.date > m.date OR (newer.date = m.date AND newer.seq > m.seq))
		  )`,
		map[string]any{
			"action": int(movement.ActionForwarded),
			"cutoff": cutoff,
		}).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var itemID, toUserID uuid.UUID
		var date time.Time
		if err := rows.Scan(&itemID, &toUserID, &date); err != nil {
			return err
		}

		j.logger.WarnContext(ctx, "Hand-off awaiting acknowledgement past threshold",
			"itemId", itemID.String(), "pendingActor", toUserID.String(),
			"forwardedAt", date, "age", time.Since(date).String())
	}

	return rows.Err()
}
