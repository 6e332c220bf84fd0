package auditlog

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"custody/internal/core/ports"
)

const defaultBufferSize = 256

var _ ports.AuditSink = &AsyncSink{}

// AsyncSink queues audit records on a buffered channel and delivers them from
// a background dispatcher. Records that cannot be queued or written are parked
// for retry; Flush drains the parked records and is invoked periodically by
// the audit retry job.
type AsyncSink struct {
	writer Writer
	inbox  chan ports.AuditRecord
	logger *slog.Logger

	mu     sync.Mutex
	parked []ports.AuditRecord

	closeMu  sync.RWMutex
	closed   bool
	stopOnce sync.Once
	done     chan struct{}
}

// NewAsyncSink creates a sink with the given writer. A bufferSize of zero or
// less falls back to the default. Call Start before recording.
func NewAsyncSink(writer Writer, bufferSize int, logger *slog.Logger) *AsyncSink {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	return &AsyncSink{
		writer: writer,
		inbox:  make(chan ports.AuditRecord, bufferSize),
		logger: logger.With("component", "audit_sink"),
		done:   make(chan struct{}),
	}
}

// Start launches the dispatcher goroutine.
func (s *AsyncSink) Start() {
	go s.dispatch()
}

// Record queues an audit record without blocking the caller. When the buffer
// is full, or the sink is already closed, the record is parked for the retry
// path instead of being lost.
func (s *AsyncSink) Record(ctx context.Context, rec ports.AuditRecord) {
	s.closeMu.RLock()
	defer s.closeMu.RUnlock()

	if s.closed {
		s.park(rec)
		s.logger.WarnContext(ctx, "Audit sink closed, parking record",
			"operation", rec.Operation, "itemId", rec.ItemID.String())
		return
	}

	select {
	case s.inbox <- rec:
	default:
		s.park(rec)
		s.logger.WarnContext(ctx, "Audit buffer full, parking record for retry",
			"operation", rec.Operation, "itemId", rec.ItemID.String())
	}
}

// Flush attempts to deliver every parked record. Records that fail again stay
// parked. Returns the joined delivery errors, nil when everything went through.
func (s *AsyncSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	pending := s.parked
	s.parked = nil
	s.mu.Unlock()

	var errList []error
	for _, rec := range pending {
		if err := s.writer.Write(ctx, rec); err != nil {
			s.park(rec)
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}

// PendingCount reports how many records await retry.
func (s *AsyncSink) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.parked)
}

// Close stops the dispatcher after draining the queue. Records arriving after
// Close are parked, not delivered; callers that care about parked records
// should Flush.
func (s *AsyncSink) Close() {
	s.stopOnce.Do(func() {
		s.closeMu.Lock()
		s.closed = true
		s.closeMu.Unlock()

		close(s.inbox)
		<-s.done
	})
}

func (s *AsyncSink) dispatch() {
	defer close(s.done)

	// Delivery deliberately ignores the caller's context: the originating
	// request may be long gone by the time the record is written.
	ctx := context.Background()

	for rec := range s.inbox {
		if err := s.writer.Write(ctx, rec); err != nil {
			s.park(rec)
			s.logger.WarnContext(ctx, "Audit delivery failed, parking record for retry",
				"operation", rec.Operation, "itemId", rec.ItemID.String(), "error", err)
		}
	}
}

func (s *AsyncSink) park(rec ports.AuditRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parked = append(s.parked, rec)
}
