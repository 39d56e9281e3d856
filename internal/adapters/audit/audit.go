// Package audit defines the change-notification sink contract.
//
// The sink is an external collaborator with a deliberately weak contract:
// notifications are best-effort, delivery order across workers is not
// guaranteed, and a sink failure is visible only in the sink's own
// diagnostics. Nothing in the engine may depend on a notification arriving.
package audit

import (
	"context"
	"sync"

	"juryd/internal/domain/model"
	"juryd/pkg/logger"
)

// Sink receives best-effort change notifications.
type Sink interface {
	Notify(ctx context.Context, e model.AuditEntry) error
}

// LogSink writes audit entries to the structured log. It is the default
// sink when no external audit system is wired in.
type LogSink struct {
	log logger.Logger
}

// NewLogSink creates a sink writing to a named logger.
func NewLogSink(log logger.Logger) *LogSink {
	if log == nil {
		log = logger.Get().Named("audit")
	}
	return &LogSink{log: log}
}

// Notify logs the entry. It never fails.
func (s *LogSink) Notify(ctx context.Context, e model.AuditEntry) error {
	s.log.Info(ctx, "audit",
		logger.String("actor", e.Actor),
		logger.String("action", string(e.Action)),
		logger.String("target_type", e.TargetType),
		logger.String("target_id", e.TargetID),
		logger.Any("payload", e.Payload),
	)
	return nil
}

// MemorySink records entries in memory for tests and the /stats endpoint.
type MemorySink struct {
	mu      sync.RWMutex
	entries []model.AuditEntry
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Notify appends the entry.
func (s *MemorySink) Notify(_ context.Context, e model.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

// Entries returns a copy of everything received so far.
func (s *MemorySink) Entries() []model.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.AuditEntry(nil), s.entries...)
}

// Len returns the number of entries received.
func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
