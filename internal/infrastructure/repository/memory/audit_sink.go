package memory

import (
	"context"
	"sync"

	"github.com/clubops/matchday-ops/internal/domain/audit"
)

type AuditSink struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewAuditSink() *AuditSink {
	return &AuditSink{}
}

func (r *AuditSink) Append(_ context.Context, event audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
	return nil
}

func (r *AuditSink) Events() []audit.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]audit.Event, len(r.events))
	copy(out, r.events)
	return out
}
