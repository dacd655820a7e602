package audit

import (
	"context"
	"time"
)

const ActionHandoverExecuted = "handover.executed"

// Event is one accountability record emitted after a side-effecting
// operation completes.
type Event struct {
	ClubID     string
	ActorID    string
	Action     string
	Payload    map[string]any
	RecordedAt time.Time
}

// Sink receives audit events. Appends are best-effort: a sink failure must
// never flip the outcome of the operation that produced the event.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
