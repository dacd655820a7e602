package audit

import (
	"context"
	"time"

	auditdomain "github.com/clubops/matchday-ops/internal/domain/audit"
	"github.com/clubops/matchday-ops/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

// AsyncSink decouples audit delivery from the calling request: Append
// returns immediately and the wrapped sink runs on its own goroutine with
// a fresh deadline. Appends are already best-effort, so a delivery failure
// is only logged.
type AsyncSink struct {
	inner   auditdomain.Sink
	logger  *logging.Logger
	timeout time.Duration
	wg      conc.WaitGroup
}

func NewAsyncSink(inner auditdomain.Sink, timeout time.Duration, logger *logging.Logger) *AsyncSink {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &AsyncSink{
		inner:   inner,
		logger:  logger,
		timeout: timeout,
	}
}

func (s *AsyncSink) Append(ctx context.Context, event auditdomain.Event) error {
	// The request context is not reused: the caller may return (and cancel)
	// before delivery finishes.
	s.wg.Go(func() {
		deliveryCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.inner.Append(deliveryCtx, event); err != nil {
			s.logger.WarnContext(deliveryCtx, "async audit delivery failed",
				"action", event.Action, "club_id", event.ClubID, "error", err)
		}
	})

	return nil
}

// Close waits for in-flight deliveries; call it during shutdown.
func (s *AsyncSink) Close() {
	s.wg.Wait()
}
