package audit

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	auditdomain "github.com/clubops/matchday-ops/internal/domain/audit"
	"github.com/clubops/matchday-ops/internal/platform/logging"
	"github.com/clubops/matchday-ops/internal/platform/resilience"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

var errWebhookTransient = crerr.New("audit webhook transient failure")

type WebhookSinkConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookSink posts audit events to an external collector. It is wrapped
// by AsyncSink in the serving path so collector latency never sits on a
// request.
type WebhookSink struct {
	client         *fasthttp.Client
	url            string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookSink(cfg WebhookSinkConfig, logger *logging.Logger) *WebhookSink {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookSink{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		url:            strings.TrimSpace(cfg.URL),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (s *WebhookSink) Append(ctx context.Context, event auditdomain.Event) error {
	if s.circuitEnabled {
		if err := s.breaker.Allow(); err != nil {
			s.logger.WarnContext(ctx, "audit webhook circuit breaker rejected request", "state", s.breaker.State())
			return fmt.Errorf("audit webhook is temporarily unavailable: %w", err)
		}
	}

	endpoint, err := validateHTTPURL(s.url)
	if err != nil {
		return crerr.Wrap(err, "invalid AUDIT_WEBHOOK_URL")
	}

	body, err := buildWebhookBody(event)
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.SetBody(body)

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		callErr := fmt.Errorf("%w: post audit event action=%s: %v", errWebhookTransient, event.Action, err)
		s.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		raw := previewForLog(resp.Body(), 4096)
		if isWebhookRetryableStatus(status) {
			callErr := fmt.Errorf("%w: post audit event status=%d action=%s body=%s", errWebhookTransient, status, event.Action, raw)
			s.recordCircuitResult(callErr)
			return callErr
		}
		callErr := fmt.Errorf("post audit event status=%d action=%s body=%s", status, event.Action, raw)
		s.recordCircuitResult(callErr)
		return callErr
	}

	s.logger.DebugContext(ctx, "audit event delivered", "action", event.Action, "club_id", event.ClubID)
	s.recordCircuitResult(nil)
	return nil
}

func buildWebhookBody(event auditdomain.Event) ([]byte, error) {
	payload, err := sonic.Marshal(event.Payload)
	if err != nil {
		return nil, crerr.Wrap(err, "marshal audit payload")
	}

	envelope := map[string]any{
		"club_id":     event.ClubID,
		"actor_id":    event.ActorID,
		"action":      event.Action,
		"payload":     json.RawMessage(payload),
		"recorded_at": event.RecordedAt.UTC().Format(time.RFC3339Nano),
	}
	encoded, err := sonic.Marshal(envelope)
	if err != nil {
		return nil, crerr.Wrap(err, "marshal audit envelope")
	}
	return encoded, nil
}

// previewForLog truncates a body for warn logs without allocating per call.
func previewForLog(body []byte, max int) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if max > 0 && len(body) > max {
		_, _ = buf.Write(body[:max])
		_, _ = buf.WriteString("...(truncated)")
	} else {
		_, _ = buf.Write(body)
	}

	return buf.String()
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}

func (s *WebhookSink) recordCircuitResult(err error) {
	if !s.circuitEnabled || s.breaker == nil {
		return
	}
	if err == nil {
		s.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errWebhookTransient) {
		s.breaker.RecordFailure()
		return
	}
	s.breaker.RecordSuccess()
}

func isWebhookRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}
