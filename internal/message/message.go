// internal/message/message.go
//
// ApoConsult – Messaging: webhook transport for contact submissions.
//
// Context
//   The contact workflow hands every valid submission to a contact.Transport.
//   Webhook is the production implementation: it POSTs a JSON document to a
//   forms relay (CRM inbox, mail bridge, or similar) and classifies the
//   outcome so the workflow can decide what the user sees.
//
//     •  2xx                    → delivered.
//     •  4xx (except 408, 429)  → rejected, not retryable.
//     •  5xx (but 501), 408, 429, network → retried with back-off, then retryable
//                                 failure.
//
//   Retries are handled by hashicorp/go-retryablehttp.  Every attempt of one
//   submission carries the same Idempotency-Key so the relay can de-dupe.
//   Nothing is stored locally.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package message

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/yanizio/apoconsult/internal/config"
	"github.com/yanizio/apoconsult/internal/contact"
	"github.com/yanizio/apoconsult/internal/metrics"
)

// Compile-time assertion: *Webhook satisfies contact.Transport.
var _ contact.Transport = (*Webhook)(nil)

// WebhookConfig configures a Webhook.  Zero RetryMax disables retries.
type WebhookConfig struct {
	Endpoint   string
	Token      string        // sent as "Authorization: Bearer <token>" when set
	RetryMax   int           // extra attempts after the first
	RetryWait  time.Duration // minimum back-off between attempts
	AttemptTTL time.Duration // per-attempt HTTP timeout
}

// Webhook delivers submissions over HTTP.
type Webhook struct {
	cfg    WebhookConfig
	client *retryablehttp.Client
	log    *zap.SugaredLogger
	now    func() time.Time
}

// Payload is the JSON document posted to the relay.
type Payload struct {
	Reference   string    `json:"reference"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewWebhook builds a Webhook.  log may be nil.
func NewWebhook(cfg WebhookConfig, log *zap.SugaredLogger) *Webhook {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 250 * time.Millisecond
	}
	if cfg.AttemptTTL <= 0 {
		cfg.AttemptTTL = 5 * time.Second
	}

	cli := retryablehttp.NewClient()
	cli.RetryMax = cfg.RetryMax
	cli.RetryWaitMin = cfg.RetryWait
	cli.RetryWaitMax = 8 * cfg.RetryWait
	cli.HTTPClient.Timeout = cfg.AttemptTTL
	cli.Logger = leveled{log}
	cli.CheckRetry = retryPolicy
	cli.ErrorHandler = retryablehttp.PassthroughErrorHandler
	cli.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		metrics.WebhookAttemptsTotal.WithLabelValues(statusClass(resp.StatusCode)).Inc()
	}

	return &Webhook{cfg: cfg, client: cli, log: log, now: time.Now}
}

// Send posts s to the configured endpoint.
func (w *Webhook) Send(ctx context.Context, s contact.Submission) error {
	p := Payload{
		Reference:   uuid.NewString(),
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		Subject:     s.Subject,
		Message:     s.Message,
		SubmittedAt: w.now().UTC(),
	}
	body, err := json.Marshal(p)
	if err != nil {
		return &contact.TransportError{Retryable: false, Err: fmt.Errorf("encode payload: %w", err)}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, w.cfg.Endpoint, body)
	if err != nil {
		return &contact.TransportError{Retryable: false, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", p.Reference)
	if w.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+w.cfg.Token)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Cancellation and deadline are reported as-is so the
			// controller can tell them apart from relay failures.
			return ctx.Err()
		}
		metrics.WebhookAttemptsTotal.WithLabelValues("network").Inc()
		return &contact.TransportError{Retryable: true, Err: fmt.Errorf("post %s: %w", w.cfg.Endpoint, err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		w.log.Debugw("webhook delivered", "reference", p.Reference, "status", resp.StatusCode)
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 &&
		resp.StatusCode != http.StatusRequestTimeout &&
		resp.StatusCode != http.StatusTooManyRequests:
		return &contact.TransportError{Retryable: false, Err: fmt.Errorf("relay rejected submission: %s", resp.Status)}
	default:
		return &contact.TransportError{Retryable: true, Err: fmt.Errorf("relay unavailable: %s", resp.Status)}
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// retryPolicy adds 408 to the library's defaults (network errors, 429, 5xx).
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() == nil && err == nil && resp != nil && resp.StatusCode == http.StatusRequestTimeout {
		return true, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// leveled adapts a sugared zap logger to retryablehttp.LeveledLogger.
type leveled struct{ s *zap.SugaredLogger }

func (l leveled) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l leveled) Info(msg string, kv ...interface{})  { l.s.Debugw(msg, kv...) }
func (l leveled) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l leveled) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }

// ForConfig returns a Webhook when cfg names an endpoint, otherwise the
// simulated transport with the configured delay.  Both hosts use it so the
// page and the terminal UI deliver the same way.
func ForConfig(cfg *config.Config, log *zap.SugaredLogger) contact.Transport {
	t := cfg.Transport
	if t.Endpoint == "" {
		return contact.SimulatedTransport{Delay: cfg.Contact.SendDelay}
	}
	return NewWebhook(WebhookConfig{
		Endpoint:   t.Endpoint,
		Token:      t.Token,
		RetryMax:   t.RetryMax,
		RetryWait:  t.RetryWait,
		AttemptTTL: t.AttemptTTL,
	}, log)
}
