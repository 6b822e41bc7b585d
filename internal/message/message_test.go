// internal/message/message_test.go
//
// Unit-tests for the webhook transport.
//
// Each case stands up an httptest.Server that scripts the relay's answers
// and checks how Webhook classifies them: delivered, rejected (4xx), or
// retryable (5xx after retries).
//
// Run: go test ./internal/message -v

package message

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanizio/apoconsult/internal/config"
	"github.com/yanizio/apoconsult/internal/contact"
)

func sample() contact.Submission {
	return contact.Submission{
		Name:    "Jo",
		Email:   "jo@example.com",
		Subject: "general",
		Message: "This message is long enough.",
	}
}

func TestWebhook_Delivered(t *testing.T) {
	var got Payload
	var auth, key, ctype string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		key = r.Header.Get("Idempotency-Key")
		ctype = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	wh := NewWebhook(WebhookConfig{Endpoint: srv.URL, Token: "s3cret"}, nil)
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	wh.now = func() time.Time { return fixed }

	require.NoError(t, wh.Send(context.Background(), sample()))

	require.Equal(t, "application/json", ctype)
	require.Equal(t, "Bearer s3cret", auth)
	require.Equal(t, got.Reference, key)
	require.Equal(t, "Jo", got.Name)
	require.Equal(t, "general", got.Subject)
	require.Empty(t, got.Phone)
	require.True(t, fixed.Equal(got.SubmittedAt))
}

func TestWebhook_RejectedIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "bad payload", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	wh := NewWebhook(WebhookConfig{Endpoint: srv.URL, RetryMax: 3, RetryWait: time.Millisecond}, nil)
	err := wh.Send(context.Background(), sample())

	var te *contact.TransportError
	require.ErrorAs(t, err, &te)
	require.False(t, te.Retryable)
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestWebhook_ServerErrorRetriedThenFails(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	wh := NewWebhook(WebhookConfig{Endpoint: srv.URL, RetryMax: 2, RetryWait: time.Millisecond}, nil)
	err := wh.Send(context.Background(), sample())

	var te *contact.TransportError
	require.ErrorAs(t, err, &te)
	require.True(t, te.Retryable)
	require.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestWebhook_RequestTimeoutIsRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusRequestTimeout)
	}))
	defer srv.Close()

	wh := NewWebhook(WebhookConfig{Endpoint: srv.URL, RetryMax: 2, RetryWait: time.Millisecond}, nil)
	err := wh.Send(context.Background(), sample())

	var te *contact.TransportError
	require.ErrorAs(t, err, &te)
	require.True(t, te.Retryable)
	require.EqualValues(t, 3, atomic.LoadInt32(&hits), "408 is retried like 5xx")
}

func TestWebhook_RecoversAfterTransientError(t *testing.T) {
	var hits int32
	keys := make(chan string, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get("Idempotency-Key")
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewWebhook(WebhookConfig{Endpoint: srv.URL, RetryMax: 2, RetryWait: time.Millisecond}, nil)
	require.NoError(t, wh.Send(context.Background(), sample()))
	require.Equal(t, <-keys, <-keys, "retries reuse the idempotency key")
}

func TestWebhook_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	wh := NewWebhook(WebhookConfig{Endpoint: srv.URL}, nil)
	err := wh.Send(ctx, sample())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWebhook_WithController(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	surf := &nopSurface{}
	ctrl := contact.New(surf, NewWebhook(WebhookConfig{Endpoint: srv.URL}, nil), contact.Options{})
	defer ctrl.Close()

	err := ctrl.Submit(context.Background(), contact.Values{
		contact.InputName:    "Jo",
		contact.InputEmail:   "jo@example.com",
		contact.InputSubject: "general",
		contact.InputMessage: "This message is long enough.",
	})
	var te *contact.TransportError
	require.ErrorAs(t, err, &te)
	require.True(t, te.Retryable)
	require.Equal(t, contact.SeverityError, surf.last.Severity)
}

// nopSurface keeps only the last notification.
type nopSurface struct{ last contact.Notification }

func (*nopSurface) FieldValue(string) string                   { return "" }
func (*nopSurface) SetFieldError(contact.FieldID, string)      {}
func (*nopSurface) ClearFieldErrors()                          {}
func (*nopSurface) ClearFields()                               {}
func (*nopSurface) SetSubmitting(bool, string)                 {}
func (s *nopSurface) ShowNotification(n contact.Notification) { s.last = n }
func (*nopSurface) DismissNotification(string)                 {}
func (*nopSurface) SetModalVisible(bool)                       {}

func TestForConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Contact.SendDelay = 10 * time.Millisecond
	require.Equal(t, contact.SimulatedTransport{Delay: 10 * time.Millisecond}, ForConfig(cfg, nil))

	cfg.Transport.Endpoint = "https://relay.example.com/forms"
	cfg.Transport.RetryMax = 3
	wh, ok := ForConfig(cfg, nil).(*Webhook)
	require.True(t, ok)
	require.Equal(t, 3, wh.client.RetryMax)
}
