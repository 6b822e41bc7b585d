// internal/contact/controller.go
//
// ApoConsult – Contact workflow: submission controller.
//
// Context
//   Controller orchestrates one submit attempt end to end:
//
//     Idle → Validating → Invalid → Idle
//                       → Sending → Succeeded → Idle
//                                 → Failed    → Idle
//
//   Invalid input is rendered inline and never logged as a failure.  A valid
//   submission disables the submit control, goes out through the Transport
//   under a timeout, and then either shows the success banner, clears the
//   form, and closes the modal, or shows an error banner and leaves the input
//   in place so the user can retry.
//
//   Only one attempt may be in flight.  A second Submit while Sending returns
//   ErrSubmissionInFlight and leaves the surface untouched.  Cancel aborts the
//   in-flight send.
//
// Instrumentation
//   •  DEBUG  – validation failures (field list only).
//   •  INFO   – delivered submissions.
//   •  WARN   – delivery failures and cancellations.
//
//------------------------------------------------------------------------------

package contact

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/apoconsult/internal/metrics"
)

// State is the controller lifecycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateSending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateSending:
		return "sending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Defaults used when Options leaves a field zero.
const (
	DefaultSubmitLabel    = "Send Message"
	DefaultPendingLabel   = "Sending..."
	DefaultTimeout        = 10 * time.Second
	DefaultSuccessMessage = "Thank you for your message! We'll get back to you soon."
	DefaultFailureMessage = "Sorry, your message could not be sent.  Please try again."
	DefaultRejectMessage  = "Sorry, your message was rejected.  Please check your details and try again."
	DefaultCancelMessage  = "Submission canceled."
)

// Options tunes a Controller.  Zero values fall back to the defaults above.
type Options struct {
	SubmitLabel     string
	PendingLabel    string
	Timeout         time.Duration
	NotificationTTL time.Duration

	SuccessMessage string
	FailureMessage string
	RejectMessage  string

	Logger *zap.SugaredLogger

	// OnTransition, when set, observes every state change.  It runs with the
	// controller lock held and must not call back into the Controller.
	OnTransition func(from, to State)
}

func (o *Options) applyDefaults() {
	if o.SubmitLabel == "" {
		o.SubmitLabel = DefaultSubmitLabel
	}
	if o.PendingLabel == "" {
		o.PendingLabel = DefaultPendingLabel
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.NotificationTTL == 0 {
		o.NotificationTTL = DefaultNotificationTTL
	}
	if o.SuccessMessage == "" {
		o.SuccessMessage = DefaultSuccessMessage
	}
	if o.FailureMessage == "" {
		o.FailureMessage = DefaultFailureMessage
	}
	if o.RejectMessage == "" {
		o.RejectMessage = DefaultRejectMessage
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}
}

// Controller drives the contact workflow for one surface.
type Controller struct {
	surface   Surface
	transport Transport
	opts      Options
	log       *zap.SugaredLogger

	modal    *Modal
	notifier *Notifier

	mu       sync.Mutex
	state    State
	cancel   context.CancelFunc
	canceled bool
}

// New wires a Controller to its surface and transport.
func New(s Surface, t Transport, opts Options) *Controller {
	opts.applyDefaults()
	return &Controller{
		surface:   s,
		transport: t,
		opts:      opts,
		log:       opts.Logger,
		modal:     NewModal(s),
		notifier:  NewNotifier(s, opts.NotificationTTL),
	}
}

// Modal returns the modal bound to the controller's surface.
func (c *Controller) Modal() *Modal { return c.modal }

// Notifier returns the notifier bound to the controller's surface.
func (c *Controller) Notifier() *Notifier { return c.notifier }

// SubmitLabel is the idle label of the submit control.
func (c *Controller) SubmitLabel() string { return c.opts.SubmitLabel }

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one attempt with the raw values collected by the host.  It
// blocks until the attempt resolves and returns nil on delivery, a
// *ValidationError for bad input, a *TransportError on delivery failure,
// ErrCanceled when Cancel or the caller's ctx aborted the send, or
// ErrSubmissionInFlight.
func (c *Controller) Submit(ctx context.Context, raw Values) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	c.transitionLocked(StateValidating)
	c.mu.Unlock()

	sub := NewSubmission(raw)
	res := Validate(sub)

	c.surface.ClearFieldErrors()
	if !res.Valid() {
		return c.reject(res)
	}
	return c.send(ctx, sub)
}

// Cancel aborts the in-flight send.  It reports false when nothing is sending.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSending || c.cancel == nil {
		return false
	}
	c.canceled = true
	c.cancel()
	return true
}

// Close cancels any in-flight send and stops notification timers.
func (c *Controller) Close() {
	c.Cancel()
	c.notifier.Close()
}

// -----------------------------------------------------------------------------
// Attempt phases
// -----------------------------------------------------------------------------

func (c *Controller) reject(res Result) error {
	fields := make([]string, 0, len(res.Errors))
	for _, fe := range res.Errors {
		c.surface.SetFieldError(fe.Field, fe.Message)
		metrics.ValidationErrorsTotal.WithLabelValues(string(fe.Field), fe.Kind.String()).Inc()
		fields = append(fields, string(fe.Field))
	}
	metrics.SubmissionsTotal.WithLabelValues(StateInvalid.String()).Inc()
	c.log.Debugw("contact form invalid", "fields", fields)

	c.finish(StateInvalid)
	return res.Err()
}

func (c *Controller) send(ctx context.Context, sub Submission) error {
	sendCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	c.mu.Lock()
	c.cancel = cancel
	c.canceled = false
	c.transitionLocked(StateSending)
	c.mu.Unlock()

	c.surface.SetSubmitting(true, c.opts.PendingLabel)

	start := time.Now()
	err := c.transport.Send(sendCtx, sub)
	metrics.SendDuration.Observe(time.Since(start).Seconds())

	c.mu.Lock()
	canceled := c.canceled
	c.cancel = nil
	c.mu.Unlock()

	// The caller going away (client disconnect, shutdown) is a cancel, not a
	// delivery failure.  Only the attempt timeout counts as failure.
	switch {
	case err == nil:
		return c.succeed(sub)
	case canceled, errors.Is(ctx.Err(), context.Canceled):
		return c.abort()
	default:
		return c.fail(err)
	}
}

func (c *Controller) succeed(sub Submission) error {
	c.mu.Lock()
	c.transitionLocked(StateSucceeded)
	c.mu.Unlock()

	c.notifier.Show(c.opts.SuccessMessage, SeveritySuccess)
	c.surface.ClearFields()
	c.surface.ClearFieldErrors()
	c.modal.Dismiss(DismissSuccess)
	c.surface.SetSubmitting(false, c.opts.SubmitLabel)

	metrics.SubmissionsTotal.WithLabelValues(StateSucceeded.String()).Inc()
	c.log.Infow("contact submission delivered", "subject", sub.Subject)

	c.finish(StateSucceeded)
	return nil
}

func (c *Controller) fail(err error) error {
	var te *TransportError
	if !errors.As(err, &te) {
		te = &TransportError{Retryable: true, Err: err}
	}

	c.mu.Lock()
	c.transitionLocked(StateFailed)
	c.mu.Unlock()

	msg := c.opts.FailureMessage
	if !te.Retryable {
		msg = c.opts.RejectMessage
	}
	c.notifier.Show(msg, SeverityError)
	c.surface.SetSubmitting(false, c.opts.SubmitLabel)

	metrics.SubmissionsTotal.WithLabelValues(StateFailed.String()).Inc()
	c.log.Warnw("contact delivery failed", "retryable", te.Retryable, "err", te.Err)

	c.finish(StateFailed)
	return te
}

func (c *Controller) abort() error {
	c.mu.Lock()
	c.transitionLocked(StateFailed)
	c.mu.Unlock()

	c.notifier.Show(DefaultCancelMessage, SeverityInfo)
	c.surface.SetSubmitting(false, c.opts.SubmitLabel)

	metrics.SubmissionsTotal.WithLabelValues("canceled").Inc()
	c.log.Warnw("contact delivery canceled")

	c.finish(StateFailed)
	return ErrCanceled
}

// -----------------------------------------------------------------------------
// State helpers
// -----------------------------------------------------------------------------

// finish records the terminal state of an attempt and returns to Idle.
func (c *Controller) finish(terminal State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != terminal {
		c.transitionLocked(terminal)
	}
	c.transitionLocked(StateIdle)
}

func (c *Controller) transitionLocked(to State) {
	from := c.state
	c.state = to
	if c.opts.OnTransition != nil {
		c.opts.OnTransition(from, to)
	}
}
