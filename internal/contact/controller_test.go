// internal/contact/controller_test.go
//
// Unit-tests for the submission Controller.
//
// Context
// -------
// Each test drives a Controller against fakeSurface and a scripted Transport
// and asserts on the rendered state: field errors, submit label, banner, and
// modal visibility.  Durations are shortened so the suite stays fast.

package contact

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validValues() Values {
	return Values{
		InputName:    "Jo",
		InputEmail:   "jo@example.com",
		InputPhone:   "",
		InputSubject: "general",
		InputMessage: "This message is long enough.",
	}
}

// transitionLog collects OnTransition callbacks.
type transitionLog struct {
	mu    sync.Mutex
	steps []string
}

func (l *transitionLog) record(from, to State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.steps = append(l.steps, from.String()+">"+to.String())
}

func (l *transitionLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.steps...)
}

func TestController_ValidSubmitEndToEnd(t *testing.T) {
	surf := newFakeSurface(validValues())
	var log transitionLog
	ctrl := New(surf, SimulatedTransport{Delay: 10 * time.Millisecond}, Options{
		NotificationTTL: 40 * time.Millisecond,
		OnTransition:    log.record,
	})
	defer ctrl.Close()

	ctrl.Modal().Show()
	require.True(t, surf.modalVisible)

	err := ctrl.Submit(context.Background(), Collect(surf))
	require.NoError(t, err)

	require.Equal(t, []string{
		"idle>validating",
		"validating>sending",
		"sending>succeeded",
		"succeeded>idle",
	}, log.all())
	require.Equal(t, StateIdle, ctrl.State())

	require.Equal(t, 1, surf.clearedFields)
	require.Empty(t, surf.values)
	require.Empty(t, surf.errors)
	require.False(t, ctrl.Modal().Visible())
	require.False(t, surf.modalVisible)

	require.Equal(t, []string{DefaultPendingLabel, DefaultSubmitLabel}, surf.pendingSeen)
	require.False(t, surf.pending)

	notes := surf.visibleNotes()
	require.Len(t, notes, 1)
	require.Equal(t, SeveritySuccess, notes[0].Severity)
	require.Equal(t, DefaultSuccessMessage, notes[0].Message)

	require.Eventually(t, func() bool { return len(surf.visibleNotes()) == 0 },
		time.Second, 5*time.Millisecond, "success banner should auto-dismiss")
}

func TestController_InvalidRendersErrorsAndStops(t *testing.T) {
	surf := newFakeSurface(Values{InputName: "Jo", InputEmail: "nope", InputSubject: "general", InputMessage: "short"})
	called := false
	transport := TransportFunc(func(context.Context, Submission) error {
		called = true
		return nil
	})
	var log transitionLog
	ctrl := New(surf, transport, Options{OnTransition: log.record})
	defer ctrl.Close()
	ctrl.Modal().Show()

	err := ctrl.Submit(context.Background(), Collect(surf))

	require.True(t, IsValidationError(err))
	require.False(t, called, "transport must not run for invalid input")
	require.Equal(t, []FieldID{FieldEmail, FieldMessage}, surf.errorOrder)
	require.Equal(t, "Please enter a valid email address.", surf.errors[FieldEmail])
	require.Equal(t, []string{"idle>validating", "validating>invalid", "invalid>idle"}, log.all())
	require.True(t, ctrl.Modal().Visible())
	require.Empty(t, surf.pendingSeen, "submit control untouched")
	require.Empty(t, surf.shown)
	require.Equal(t, "nope", surf.values[InputEmail], "input kept for correction")
}

func TestController_ClearsPreviousErrors(t *testing.T) {
	surf := newFakeSurface(nil)
	ctrl := New(surf, SimulatedTransport{}, Options{})
	defer ctrl.Close()

	err := ctrl.Submit(context.Background(), Values{})
	require.True(t, IsValidationError(err))
	require.Len(t, surf.errors, 4)

	err = ctrl.Submit(context.Background(), Values{InputName: "Jo", InputEmail: "jo@example.com", InputSubject: "general", InputMessage: "tiny"})
	require.True(t, IsValidationError(err))
	require.Equal(t, []FieldID{FieldMessage}, surf.errorOrder)
	require.Len(t, surf.errors, 1)
}

func TestController_TransportFailureKeepsInput(t *testing.T) {
	surf := newFakeSurface(validValues())
	boom := errors.New("connection refused")
	var log transitionLog
	ctrl := New(surf, TransportFunc(func(context.Context, Submission) error { return boom }), Options{
		OnTransition: log.record,
	})
	defer ctrl.Close()
	ctrl.Modal().Show()

	err := ctrl.Submit(context.Background(), Collect(surf))

	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.True(t, te.Retryable)
	require.ErrorIs(t, err, boom)
	require.Equal(t, TransportFailure, te.Kind())

	require.Equal(t, []string{"idle>validating", "validating>sending", "sending>failed", "failed>idle"}, log.all())
	require.Zero(t, surf.clearedFields)
	require.Equal(t, "Jo", surf.values[InputName])
	require.True(t, ctrl.Modal().Visible())
	require.False(t, surf.pending, "submit re-enabled for retry")
	require.Equal(t, DefaultSubmitLabel, surf.label)

	notes := surf.visibleNotes()
	require.Len(t, notes, 1)
	require.Equal(t, SeverityError, notes[0].Severity)
	require.Equal(t, DefaultFailureMessage, notes[0].Message)

	// Retry succeeds with the same input.
	ctrl2 := New(surf, SimulatedTransport{}, Options{})
	defer ctrl2.Close()
	require.NoError(t, ctrl2.Submit(context.Background(), Collect(surf)))
}

func TestController_RejectedTransportUsesRejectMessage(t *testing.T) {
	surf := newFakeSurface(validValues())
	ctrl := New(surf, TransportFunc(func(context.Context, Submission) error {
		return &TransportError{Retryable: false, Err: errors.New("422 unprocessable")}
	}), Options{})
	defer ctrl.Close()

	err := ctrl.Submit(context.Background(), Collect(surf))

	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.False(t, te.Retryable)
	require.Equal(t, DefaultRejectMessage, surf.visibleNotes()[0].Message)
}

func TestController_RejectsConcurrentSubmit(t *testing.T) {
	surf := newFakeSurface(validValues())
	release := make(chan struct{})
	ctrl := New(surf, TransportFunc(func(ctx context.Context, _ Submission) error {
		<-release
		return nil
	}), Options{})
	defer ctrl.Close()

	done := make(chan error, 1)
	go func() { done <- ctrl.Submit(context.Background(), validValues()) }()

	require.Eventually(t, surf.isPending, time.Second, time.Millisecond)
	require.Equal(t, StateSending, ctrl.State())

	err := ctrl.Submit(context.Background(), validValues())
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, StateIdle, ctrl.State())
	require.Len(t, surf.shown, 1, "the rejected attempt must not render anything")
}

func TestController_Cancel(t *testing.T) {
	surf := newFakeSurface(validValues())
	ctrl := New(surf, SimulatedTransport{Delay: time.Minute}, Options{})
	defer ctrl.Close()

	require.False(t, ctrl.Cancel(), "nothing to cancel while idle")

	done := make(chan error, 1)
	go func() { done <- ctrl.Submit(context.Background(), validValues()) }()
	require.Eventually(t, surf.isPending, time.Second, time.Millisecond)

	require.True(t, ctrl.Cancel())
	require.ErrorIs(t, <-done, ErrCanceled)

	notes := surf.visibleNotes()
	require.Len(t, notes, 1)
	require.Equal(t, SeverityInfo, notes[0].Severity)
	require.Equal(t, "Jo", surf.values[InputName])
	require.Equal(t, StateIdle, ctrl.State())
}

func TestController_Timeout(t *testing.T) {
	surf := newFakeSurface(validValues())
	ctrl := New(surf, SimulatedTransport{Delay: time.Minute}, Options{Timeout: 20 * time.Millisecond})
	defer ctrl.Close()

	err := ctrl.Submit(context.Background(), validValues())

	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, te.Retryable)
}

func TestController_CallerContextCanceled(t *testing.T) {
	surf := newFakeSurface(validValues())
	ctrl := New(surf, SimulatedTransport{Delay: time.Minute}, Options{})
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ctrl.Submit(ctx, validValues()) }()
	require.Eventually(t, surf.isPending, time.Second, time.Millisecond)

	cancel()
	err := <-done

	require.ErrorIs(t, err, ErrCanceled)
	var te *TransportError
	require.False(t, errors.As(err, &te), "a departed caller is not a delivery failure")
	require.Equal(t, SeverityInfo, surf.visibleNotes()[0].Severity)
	require.Equal(t, StateIdle, ctrl.State())
}
