// internal/contact/transport.go
//
// ApoConsult – Contact workflow: transport port.
//
// Context
//   A valid Submission is handed to a Transport.  The real implementation
//   lives in internal/message (HTTP webhook).  SimulatedTransport reproduces
//   the reference behaviour, a fixed delay that always succeeds, and is what
//   development hosts use when no endpoint is configured.
//
//------------------------------------------------------------------------------

package contact

import (
	"context"
	"time"
)

// DefaultSendDelay stands in for network latency in SimulatedTransport.
const DefaultSendDelay = 1500 * time.Millisecond

// Transport delivers a valid submission.  Implementations must honour ctx
// cancellation and return a *TransportError for delivery failures.
type Transport interface {
	Send(ctx context.Context, s Submission) error
}

// TransportFunc adapts a plain function to Transport.
type TransportFunc func(ctx context.Context, s Submission) error

// Send calls f.
func (f TransportFunc) Send(ctx context.Context, s Submission) error { return f(ctx, s) }

// SimulatedTransport waits Delay and reports success.
type SimulatedTransport struct {
	Delay time.Duration
}

// Send blocks for Delay or until ctx ends, whichever comes first.
func (t SimulatedTransport) Send(ctx context.Context, _ Submission) error {
	timer := time.NewTimer(t.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
