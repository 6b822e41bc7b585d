// internal/contact/notify.go
//
// ApoConsult – Contact workflow: transient notifications.
//
// Context
//   The page has one banner slot.  Show replaces whatever banner is visible,
//   schedules an auto-dismiss after the configured TTL, and returns the new
//   banner so callers can dismiss it early.  Close stops the pending timer
//   when the owning surface goes away.
//
//------------------------------------------------------------------------------

package contact

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanizio/apoconsult/internal/metrics"
)

// DefaultNotificationTTL is how long a banner stays up when not configured.
const DefaultNotificationTTL = 5 * time.Second

// Notifier owns the notification lifecycle for one surface.
type Notifier struct {
	surface Surface
	ttl     time.Duration

	mu      sync.Mutex
	current *Notification
	timer   *time.Timer
	closed  bool
}

// NewNotifier returns a Notifier for s.  ttl <= 0 disables auto-dismiss.
func NewNotifier(s Surface, ttl time.Duration) *Notifier {
	return &Notifier{surface: s, ttl: ttl}
}

// Show displays message with the given severity, replacing any visible banner.
func (n *Notifier) Show(message string, sev Severity) Notification {
	note := Notification{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: sev,
		TTL:      n.ttl,
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.dropLocked()
	n.current = &note
	n.surface.ShowNotification(note)
	metrics.NotificationsShownTotal.WithLabelValues(string(sev)).Inc()

	if n.ttl > 0 && !n.closed {
		id := note.ID
		n.timer = time.AfterFunc(n.ttl, func() { n.Dismiss(id) })
	}
	return note
}

// Dismiss removes the banner with id.  It reports false when that banner is
// no longer visible (already dismissed, expired, or replaced).
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil || n.current.ID != id {
		return false
	}
	n.dropLocked()
	return true
}

// Current returns the visible banner, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Close stops the auto-dismiss timer.  The visible banner, if any, is left
// to its surface.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

// dropLocked dismisses the current banner.  Caller holds n.mu.
func (n *Notifier) dropLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	if n.current != nil {
		n.surface.DismissNotification(n.current.ID)
		n.current = nil
	}
}
