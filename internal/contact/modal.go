// internal/contact/modal.go
//
// ApoConsult – Contact workflow: modal lifecycle.
//
// Context
//   The contact form lives in an overlay.  Show and Hide are idempotent: the
//   surface is only told about real transitions.  Every dismissal trigger
//   (close control, click outside the box, escape key) funnels into Hide.
//
//------------------------------------------------------------------------------

package contact

import "sync"

// DismissTrigger names what asked the modal to close.  It only feeds logs;
// every trigger behaves the same.
type DismissTrigger string

const (
	DismissClose   DismissTrigger = "close"
	DismissOutside DismissTrigger = "outside_click"
	DismissEscape  DismissTrigger = "escape"
	DismissSuccess DismissTrigger = "success"
)

// Modal tracks the visibility of the interaction surface.
type Modal struct {
	surface Surface

	mu      sync.Mutex
	visible bool
}

// NewModal returns a hidden modal bound to s.
func NewModal(s Surface) *Modal { return &Modal{surface: s} }

// Show marks the surface visible and suspends background scroll.
func (m *Modal) Show() {
	m.set(true)
}

// Hide marks the surface hidden and restores background scroll.  Hiding an
// already hidden modal is a no-op.
func (m *Modal) Hide() {
	m.set(false)
}

// Dismiss hides the modal in response to trigger.
func (m *Modal) Dismiss(_ DismissTrigger) {
	m.Hide()
}

// Visible reports the current visibility.
func (m *Modal) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

func (m *Modal) set(visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.visible == visible {
		return
	}
	m.visible = visible
	m.surface.SetModalVisible(visible)
}
