// internal/tui/surface.go
//
// Surface is the terminal implementation of contact.Surface.
//
// Context
//   The workflow calls the surface from the goroutine running Submit and
//   from notification timers, while bubbletea owns the input widgets on its
//   own goroutine.  Surface therefore keeps only plain state behind a mutex
//   and pings the program after each change; the Model copies that state
//   into the widgets on the UI goroutine.  The ping must never block,
//   because the notifier holds its own lock while calling in.
//
//------------------------------------------------------------------------------

package tui

import (
	"sync"

	"github.com/yanizio/apoconsult/internal/contact"
)

// Surface is safe for concurrent use.
type Surface struct {
	mu       sync.Mutex
	onChange func()

	values     contact.Values
	errors     map[contact.FieldID]string
	clearSeq   int
	pending    bool
	label      string
	note       *contact.Notification
	modalShown bool
}

// NewSurface returns an empty surface with the idle submit label.
func NewSurface(label string) *Surface {
	return &Surface{
		values: contact.Values{},
		errors: map[contact.FieldID]string{},
		label:  label,
	}
}

// OnChange installs the change hook.  It runs with no locks held but may be
// called from any goroutine, so it must return promptly.
func (s *Surface) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// setValues records the live widget values ahead of a submit.
func (s *Surface) setValues(v contact.Values) {
	s.mu.Lock()
	s.values = v
	s.mu.Unlock()
}

func (s *Surface) changed() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *Surface) FieldValue(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name]
}

func (s *Surface) SetFieldError(field contact.FieldID, message string) {
	s.mu.Lock()
	s.errors[field] = message
	s.mu.Unlock()
	s.changed()
}

func (s *Surface) ClearFieldErrors() {
	s.mu.Lock()
	s.errors = map[contact.FieldID]string{}
	s.mu.Unlock()
	s.changed()
}

func (s *Surface) ClearFields() {
	s.mu.Lock()
	s.values = contact.Values{}
	s.clearSeq++
	s.mu.Unlock()
	s.changed()
}

func (s *Surface) SetSubmitting(pending bool, label string) {
	s.mu.Lock()
	s.pending = pending
	s.label = label
	s.mu.Unlock()
	s.changed()
}

func (s *Surface) ShowNotification(n contact.Notification) {
	s.mu.Lock()
	s.note = &n
	s.mu.Unlock()
	s.changed()
}

func (s *Surface) DismissNotification(id string) {
	s.mu.Lock()
	if s.note != nil && s.note.ID == id {
		s.note = nil
	}
	s.mu.Unlock()
	s.changed()
}

func (s *Surface) SetModalVisible(visible bool) {
	s.mu.Lock()
	s.modalShown = visible
	s.mu.Unlock()
	s.changed()
}

// view is a point-in-time copy for the Model.
type view struct {
	errors     map[contact.FieldID]string
	clearSeq   int
	pending    bool
	label      string
	note       *contact.Notification
	modalShown bool
}

func (s *Surface) snapshot() view {
	s.mu.Lock()
	defer s.mu.Unlock()
	errs := make(map[contact.FieldID]string, len(s.errors))
	for k, v := range s.errors {
		errs[k] = v
	}
	var note *contact.Notification
	if s.note != nil {
		n := *s.note
		note = &n
	}
	return view{
		errors:     errs,
		clearSeq:   s.clearSeq,
		pending:    s.pending,
		label:      s.label,
		note:       note,
		modalShown: s.modalShown,
	}
}
