// internal/contact/surface.go
//
// ApoConsult – Contact workflow: rendering port.
//
// Context
//   The workflow never touches a concrete page.  Every visible effect goes
//   through Surface, which each host (server-rendered page, terminal UI, test
//   fake) implements for its own rendering technology.  The Controller is the
//   only writer; hosts read whatever state their implementation keeps.
//
//------------------------------------------------------------------------------

package contact

import "time"

// Surface is the rendering port the workflow drives.
//
// Implementations must tolerate calls from a goroutine other than the host's
// event loop: notification timers fire on their own goroutines.
type Surface interface {
	// FieldValue returns the current raw value of a named input.
	FieldValue(name string) string

	// SetFieldError marks field as errored and shows message next to it.
	SetFieldError(field FieldID, message string)

	// ClearFieldErrors removes every error mark and message.
	ClearFieldErrors()

	// ClearFields empties every input.
	ClearFields()

	// SetSubmitting disables (pending == true) or re-enables the submit
	// control and sets its label.
	SetSubmitting(pending bool, label string)

	// ShowNotification displays a transient banner.
	ShowNotification(n Notification)

	// DismissNotification removes the banner with the given ID, if shown.
	DismissNotification(id string)

	// SetModalVisible shows or hides the interaction surface.  Showing it
	// suspends background scroll; hiding it restores scroll.
	SetModalVisible(visible bool)
}

// Severity tags a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is one transient banner.  TTL is how long it stays before it
// dismisses itself; zero means it stays until dismissed explicitly.
type Notification struct {
	ID       string
	Message  string
	Severity Severity
	TTL      time.Duration
}
