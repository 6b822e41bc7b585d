// internal/contact/errors.go
//
// ApoConsult – Contact workflow: error taxonomy.
//
// Context
//   Field problems (Required, InvalidFormat, TooShort) are user-correctable
//   and rendered inline.  They travel as *ValidationError so hosts can tell
//   them apart from delivery problems with errors.As / IsValidationError.
//   Delivery problems travel as *TransportError and are surfaced through an
//   error notification that invites a retry.
//
//------------------------------------------------------------------------------

package contact

import (
	"errors"
	"fmt"
)

// Kind classifies a failed submit attempt.
type Kind int

const (
	Required Kind = iota + 1
	InvalidFormat
	TooShort
	TransportFailure
)

func (k Kind) String() string {
	switch k {
	case Required:
		return "required"
	case InvalidFormat:
		return "invalid_format"
	case TooShort:
		return "too_short"
	case TransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// FieldError describes a single validation failure so the surface can render
// a message next to the offending input.
type FieldError struct {
	Field   FieldID
	Kind    Kind
	Message string
}

// ValidationError wraps the ordered field errors of one attempt.
type ValidationError struct{ Fields []FieldError }

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("contact form invalid: %d field error(s)", len(ve.Fields))
}

// IsValidationError reports whether err came from a failed validation pass.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TransportError reports that a valid submission could not be delivered.
// Retryable is false when the receiving endpoint rejected the payload
// outright (4xx), so resubmitting the same input will not help.
type TransportError struct {
	Retryable bool
	Err       error
}

func (te *TransportError) Error() string {
	return "contact delivery failed: " + te.Err.Error()
}

func (te *TransportError) Unwrap() error { return te.Err }

// Kind always reports TransportFailure.
func (te *TransportError) Kind() Kind { return TransportFailure }

var (
	// ErrSubmissionInFlight is returned when Submit is called while a
	// previous attempt is still sending.
	ErrSubmissionInFlight = errors.New("contact: submission already in flight")

	// ErrCanceled is returned when Cancel aborts an in-flight send.
	ErrCanceled = errors.New("contact: submission canceled")
)
