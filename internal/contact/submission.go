// internal/contact/submission.go
//
// ApoConsult – Contact workflow: submission snapshot.
//
// Context
//   Every submit attempt starts by freezing the raw input values into one
//   Submission.  The snapshot is built exactly once per attempt, is never
//   mutated afterwards, and is discarded when the attempt resolves.  Free-text
//   inputs are trimmed; the subject is a selection and is kept verbatim.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package contact

import "strings"

// FieldID names an input that can carry a field-level error.  Phone is an
// input too, but it is never validated and therefore has no FieldID.
type FieldID string

const (
	FieldName    FieldID = "name"
	FieldEmail   FieldID = "email"
	FieldSubject FieldID = "subject"
	FieldMessage FieldID = "message"
)

// Input names as they appear on the form, in declaration order.
const (
	InputName    = "name"
	InputEmail   = "email"
	InputPhone   = "phone"
	InputSubject = "subject"
	InputMessage = "message"
)

// Inputs lists every named input of the contact form in declaration order.
var Inputs = []string{InputName, InputEmail, InputPhone, InputSubject, InputMessage}

// Values holds raw input values keyed by input name, exactly as the host
// collected them.
type Values map[string]string

// Collect reads every contact input from s.  Hosts that keep the live values
// inside their rendering surface use this instead of building Values by hand.
func Collect(s Surface) Values {
	out := make(Values, len(Inputs))
	for _, name := range Inputs {
		out[name] = s.FieldValue(name)
	}
	return out
}

// Submission is the immutable snapshot validated and sent for one attempt.
//
// The `contact` tag names the field in validation errors; the `validate` tags
// carry the business rules enforced by Validate.
type Submission struct {
	Name    string `contact:"name"    validate:"required"`
	Email   string `contact:"email"   validate:"required,contact_email"`
	Phone   string `contact:"phone"`
	Subject string `contact:"subject" validate:"required"`
	Message string `contact:"message" validate:"required,min=10"`
}

// NewSubmission trims free-text values and copies the subject verbatim.
func NewSubmission(raw Values) Submission {
	return Submission{
		Name:    strings.TrimSpace(raw[InputName]),
		Email:   strings.TrimSpace(raw[InputEmail]),
		Phone:   strings.TrimSpace(raw[InputPhone]),
		Subject: raw[InputSubject],
		Message: strings.TrimSpace(raw[InputMessage]),
	}
}
