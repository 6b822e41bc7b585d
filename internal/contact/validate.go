// internal/contact/validate.go
//
// ApoConsult – Contact workflow: validator.
//
// Context
//   Validate is a pure function from a Submission to a Result.  It touches no
//   surface, logs nothing, and returns identical output for identical input,
//   so it can be exercised without any host.
//
//   Rules live as struct tags on Submission and are enforced by a
//   package-level go-playground/validator instance:
//
//     •  name     – required.
//     •  email    – required, then the minimal “x@y.z” shape (contact_email).
//     •  subject  – required (a choice must be selected).
//     •  message  – required, then at least MinMessageLength characters.
//
//   Every rule runs independently, so one pass reports all failing fields.
//   Within a field the first failing rule wins, which gives “required” before
//   “invalid format” or “too short”.  Errors keep field declaration order.
//
// Notes
//   •  Length is counted in Unicode code points, not bytes.
//   •  The email shape is deliberately loose.  It is not RFC 5322.
//
//------------------------------------------------------------------------------

package contact

import (
	"errors"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// MinMessageLength is the shortest accepted message, after trimming.
const MinMessageLength = 10

// emailShape: one or more non-space, non-@ characters, “@”, more of the same,
// “.”, and more of the same.  RE2's \s is ASCII only, so the class also
// excludes \v, every Unicode separator (NBSP, U+2028, ideographic space),
// and the BOM.
var emailShape = regexp.MustCompile(`^` + emailPart + `+@` + emailPart + `+\.` + emailPart + `+$`)

const emailPart = `[^\s\v\p{Z}\x{FEFF}@]`

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("contact")
	})
	if err := val.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	}); err != nil {
		panic("contact: register contact_email: " + err.Error())
	}
	return val
}

// -----------------------------------------------------------------------------
// Result
// -----------------------------------------------------------------------------

// Result is the outcome of one validation pass.  Validity is derived from the
// error list, so a Result can never be both valid and carry errors.
type Result struct {
	Errors []FieldError
}

// Valid reports whether the pass produced no errors.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Err returns a *ValidationError for an invalid result, nil otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Fields: r.Errors}
}

// -----------------------------------------------------------------------------
// Public API
// -----------------------------------------------------------------------------

// Validate checks s against the contact rules.
func Validate(s Submission) Result {
	err := v.Struct(s)
	if err == nil {
		return Result{}
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		// Only reachable on programmer error (e.g. a nil struct).
		panic("contact: unexpected validator error: " + err.Error())
	}

	out := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		field := FieldID(fe.Field())
		kind := kindForTag(fe.Tag())
		out = append(out, FieldError{
			Field:   field,
			Kind:    kind,
			Message: messageFor(field, kind),
		})
	}
	return Result{Errors: out}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func kindForTag(tag string) Kind {
	switch tag {
	case "contact_email":
		return InvalidFormat
	case "min":
		return TooShort
	default:
		return Required
	}
}

// user-facing messages, keyed by field then kind
var messages = map[FieldID]map[Kind]string{
	FieldName: {
		Required: "Please enter your name.",
	},
	FieldEmail: {
		Required:      "Please enter your email address.",
		InvalidFormat: "Please enter a valid email address.",
	},
	FieldSubject: {
		Required: "Please select a subject.",
	},
	FieldMessage: {
		Required: "Please enter your message.",
		TooShort: "Message must be at least 10 characters long.",
	},
}

func messageFor(f FieldID, k Kind) string {
	if m, ok := messages[f][k]; ok {
		return m
	}
	return "Invalid input."
}
