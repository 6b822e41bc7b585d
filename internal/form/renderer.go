// internal/form/renderer.go
//
// Forms subsystem: HTML renderer.
//
// Context
//   Given a parsed FormDef (from definition.go) this file converts the
//   definition into safe, accessible HTML markup.  The renderer applies HTML5
//   validation attributes, writes hidden inputs (the CSRF token), honours
//   prefill data, and places each field's error message directly after the
//   control.
//
// Workflow
//   •  Render walks the fields in definition order and writes each via
//      writeField.
//   •  A field with an error gets class="error", aria-invalid, and an
//      aria-describedby link to its <span class="error-message">.  The span
//      is always present, empty when there is no error, so client script can
//      fill it without restructuring the DOM.
//   •  Select options come from the definition or, when RenderOptions.Options
//      has an entry for the field, from the caller.
//   •  The caller receives template.HTML so the surrounding template does not
//      double-escape the markup.
//
// Style
//   Output HTML is deliberately plain, no framework classes, so the site
//   stylesheet can style via element selectors or class hooks.  Each input
//   gets id="fld-{name}" and is wrapped in <div class="form-field">.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"sort"
	"strconv"
)

// ErrorClass marks a control whose value failed validation.
const ErrorClass = "error"

// RenderOptions bundles optional parameters influencing HTML output.
type RenderOptions struct {
	// Prefill provides field values keyed by field name.
	Prefill map[string]string
	// Errors maps field name to the message shown beside it.
	Errors map[string]string
	// Options overrides select options keyed by field name.
	Options map[string][]Option
	// Hidden inputs, e.g. {"csrf_token": tok}.  Written in key order.
	Hidden map[string]string
}

// Render returns the HTML markup for fd.
func Render(fd *FormDef, opts RenderOptions) (template.HTML, error) {
	var buf bytes.Buffer
	buf.WriteString(`<div class="site-form" data-form="` + html.EscapeString(fd.ID) + `">` + "\n")

	for i := range fd.Fields {
		f := fd.Fields[i]
		if o, ok := opts.Options[f.Name]; ok {
			f.Options = o
		}
		if err := writeField(&buf, &f, opts.Prefill[f.Name], opts.Errors[f.Name]); err != nil {
			return "", err
		}
	}

	keys := make([]string, 0, len(opts.Hidden))
	for k := range opts.Hidden {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, `<input type="hidden" name="%s" value="%s">`+"\n",
			html.EscapeString(k), html.EscapeString(opts.Hidden[k]))
	}

	buf.WriteString(`</div>`)
	return template.HTML(buf.String()), nil
}

// writeField emits HTML for an individual field into buf, applying the value,
// validation attributes, and error state.
func writeField(buf *bytes.Buffer, f *FieldDef, val, errMsg string) error {
	name := html.EscapeString(f.Name)
	errID := "err-" + name

	buf.WriteString(`<div class="form-field">` + "\n")
	buf.WriteString(`<label for="fld-` + name + `">` + html.EscapeString(f.Label) + `</label>` + "\n")

	// Shared attributes
	attrs := `id="fld-` + name + `" name="` + name + `" aria-describedby="` + errID + `"`
	if errMsg != "" {
		attrs += ` class="` + ErrorClass + `" aria-invalid="true"`
	}
	if f.Required {
		attrs += ` required`
	}

	switch f.Type {
	case "text", "email", "tel":
		buf.WriteString(`<input ` + attrs + ` type="` + f.Type + `"`)
		writeLengths(buf, f)
		if f.Placeholder != "" {
			buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
		}
		if val != "" {
			buf.WriteString(` value="` + html.EscapeString(val) + `"`)
		}
		buf.WriteString(`>` + "\n")

	case "textarea":
		buf.WriteString(`<textarea ` + attrs)
		writeLengths(buf, f)
		if f.Rows > 0 {
			buf.WriteString(` rows="` + strconv.Itoa(f.Rows) + `"`)
		}
		if f.Placeholder != "" {
			buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
		}
		buf.WriteString(`>` + html.EscapeString(val) + `</textarea>` + "\n")

	case "select":
		buf.WriteString(`<select ` + attrs + `>` + "\n")
		if f.Placeholder != "" {
			buf.WriteString(`<option value="">` + html.EscapeString(f.Placeholder) + `</option>` + "\n")
		}
		for _, opt := range f.Options {
			sel := ""
			if val == opt.Value {
				sel = ` selected`
			}
			buf.WriteString(`<option value="` + html.EscapeString(opt.Value) + `"` + sel + `>` +
				html.EscapeString(opt.Label) + `</option>` + "\n")
		}
		buf.WriteString(`</select>` + "\n")

	default:
		return fmt.Errorf("writeField: unsupported field type %q in form field %s", f.Type, f.Name)
	}

	buf.WriteString(`<span class="error-message" id="` + errID + `" aria-live="polite">` +
		html.EscapeString(errMsg) + `</span>` + "\n")
	buf.WriteString(`</div>` + "\n")
	return nil
}

func writeLengths(buf *bytes.Buffer, f *FieldDef) {
	if f.MinLength > 0 {
		buf.WriteString(` minlength="` + strconv.Itoa(f.MinLength) + `"`)
	}
	if f.MaxLength > 0 {
		buf.WriteString(` maxlength="` + strconv.Itoa(f.MaxLength) + `"`)
	}
}
