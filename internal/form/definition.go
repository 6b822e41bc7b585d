// internal/form/definition.go
//
// Forms subsystem: YAML definition loader.
//
// Context
//   The contact form's fields are declared in a YAML file embedded with the
//   contact component.  The file defines the form's identifier, title, and
//   fields.  Structural rules are checked at parse time so a bad definition
//   fails the boot instead of the first request.
//
// Workflow
//   •  Structs mirror the YAML schema: FormDef → FieldDef → Option.
//   •  Parse decodes and validates raw YAML.
//   •  LoadFS reads one definition from an fs.FS (usually an embed.FS).
//   •  Select options may be declared inline or injected at render time, as
//      the contact subjects are, from configuration.
//
// Style
//   Comments follow the house guide: full sentences, two spaces after
//   periods, Oxford commas, and clear roles.  Helper comments use short noun
//   phrases.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// FormDef represents one form definition loaded from YAML.
type FormDef struct {
	ID     string     `yaml:"id"`     // Component-scoped identifier, e.g. “contact/inquiry”.
	Title  string     `yaml:"title"`  // Display title, optional.
	Fields []FieldDef `yaml:"fields"` // Fields in display order.
}

// FieldDef describes a single input control on the form.  Length hints are
// rendered as HTML attributes; the server still enforces its own rules.
type FieldDef struct {
	Name        string   `yaml:"name"`        // Submission key.  Required.
	Label       string   `yaml:"label"`       // Human-readable label.  Required.
	Type        string   `yaml:"type"`        // text, email, tel, select, or textarea.
	Placeholder string   `yaml:"placeholder"` // Optional placeholder text.
	Required    bool     `yaml:"required"`    // Rendered as “required”.
	MinLength   int      `yaml:"minlength"`   // ≥ 0, 0 means unset.
	MaxLength   int      `yaml:"maxlength"`   // ≥ 0, 0 means unset.
	Rows        int      `yaml:"rows"`        // textarea only.
	Options     []Option `yaml:"options"`     // For select.  Optional.
}

// Option is one <option> of a select.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Field returns the named field, or false.
func (fd *FormDef) Field(name string) (FieldDef, bool) {
	for _, f := range fd.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

// LoadFS reads and parses one definition from fsys.
func LoadFS(fsys fs.FS, path string) (*FormDef, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", path, err)
	}
	fd, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("form definition %s: %w", path, err)
	}
	return fd, nil
}

// Parse decodes raw YAML and validates its structure.
func Parse(raw []byte) (*FormDef, error) {
	var fd FormDef
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if err := validateFormDef(&fd); err != nil {
		return nil, err
	}
	return &fd, nil
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

var supportedTypes = map[string]bool{
	"text":     true,
	"email":    true,
	"tel":      true,
	"select":   true,
	"textarea": true,
}

// validateFormDef enforces structural rules that cannot be expressed via YAML
// tags alone.
func validateFormDef(fd *FormDef) error {
	if fd.ID == "" {
		return fmt.Errorf("missing required 'id'")
	}
	if len(fd.Fields) == 0 {
		return fmt.Errorf("form %s: must have 'fields'", fd.ID)
	}

	seen := make(map[string]struct{}, len(fd.Fields))
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if err := validateField(f, fd.ID); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("form %s: duplicate field name '%s'", fd.ID, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// validateField confirms that essential attributes are present and sane.
func validateField(f *FieldDef, id string) error {
	if f.Name == "" {
		return fmt.Errorf("form %s: field missing 'name'", id)
	}
	if f.Label == "" {
		return fmt.Errorf("form %s: field '%s' missing 'label'", id, f.Name)
	}
	if !supportedTypes[f.Type] {
		return fmt.Errorf("form %s: field '%s' has unsupported type %q", id, f.Name, f.Type)
	}
	if f.MinLength < 0 || f.MaxLength < 0 {
		return fmt.Errorf("form %s: field '%s' minlength/maxlength cannot be negative", id, f.Name)
	}
	if f.MaxLength > 0 && f.MinLength > f.MaxLength {
		return fmt.Errorf("form %s: field '%s' minlength greater than maxlength", id, f.Name)
	}
	return nil
}
