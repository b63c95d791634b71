package source

import "fmt"

// SelectionKind tags how a source was chosen.
type SelectionKind string

const (
	// KindConnection is a live connection configured through a parameter form.
	KindConnection SelectionKind = "connection"
	// KindFile is a local file opened elsewhere in the application.
	KindFile SelectionKind = "file"
)

// Descriptor describes one selectable data source: its display metadata and
// the parameter schema shown in the connection dialog.
//
// Descriptors are read-only to the dialog. Optional text attributes use the
// empty string for "absent". DisabledReason is a pointer because a disabled
// connector may carry an empty reason and must still be treated as disabled.
type Descriptor struct {
	ID             string      `yaml:"id"`
	DisplayName    string      `yaml:"display_name"`
	Icon           string      `yaml:"icon,omitempty"`
	Warning        string      `yaml:"warning,omitempty"`
	Description    string      `yaml:"description,omitempty"`
	DocsLink       string      `yaml:"docs_link,omitempty"`
	DisabledReason *string     `yaml:"disabled_reason,omitempty"`
	FormConfig     *FormConfig `yaml:"form,omitempty"`
}

// FormConfig is the ordered list of parameters a connector accepts.
type FormConfig struct {
	Fields []Field `yaml:"fields"`
}

// Field is one parameter in a connector's form.
type Field struct {
	ID           string  `yaml:"id"`
	Label        string  `yaml:"label"`
	Placeholder  string  `yaml:"placeholder,omitempty"`
	Description  string  `yaml:"description,omitempty"`
	DefaultValue *string `yaml:"default,omitempty"`
	// Validate is a validator rule, see ValidatorFor.
	Validate string `yaml:"validate,omitempty"`
}

// Selection is the payload handed to the selection context when the user
// opens a source.
type Selection struct {
	Kind   SelectionKind
	Params map[string]string
}

// Disabled reports whether the connector cannot currently be opened.
func (d Descriptor) Disabled() bool {
	return d.DisabledReason != nil
}

// Fields returns the connector's form fields, or nil if it has no form.
func (d Descriptor) Fields() []Field {
	if d.FormConfig == nil {
		return nil
	}
	return d.FormConfig.Fields
}

// Defaults returns the declared default values keyed by field ID.
// Fields without a default are omitted rather than zero-filled.
func (d Descriptor) Defaults() map[string]string {
	defaults := make(map[string]string)
	for _, f := range d.Fields() {
		if f.DefaultValue != nil {
			defaults[f.ID] = *f.DefaultValue
		}
	}
	return defaults
}

// Field looks up a form field by ID.
func (d Descriptor) Field(id string) (Field, bool) {
	for _, f := range d.Fields() {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Check verifies the descriptor is usable: it has an ID, a display name,
// unique field IDs, and only known validator rules.
func (d Descriptor) Check() error {
	if d.ID == "" {
		return NewValidationError("connector id cannot be empty")
	}
	if d.DisplayName == "" {
		return NewValidationError(fmt.Sprintf("connector %q: display name cannot be empty", d.ID))
	}

	seen := make(map[string]bool)
	for _, f := range d.Fields() {
		if f.ID == "" {
			return NewValidationError(fmt.Sprintf("connector %q: field id cannot be empty", d.ID))
		}
		if seen[f.ID] {
			return NewValidationError(fmt.Sprintf("connector %q: duplicate field %q", d.ID, f.ID))
		}
		seen[f.ID] = true

		if _, err := ValidatorFor(f.Validate); err != nil {
			return fmt.Errorf("connector %q field %q: %w", d.ID, f.ID, err)
		}
	}
	return nil
}

// String returns a human-readable representation of the connector
func (d Descriptor) String() string {
	if d.Disabled() {
		return fmt.Sprintf("%s (%s, disabled)", d.DisplayName, d.ID)
	}
	return fmt.Sprintf("%s (%s)", d.DisplayName, d.ID)
}

// StringPtr returns a pointer to s, for DisabledReason and DefaultValue literals.
func StringPtr(s string) *string {
	return &s
}
