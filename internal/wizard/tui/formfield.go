package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/vizconnect/internal/connection"
	"github.com/muurk/vizconnect/internal/source"
)

// FormField is one parameter input. Every edit is validated: a failing
// value is reported with Panel.SetFieldError and never reaches the value
// map, a passing one is stored with Panel.SetFieldValue.
type FormField struct {
	Field    source.Field
	Input    textinput.Model
	Disabled bool

	validate source.ValidateFunc
}

// NewFormField creates an input seeded with the panel's current value.
func NewFormField(f source.Field, panel *connection.Panel, disabled bool) FormField {
	input := textinput.New()
	input.Prompt = "› "
	input.PromptStyle = FocusedInputStyle
	input.PlaceholderStyle = BlurredInputStyle
	input.Placeholder = f.Placeholder
	input.CharLimit = 512
	input.Width = 48
	if v, ok := panel.Value(f.ID); ok {
		input.SetValue(v)
	}

	// Descriptors are checked when the catalog loads, so a bad rule here
	// only disables validation for the field.
	validate, err := source.ValidatorFor(f.Validate)
	if err != nil {
		validate = nil
	}

	return FormField{
		Field:    f,
		Input:    input,
		Disabled: disabled,
		validate: validate,
	}
}

// Focus focuses the input. Disabled fields never take focus.
func (f *FormField) Focus() tea.Cmd {
	if f.Disabled {
		return nil
	}
	return f.Input.Focus()
}

// Blur removes focus from the input.
func (f *FormField) Blur() {
	f.Input.Blur()
}

// Update passes msg to the input and commits the value when it changed.
func (f FormField) Update(msg tea.Msg, panel *connection.Panel) (FormField, tea.Cmd) {
	if f.Disabled {
		return f, nil
	}

	before := f.Input.Value()
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)

	if f.Input.Value() != before {
		f.Commit(panel)
	}
	return f, cmd
}

// Commit validates the current input value and reports it to the panel.
func (f FormField) Commit(panel *connection.Panel) {
	value := f.Input.Value()
	if f.validate != nil {
		if err := f.validate(value); err != nil {
			panel.SetFieldError(f.Field.ID, source.UserMessage(err))
			return
		}
	}
	panel.SetFieldValue(f.Field.ID, value)
}

// View renders the label, input, description, and error for the field.
func (f FormField) View(panel *connection.Panel) string {
	var b strings.Builder

	b.WriteString(FieldLabelStyle.Render(f.Field.Label))
	b.WriteString("\n")

	if f.Disabled {
		value := f.Input.Value()
		if value == "" {
			value = f.Field.Placeholder
		}
		b.WriteString(BlurredInputStyle.Render("  " + value))
	} else {
		b.WriteString(f.Input.View())
	}

	if f.Field.Description != "" {
		b.WriteString("\n")
		b.WriteString(SubtitleStyle.Render(f.Field.Description))
	}

	if msg, ok := panel.FieldError(f.Field.ID); ok {
		b.WriteString("\n")
		b.WriteString(FieldErrorStyle.Render("✗ " + msg))
	}

	return b.String()
}
