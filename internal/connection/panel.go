package connection

import (
	"maps"

	"github.com/muurk/vizconnect/internal/source"
)

// Selector receives the user's final choice. It is implemented by the
// player session; the panel never waits for the outcome.
type Selector interface {
	SelectSource(sourceID string, sel source.Selection)
}

// SelectorFunc adapts a plain function to the Selector interface.
type SelectorFunc func(sourceID string, sel source.Selection)

// SelectSource calls f(sourceID, sel).
func (f SelectorFunc) SelectSource(sourceID string, sel source.Selection) {
	f(sourceID, sel)
}

// Panel is the dialog state. The zero value is an empty panel with nothing
// selected; use New to build one from a catalog.
type Panel struct {
	ordered  []source.Descriptor
	index    int
	selected string // ID of the connector the field maps belong to

	values map[string]string
	errors map[string]string
}

// EnabledFirst returns sources with enabled connectors before disabled ones.
// Relative order within each group is preserved. The input is not modified.
func EnabledFirst(sources []source.Descriptor) []source.Descriptor {
	ordered := make([]source.Descriptor, 0, len(sources))
	for _, d := range sources {
		if !d.Disabled() {
			ordered = append(ordered, d)
		}
	}
	for _, d := range sources {
		if d.Disabled() {
			ordered = append(ordered, d)
		}
	}
	return ordered
}

// IndexOf returns the position of the connector with the given ID, or -1.
func IndexOf(sources []source.Descriptor, id string) int {
	for i, d := range sources {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// New creates a panel for sources. The initial selection is the active
// connector's position in the reordered list, or 0 when active is nil or not
// listed. Field values start at the selected connector's defaults.
func New(sources []source.Descriptor, active *source.Descriptor) *Panel {
	p := &Panel{
		ordered: EnabledFirst(sources),
		values:  make(map[string]string),
		errors:  make(map[string]string),
	}

	p.index = 0
	if active != nil {
		if idx := IndexOf(p.ordered, active.ID); idx >= 0 {
			p.index = idx
		}
	}
	p.resolve()
	return p
}

// Sources returns the reordered connector list shown as tabs.
func (p *Panel) Sources() []source.Descriptor {
	return p.ordered
}

// SelectedIndex returns the selected tab, or -1 when there are no connectors.
func (p *Panel) SelectedIndex() int {
	if p.index < 0 || p.index >= len(p.ordered) {
		return -1
	}
	return p.index
}

// Selected returns the currently selected connector.
func (p *Panel) Selected() (source.Descriptor, bool) {
	idx := p.SelectedIndex()
	if idx < 0 {
		return source.Descriptor{}, false
	}
	return p.ordered[idx], true
}

// Select switches to tab idx. Out-of-range indexes are ignored. Switching to
// a different connector resets the field values to its defaults.
func (p *Panel) Select(idx int) {
	if idx < 0 || idx >= len(p.ordered) {
		return
	}
	p.index = idx
	p.resolve()
}

// SyncActive re-resolves the selection after the externally active connector
// changed. It is a no-op when active is nil or not in the list.
func (p *Panel) SyncActive(active *source.Descriptor) {
	if active == nil {
		return
	}
	if idx := IndexOf(p.ordered, active.ID); idx >= 0 {
		p.index = idx
		p.resolve()
	}
}

// SetSources replaces the connector list. The current connector stays
// selected (by ID) when it is still present; otherwise the selection falls
// back to the first tab.
func (p *Panel) SetSources(sources []source.Descriptor) {
	p.ordered = EnabledFirst(sources)

	p.index = 0
	if p.selected != "" {
		if idx := IndexOf(p.ordered, p.selected); idx >= 0 {
			p.index = idx
		}
	}
	p.resolve()
}

// resolve resets the value map to the new connector's defaults whenever the
// selected connector changed. Field errors are left alone: they are only
// cleared by a valid value for the same field, so Open stays disabled.
func (p *Panel) resolve() {
	d, ok := p.Selected()
	if !ok {
		if p.selected != "" || len(p.values) > 0 {
			p.selected = ""
			p.values = make(map[string]string)
		}
		return
	}
	if d.ID == p.selected {
		return
	}

	p.selected = d.ID
	p.values = d.Defaults()
}

// Value returns the current value of a field.
func (p *Panel) Value(fieldID string) (string, bool) {
	v, ok := p.values[fieldID]
	return v, ok
}

// Values returns a copy of the field-value map.
func (p *Panel) Values() map[string]string {
	return maps.Clone(p.values)
}

// FieldError returns the validation message for a field, if any.
func (p *Panel) FieldError(fieldID string) (string, bool) {
	msg, ok := p.errors[fieldID]
	return msg, ok
}

// Errors returns a copy of the field-error map.
func (p *Panel) Errors() map[string]string {
	return maps.Clone(p.errors)
}

// SetFieldError records (or overwrites) a validation error for a field.
func (p *Panel) SetFieldError(fieldID, msg string) {
	if p.errors == nil {
		p.errors = make(map[string]string)
	}
	p.errors[fieldID] = msg
}

// SetFieldValue records a new value for a field. The field's error entry is
// cleared first: new input is treated as valid until the field reports
// otherwise.
func (p *Panel) SetFieldValue(fieldID, value string) {
	delete(p.errors, fieldID)
	if p.values == nil {
		p.values = make(map[string]string)
	}
	p.values[fieldID] = value
}

// CanOpen reports whether the Open action is enabled.
func (p *Panel) CanOpen() bool {
	d, ok := p.Selected()
	if !ok {
		return false
	}
	return !d.Disabled() && len(p.errors) == 0
}

// Open hands the selected connector and its field values to sel as a
// connection selection. It returns false without calling sel when Open is
// disabled.
func (p *Panel) Open(sel Selector) bool {
	if !p.CanOpen() || sel == nil {
		return false
	}
	d, _ := p.Selected()
	sel.SelectSource(d.ID, source.Selection{
		Kind:   source.KindConnection,
		Params: p.Values(),
	})
	return true
}
