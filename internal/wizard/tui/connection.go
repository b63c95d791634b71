package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/vizconnect/internal/connection"
	"github.com/muurk/vizconnect/internal/source"
)

// ActiveSourceMsg reports that the externally active connector changed.
type ActiveSourceMsg struct {
	Source *source.Descriptor
}

// SourcesMsg replaces the connector list, e.g. after an mDNS scan. When Err
// is set the list is left unchanged.
type SourcesMsg struct {
	Sources []source.Descriptor
	Err     error
}

// OpenedMsg is emitted after the selection was handed to the selector.
type OpenedMsg struct {
	SourceID  string
	Selection source.Selection
}

type scanStartMsg struct{}

// connectionKeyMap defines key bindings for the connection dialog
type connectionKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Enter     key.Binding
	Open      key.Binding
	Back      key.Binding
	Cancel    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k connectionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFocus, k.Open, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k connectionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFocus, k.PrevFocus},
		{k.Enter, k.Open, k.Back, k.Cancel},
	}
}

func newConnectionKeyMap() connectionKeyMap {
	return connectionKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous source"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next source"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next / open"),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}

// ConnectionModel is the "open connection" dialog: a vertical tab list of
// connectors and the parameter form of the selected one.
type ConnectionModel struct {
	Panel    *connection.Panel
	Selector connection.Selector

	Fields []FormField
	// Focus is -1 while the tab list has focus, otherwise a field index
	Focus     int
	fieldsFor string

	// OnBack and OnCancel run for the back and cancel actions. A nil
	// command hides the action.
	OnBack   tea.Cmd
	OnCancel tea.Cmd

	// Background discovery state
	Scanning bool
	ScanErr  error
	Spinner  spinner.Model

	// UI state
	Width  int
	Height int
	Help   help.Model
	Keys   connectionKeyMap
}

// NewConnectionModel creates the dialog for panel. sel receives the choice
// when the user opens a source.
func NewConnectionModel(panel *connection.Panel, sel connection.Selector) ConnectionModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := ConnectionModel{
		Panel:    panel,
		Selector: sel,
		Focus:    -1,
		Spinner:  s,
		Help:     help.New(),
		Keys:     newConnectionKeyMap(),
	}
	m.syncFields()
	return m
}

// Init initializes the connection model
func (m ConnectionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m ConnectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case ActiveSourceMsg:
		m.Panel.SyncActive(msg.Source)
		m.syncFields()
		return m, nil

	case SourcesMsg:
		m.Scanning = false
		m.ScanErr = msg.Err
		if msg.Err == nil {
			m.Panel.SetSources(msg.Sources)
			m.syncFields()
		}
		return m, nil

	case scanStartMsg:
		m.Scanning = true
		m.ScanErr = nil
		return m, nil

	case spinner.TickMsg:
		if !m.Scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input messages go to the focused field
	if m.Focus >= 0 && m.Focus < len(m.Fields) {
		var cmd tea.Cmd
		m.Fields[m.Focus], cmd = m.Fields[m.Focus].Update(msg, m.Panel)
		return m, cmd
	}
	return m, nil
}

// handleKey handles keyboard input
func (m ConnectionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		if m.OnCancel != nil {
			return m, m.OnCancel
		}
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Back):
		return m, m.OnBack

	case key.Matches(msg, m.Keys.Open):
		return m.open()

	case key.Matches(msg, m.Keys.NextFocus):
		return m.moveFocus(1)

	case key.Matches(msg, m.Keys.PrevFocus):
		return m.moveFocus(-1)
	}

	// Tab list has focus
	if m.Focus < 0 {
		switch {
		case key.Matches(msg, m.Keys.Up):
			m.selectTab(m.Panel.SelectedIndex() - 1)
		case key.Matches(msg, m.Keys.Down):
			m.selectTab(m.Panel.SelectedIndex() + 1)
		case key.Matches(msg, m.Keys.Enter):
			if len(m.focusOrder()) > 1 {
				return m.moveFocus(1)
			}
			return m.open()
		}
		return m, nil
	}

	// A field has focus
	if key.Matches(msg, m.Keys.Enter) {
		if m.Focus == len(m.Fields)-1 {
			return m.open()
		}
		return m.moveFocus(1)
	}

	var cmd tea.Cmd
	m.Fields[m.Focus], cmd = m.Fields[m.Focus].Update(msg, m.Panel)
	return m, cmd
}

// selectTab switches tabs and rebuilds the form when the connector changed
func (m *ConnectionModel) selectTab(idx int) {
	m.Panel.Select(idx)
	m.syncFields()
}

// syncFields rebuilds the inputs when the panel's selected connector differs
// from the one they were built for
func (m *ConnectionModel) syncFields() {
	d, ok := m.Panel.Selected()
	if !ok {
		m.Fields = nil
		m.fieldsFor = ""
		m.Focus = -1
		return
	}
	if d.ID == m.fieldsFor && len(m.Fields) == len(d.Fields()) {
		return
	}

	fields := d.Fields()
	m.Fields = make([]FormField, len(fields))
	for i, f := range fields {
		m.Fields[i] = NewFormField(f, m.Panel, d.Disabled())
	}
	m.fieldsFor = d.ID
	m.Focus = -1
}

// focusOrder lists focus positions: the tab list then each enabled field
func (m ConnectionModel) focusOrder() []int {
	order := []int{-1}
	for i, f := range m.Fields {
		if !f.Disabled {
			order = append(order, i)
		}
	}
	return order
}

// moveFocus cycles focus by delta positions
func (m ConnectionModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	order := m.focusOrder()

	pos := 0
	for i, f := range order {
		if f == m.Focus {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(order)) % len(order)

	if m.Focus >= 0 && m.Focus < len(m.Fields) {
		m.Fields[m.Focus].Blur()
	}
	m.Focus = order[pos]
	if m.Focus >= 0 {
		return m, m.Fields[m.Focus].Focus()
	}
	return m, nil
}

// open hands the selection to the selector when Open is enabled
func (m ConnectionModel) open() (tea.Model, tea.Cmd) {
	d, ok := m.Panel.Selected()
	if !ok || !m.Panel.Open(m.Selector) {
		return m, nil
	}

	opened := OpenedMsg{
		SourceID: d.ID,
		Selection: source.Selection{
			Kind:   source.KindConnection,
			Params: m.Panel.Values(),
		},
	}
	return m, func() tea.Msg { return opened }
}

// View renders the connection dialog
func (m ConnectionModel) View() string {
	width, height := m.size()

	props := ViewProps{
		Title:   "Open a new connection",
		Content: m.buildContent(width),
		Open: &Action{
			Key:      "ctrl+o",
			Label:    "Open",
			Disabled: !m.Panel.CanOpen(),
		},
		Help:   m.Help.View(m.Keys),
		Width:  width,
		Height: height,
	}
	if m.OnBack != nil {
		props.Back = &Action{Key: "esc", Label: "Back"}
	}
	if m.OnCancel != nil {
		props.Cancel = &Action{Key: "ctrl+c", Label: "Cancel"}
	}

	return RenderView(props)
}

func (m ConnectionModel) size() (int, int) {
	width, height := m.Width, m.Height
	if width == 0 {
		width = 100
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height == 0 {
		height = 30
	}
	return width, height
}

// buildContent builds the tab list and the selected connector's details
func (m ConnectionModel) buildContent(width int) string {
	var b strings.Builder

	d, ok := m.Panel.Selected()
	if !ok {
		b.WriteString(SubtitleStyle.Render("No data sources are available."))
	} else {
		tabs := m.renderTabs()
		detailWidth := SafeModalWidth(width-lipgloss.Width(tabs)-8, width)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs, m.renderDetails(d, detailWidth)))
	}

	if m.Scanning {
		b.WriteString("\n\n")
		b.WriteString(SpinnerStyle.Render(fmt.Sprintf("%s Searching the local network for WebSocket servers...", m.Spinner.View())))
	} else if m.ScanErr != nil {
		b.WriteString("\n\n")
		b.WriteString(FieldErrorStyle.Render("✗ Discovery failed: " + m.ScanErr.Error()))
	}

	return b.String()
}

// renderTabs renders the vertical connector list
func (m ConnectionModel) renderTabs() string {
	selected := m.Panel.SelectedIndex()
	lines := make([]string, 0, len(m.Panel.Sources()))

	for i, d := range m.Panel.Sources() {
		label := d.DisplayName
		if d.Icon != "" {
			label = d.Icon + " " + d.DisplayName
		}

		switch {
		case i == selected:
			lines = append(lines, SelectedTabStyle.Render("→ "+label))
		case d.Disabled():
			lines = append(lines, DisabledTabStyle.Render(label))
		default:
			lines = append(lines, TabStyle.Render(label))
		}
	}

	style := TabListStyle
	if m.Focus < 0 {
		style = FocusedTabListStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderDetails renders, in order and only when present: the warning
// banner, the description, the form, the disabled reason, and the docs link
func (m ConnectionModel) renderDetails(d source.Descriptor, width int) string {
	var sections []string

	if d.Warning != "" {
		sections = append(sections, WarningBoxStyle.Width(width).Render("⚠ "+d.Warning))
	}

	if d.Description != "" {
		sections = append(sections, lipgloss.NewStyle().Width(width).Render(d.Description))
	}

	if len(m.Fields) > 0 {
		fields := make([]string, len(m.Fields))
		for i, f := range m.Fields {
			fields[i] = f.View(m.Panel)
		}
		sections = append(sections, strings.Join(fields, "\n\n"))
	}

	if d.DisabledReason != nil && *d.DisabledReason != "" {
		sections = append(sections, DisabledNoteStyle.Width(width).Render(*d.DisabledReason))
	}

	if d.DocsLink != "" {
		sections = append(sections, "View docs. "+DocsLinkStyle.Render(d.DocsLink))
	}

	return strings.Join(sections, "\n\n")
}
