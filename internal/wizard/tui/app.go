package tui

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/vizconnect/internal/connection"
	"github.com/muurk/vizconnect/internal/logging"
	"github.com/muurk/vizconnect/internal/player"
	"github.com/muurk/vizconnect/internal/source"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenConnection Screen = "connection"
	ScreenOpened     Screen = "opened"
)

// Messages for screen transitions
type goBackMsg struct{}
type cancelMsg struct{}

// resultMsg carries the outcome of the attempt numbered seq
type resultMsg struct {
	seq    int
	result *player.Result
	err    error
}

// Session is the selection context behind the dialog.
type Session interface {
	connection.Selector
	Wait(ctx context.Context) (*player.Result, error)
}

// DiscoverFunc finds additional connectors, e.g. over mDNS.
type DiscoverFunc func(ctx context.Context) ([]source.Descriptor, error)

// Options configures the application model.
type Options struct {
	Sources  []source.Descriptor
	Active   *source.Descriptor
	Session  Session
	Discover DiscoverFunc
}

// openedKeyMap defines key bindings for the opened screen
type openedKeyMap struct {
	Change key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k openedKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Change, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k openedKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Change, k.Quit},
	}
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	// Current screen state
	CurrentScreen  Screen
	PreviousScreen Screen

	// Screen models
	Connection ConnectionModel

	session  Session
	discover DiscoverFunc
	base     []source.Descriptor

	// Shared application state
	SourceID  string
	Selection source.Selection
	Result    *player.Result
	LastError error
	Waiting   bool
	Cancelled bool
	seq       int

	// UI state
	Width  int
	Height int

	Spinner    spinner.Model
	Help       help.Model
	OpenedKeys openedKeyMap
}

// NewAppModel creates the application model starting at the connection dialog
func NewAppModel(opts Options) AppModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	var selector connection.Selector
	if opts.Session != nil {
		selector = opts.Session
	}

	conn := NewConnectionModel(connection.New(opts.Sources, opts.Active), selector)
	conn.OnCancel = func() tea.Msg { return cancelMsg{} }

	return AppModel{
		CurrentScreen: ScreenConnection,
		Connection:    conn,
		session:       opts.Session,
		discover:      opts.Discover,
		base:          opts.Sources,
		Spinner:       s,
		Help:          help.New(),
		OpenedKeys: openedKeyMap{
			Change: key.NewBinding(
				key.WithKeys("c", "esc"),
				key.WithHelp("c", "change source"),
			),
			Quit: key.NewBinding(
				key.WithKeys("enter", "q"),
				key.WithHelp("enter/q", "done"),
			),
		},
	}
}

// Init starts background discovery when configured
func (m AppModel) Init() tea.Cmd {
	if m.discover == nil {
		return m.Connection.Init()
	}
	return tea.Batch(
		m.Connection.Init(),
		func() tea.Msg { return scanStartMsg{} },
		discoverSources(m.discover, m.base),
		m.Connection.Spinner.Tick,
	)
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Connection.Width = msg.Width
		m.Connection.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			if m.SourceID == "" {
				m.Cancelled = true
			}
			return m, tea.Quit
		}

	case cancelMsg:
		m.Cancelled = true
		return m, tea.Quit

	case goBackMsg:
		return m.goBack()

	case OpenedMsg:
		m.SourceID = msg.SourceID
		m.Selection = msg.Selection
		m.Result = nil
		m.LastError = nil
		m.Waiting = true
		m.seq++
		m.PreviousScreen = m.CurrentScreen
		m.CurrentScreen = ScreenOpened
		return m, tea.Batch(m.Spinner.Tick, waitForResult(m.session, m.seq))

	case resultMsg:
		if msg.seq != m.seq {
			// Result of a superseded attempt
			return m, nil
		}
		m.Waiting = false
		m.Result = msg.result
		m.LastError = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.Waiting {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		updated, cmd := m.Connection.Update(msg)
		m.Connection = updated.(ConnectionModel)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case SourcesMsg, ActiveSourceMsg, scanStartMsg:
		// Dialog props change even while another screen is shown
		updated, cmd := m.Connection.Update(msg)
		m.Connection = updated.(ConnectionModel)
		return m, cmd
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.CurrentScreen {
	case ScreenConnection:
		updated, cmd := m.Connection.Update(msg)
		m.Connection = updated.(ConnectionModel)
		return m, cmd

	case ScreenOpened:
		return m.handleOpenedScreen(msg)
	}
	return m, nil
}

// handleOpenedScreen handles user input on the opened screen
func (m AppModel) handleOpenedScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.OpenedKeys.Change):
		m.PreviousScreen = m.CurrentScreen
		m.CurrentScreen = ScreenConnection
		m.Connection.OnBack = func() tea.Msg { return goBackMsg{} }
		return m, nil

	case key.Matches(keyMsg, m.OpenedKeys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// goBack returns to the previous screen
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	switch m.CurrentScreen {
	case ScreenConnection:
		if m.PreviousScreen != ScreenOpened || m.SourceID == "" {
			// Nothing to go back to
			m.Cancelled = true
			return m, tea.Quit
		}
		m.PreviousScreen = m.CurrentScreen
		m.CurrentScreen = ScreenOpened
		return m, nil

	default:
		return m, tea.Quit
	}
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenConnection:
		return m.Connection.View()
	case ScreenOpened:
		return m.renderOpenedScreen()
	default:
		return "Unknown screen"
	}
}

// renderOpenedScreen renders the selection and the attempt's outcome
func (m AppModel) renderOpenedScreen() string {
	width, height := m.Connection.size()

	return RenderView(ViewProps{
		Title:   "✓ Source selected",
		Content: m.buildOpenedContent(),
		Help:    m.Help.View(m.OpenedKeys),
		Width:   width,
		Height:  height,
	})
}

// buildOpenedContent builds the opened screen content
func (m AppModel) buildOpenedContent() string {
	var b strings.Builder

	var params strings.Builder
	params.WriteString(fmt.Sprintf("Source: %s", m.SourceID))
	shown := logging.RedactParams(m.Selection.Params)
	for _, k := range slices.Sorted(maps.Keys(shown)) {
		params.WriteString(fmt.Sprintf("\n  %s: %s", k, shown[k]))
	}
	b.WriteString(RenderInfo(params.String()))
	b.WriteString("\n")

	switch {
	case m.Waiting:
		b.WriteString(SpinnerStyle.Render(m.Spinner.View() + " Connecting..."))

	case m.LastError != nil:
		b.WriteString(RenderError(player.GetShortErrorMessage(m.LastError)))
		b.WriteString("\n\n")
		b.WriteString(player.GetTroubleshootingHint(m.LastError))

	case m.Result != nil:
		b.WriteString(RenderSuccess(m.Result.Summary))
		for _, k := range slices.Sorted(maps.Keys(m.Result.Details)) {
			b.WriteString(fmt.Sprintf("\n  %s: %s", k, m.Result.Details[k]))
		}
	}

	return b.String()
}

// discoverSources runs discover and merges the result into base
func discoverSources(discover DiscoverFunc, base []source.Descriptor) tea.Cmd {
	return func() tea.Msg {
		found, err := discover(context.Background())
		if err != nil {
			return SourcesMsg{Err: err}
		}
		return SourcesMsg{Sources: source.Merge(base, found)}
	}
}

// waitForResult waits for the session's current attempt
func waitForResult(session Session, seq int) tea.Cmd {
	return func() tea.Msg {
		if session == nil {
			return resultMsg{seq: seq, err: player.ErrNoSelection}
		}
		res, err := session.Wait(context.Background())
		return resultMsg{seq: seq, result: res, err: err}
	}
}
