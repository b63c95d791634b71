package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/vizconnect/internal/player"
	"github.com/muurk/vizconnect/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type selectCall struct {
	id  string
	sel source.Selection
}

type fakeSession struct {
	mu     sync.Mutex
	calls  []selectCall
	result *player.Result
	err    error
}

func (f *fakeSession) SelectSource(id string, sel source.Selection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, selectCall{id: id, sel: sel})
}

func (f *fakeSession) Wait(ctx context.Context) (*player.Result, error) {
	return f.result, f.err
}

func (f *fakeSession) Calls() []selectCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]selectCall(nil), f.calls...)
}

func testSources() []source.Descriptor {
	return []source.Descriptor{
		{
			ID:          "a",
			DisplayName: "Alpha",
			Description: "Alpha description",
			DocsLink:    "https://docs.example.com/alpha",
			FormConfig: &source.FormConfig{Fields: []source.Field{
				{ID: "url", Label: "URL", DefaultValue: source.StringPtr("ws://localhost:8765"), Validate: "url:ws,wss"},
				{ID: "token", Label: "Token"},
			}},
		},
		{
			ID:             "b",
			DisplayName:    "Bravo",
			DisabledReason: source.StringPtr("Bravo is not supported here"),
			FormConfig: &source.FormConfig{Fields: []source.Field{
				{ID: "host", Label: "Host", DefaultValue: source.StringPtr("bravo.local")},
			}},
		},
		{
			ID:          "c",
			DisplayName: "Charlie",
			Warning:     "Charlie is experimental",
			FormConfig: &source.FormConfig{Fields: []source.Field{
				{ID: "port", Label: "Port", DefaultValue: source.StringPtr("2369"), Validate: "port"},
			}},
		},
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runesMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func updateConn(t *testing.T, m ConnectionModel, msgs ...tea.Msg) (ConnectionModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(ConnectionModel)
	}
	return m, cmd
}

func newTestApp(t *testing.T, active *source.Descriptor) (AppModel, *fakeSession) {
	t.Helper()
	session := &fakeSession{}
	app := NewAppModel(Options{
		Sources: testSources(),
		Active:  active,
		Session: session,
	})
	return app, session
}

func TestConnectionModel_InitialSelectionFollowsActive(t *testing.T) {
	sources := testSources()
	app, _ := newTestApp(t, &sources[1])

	// [a, c, b]: the disabled connector moves last
	panel := app.Connection.Panel
	require.Len(t, panel.Sources(), 3)
	assert.Equal(t, "b", panel.Sources()[2].ID)
	assert.Equal(t, 2, panel.SelectedIndex())
	assert.False(t, panel.CanOpen())

	require.Len(t, app.Connection.Fields, 1)
	assert.True(t, app.Connection.Fields[0].Disabled)

	view := app.View()
	assert.Contains(t, view, "→ Bravo")
	assert.Contains(t, view, "Bravo is not supported here")
	assert.Contains(t, view, "bravo.local")
}

func TestConnectionModel_OpenDisabledDoesNothing(t *testing.T) {
	sources := testSources()
	app, session := newTestApp(t, &sources[1])

	m, cmd := updateConn(t, app.Connection, keyMsg(tea.KeyCtrlO))
	assert.Nil(t, cmd)
	assert.Empty(t, session.Calls())
	assert.Equal(t, 2, m.Panel.SelectedIndex())
}

func TestConnectionModel_TabChangeResetsValues(t *testing.T) {
	app, _ := newTestApp(t, nil)
	m := app.Connection

	// Focus the url field and make a valid edit
	m, _ = updateConn(t, m, keyMsg(tea.KeyTab), runesMsg("/robot"))
	v, _ := m.Panel.Value("url")
	assert.Equal(t, "ws://localhost:8765/robot", v)

	// Back to the tab list, down to Charlie, up to Alpha again
	m, _ = updateConn(t, m, keyMsg(tea.KeyShiftTab), keyMsg(tea.KeyDown))
	d, _ := m.Panel.Selected()
	assert.Equal(t, "c", d.ID)
	port, ok := m.Panel.Value("port")
	assert.True(t, ok)
	assert.Equal(t, "2369", port)

	m, _ = updateConn(t, m, keyMsg(tea.KeyUp))
	v, _ = m.Panel.Value("url")
	assert.Equal(t, "ws://localhost:8765", v)
	assert.Equal(t, "ws://localhost:8765", m.Fields[0].Input.Value())

	_, hasToken := m.Panel.Value("token")
	assert.False(t, hasToken, "fields without defaults stay absent")
}

func TestConnectionModel_InvalidEditKeepsValue(t *testing.T) {
	app, session := newTestApp(t, nil)
	m := app.Connection

	// Clear the url field: the validator rejects the empty value
	m, _ = updateConn(t, m, keyMsg(tea.KeyTab), keyMsg(tea.KeyCtrlU))

	msg, ok := m.Panel.FieldError("url")
	require.True(t, ok)
	assert.Equal(t, "URL must start with ws:// or wss://", msg)
	v, _ := m.Panel.Value("url")
	assert.Equal(t, "ws://localhost:8765", v, "invalid edits do not update the value map")
	assert.False(t, m.Panel.CanOpen())
	assert.Contains(t, m.View(), "URL must start with ws:// or wss://")

	// Open is gated
	m, cmd := updateConn(t, m, keyMsg(tea.KeyCtrlO))
	assert.Nil(t, cmd)
	assert.Empty(t, session.Calls())

	// A valid value clears the error
	m, _ = updateConn(t, m, runesMsg("wss://robot.local:8765"))
	_, ok = m.Panel.FieldError("url")
	assert.False(t, ok)
	assert.True(t, m.Panel.CanOpen())
}

func TestConnectionModel_ErrorSurvivesTabChange(t *testing.T) {
	app, session := newTestApp(t, nil)
	m := app.Connection

	m, _ = updateConn(t, m, keyMsg(tea.KeyTab), keyMsg(tea.KeyCtrlU))
	require.False(t, m.Panel.CanOpen())

	// Over to Charlie: values reset, the url error does not
	m, _ = updateConn(t, m, keyMsg(tea.KeyShiftTab), keyMsg(tea.KeyDown))
	d, _ := m.Panel.Selected()
	require.Equal(t, "c", d.ID)
	_, ok := m.Panel.FieldError("url")
	assert.True(t, ok)
	assert.False(t, m.Panel.CanOpen())

	_, cmd := updateConn(t, m, keyMsg(tea.KeyCtrlO))
	assert.Nil(t, cmd)
	assert.Empty(t, session.Calls())
}

func TestConnectionModel_OpenHandsOffSelection(t *testing.T) {
	app, session := newTestApp(t, nil)
	m := app.Connection

	// tab to url, tab to token, type, enter on the last field opens
	m, _ = updateConn(t, m, keyMsg(tea.KeyTab), keyMsg(tea.KeyTab), runesMsg("secret"))
	assert.Equal(t, 1, m.Focus)
	_, cmd := updateConn(t, m, keyMsg(tea.KeyEnter))
	require.NotNil(t, cmd)

	calls := session.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "a", calls[0].id)
	assert.Equal(t, source.KindConnection, calls[0].sel.Kind)
	assert.Equal(t, map[string]string{"url": "ws://localhost:8765", "token": "secret"}, calls[0].sel.Params)

	opened, ok := cmd().(OpenedMsg)
	require.True(t, ok)
	assert.Equal(t, "a", opened.SourceID)
	assert.Equal(t, "secret", opened.Selection.Params["token"])
}

func TestConnectionModel_EnterOnFirstFieldMovesFocus(t *testing.T) {
	app, session := newTestApp(t, nil)
	m, _ := updateConn(t, app.Connection, keyMsg(tea.KeyEnter))
	assert.Equal(t, 0, m.Focus, "enter on the tab list focuses the first field")

	m, _ = updateConn(t, m, keyMsg(tea.KeyEnter))
	assert.Equal(t, 1, m.Focus)
	assert.Empty(t, session.Calls())
}

func TestConnectionModel_FocusWraps(t *testing.T) {
	app, _ := newTestApp(t, nil)
	m, _ := updateConn(t, app.Connection, keyMsg(tea.KeyShiftTab))
	assert.Equal(t, 1, m.Focus, "shift+tab from the tab list wraps to the last field")

	m, _ = updateConn(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, -1, m.Focus)
}

func TestConnectionModel_DisabledFieldsSkipFocus(t *testing.T) {
	sources := testSources()
	app, _ := newTestApp(t, &sources[1])

	m, _ := updateConn(t, app.Connection, keyMsg(tea.KeyTab))
	assert.Equal(t, -1, m.Focus)
}

func TestConnectionModel_TabsDoNotMovePastEnds(t *testing.T) {
	app, _ := newTestApp(t, nil)
	m, _ := updateConn(t, app.Connection, keyMsg(tea.KeyUp))
	assert.Equal(t, 0, m.Panel.SelectedIndex())

	m, _ = updateConn(t, m, runesMsg("j"), runesMsg("j"), runesMsg("j"))
	assert.Equal(t, 2, m.Panel.SelectedIndex())
}

func TestConnectionModel_SourcesMsg(t *testing.T) {
	app, _ := newTestApp(t, nil)
	m, _ := updateConn(t, app.Connection, keyMsg(tea.KeyDown))
	require.Equal(t, "c", m.Panel.Sources()[m.Panel.SelectedIndex()].ID)

	discovered := append([]source.Descriptor{{ID: "z", DisplayName: "Zulu"}}, testSources()...)

	m, _ = updateConn(t, m, scanStartMsg{})
	assert.True(t, m.Scanning)
	assert.Contains(t, m.View(), "Searching the local network")

	m, _ = updateConn(t, m, SourcesMsg{Sources: discovered})
	assert.False(t, m.Scanning)
	d, ok := m.Panel.Selected()
	require.True(t, ok)
	assert.Equal(t, "c", d.ID, "selection is kept by ID")
	assert.Len(t, m.Panel.Sources(), 4)

	m, _ = updateConn(t, m, SourcesMsg{Err: errors.New("no multicast")})
	assert.Len(t, m.Panel.Sources(), 4)
	assert.Contains(t, m.View(), "Discovery failed: no multicast")
}

func TestConnectionModel_ActiveSourceMsg(t *testing.T) {
	app, _ := newTestApp(t, nil)
	sources := testSources()

	m, _ := updateConn(t, app.Connection, ActiveSourceMsg{Source: &sources[2]})
	assert.Equal(t, 1, m.Panel.SelectedIndex())
	assert.Equal(t, "port", m.Fields[0].Field.ID)

	unknown := source.Descriptor{ID: "nope"}
	m, _ = updateConn(t, m, ActiveSourceMsg{Source: &unknown})
	assert.Equal(t, 1, m.Panel.SelectedIndex(), "unknown connectors are ignored")
}

func TestConnectionModel_DisplayOrder(t *testing.T) {
	app, _ := newTestApp(t, nil)
	view := app.Connection.View()

	assert.Contains(t, view, "Alpha description")
	assert.Contains(t, view, "View docs.")
	assert.NotContains(t, view, "⚠")

	m, _ := updateConn(t, app.Connection, keyMsg(tea.KeyDown))
	view = m.View()
	assert.Contains(t, view, "⚠ Charlie is experimental")
	assert.NotContains(t, view, "View docs.")
	assert.NotContains(t, view, "Alpha description")
}

func TestConnectionModel_EmptyList(t *testing.T) {
	app := NewAppModel(Options{Session: &fakeSession{}})
	assert.Equal(t, -1, app.Connection.Panel.SelectedIndex())
	assert.False(t, app.Connection.Panel.CanOpen())
	assert.Contains(t, app.View(), "No data sources are available.")
}
