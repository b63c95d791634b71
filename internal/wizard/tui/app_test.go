package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/vizconnect/internal/player"
	"github.com/muurk/vizconnect/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func updateApp(t *testing.T, m AppModel, msgs ...tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(AppModel)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestAppModel_OpenFlow(t *testing.T) {
	app, session := newTestApp(t, nil)
	session.result = &player.Result{
		SourceID: "a",
		Verified: true,
		Summary:  "Connected to lab",
		Details:  map[string]string{"server": "lab"},
	}

	m, cmd := updateApp(t, app, keyMsg(tea.KeyCtrlO))
	require.NotNil(t, cmd)
	opened := cmd().(OpenedMsg)

	m, _ = updateApp(t, m, opened)
	assert.Equal(t, ScreenOpened, m.CurrentScreen)
	assert.True(t, m.Waiting)
	assert.Equal(t, "a", m.SourceID)
	assert.Contains(t, m.View(), "Connecting...")
	assert.Contains(t, m.View(), "url: ws://localhost:8765")

	m, _ = updateApp(t, m, waitForResult(session, m.seq)())
	assert.False(t, m.Waiting)
	assert.NoError(t, m.LastError)
	assert.Contains(t, m.View(), "Connected to lab")
	assert.Contains(t, m.View(), "server: lab")

	_, cmd = updateApp(t, m, keyMsg(tea.KeyEnter))
	assert.True(t, isQuit(cmd))
}

func TestAppModel_OpenedScreenMasksSecrets(t *testing.T) {
	app, _ := newTestApp(t, nil)

	m, _ := updateApp(t, app, OpenedMsg{
		SourceID: "a",
		Selection: source.Selection{
			Kind:   source.KindConnection,
			Params: map[string]string{"url": "ws://localhost:8765", "token": "hunter2"},
		},
	})

	view := m.View()
	assert.NotContains(t, view, "hunter2")
	assert.Contains(t, view, "token: ***")
	assert.Contains(t, view, "url: ws://localhost:8765")
	assert.Equal(t, "hunter2", m.Selection.Params["token"])
}

func TestAppModel_OpenFailure(t *testing.T) {
	app, session := newTestApp(t, nil)
	session.err = player.NewHTTPError(404, "files.example.com")
	session.result = &player.Result{SourceID: "a", Err: session.err}

	m, cmd := updateApp(t, app, keyMsg(tea.KeyCtrlO))
	m, _ = updateApp(t, m, cmd())
	m, _ = updateApp(t, m, waitForResult(session, m.seq)())

	require.Error(t, m.LastError)
	view := m.View()
	assert.Contains(t, view, "Server error (HTTP 404)")
	assert.Contains(t, view, "The file was not found at that URL.")
}

func TestAppModel_StaleResultIgnored(t *testing.T) {
	app, _ := newTestApp(t, nil)
	m, _ := updateApp(t, app, OpenedMsg{SourceID: "a"}, OpenedMsg{SourceID: "c"})
	require.Equal(t, 2, m.seq)

	m, _ = updateApp(t, m, resultMsg{seq: 1, result: &player.Result{Summary: "old"}})
	assert.True(t, m.Waiting)
	assert.Nil(t, m.Result)
}

func TestAppModel_ChangeSourceAndBack(t *testing.T) {
	app, _ := newTestApp(t, nil)
	m, _ := updateApp(t, app, OpenedMsg{SourceID: "a"})

	// c returns to the dialog, which now offers Back
	m, _ = updateApp(t, m, runesMsg("c"))
	assert.Equal(t, ScreenConnection, m.CurrentScreen)
	require.NotNil(t, m.Connection.OnBack)
	assert.Contains(t, m.View(), "Back (esc)")

	// esc runs OnBack, which returns to the opened screen
	m, cmd := updateApp(t, m, keyMsg(tea.KeyEsc))
	require.NotNil(t, cmd)
	m, _ = updateApp(t, m, cmd())
	assert.Equal(t, ScreenOpened, m.CurrentScreen)
	assert.False(t, m.Cancelled)
}

func TestAppModel_NoBackOnFirstScreen(t *testing.T) {
	app, _ := newTestApp(t, nil)
	assert.NotContains(t, app.View(), "Back (esc)")
	assert.Contains(t, app.View(), "Cancel (ctrl+c)")

	_, cmd := updateApp(t, app, keyMsg(tea.KeyEsc))
	assert.Nil(t, cmd)
}

func TestAppModel_Cancel(t *testing.T) {
	app, session := newTestApp(t, nil)

	m, cmd := updateApp(t, app, keyMsg(tea.KeyCtrlC))
	assert.True(t, m.Cancelled)
	assert.True(t, isQuit(cmd))
	assert.Empty(t, session.Calls())

	m, cmd = updateApp(t, app, cancelMsg{})
	assert.True(t, m.Cancelled)
	assert.True(t, isQuit(cmd))
}

func TestAppModel_CtrlCAfterOpenIsNotCancel(t *testing.T) {
	app, _ := newTestApp(t, nil)
	m, _ := updateApp(t, app, OpenedMsg{SourceID: "a"}, keyMsg(tea.KeyCtrlC))
	assert.False(t, m.Cancelled)
}

func TestAppModel_Discovery(t *testing.T) {
	discover := func(ctx context.Context) ([]source.Descriptor, error) {
		return []source.Descriptor{{ID: "foxglove-websocket@10.0.0.5:8765", DisplayName: "lab"}}, nil
	}
	app := NewAppModel(Options{Sources: testSources(), Session: &fakeSession{}, Discover: discover})
	require.NotNil(t, app.Init())

	msg := discoverSources(discover, testSources())()
	sources, ok := msg.(SourcesMsg)
	require.True(t, ok)
	require.NoError(t, sources.Err)
	assert.Len(t, sources.Sources, 4)

	// Dialog props are updated even from the opened screen
	m, _ := updateApp(t, app, OpenedMsg{SourceID: "a"}, msg)
	assert.Len(t, m.Connection.Panel.Sources(), 4)
}

func TestAppModel_DiscoveryError(t *testing.T) {
	failing := func(ctx context.Context) ([]source.Descriptor, error) {
		return nil, errors.New("no multicast")
	}
	msg := discoverSources(failing, testSources())()
	assert.EqualError(t, msg.(SourcesMsg).Err, "no multicast")
}

func TestAppModel_WindowSize(t *testing.T) {
	app, _ := newTestApp(t, nil)
	m, _ := updateApp(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.Connection.Width)
	assert.Equal(t, 40, m.Connection.Height)
}

func TestWaitForResult_NoSession(t *testing.T) {
	msg := waitForResult(nil, 3)().(resultMsg)
	assert.Equal(t, 3, msg.seq)
	assert.ErrorIs(t, msg.err, player.ErrNoSelection)
}

func TestRenderView_HidesNilSlots(t *testing.T) {
	out := RenderView(ViewProps{Content: "body", Width: 80, Height: 20})
	assert.Contains(t, out, "body")
	assert.NotContains(t, out, "Back")
	assert.NotContains(t, out, "Cancel")
	assert.NotContains(t, out, "Open")

	out = RenderView(ViewProps{
		Content: "body",
		Back:    &Action{Key: "esc", Label: "Back"},
		Open:    &Action{Key: "ctrl+o", Label: "Open", Disabled: true},
		Width:   80,
		Height:  20,
	})
	assert.Contains(t, out, "Back (esc)")
	assert.Contains(t, out, "Open (ctrl+o)")
	assert.NotContains(t, out, "Cancel")
}
