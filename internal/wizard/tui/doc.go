// Package tui implements the terminal connection dialog.
//
// The dialog lists every known data source on the left, enabled sources
// first, and shows the selected source's description and parameter form on
// the right. Switching tabs resets the form to the new source's declared
// defaults. Open hands the current parameters to the session and moves to a
// result screen that waits for the session's connection attempt.
//
// # Screens
//
//   - Connection: tab list, details, parameter fields, Back / Cancel / Open
//   - Opened: the chosen parameters and the outcome of the attempt
//
// Every screen renders through RenderView, which wraps
// RenderApplicationContainer with the title and the action slots.
//
// # Key Bindings
//
//   - Connection: ↑/↓ switch source, tab/shift+tab move focus, enter next
//     field or open, ctrl+o open, esc back, ctrl+c cancel
//   - Opened: c change source, enter/q done
//
// # Usage Example
//
//	app := tui.NewAppModel(tui.Options{
//	    Sources: source.Builtin(),
//	    Session: player.NewSession(ctx),
//	})
//	program := tea.NewProgram(app, tea.WithAltScreen())
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
package tui
