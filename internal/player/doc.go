// Package player is the selection context behind the connection dialog.
//
// A Session receives the source ID and parameters when the user presses
// Open. It logs and records the selection, notifies listeners, and then
// opens the source in the background with the Driver registered for it:
//
//   - WebSocketDriver dials Foxglove WebSocket and rosbridge servers and,
//     for Foxglove, reads the serverInfo greeting
//   - HTTPDriver sends a HEAD request for remote files
//
// SelectSource never blocks. Callers that care about the outcome call Wait.
//
// # Error Handling
//
// Driver failures are *OpenError values. ClassifyNetworkError maps dial and
// request errors to a category with a retryable flag, and
// GetShortErrorMessage / GetTroubleshootingHint turn them into text for the
// terminal.
package player
