// Package logging provides structured logging for vizconnect.
//
// This package wraps a global zap logger with convenience functions for the
// events the dialog, the player session and the demo server care about.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (frame dumps, field edits)
//   - Info: Normal operations (selections, connections, server events)
//   - Warn: Non-fatal issues (failed discovery, dropped connections)
//   - Error: Failures reported to the user
//
// Logging is silent unless a level is given with --log-level or the
// VIZCONNECT_LOG_LEVEL environment variable.
//
// # Output
//
// The interactive dialog owns the terminal, so while it runs logs go to a
// file (--log-file, default <config dir>/vizconnect.log). Non-interactive
// commands such as `serve` log to stderr.
//
//	if err := logging.Initialize("debug", "/tmp/vizconnect.log"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Specialized Logging
//
//	logging.LogSelection("foxglove-websocket", "connection", params)
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//	logging.LogWebSocketMessage(remoteAddr, "received", msgType, payload)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
