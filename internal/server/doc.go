// Package server implements a small Foxglove WebSocket server.
//
// `vizconnect serve` runs it so the connection dialog and `vizconnect scan`
// have something to find on the local network. The server:
//   - negotiates the foxglove.websocket.v1 subprotocol
//   - sends a serverInfo message as soon as a client connects
//   - answers subscribe requests with a status notice (it publishes no channels)
//   - pings idle clients and drops them after pongWait without a pong
//   - optionally advertises itself as _foxglove-ws._tcp over mDNS
//
// # Usage Example
//
//	srv, err := server.New(&server.Config{Port: 8765, Name: "lab", Advertise: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start blocks until ctx is done or SIGINT/SIGTERM arrives
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// Shutdown stops the mDNS advertisement, closes the listener, sends a close
// frame to every active client, and waits for the connection goroutines to
// finish or the context to expire.
//
// # Thread Safety
//
// Each connection runs in its own goroutine. Server is an http.Handler, so it
// can also be mounted on an existing mux or an httptest server.
package server
