package player

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/vizconnect/internal/logging"
	"github.com/muurk/vizconnect/internal/protocol"
	"github.com/muurk/vizconnect/internal/source"
	"github.com/muurk/vizconnect/internal/version"
)

const (
	// Time allowed for the opening handshake
	handshakeTimeout = 5 * time.Second

	// Time allowed to read the server greeting
	greetingWait = 5 * time.Second

	// Time allowed to write the close frame
	writeWait = time.Second
)

// WebSocketDriver verifies a WebSocket source by connecting to params["url"].
type WebSocketDriver struct {
	// Subprotocol is offered during the handshake and must be accepted by
	// the server. Empty offers none.
	Subprotocol string

	// ReadGreeting waits for a serverInfo message after the handshake.
	ReadGreeting bool

	// HandshakeTimeout overrides the default handshake timeout.
	HandshakeTimeout time.Duration
}

// NewFoxgloveDriver returns a driver for Foxglove WebSocket servers.
func NewFoxgloveDriver() *WebSocketDriver {
	return &WebSocketDriver{
		Subprotocol:  protocol.Subprotocol,
		ReadGreeting: true,
	}
}

// NewRosbridgeDriver returns a driver for rosbridge servers, which send
// nothing until the client speaks.
func NewRosbridgeDriver() *WebSocketDriver {
	return &WebSocketDriver{}
}

// Open dials the source and closes the connection once it is verified.
func (d *WebSocketDriver) Open(ctx context.Context, sourceID string, sel source.Selection) (*Opened, error) {
	rawURL := sel.Params["url"]
	if rawURL == "" {
		return nil, NewParamsError("missing url parameter")
	}
	address := hostOf(rawURL)

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: d.handshakeTimeout(),
	}
	if d.Subprotocol != "" {
		dialer.Subprotocols = []string{d.Subprotocol}
	}

	header := http.Header{}
	header.Set("User-Agent", version.UserAgent())

	conn, resp, err := dialer.DialContext(ctx, rawURL, header)
	if err != nil {
		if errors.Is(err, websocket.ErrBadHandshake) && resp != nil {
			return nil, &OpenError{
				Type:       ErrTypeHandshake,
				Message:    fmt.Sprintf("Server rejected the WebSocket handshake (HTTP %d)", resp.StatusCode),
				StatusCode: resp.StatusCode,
				Address:    address,
				Err:        err,
			}
		}
		return nil, ClassifyNetworkError(err, address)
	}
	defer func() {
		_ = conn.Close()
		logging.LogConnection(address, "websocket_closed")
	}()
	logging.LogConnection(address, "websocket_connected")

	opened := &Opened{
		Summary: "Connected to " + rawURL,
		Details: map[string]string{"url": rawURL},
	}

	if d.Subprotocol != "" {
		if conn.Subprotocol() != d.Subprotocol {
			return nil, NewProtocolError(fmt.Sprintf("server did not accept subprotocol %q", d.Subprotocol), nil)
		}
		opened.Details["subprotocol"] = conn.Subprotocol()
	}

	if d.ReadGreeting {
		info, err := readServerInfo(ctx, conn, address)
		if err != nil {
			return nil, err
		}
		opened.Summary = fmt.Sprintf("Connected to %s", info.Name)
		opened.Details["server"] = info.Name
		if info.SessionID != "" {
			opened.Details["session"] = info.SessionID
		}
		if len(info.Capabilities) > 0 {
			opened.Details["capabilities"] = strings.Join(info.Capabilities, ", ")
		}
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))

	return opened, nil
}

func (d *WebSocketDriver) handshakeTimeout() time.Duration {
	if d.HandshakeTimeout > 0 {
		return d.HandshakeTimeout
	}
	return handshakeTimeout
}

func readServerInfo(ctx context.Context, conn *websocket.Conn, address string) (*protocol.ServerInfo, error) {
	deadline := time.Now().Add(greetingWait)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, ClassifyNetworkError(err, address)
	}

	msgType, data, err := conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, NewProtocolError("server closed the connection before sending serverInfo", err)
		}
		return nil, ClassifyNetworkError(err, address)
	}
	logging.LogWebSocketMessage(address, "received", msgType, data)

	if msgType != websocket.TextMessage {
		return nil, NewProtocolError("expected a text serverInfo message", nil)
	}

	msg, err := protocol.ParseMessage(data)
	if err != nil {
		return nil, NewProtocolError("failed to parse server greeting", err)
	}
	info, ok := msg.(*protocol.ServerInfo)
	if !ok {
		return nil, NewProtocolError(fmt.Sprintf("expected serverInfo, got %s", msg.MessageOp()), nil)
	}
	return info, nil
}

// hostOf returns the host:port of a URL for error context.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
