package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/vizconnect/internal/logging"
	"github.com/muurk/vizconnect/internal/protocol"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// ServeHTTP upgrades the request and runs the connection until it closes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	remoteAddr := r.RemoteAddr

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		logging.Warn("Invalid WebSocket upgrade request",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.activeConns[remoteAddr] = conn
	s.wg.Add(1)
	s.mu.Unlock()

	defer func() {
		_ = conn.Close()
		s.mu.Lock()
		delete(s.activeConns, remoteAddr)
		s.mu.Unlock()
		s.wg.Done()
		logging.LogConnection(remoteAddr, "websocket_closed")
	}()

	logging.LogConnection(remoteAddr, "websocket_upgraded")
	s.handleConnection(conn, remoteAddr)
}

// handleConnection greets the client and answers its control messages.
func (s *Server) handleConnection(conn *websocket.Conn, remoteAddr string) {
	if conn.Subprotocol() != protocol.Subprotocol {
		logging.Warn("Client did not negotiate the Foxglove subprotocol",
			zap.String("remote_addr", remoteAddr),
			zap.String("subprotocol", conn.Subprotocol()),
		)
	}

	sessionID := strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := s.send(conn, remoteAddr, protocol.NewServerInfo(s.config.name(), sessionID)); err != nil {
		logging.Error("Failed to send serverInfo",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		logging.Debug("Received pong", zap.String("remote_addr", remoteAddr))
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go s.pingLoop(conn, remoteAddr, stopPing)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("Connection closed by client",
					zap.String("remote_addr", remoteAddr),
				)
			} else {
				logging.Info("Connection closed or error reading frame",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}

		logging.LogWebSocketMessage(remoteAddr, "received", msgType, data)

		reply := s.handleMessage(remoteAddr, msgType, data)
		if reply == nil {
			continue
		}
		if err := s.send(conn, remoteAddr, reply); err != nil {
			logging.Error("Failed to send reply",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			return
		}
	}
}

// handleMessage returns the status reply for a client message, or nil.
func (s *Server) handleMessage(remoteAddr string, msgType int, data []byte) protocol.Message {
	if msgType != websocket.TextMessage {
		return protocol.NewStatus(protocol.StatusError, "binary client messages are not supported")
	}

	msg, err := protocol.ParseMessage(data)
	if err != nil {
		logging.Warn("Failed to parse client message",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return protocol.NewStatus(protocol.StatusError, err.Error())
	}

	logging.Info("Client message",
		zap.String("remote_addr", remoteAddr),
		zap.String("message", msg.String()),
	)

	switch msg.(type) {
	case *protocol.Subscribe:
		return protocol.NewStatus(protocol.StatusWarning, "the demo server publishes no channels")
	case *protocol.Unsubscribe:
		return nil
	default:
		return protocol.NewStatus(protocol.StatusError, "unexpected "+msg.MessageOp()+" from client")
	}
}

func (s *Server) send(conn *websocket.Conn, remoteAddr string, msg protocol.Message) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	logging.LogWebSocketMessage(remoteAddr, "sent", websocket.TextMessage, data)
	return conn.WriteMessage(websocket.TextMessage, data)
}

// pingLoop keeps idle clients alive. WriteControl is safe to call
// concurrently with the reply writes in handleConnection.
func (s *Server) pingLoop(conn *websocket.Conn, remoteAddr string, stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logging.Debug("Sending ping", zap.String("remote_addr", remoteAddr))
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}
