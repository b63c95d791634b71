package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
	"github.com/muurk/vizconnect/internal/logging"
	"github.com/muurk/vizconnect/internal/protocol"
	"go.uber.org/zap"
)

// DefaultName is advertised when Config.Name is empty.
const DefaultName = "vizconnect demo"

// Config holds the server configuration
type Config struct {
	Host string
	Port int
	// Name is sent in serverInfo and the mDNS TXT record
	Name string
	// Advertise registers the server over mDNS
	Advertise bool
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 0-65535, got %d", c.Port)
	}
	return nil
}

func (c *Config) name() string {
	if c.Name == "" {
		return DefaultName
	}
	return c.Name
}

// Server is a minimal Foxglove WebSocket server. It greets clients with
// serverInfo and answers control messages with status notices.
type Server struct {
	config     *Config
	upgrader   websocket.Upgrader
	httpServer *http.Server
	listener   net.Listener
	mdns       *zeroconf.Server

	wg          sync.WaitGroup
	mu          sync.Mutex
	closing     bool
	activeConns map[string]*websocket.Conn
}

// New creates a new Server instance
func New(config *Config) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		config:      config,
		activeConns: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			Subprotocols: []string{protocol.Subprotocol},
			// The demo server is meant for local tools, not browsers.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Listen binds the listening socket. Port 0 picks a free port.
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	logging.Info("Server listening for connections",
		zap.String("addr", listener.Addr().String()),
		zap.String("name", s.config.name()),
	)
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start listens and serves until ctx is done or SIGINT/SIGTERM arrives
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-sigChan:
			logging.Info("Shutdown signal received, stopping server...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return s.Serve(ctx)
}

// Serve accepts connections on the bound listener until ctx is done
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	if s.config.Advertise {
		if err := s.advertise(); err != nil {
			logging.Warn("mDNS advertising failed, continuing without it", zap.Error(err))
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	}
}

// advertise registers the server as a Foxglove WebSocket service over mDNS
func (s *Server) advertise() error {
	port := s.listener.Addr().(*net.TCPAddr).Port
	txt := []string{"name=" + s.config.name(), "path=/"}

	mdns, err := zeroconf.Register(instanceName(s.config.name()), ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}
	s.mdns = mdns

	logging.Info("Advertising over mDNS",
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if s.mdns != nil {
		s.mdns.Shutdown()
		s.mdns = nil
	}

	// Hijacked WebSocket connections are not tracked by http.Server.
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logging.Error("Error closing listener", zap.Error(err))
	}

	s.mu.Lock()
	s.closing = true
	for addr, conn := range s.activeConns {
		logging.Info("Closing active connection", zap.String("remote_addr", addr))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()
	return nil
}

// GetActiveConnections returns the number of active connections
func (s *Server) GetActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}
