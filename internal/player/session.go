package player

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/muurk/vizconnect/internal/logging"
	"github.com/muurk/vizconnect/internal/source"
	"go.uber.org/zap"
)

// DefaultOpenTimeout bounds a single driver attempt.
const DefaultOpenTimeout = 10 * time.Second

// ErrNoSelection is returned by Wait when no source was ever selected.
var ErrNoSelection = errors.New("no source selected")

// Driver opens a selected source and reports what it found.
type Driver interface {
	Open(ctx context.Context, sourceID string, sel source.Selection) (*Opened, error)
}

// DriverFunc adapts a plain function to the Driver interface.
type DriverFunc func(ctx context.Context, sourceID string, sel source.Selection) (*Opened, error)

// Open calls f(ctx, sourceID, sel).
func (f DriverFunc) Open(ctx context.Context, sourceID string, sel source.Selection) (*Opened, error) {
	return f(ctx, sourceID, sel)
}

// Opened is what a driver learned about a source it reached.
type Opened struct {
	Summary string
	Details map[string]string
}

// Result is the outcome of one selection.
type Result struct {
	SourceID  string
	Selection source.Selection

	// Verified is true when a driver reached the source.
	Verified bool
	Summary  string
	Details  map[string]string
	Err      error

	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the attempt took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Listener is notified synchronously of every selection.
type Listener func(sourceID string, sel source.Selection)

type attempt struct {
	sourceID string
	sel      source.Selection
	cancel   context.CancelFunc
	done     chan struct{}
	result   *Result
}

// Session is the selection context handed to the connection panel. It
// records selections and opens them in the background.
type Session struct {
	ctx         context.Context
	drivers     map[string]Driver
	openTimeout time.Duration

	mu        sync.Mutex
	current   *attempt
	listeners []Listener
}

// Option configures a Session.
type Option func(*Session)

// WithDriver registers d for a source ID. Discovered sources use the ID of
// the connector they were derived from, the part before "@".
func WithDriver(sourceID string, d Driver) Option {
	return func(s *Session) {
		s.drivers[sourceID] = d
	}
}

// WithOpenTimeout overrides DefaultOpenTimeout.
func WithOpenTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.openTimeout = d
	}
}

// WithListener adds a selection listener.
func WithListener(l Listener) Option {
	return func(s *Session) {
		s.listeners = append(s.listeners, l)
	}
}

// NewSession creates a session. Driver attempts run under ctx and stop
// when it is cancelled.
func NewSession(ctx context.Context, opts ...Option) *Session {
	s := &Session{
		ctx:         ctx,
		drivers:     make(map[string]Driver),
		openTimeout: DefaultOpenTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultDrivers returns the drivers for the built-in connectors that can
// be verified from a terminal.
func DefaultDrivers() []Option {
	return []Option{
		WithDriver(source.FoxgloveWebSocketID, NewFoxgloveDriver()),
		WithDriver(source.RosbridgeID, NewRosbridgeDriver()),
		WithDriver(source.RemoteFileID, &HTTPDriver{}),
	}
}

// OnSelect adds a listener after construction.
func (s *Session) OnSelect(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// SelectSource records the selection and starts opening it. It never
// blocks on the driver; a previous attempt still in flight is cancelled.
func (s *Session) SelectSource(sourceID string, sel source.Selection) {
	sel.Params = maps.Clone(sel.Params)
	logging.LogSelection(sourceID, string(sel.Kind), sel.Params)

	ctx, cancel := context.WithTimeout(s.ctx, s.openTimeout)
	a := &attempt{
		sourceID: sourceID,
		sel:      sel,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	s.mu.Lock()
	prev := s.current
	s.current = a
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if prev != nil {
		prev.cancel()
	}
	for _, l := range listeners {
		l(sourceID, sel)
	}

	go s.run(ctx, a, s.driverFor(sourceID))
}

func (s *Session) run(ctx context.Context, a *attempt, driver Driver) {
	defer close(a.done)
	defer a.cancel()

	res := &Result{
		SourceID:  a.sourceID,
		Selection: a.sel,
		StartedAt: time.Now(),
	}

	if driver == nil {
		res.Summary = "Selection recorded"
		logging.Debug("No driver for source, selection recorded only",
			zap.String("source_id", a.sourceID),
		)
	} else {
		opened, err := driver.Open(ctx, a.sourceID, a.sel)
		switch {
		case err != nil:
			res.Err = err
			logging.Warn("Failed to open source",
				zap.String("source_id", a.sourceID),
				zap.Error(err),
			)
		case opened != nil:
			res.Verified = true
			res.Summary = opened.Summary
			res.Details = opened.Details
		default:
			res.Verified = true
		}
	}

	res.FinishedAt = time.Now()
	a.result = res

	if res.Err == nil {
		logging.Info("Source opened",
			zap.String("source_id", a.sourceID),
			zap.Bool("verified", res.Verified),
			zap.Duration("duration", res.Duration()),
		)
	}
}

func (s *Session) driverFor(sourceID string) Driver {
	if d, ok := s.drivers[sourceID]; ok {
		return d
	}
	if base, _, found := strings.Cut(sourceID, "@"); found {
		if d, ok := s.drivers[base]; ok {
			return d
		}
	}
	return nil
}

// Current returns the most recent selection.
func (s *Session) Current() (string, source.Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", source.Selection{}, false
	}
	return s.current.sourceID, s.current.sel, true
}

// Wait blocks until the most recent attempt finishes. The returned error is
// the driver's error, ErrNoSelection, or ctx's error.
func (s *Session) Wait(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	a := s.current
	s.mu.Unlock()

	if a == nil {
		return nil, ErrNoSelection
	}

	select {
	case <-a.done:
		return a.result, a.result.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
