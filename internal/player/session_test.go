package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/muurk/vizconnect/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectionSelection(params map[string]string) source.Selection {
	return source.Selection{Kind: source.KindConnection, Params: params}
}

func TestSession_SelectSourceDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	driver := DriverFunc(func(ctx context.Context, id string, sel source.Selection) (*Opened, error) {
		<-release
		return &Opened{Summary: "ok"}, nil
	})

	s := NewSession(context.Background(), WithDriver("slow", driver))

	returned := make(chan struct{})
	go func() {
		s.SelectSource("slow", connectionSelection(nil))
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("SelectSource blocked on the driver")
	}

	close(release)
	res, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Equal(t, "ok", res.Summary)
	assert.Equal(t, "slow", res.SourceID)
}

func TestSession_WaitWithoutSelection(t *testing.T) {
	s := NewSession(context.Background())
	_, err := s.Wait(context.Background())
	assert.ErrorIs(t, err, ErrNoSelection)

	_, _, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_NoDriverRecordsSelection(t *testing.T) {
	s := NewSession(context.Background())
	s.SelectSource("velodyne-device", connectionSelection(map[string]string{"port": "2369"}))

	res, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, "Selection recorded", res.Summary)
	assert.Equal(t, "2369", res.Selection.Params["port"])
}

func TestSession_DriverLookupByPrefix(t *testing.T) {
	var got string
	driver := DriverFunc(func(ctx context.Context, id string, sel source.Selection) (*Opened, error) {
		got = id
		return nil, nil
	})

	s := NewSession(context.Background(), WithDriver(source.FoxgloveWebSocketID, driver))
	s.SelectSource("foxglove-websocket@192.168.4.16:8765", connectionSelection(nil))

	res, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Equal(t, "foxglove-websocket@192.168.4.16:8765", got)
}

func TestSession_DriverError(t *testing.T) {
	boom := NewParamsError("missing url parameter")
	driver := DriverFunc(func(ctx context.Context, id string, sel source.Selection) (*Opened, error) {
		return nil, boom
	})

	s := NewSession(context.Background(), WithDriver("a", driver))
	s.SelectSource("a", connectionSelection(nil))

	res, err := s.Wait(context.Background())
	require.Error(t, err)
	assert.Same(t, boom, res.Err)
	assert.False(t, res.Verified)
}

func TestSession_CopiesParams(t *testing.T) {
	params := map[string]string{"url": "ws://a"}
	s := NewSession(context.Background())
	s.SelectSource("a", connectionSelection(params))

	params["url"] = "ws://changed"

	_, sel, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "ws://a", sel.Params["url"])
}

func TestSession_ListenersNotified(t *testing.T) {
	var (
		mu  sync.Mutex
		ids []string
	)
	record := func(id string, sel source.Selection) {
		mu.Lock()
		defer mu.Unlock()
		ids = append(ids, id)
	}

	s := NewSession(context.Background(), WithListener(record))
	s.OnSelect(record)
	s.SelectSource("a", connectionSelection(nil))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "a"}, ids)
}

func TestSession_NewSelectionCancelsPrevious(t *testing.T) {
	cancelled := make(chan struct{})
	slow := DriverFunc(func(ctx context.Context, id string, sel source.Selection) (*Opened, error) {
		<-ctx.Done()
		close(cancelled)
		return nil, ctx.Err()
	})

	s := NewSession(context.Background(), WithDriver("slow", slow))
	s.SelectSource("slow", connectionSelection(nil))
	s.SelectSource("other", connectionSelection(nil))

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("previous attempt was not cancelled")
	}

	res, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "other", res.SourceID)

	id, _, _ := s.Current()
	assert.Equal(t, "other", id)
}

func TestSession_WaitHonoursContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	driver := DriverFunc(func(ctx context.Context, id string, sel source.Selection) (*Opened, error) {
		<-block
		return nil, nil
	})

	s := NewSession(context.Background(), WithDriver("a", driver))
	s.SelectSource("a", connectionSelection(nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := s.Wait(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestSession_OpenTimeout(t *testing.T) {
	driver := DriverFunc(func(ctx context.Context, id string, sel source.Selection) (*Opened, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	s := NewSession(context.Background(), WithDriver("a", driver), WithOpenTimeout(10*time.Millisecond))
	s.SelectSource("a", connectionSelection(nil))

	res, err := s.Wait(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestDefaultDrivers(t *testing.T) {
	s := NewSession(context.Background(), DefaultDrivers()...)

	assert.IsType(t, &WebSocketDriver{}, s.driverFor(source.FoxgloveWebSocketID))
	assert.IsType(t, &WebSocketDriver{}, s.driverFor(source.RosbridgeID))
	assert.IsType(t, &HTTPDriver{}, s.driverFor(source.RemoteFileID))
	assert.Nil(t, s.driverFor(source.VelodyneID))
}
