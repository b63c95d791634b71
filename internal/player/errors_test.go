package player

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
	}{
		{
			name:          "timeout",
			err:           os.ErrDeadlineExceeded,
			wantType:      ErrTypeTimeout,
			wantRetryable: true,
		},
		{
			name:          "dns",
			err:           &net.DNSError{Name: "robot.local", Err: "no such host"},
			wantType:      ErrTypeDNS,
			wantRetryable: false,
		},
		{
			name:          "connection refused",
			err:           &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			wantType:      ErrTypeConnectionRefused,
			wantRetryable: true,
		},
		{
			name:          "host unreachable",
			err:           &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.EHOSTUNREACH)},
			wantType:      ErrTypeNetwork,
			wantRetryable: true,
		},
		{
			name:          "bad handshake",
			err:           websocket.ErrBadHandshake,
			wantType:      ErrTypeHandshake,
			wantRetryable: false,
		},
		{
			name:          "generic",
			err:           errors.New("broken pipe"),
			wantType:      ErrTypeNetwork,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err, "robot.local:8765")
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantRetryable, got.Retryable)
			assert.ErrorIs(t, got, tt.err, "classified error should wrap the original")
		})
	}

	assert.Nil(t, ClassifyNetworkError(nil, ""))
}

func TestOpenError_Helpers(t *testing.T) {
	wrapped := fmt.Errorf("open failed: %w", NewHTTPError(503, "files.example.com"))

	assert.True(t, IsRetryable(wrapped), "5xx should be retryable through a wrapped error")
	assert.False(t, IsNetworkError(wrapped), "HTTP errors are not network errors")
	assert.Equal(t, "Server error (HTTP 503)", GetShortErrorMessage(wrapped))
	assert.False(t, IsRetryable(errors.New("plain")), "untyped errors are not retryable")
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "Connection Refused", ErrTypeConnectionRefused.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
}
