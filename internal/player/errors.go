package player

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
)

// ErrorType represents the category of error that occurred while opening a source
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the source did not answer in time
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the address
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeHandshake indicates the WebSocket upgrade was rejected
	ErrTypeHandshake
	// ErrTypeHTTP indicates a non-2xx HTTP response
	ErrTypeHTTP
	// ErrTypeProtocol indicates the server spoke an unexpected protocol
	ErrTypeProtocol
	// ErrTypeParams indicates a missing or malformed selection parameter
	ErrTypeParams
	// ErrTypeUnsupported indicates no driver can open the source
	ErrTypeUnsupported
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHandshake:
		return "Handshake Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeProtocol:
		return "Protocol Error"
	case ErrTypeParams:
		return "Parameter Error"
	case ErrTypeUnsupported:
		return "Unsupported Source"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// OpenError represents an error that occurred while opening a selected source
type OpenError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Address    string    // Address that was dialed (for context)
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether the error is retryable
}

// Error implements the error interface
func (e *OpenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpenError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a dial or request error and returns a typed error
func ClassifyNetworkError(err error, address string) *OpenError {
	if err == nil {
		return nil
	}

	if errors.Is(err, websocket.ErrBadHandshake) {
		return &OpenError{
			Type:      ErrTypeHandshake,
			Message:   "Server rejected the WebSocket handshake",
			Address:   address,
			Err:       err,
			Retryable: false,
		}
	}

	if os.IsTimeout(err) {
		return &OpenError{
			Type:      ErrTypeTimeout,
			Message:   "Connection timed out",
			Address:   address,
			Err:       err,
			Retryable: true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &OpenError{
			Type:      ErrTypeDNS,
			Message:   fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Address:   address,
			Err:       err,
			Retryable: false,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &OpenError{
				Type:      ErrTypeConnectionRefused,
				Message:   "Source refused connection",
				Address:   address,
				Err:       err,
				Retryable: true,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
			return &OpenError{
				Type:      ErrTypeNetwork,
				Message:   "Host unreachable",
				Address:   address,
				Err:       err,
				Retryable: true,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		return ClassifyNetworkError(urlErr.Err, address)
	}

	return &OpenError{
		Type:      ErrTypeNetwork,
		Message:   "Network error occurred",
		Address:   address,
		Err:       err,
		Retryable: true,
	}
}

// NewParamsError creates an error for a missing or malformed parameter
func NewParamsError(message string) *OpenError {
	return &OpenError{Type: ErrTypeParams, Message: message}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, address string) *OpenError {
	return &OpenError{
		Type:       ErrTypeHTTP,
		Message:    fmt.Sprintf("Server returned HTTP %d", statusCode),
		StatusCode: statusCode,
		Address:    address,
		Retryable:  statusCode >= 500,
	}
}

// NewProtocolError creates an error for an unexpected server reply
func NewProtocolError(message string, err error) *OpenError {
	return &OpenError{Type: ErrTypeProtocol, Message: message, Err: err}
}

// NewUnsupportedError creates an error for a source without a driver
func NewUnsupportedError(sourceID string) *OpenError {
	return &OpenError{
		Type:    ErrTypeUnsupported,
		Message: fmt.Sprintf("no driver can open %q", sourceID),
	}
}

func asOpenError(err error) (*OpenError, bool) {
	var openErr *OpenError
	ok := errors.As(err, &openErr)
	return openErr, ok
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS)
func IsNetworkError(err error) bool {
	if e, ok := asOpenError(err); ok {
		return e.Type == ErrTypeNetwork ||
			e.Type == ErrTypeTimeout ||
			e.Type == ErrTypeConnectionRefused ||
			e.Type == ErrTypeDNS
	}
	return false
}

// IsRetryable checks if opening the source again could succeed
func IsRetryable(err error) bool {
	if e, ok := asOpenError(err); ok {
		return e.Retryable
	}
	return false
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	e, ok := asOpenError(err)
	if !ok {
		return err.Error()
	}

	switch e.Type {
	case ErrTypeTimeout:
		return "Source not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Nothing is listening at " + e.Address
	case ErrTypeDNS:
		return "Cannot resolve source hostname"
	case ErrTypeHandshake:
		return "Server rejected the WebSocket handshake"
	case ErrTypeHTTP:
		return fmt.Sprintf("Server error (HTTP %d)", e.StatusCode)
	case ErrTypeNetwork:
		return "Network error - check connection"
	default:
		return e.Message
	}
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	e, ok := asOpenError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch e.Type {
	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The source refused the connection.",
			"Troubleshooting:",
			"  • Check that the bridge or server is running",
			"  • Verify the port number in the URL",
			"  • Try `vizconnect serve` to start a local demo server",
		}, "\n")

	case ErrTypeTimeout:
		return strings.Join([]string{
			"The source did not respond in time.",
			"Troubleshooting:",
			"  • Check that the host is reachable from this machine",
			"  • A firewall may be dropping the connection",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the source hostname.",
			"Troubleshooting:",
			"  • Use the IP address instead of hostname",
			"  • Run `vizconnect scan` to find servers on the local network",
		}, "\n")

	case ErrTypeHandshake, ErrTypeProtocol:
		return strings.Join([]string{
			"The server answered but does not speak the expected protocol.",
			"Troubleshooting:",
			"  • Check that the URL points at a Foxglove or Rosbridge WebSocket server",
			"  • Pick the connector matching your bridge",
		}, "\n")

	case ErrTypeHTTP:
		if e.StatusCode == 404 {
			return "The file was not found at that URL."
		}
		return fmt.Sprintf("The server returned HTTP error %d.", e.StatusCode)

	case ErrTypeParams:
		return "Check the connection parameters and try again."

	default:
		return "An error occurred. Please check the error message for details."
	}
}
