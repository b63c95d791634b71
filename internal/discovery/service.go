package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Service represents a Foxglove WebSocket server advertised on the network
type Service struct {
	// Instance is the mDNS instance name (e.g., "lab-robot")
	Instance string

	// Hostname is the mDNS hostname (e.g., "lab-robot.local.")
	Hostname string

	// IP is the address to connect to (IPv4 preferred)
	IP string

	// Port is the WebSocket port (typically 8765)
	Port int

	// Metadata contains the mDNS TXT record data
	// Common fields: "name=<server name>", "path=/"
	Metadata map[string]string

	// DiscoveredAt is when the service was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the service
func (s *Service) String() string {
	return fmt.Sprintf("WebSocket source %s (%s) at %s", s.DisplayName(), s.Hostname, s.Address())
}

// Address returns host:port, bracketing IPv6 addresses.
func (s *Service) Address() string {
	return net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// URL returns the WebSocket URL for the service.
func (s *Service) URL() string {
	path := s.GetMetadata("path")
	if path == "/" {
		path = ""
	}
	return "ws://" + s.Address() + path
}

// DisplayName prefers the advertised server name over the instance name.
func (s *Service) DisplayName() string {
	if name := s.GetMetadata("name"); name != "" {
		return name
	}
	if s.Instance != "" {
		return s.Instance
	}
	return s.IP
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
