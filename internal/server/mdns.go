package server

import (
	"os"
	"strings"

	"github.com/muurk/vizconnect/internal/discovery"
)

// Advertised service, shared with the scanner so `vizconnect scan` finds us.
const (
	ServiceType   = discovery.ServiceType
	ServiceDomain = discovery.ServiceDomain
)

// instanceName builds an mDNS instance name from the server name and host.
func instanceName(name string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return sanitizeInstance(name)
	}
	host, _, _ = strings.Cut(host, ".")
	return sanitizeInstance(name + " on " + host)
}

// sanitizeInstance keeps instance names within the 63-byte DNS label limit
// and free of dots, which zeroconf would treat as label separators.
func sanitizeInstance(s string) string {
	s = strings.ReplaceAll(s, ".", "-")
	if len(s) > 63 {
		s = s[:63]
	}
	return s
}
