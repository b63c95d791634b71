package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func serviceEntry(instance, host string, port int, v4, v6 []net.IP, txt ...string) *zeroconf.ServiceEntry {
	entry := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
	entry.HostName = host
	entry.Port = port
	entry.AddrIPv4 = v4
	entry.AddrIPv6 = v6
	entry.Text = txt
	return entry
}

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name:     "IPv4 server",
			entry:    serviceEntry("lab-robot", "lab-robot.local.", 8765, []net.IP{net.ParseIP("192.168.4.16")}, nil, "name=Lab robot"),
			wantIP:   "192.168.4.16",
			wantPort: 8765,
		},
		{
			name:     "custom port",
			entry:    serviceEntry("sim", "sim.local.", 9000, []net.IP{net.ParseIP("10.0.0.5")}, nil),
			wantIP:   "10.0.0.5",
			wantPort: 9000,
		},
		{
			name:     "no port specified (should default to 8765)",
			entry:    serviceEntry("sim", "sim.local.", 0, []net.IP{net.ParseIP("172.16.0.1")}, nil),
			wantIP:   "172.16.0.1",
			wantPort: DefaultPort,
		},
		{
			name:    "no IP address",
			entry:   serviceEntry("sim", "sim.local.", 8765, nil, nil),
			wantNil: true,
		},
		{
			name:     "IPv6 only",
			entry:    serviceEntry("v6", "v6.local.", 8765, nil, []net.IP{net.ParseIP("fe80::1")}),
			wantIP:   "fe80::1",
			wantPort: 8765,
		},
		{
			name:     "both IPv4 and IPv6 (should prefer IPv4)",
			entry:    serviceEntry("both", "both.local.", 8765, []net.IP{net.ParseIP("192.168.1.50")}, []net.IP{net.ParseIP("fe80::2")}),
			wantIP:   "192.168.1.50",
			wantPort: 8765,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if svc != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", svc)
				}
				return
			}

			if svc == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil service")
			}
			if svc.IP != tt.wantIP {
				t.Errorf("svc.IP = %v, want %v", svc.IP, tt.wantIP)
			}
			if svc.Port != tt.wantPort {
				t.Errorf("svc.Port = %v, want %v", svc.Port, tt.wantPort)
			}
			if svc.Instance != tt.entry.Instance {
				t.Errorf("svc.Instance = %v, want %v", svc.Instance, tt.entry.Instance)
			}
			if time.Since(svc.DiscoveredAt) > time.Second {
				t.Errorf("svc.DiscoveredAt is not recent: %v", svc.DiscoveredAt)
			}
		})
	}
}

func TestScanner_parseServiceEntry_Metadata(t *testing.T) {
	scanner := NewScanner()

	entry := serviceEntry("lab", "lab.local.", 8765, []net.IP{net.ParseIP("192.168.4.16")}, nil,
		"name=Lab robot", "path=/ws", "flag", "", "version=1.0")

	svc := scanner.parseServiceEntry(entry)
	if svc == nil {
		t.Fatal("parseServiceEntry() = nil, want service")
	}

	expectedMetadata := map[string]string{
		"name":    "Lab robot",
		"path":    "/ws",
		"flag":    "", // Key without value
		"version": "1.0",
	}

	if len(svc.Metadata) != len(expectedMetadata) {
		t.Errorf("svc.Metadata has %d entries, want %d", len(svc.Metadata), len(expectedMetadata))
	}

	for key, expectedValue := range expectedMetadata {
		if actualValue, ok := svc.Metadata[key]; !ok {
			t.Errorf("svc.Metadata missing key %q", key)
		} else if actualValue != expectedValue {
			t.Errorf("svc.Metadata[%q] = %q, want %q", key, actualValue, expectedValue)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
	if scanner.serviceType() != ServiceType {
		t.Errorf("scanner.serviceType() = %v, want %v", scanner.serviceType(), ServiceType)
	}

	scanner.ServiceType = ""
	if scanner.serviceType() != ServiceType {
		t.Error("empty ServiceType should fall back to the default")
	}
}

// Note: live mDNS discovery needs multicast on the test host and is
// exercised manually with `vizconnect serve --advertise` + `vizconnect scan`.
