// Package discovery finds Foxglove WebSocket servers on the local network
// using mDNS.
//
// Servers (including `vizconnect serve --advertise`) register the
// "_foxglove-ws._tcp" service type. The scanner browses for it for a fixed
// timeout and turns each answer into a Service, and Descriptors converts
// those into connectors so they show up as extra tabs in the dialog with
// their URL pre-filled.
//
// # Usage Example
//
//	services, err := discovery.ScanForServices(ctx, 3*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, svc := range services {
//	    fmt.Printf("Found: %s at %s\n", svc.DisplayName(), svc.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Servers must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
