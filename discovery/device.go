package discovery

import (
	"fmt"
	"time"

	"github.com/muurk/devportal"
)

// Device represents a discovered device on the network
type Device struct {
	// Name is the advertised machine name (e.g., "LUMIA950")
	Name string

	// Hostname is the mDNS hostname (e.g., "LUMIA950.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.42")
	IP string

	// Port is the management API port (typically 80)
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "architecture=ARM", "osversion=10.0.14393"
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("Device %s (%s) at %s:%d", d.Name, d.Hostname, d.IP, d.Port)
}

// Connection returns a devportal connection for the device's discovered
// address, ready to hand to devportal.NewConfiguredClient.
func (d *Device) Connection() *devportal.Connection {
	return devportal.NewConnection(d.IP, d.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
