// Package discovery provides mDNS-based discovery of devices exposing the
// management API.
//
// This package implements multicast DNS (mDNS) service discovery to
// automatically locate manageable devices on the local network. Devices
// advertise themselves using the "_wdp._tcp" service type, with the machine
// name as the service instance.
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for service advertisements from devices
//  3. Collects device information (machine name, hostname, IP, port, TXT metadata)
//  4. Returns a list of discovered devices after the timeout period
//
// # Usage Example
//
//	// Discover devices with 10-second timeout
//	devices, err := discovery.ScanForDevices(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Connect to the first one
//	for _, device := range devices {
//	    fmt.Printf("Found: %s at %s:%d\n", device.Name, device.IP, device.Port)
//	    client, err := devportal.NewConfiguredClient(device.Connection(), creds)
//	    _ = client
//	    _ = err
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Devices must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can run
// simultaneously without interference.
package discovery
