// Package registry provides user configuration management for the devportal library.
//
// This package manages a YAML-based configuration file that stores user-defined
// metadata for known devices, including nicknames, last known addresses, and
// application preferences. The configuration follows OS-specific conventions for
// storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/devportal/config.yaml or $HOME/.config/devportal/config.yaml
//   - macOS: $HOME/.config/devportal/config.yaml
//   - Windows: %LOCALAPPDATA%\devportal\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores device passwords. Usernames may be
// recorded per device; passwords are always prompted from the user when needed.
//
// # Usage Example
//
//	// Load the global registry
//	reg, err := registry.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a device we just talked to
//	reg.UpdateDeviceLastSeen("LUMIA950", "192.168.1.42", 80)
//	reg.SetDeviceNickname("LUMIA950", "Living Room Device")
//
//	// Save changes atomically
//	if err := reg.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Later: reconnect using the recorded address
//	device := reg.GetDevice("LUMIA950")
//	if conn := device.Connection(); conn != nil {
//	    client, _ := devportal.NewConfiguredClient(conn, creds)
//	    _ = client
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package registry
