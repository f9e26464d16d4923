package registry

import (
	"time"

	"github.com/muurk/devportal"
)

// Registry represents the entire user configuration file.
// This stores user-defined metadata for known devices and application
// preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by machine name
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single known device.
// This is keyed by the device's machine name in the Registry.
type Device struct {
	Nickname string    `yaml:"nickname,omitempty"`   // User-friendly name
	LastIP   string    `yaml:"last_ip,omitempty"`    // Last known IP address
	Port     int       `yaml:"port,omitempty"`       // Management API port
	Scheme   string    `yaml:"scheme,omitempty"`     // "http" or "https"
	Username string    `yaml:"username,omitempty"`   // Auth username for this device
	Platform string    `yaml:"platform,omitempty"`   // Last observed OS platform
	OSVer    string    `yaml:"os_version,omitempty"` // Last observed OS version
	LastSeen time.Time `yaml:"last_seen,omitempty"`  // Last discovery/connection time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool       `yaml:"auto_discover"`          // Enable automatic mDNS discovery on startup
	DiscoverTimeout int        `yaml:"discover_timeout"`       // mDNS discovery timeout in seconds
	DefaultAuth     *AuthPrefs `yaml:"default_auth,omitempty"` // Default authentication preferences
}

// AuthPrefs represents default authentication preferences.
// Note: Passwords are NEVER stored - they are always prompted from the user.
type AuthPrefs struct {
	Username string `yaml:"username"` // Default username
	// Password is NEVER stored in config file for security reasons
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
			DefaultAuth:     &AuthPrefs{},
		},
	}
}

// Connection builds a devportal connection from the device's last known
// address. Returns nil if the device has no recorded IP yet.
func (d *Device) Connection() *devportal.Connection {
	if d.LastIP == "" {
		return nil
	}
	conn := devportal.NewConnection(d.LastIP, d.Port)
	if d.Scheme != "" {
		conn.Scheme = d.Scheme
	}
	return conn
}

// GetDevice retrieves device metadata by machine name.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(name string) *Device {
	return r.Devices[name]
}

// EnsureDevice ensures a device entry exists in the registry.
// If the device doesn't exist, creates a new entry with default values.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(name string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[name]; exists {
		return device
	}

	device := &Device{}
	r.Devices[name] = device
	return device
}

// UpdateDeviceLastSeen updates the last seen timestamp and address for a device.
func (r *Registry) UpdateDeviceLastSeen(name, ip string, port int) {
	device := r.EnsureDevice(name)
	device.LastSeen = time.Now()
	device.LastIP = ip
	if port != 0 {
		device.Port = port
	}
}

// RecordSoftwareInfo stores the last observed OS info for a device.
func (r *Registry) RecordSoftwareInfo(name string, info devportal.SoftwareInfo) {
	device := r.EnsureDevice(name)
	device.Platform = info.Platform
	device.OSVer = info.OsVersion
}

// SetDeviceNickname sets a user-friendly nickname for a device.
func (r *Registry) SetDeviceNickname(name, nickname string) {
	device := r.EnsureDevice(name)
	device.Nickname = nickname
}

// SetDeviceUsername sets the auth username to use for a device.
func (r *Registry) SetDeviceUsername(name, username string) {
	device := r.EnsureDevice(name)
	device.Username = username
}
