package devportal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/muurk/devportal/logging"
	"github.com/muurk/devportal/version"
)

const (
	// DefaultScheme is the URL scheme used when a connection doesn't specify one
	DefaultScheme = "http"

	// DefaultPort is the default HTTP port for the device management API
	DefaultPort = 80

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second
)

// Endpoint paths for the device management API.
// These are fixed by the device firmware and never vary per device.
const (
	// MachineNameEndpoint returns the device's assigned machine name
	MachineNameEndpoint = "/api/os/machinename"

	// SoftwareInfoEndpoint returns OS edition, version and platform info
	SoftwareInfoEndpoint = "/api/os/info"

	// IPConfigEndpoint returns the device's network adapter configuration
	IPConfigEndpoint = "/api/networking/ipconfig"

	// InstalledPackagesEndpoint returns the installed application packages
	InstalledPackagesEndpoint = "/api/appx/packagemanager/packages"
)

// Connection describes how to reach a device's management API.
// Treat values as immutable once handed to a Client; replace the whole
// value via SetConnection to point the client somewhere else.
type Connection struct {
	// Host is the device IP address or hostname (e.g., "192.168.1.42")
	Host string

	// Port is the management API port (typically 80)
	Port int

	// Scheme is "http" or "https" (default: "http")
	Scheme string
}

// NewConnection creates a Connection for the given host and port with the
// default scheme.
func NewConnection(host string, port int) *Connection {
	if port == 0 {
		port = DefaultPort
	}
	return &Connection{
		Host:   host,
		Port:   port,
		Scheme: DefaultScheme,
	}
}

// BaseURL returns the base URL for the device management API
func (c *Connection) BaseURL() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, port)
}

// String returns a human-readable representation of the connection
func (c *Connection) String() string {
	return c.BaseURL()
}

// Credentials holds the HTTP Basic Auth material used to authorize requests
// to the device. Treat values as immutable once handed to a Client; replace
// the whole value via SetCredentials to rotate them.
type Credentials struct {
	Username string
	Password string
}

// NewCredentials creates Credentials for the given username and password.
func NewCredentials(username, password string) *Credentials {
	return &Credentials{
		Username: username,
		Password: password,
	}
}

// Client talks to a device's HTTP management API.
//
// A Client is unusable until both a Connection and Credentials are set,
// either at construction via NewConfiguredClient or afterwards via
// Initialize. Replacing either value rebuilds the underlying transport.
//
// Fetch operations are independent, idempotent reads and may run
// concurrently. Mutating connection or credentials while fetches are in
// flight is best effort: in-flight operations may observe either the old or
// the new transport depending on timing.
type Client struct {
	conn  *Connection
	creds *Credentials

	// httpClient is bound to the current (conn, creds) pair and is nil
	// until both are set
	httpClient *http.Client
}

// NewClient creates an unconfigured client. The client is unusable until
// Initialize is called with a connection and credentials.
func NewClient() *Client {
	return &Client{}
}

// NewConfiguredClient creates a client for the given connection and
// credentials and builds the transport immediately. Returns an
// invalid-argument error if either value is nil.
func NewConfiguredClient(conn *Connection, creds *Credentials) (*Client, error) {
	client := NewClient()
	if err := client.Initialize(conn, creds); err != nil {
		return nil, err
	}
	return client, nil
}

// Initialize sets the connection and credentials and (re)builds the
// transport. Returns an invalid-argument error if either value is nil; the
// client's prior state is left unchanged in that case.
func (c *Client) Initialize(conn *Connection, creds *Credentials) error {
	if conn == nil {
		return NewInvalidArgumentError("connection must not be nil")
	}
	if creds == nil {
		return NewInvalidArgumentError("credentials must not be nil")
	}

	c.conn = conn
	c.creds = creds
	return c.rebuildTransport()
}

// SetConnection replaces the connection and rebuilds the transport.
// Returns an invalid-argument error if conn is nil; the client's prior
// state is left unchanged in that case.
func (c *Client) SetConnection(conn *Connection) error {
	if conn == nil {
		return NewInvalidArgumentError("connection must not be nil")
	}
	c.conn = conn
	return c.rebuildTransport()
}

// SetCredentials replaces the credentials and rebuilds the transport.
// Returns an invalid-argument error if creds is nil; the client's prior
// state is left unchanged in that case.
func (c *Client) SetCredentials(creds *Credentials) error {
	if creds == nil {
		return NewInvalidArgumentError("credentials must not be nil")
	}
	c.creds = creds
	return c.rebuildTransport()
}

// Connection returns the client's current connection, or nil if unset.
func (c *Client) Connection() *Connection {
	return c.conn
}

// rebuildTransport builds a fresh transport bound to the current
// (connection, credentials) pair. The setters validate their arguments, so
// the precondition error here should be unreachable through the public API.
func (c *Client) rebuildTransport() error {
	if c.conn == nil || c.creds == nil {
		c.httpClient = nil
		return NewPreconditionError("connection and credentials must both be set before building the transport")
	}

	c.httpClient = &http.Client{Timeout: DefaultTimeout}
	return nil
}

// Ping performs a simple health check on the device.
// Returns nil if the device is reachable and the credentials are accepted.
func (c *Client) Ping() error {
	_, err := c.get(MachineNameEndpoint)
	return err
}

// GetMachineName fetches the device's machine name.
// An empty or undecodable response yields a zero MachineName, not an error.
func (c *Client) GetMachineName() (MachineName, error) {
	var name MachineName
	if err := c.fetch(MachineNameEndpoint, &name); err != nil {
		return MachineName{}, err
	}
	return name, nil
}

// GetSoftwareInfo fetches the device's operating system info.
// An empty or undecodable response yields a zero SoftwareInfo, not an error.
func (c *Client) GetSoftwareInfo() (SoftwareInfo, error) {
	var info SoftwareInfo
	if err := c.fetch(SoftwareInfoEndpoint, &info); err != nil {
		return SoftwareInfo{}, err
	}
	return info, nil
}

// GetIPConfig fetches the device's network adapter configuration.
// An empty or undecodable response yields a zero IPConfig, not an error.
func (c *Client) GetIPConfig() (IPConfig, error) {
	var config IPConfig
	if err := c.fetch(IPConfigEndpoint, &config); err != nil {
		return IPConfig{}, err
	}
	return config, nil
}

// GetInstalledPackages fetches the device's installed application packages.
// An empty or undecodable response yields a zero AppXPackages, not an error.
func (c *Client) GetInstalledPackages() (AppXPackages, error) {
	var packages AppXPackages
	if err := c.fetch(InstalledPackagesEndpoint, &packages); err != nil {
		return AppXPackages{}, err
	}
	return packages, nil
}

// fetch issues a GET to the given endpoint and decodes the JSON body into
// out. An empty or "null" body leaves out untouched and returns nil. A body
// that fails to decode is discarded the same way: the device occasionally
// serves truncated or non-JSON bodies, and callers get the zero value rather
// than an error. The discard is logged at debug level.
//
// Transport, auth and HTTP-status failures are returned unchanged.
func (c *Client) fetch(endpoint string, out any) error {
	body, err := c.get(endpoint)
	if err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		logging.LogDecodeFailure(endpoint, len(body), err)
		return nil
	}

	return nil
}

// get performs a single GET against the device and returns the response
// body. No retries: each call issues exactly one request.
func (c *Client) get(endpoint string) ([]byte, error) {
	if c.httpClient == nil {
		return nil, NewPreconditionError("client is not initialized (call Initialize first)")
	}

	url := c.conn.BaseURL() + endpoint

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create GET request", err, endpoint)
	}

	req.SetBasicAuth(c.creds.Username, c.creds.Password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.LogRequest(http.MethodGet, url, 0, err)
		return nil, NewNetworkError("GET request failed", err, endpoint)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogRequest(http.MethodGet, url, resp.StatusCode, nil)

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewAuthError("authentication failed (check credentials)", endpoint)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode), endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err, endpoint)
	}

	return body, nil
}
