package devportal

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Mock response bodies matching the device wire format
const (
	mockMachineNameResponse  = `{"Name":"DeviceX"}`
	mockSoftwareInfoResponse = `{"ComputerName":"DeviceX","Language":"en-us","OsEdition":"Enterprise","OsEditionId":4,"OsVersion":"10.0.14393.0","Platform":"Desktop"}`
	mockIPConfigResponse     = `{"Adapters":[{"Description":"Ethernet","HardwareAddress":"00:11:22:33:44:55","Index":0,"Name":"{guid}","Type":"Ethernet","IpAddresses":[{"IpAddress":"192.168.1.42","Mask":"255.255.255.0"}],"Gateways":[{"IpAddress":"192.168.1.1","Mask":"255.255.255.0"}]}]}`
	mockPackagesResponse     = `{"InstalledPackages":[{"CanUninstall":true,"Name":"Contoso App","PackageFamilyName":"Contoso.App_abc123","PackageFullName":"Contoso.App_1.2.3.4_arm_abc123","PackageOrigin":5,"PackageRelativeId":"App","Publisher":"CN=Contoso","Version":{"Major":1,"Minor":2,"Build":3,"Revision":4}}]}`
)

const (
	testUsername = "admin"
	testPassword = "p@ssw0rd"
)

// recordedRequest captures a request the test server saw
type recordedRequest struct {
	Path     string
	Username string
	Password string
}

// testServer serves canned bodies per endpoint path and records requests
func testServer(t *testing.T, responses map[string]string) (*httptest.Server, func() []recordedRequest) {
	t.Helper()

	var mu sync.Mutex
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, _ := r.BasicAuth()

		mu.Lock()
		requests = append(requests, recordedRequest{
			Path:     r.URL.Path,
			Username: username,
			Password: password,
		})
		mu.Unlock()

		body, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		out := make([]recordedRequest, len(requests))
		copy(out, requests)
		return out
	}
}

// serverConnection builds a Connection pointing at a test server
func serverConnection(t *testing.T, server *httptest.Server) *Connection {
	t.Helper()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("failed to parse test server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("failed to parse test server port: %v", err)
	}
	return NewConnection(u.Hostname(), port)
}

func TestNewConnection_Defaults(t *testing.T) {
	conn := NewConnection("192.168.1.42", 0)

	if conn.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", conn.Port, DefaultPort)
	}
	if conn.Scheme != DefaultScheme {
		t.Errorf("Scheme = %s, want %s", conn.Scheme, DefaultScheme)
	}
	if got := conn.BaseURL(); got != "http://192.168.1.42:80" {
		t.Errorf("BaseURL() = %s, want http://192.168.1.42:80", got)
	}
}

func TestNewConfiguredClient(t *testing.T) {
	conn := NewConnection("192.168.1.42", 80)
	creds := NewCredentials(testUsername, testPassword)

	client, err := NewConfiguredClient(conn, creds)
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v, want nil", err)
	}
	if client.httpClient == nil {
		t.Error("transport should be built immediately for a configured client")
	}
}

func TestNewConfiguredClient_NilArguments(t *testing.T) {
	conn := NewConnection("192.168.1.42", 80)
	creds := NewCredentials(testUsername, testPassword)

	tests := []struct {
		name  string
		conn  *Connection
		creds *Credentials
	}{
		{"nil connection", nil, creds},
		{"nil credentials", conn, nil},
		{"both nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewConfiguredClient(tt.conn, tt.creds)
			if err == nil {
				t.Fatal("NewConfiguredClient() should return error")
			}
			if !IsInvalidArgument(err) {
				t.Errorf("error should be invalid-argument, got %v", err)
			}
			if client != nil {
				t.Error("client should be nil on construction failure")
			}
		})
	}
}

func TestInitialize_NilArgumentsLeaveStateUnchanged(t *testing.T) {
	server, _ := testServer(t, map[string]string{
		MachineNameEndpoint: mockMachineNameResponse,
	})

	client, err := NewConfiguredClient(serverConnection(t, server), NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	if err := client.Initialize(nil, NewCredentials("x", "y")); !IsInvalidArgument(err) {
		t.Errorf("Initialize(nil, creds) error = %v, want invalid-argument", err)
	}
	if err := client.Initialize(NewConnection("10.0.0.1", 80), nil); !IsInvalidArgument(err) {
		t.Errorf("Initialize(conn, nil) error = %v, want invalid-argument", err)
	}

	// Prior configuration must still be usable
	name, err := client.GetMachineName()
	if err != nil {
		t.Fatalf("GetMachineName() after failed Initialize error = %v", err)
	}
	if name.Name != "DeviceX" {
		t.Errorf("Name = %s, want DeviceX", name.Name)
	}
}

func TestFetchBeforeInitialize(t *testing.T) {
	client := NewClient()

	_, err := client.GetMachineName()
	if err == nil {
		t.Fatal("GetMachineName() on unconfigured client should return error")
	}
	if !IsPreconditionFailed(err) {
		t.Errorf("error should be precondition failure, got %v", err)
	}
}

func TestFetch_ExactlyOneGETPerFixedPath(t *testing.T) {
	server, requests := testServer(t, map[string]string{
		MachineNameEndpoint:       mockMachineNameResponse,
		SoftwareInfoEndpoint:      mockSoftwareInfoResponse,
		IPConfigEndpoint:          mockIPConfigResponse,
		InstalledPackagesEndpoint: mockPackagesResponse,
	})

	client, err := NewConfiguredClient(serverConnection(t, server), NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	tests := []struct {
		name     string
		fetch    func() error
		wantPath string
	}{
		{"machine name", func() error { _, err := client.GetMachineName(); return err }, MachineNameEndpoint},
		{"software info", func() error { _, err := client.GetSoftwareInfo(); return err }, SoftwareInfoEndpoint},
		{"ip config", func() error { _, err := client.GetIPConfig(); return err }, IPConfigEndpoint},
		{"installed packages", func() error { _, err := client.GetInstalledPackages(); return err }, InstalledPackagesEndpoint},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fetch(); err != nil {
				t.Fatalf("fetch error = %v, want nil", err)
			}

			recorded := requests()
			if len(recorded) != i+1 {
				t.Fatalf("request count = %d, want %d (exactly one GET per fetch)", len(recorded), i+1)
			}
			if recorded[i].Path != tt.wantPath {
				t.Errorf("path = %s, want %s", recorded[i].Path, tt.wantPath)
			}
		})
	}
}

func TestFetch_WellFormedResponses(t *testing.T) {
	server, _ := testServer(t, map[string]string{
		MachineNameEndpoint:       mockMachineNameResponse,
		SoftwareInfoEndpoint:      mockSoftwareInfoResponse,
		IPConfigEndpoint:          mockIPConfigResponse,
		InstalledPackagesEndpoint: mockPackagesResponse,
	})

	client, err := NewConfiguredClient(serverConnection(t, server), NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	name, err := client.GetMachineName()
	if err != nil {
		t.Fatalf("GetMachineName() error = %v", err)
	}
	if name.Name != "DeviceX" {
		t.Errorf("Name = %s, want DeviceX", name.Name)
	}

	info, err := client.GetSoftwareInfo()
	if err != nil {
		t.Fatalf("GetSoftwareInfo() error = %v", err)
	}
	if info.OsVersion != "10.0.14393.0" {
		t.Errorf("OsVersion = %s, want 10.0.14393.0", info.OsVersion)
	}
	if info.OsEditionID != 4 {
		t.Errorf("OsEditionID = %d, want 4", info.OsEditionID)
	}

	config, err := client.GetIPConfig()
	if err != nil {
		t.Fatalf("GetIPConfig() error = %v", err)
	}
	if len(config.Adapters) != 1 {
		t.Fatalf("adapter count = %d, want 1", len(config.Adapters))
	}
	if got := config.Adapters[0].IPAddresses[0].Address; got != "192.168.1.42" {
		t.Errorf("adapter address = %s, want 192.168.1.42", got)
	}

	packages, err := client.GetInstalledPackages()
	if err != nil {
		t.Fatalf("GetInstalledPackages() error = %v", err)
	}
	if len(packages.InstalledPackages) != 1 {
		t.Fatalf("package count = %d, want 1", len(packages.InstalledPackages))
	}
	if got := packages.InstalledPackages[0].Version.String(); got != "1.2.3.4" {
		t.Errorf("package version = %s, want 1.2.3.4", got)
	}
}

func TestFetch_EmptyBodyReturnsZeroValue(t *testing.T) {
	for _, body := range []string{"", "   ", "null"} {
		t.Run("body="+body, func(t *testing.T) {
			server, _ := testServer(t, map[string]string{
				MachineNameEndpoint:       body,
				SoftwareInfoEndpoint:      body,
				IPConfigEndpoint:          body,
				InstalledPackagesEndpoint: body,
			})

			client, err := NewConfiguredClient(serverConnection(t, server), NewCredentials(testUsername, testPassword))
			if err != nil {
				t.Fatalf("NewConfiguredClient() error = %v", err)
			}

			name, err := client.GetMachineName()
			if err != nil {
				t.Errorf("GetMachineName() error = %v, want nil", err)
			}
			if name != (MachineName{}) {
				t.Errorf("GetMachineName() = %+v, want zero value", name)
			}

			info, err := client.GetSoftwareInfo()
			if err != nil {
				t.Errorf("GetSoftwareInfo() error = %v, want nil", err)
			}
			if info != (SoftwareInfo{}) {
				t.Errorf("GetSoftwareInfo() = %+v, want zero value", info)
			}

			config, err := client.GetIPConfig()
			if err != nil {
				t.Errorf("GetIPConfig() error = %v, want nil", err)
			}
			if len(config.Adapters) != 0 {
				t.Errorf("GetIPConfig() = %+v, want zero value", config)
			}

			packages, err := client.GetInstalledPackages()
			if err != nil {
				t.Errorf("GetInstalledPackages() error = %v, want nil", err)
			}
			if len(packages.InstalledPackages) != 0 {
				t.Errorf("GetInstalledPackages() = %+v, want zero value", packages)
			}
		})
	}
}

func TestFetch_MalformedBodyReturnsZeroValue(t *testing.T) {
	server, _ := testServer(t, map[string]string{
		MachineNameEndpoint: `{not json`,
	})

	client, err := NewConfiguredClient(serverConnection(t, server), NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	name, err := client.GetMachineName()
	if err != nil {
		t.Errorf("GetMachineName() error = %v, want nil (decode failures are swallowed)", err)
	}
	if name != (MachineName{}) {
		t.Errorf("GetMachineName() = %+v, want zero value", name)
	}
}

func TestSetCredentials_UsedOnNextFetch(t *testing.T) {
	server, requests := testServer(t, map[string]string{
		MachineNameEndpoint: mockMachineNameResponse,
	})

	client, err := NewConfiguredClient(serverConnection(t, server), NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	if _, err := client.GetMachineName(); err != nil {
		t.Fatalf("GetMachineName() error = %v", err)
	}

	if err := client.SetCredentials(NewCredentials("rotated", "secret")); err != nil {
		t.Fatalf("SetCredentials() error = %v", err)
	}

	if _, err := client.GetMachineName(); err != nil {
		t.Fatalf("GetMachineName() after rotation error = %v", err)
	}

	recorded := requests()
	if len(recorded) != 2 {
		t.Fatalf("request count = %d, want 2", len(recorded))
	}
	if recorded[0].Username != testUsername || recorded[0].Password != testPassword {
		t.Errorf("first request auth = %s:%s, want %s:%s",
			recorded[0].Username, recorded[0].Password, testUsername, testPassword)
	}
	if recorded[1].Username != "rotated" || recorded[1].Password != "secret" {
		t.Errorf("second request auth = %s:%s, want rotated:secret",
			recorded[1].Username, recorded[1].Password)
	}
}

func TestSetConnection_RetargetsNextFetch(t *testing.T) {
	first, firstRequests := testServer(t, map[string]string{
		MachineNameEndpoint: `{"Name":"FIRST"}`,
	})
	second, secondRequests := testServer(t, map[string]string{
		MachineNameEndpoint: `{"Name":"SECOND"}`,
	})

	client, err := NewConfiguredClient(serverConnection(t, first), NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	name, err := client.GetMachineName()
	if err != nil {
		t.Fatalf("GetMachineName() error = %v", err)
	}
	if name.Name != "FIRST" {
		t.Errorf("Name = %s, want FIRST", name.Name)
	}

	if err := client.SetConnection(serverConnection(t, second)); err != nil {
		t.Fatalf("SetConnection() error = %v", err)
	}

	name, err = client.GetMachineName()
	if err != nil {
		t.Fatalf("GetMachineName() after retarget error = %v", err)
	}
	if name.Name != "SECOND" {
		t.Errorf("Name = %s, want SECOND", name.Name)
	}

	if got := len(firstRequests()); got != 1 {
		t.Errorf("first server request count = %d, want 1", got)
	}
	if got := len(secondRequests()); got != 1 {
		t.Errorf("second server request count = %d, want 1", got)
	}
}

func TestSetters_NilLeavesStateUnchanged(t *testing.T) {
	server, _ := testServer(t, map[string]string{
		MachineNameEndpoint: mockMachineNameResponse,
	})

	client, err := NewConfiguredClient(serverConnection(t, server), NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	if err := client.SetConnection(nil); !IsInvalidArgument(err) {
		t.Errorf("SetConnection(nil) error = %v, want invalid-argument", err)
	}
	if err := client.SetCredentials(nil); !IsInvalidArgument(err) {
		t.Errorf("SetCredentials(nil) error = %v, want invalid-argument", err)
	}

	// Client must still work with its prior configuration
	name, err := client.GetMachineName()
	if err != nil {
		t.Fatalf("GetMachineName() after rejected setters error = %v", err)
	}
	if name.Name != "DeviceX" {
		t.Errorf("Name = %s, want DeviceX", name.Name)
	}
}

func TestFetch_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewConfiguredClient(serverConnection(t, server), NewCredentials("wrong", "wrong"))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	_, err = client.GetMachineName()
	if err == nil {
		t.Fatal("GetMachineName() should return error for auth failure")
	}
	if !IsAuthError(err) {
		t.Errorf("error should be auth error, got %v", err)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewConfiguredClient(serverConnection(t, server), NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	_, err = client.GetSoftwareInfo()
	if err == nil {
		t.Fatal("GetSoftwareInfo() should return error for server failure")
	}
	if !IsHTTPError(err) {
		t.Errorf("error should be HTTP error, got %v", err)
	}

	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		t.Fatalf("error should be *DeviceError, got %T", err)
	}
	if devErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want %d", devErr.StatusCode, http.StatusInternalServerError)
	}
}

func TestFetch_NetworkErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	conn := serverConnection(t, server)
	server.Close() // now nothing is listening

	client, err := NewConfiguredClient(conn, NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	_, err = client.GetIPConfig()
	if err == nil {
		t.Fatal("GetIPConfig() against closed server should return error")
	}
	if !IsNetworkError(err) {
		t.Errorf("error should be network error, got %v", err)
	}
}

func TestPing(t *testing.T) {
	server, _ := testServer(t, map[string]string{
		MachineNameEndpoint: mockMachineNameResponse,
	})

	client, err := NewConfiguredClient(serverConnection(t, server), NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	if err := client.Ping(); err != nil {
		t.Errorf("Ping() error = %v, want nil", err)
	}
}

func TestUserAgentHeader(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(mockMachineNameResponse))
	}))
	defer server.Close()

	client, err := NewConfiguredClient(serverConnection(t, server), NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}

	if _, err := client.GetMachineName(); err != nil {
		t.Fatalf("GetMachineName() error = %v", err)
	}
	if !strings.HasPrefix(gotUserAgent, "devportal/") {
		t.Errorf("User-Agent = %q, want devportal/ prefix", gotUserAgent)
	}
}

func TestDefaultTimeoutApplied(t *testing.T) {
	client, err := NewConfiguredClient(NewConnection("192.168.1.42", 80), NewCredentials(testUsername, testPassword))
	if err != nil {
		t.Fatalf("NewConfiguredClient() error = %v", err)
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("transport timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
	}
}
