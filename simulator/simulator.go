package simulator

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/devportal"
	"github.com/muurk/devportal/logging"
	"github.com/muurk/devportal/perf"
)

const (
	// DefaultPerfInterval is how often the simulated device pushes a
	// performance reading over the websocket
	DefaultPerfInterval = 50 * time.Millisecond

	// writeWait is the time allowed to write a frame to the peer
	writeWait = 10 * time.Second
)

// Request records a single request the simulated device received.
type Request struct {
	Method   string
	Path     string
	Username string // basic auth username presented, if any
	Password string // basic auth password presented, if any
}

// Device is an in-process double of a device's management API.
//
// The zero value is not usable; create instances with NewDevice and serve
// them with net/http/httptest:
//
//	device := simulator.NewDevice()
//	server := httptest.NewServer(device.Handler())
//	defer server.Close()
//
// Responses are generated from the exported DTO fields, so tests mutate
// those to shape what the "device" reports. SetRawResponse overrides an
// endpoint with a literal body, which is how tests exercise empty and
// malformed payloads.
type Device struct {
	MachineName  devportal.MachineName
	SoftwareInfo devportal.SoftwareInfo
	IPConfig     devportal.IPConfig
	Packages     devportal.AppXPackages
	Perf         perf.SystemPerf

	// Username and Password gate every endpoint with basic auth.
	// Leave Username empty to disable the auth check.
	Username string
	Password string

	// PerfInterval is the delay between pushed performance readings
	PerfInterval time.Duration

	mu       sync.Mutex
	requests []Request
	raw      map[string]*string // per-endpoint body overrides

	upgrader websocket.Upgrader
}

// NewDevice creates a simulated device with plausible defaults and auth
// disabled.
func NewDevice() *Device {
	return &Device{
		MachineName: devportal.MachineName{Name: "SIMDEVICE"},
		SoftwareInfo: devportal.SoftwareInfo{
			ComputerName: "SIMDEVICE",
			Language:     "en-us",
			OsEdition:    "Enterprise",
			OsEditionID:  4,
			OsVersion:    "10.0.14393.0",
			Platform:     "Simulated Device",
		},
		IPConfig: devportal.IPConfig{
			Adapters: defaultAdapters(),
		},
		PerfInterval: DefaultPerfInterval,
		raw:          make(map[string]*string),
	}
}

// defaultAdapters returns the default simulated network adapter list
func defaultAdapters() []devportal.Adapter {
	return []devportal.Adapter{
		{
			Description:     "Simulated Ethernet Adapter",
			HardwareAddress: "00:11:22:33:44:55",
			Index:           0,
			Name:            "{00000000-0000-0000-0000-000000000001}",
			Type:            "Ethernet",
			IPAddresses: []devportal.IPAddress{
				{Address: "192.168.1.42", Mask: "255.255.255.0"},
			},
			Gateways: []devportal.IPAddress{
				{Address: "192.168.1.1", Mask: "255.255.255.0"},
			},
		},
	}
}

// SetRawResponse overrides the body served for an endpoint with a literal
// string. Pass the empty string to serve an empty body. The override applies
// until cleared with ClearRawResponse.
func (d *Device) SetRawResponse(endpoint, body string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.raw[endpoint] = &body
}

// ClearRawResponse removes a raw body override for an endpoint
func (d *Device) ClearRawResponse(endpoint string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.raw, endpoint)
}

// Requests returns a copy of all requests received so far
func (d *Device) Requests() []Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Request, len(d.requests))
	copy(out, d.requests)
	return out
}

// RequestCount returns how many requests have been received for a path
func (d *Device) RequestCount(path string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := 0
	for _, req := range d.requests {
		if req.Path == path {
			count++
		}
	}
	return count
}

// Handler returns the http.Handler serving the simulated management API
func (d *Device) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(devportal.MachineNameEndpoint, d.serve(devportal.MachineNameEndpoint, func() any { return d.MachineName }))
	mux.HandleFunc(devportal.SoftwareInfoEndpoint, d.serve(devportal.SoftwareInfoEndpoint, func() any { return d.SoftwareInfo }))
	mux.HandleFunc(devportal.IPConfigEndpoint, d.serve(devportal.IPConfigEndpoint, func() any { return d.IPConfig }))
	mux.HandleFunc(devportal.InstalledPackagesEndpoint, d.serve(devportal.InstalledPackagesEndpoint, func() any { return d.Packages }))
	mux.HandleFunc(perf.SystemPerfEndpoint, d.servePerf)
	return mux
}

// record stores the request and enforces basic auth.
// Returns false if the request was rejected.
func (d *Device) record(w http.ResponseWriter, r *http.Request) bool {
	username, password, _ := r.BasicAuth()

	d.mu.Lock()
	d.requests = append(d.requests, Request{
		Method:   r.Method,
		Path:     r.URL.Path,
		Username: username,
		Password: password,
	})
	expectUser := d.Username
	expectPass := d.Password
	d.mu.Unlock()

	if expectUser != "" && (username != expectUser || password != expectPass) {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

// serve builds a handler for one JSON endpoint
func (d *Device) serve(endpoint string, value func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.record(w, r) {
			return
		}
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		d.mu.Lock()
		override := d.raw[endpoint]
		d.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if override != nil {
			_, _ = w.Write([]byte(*override))
			return
		}

		data, err := json.Marshal(value())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(data)
	}
}

// servePerf upgrades to a websocket and pushes performance readings until
// the client goes away
func (d *Device) servePerf(w http.ResponseWriter, r *http.Request) {
	if !d.record(w, r) {
		return
	}

	ws, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Simulator websocket upgrade failed", zap.Error(err))
		return
	}
	defer func() { _ = ws.Close() }()

	// Drain incoming frames so close messages are processed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	interval := d.PerfInterval
	if interval <= 0 {
		interval = DefaultPerfInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			d.mu.Lock()
			reading := d.Perf
			d.mu.Unlock()

			data, err := json.Marshal(reading)
			if err != nil {
				return
			}
			if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

// SetPerf replaces the performance reading pushed over the websocket.
// Safe to call while the simulator is serving.
func (d *Device) SetPerf(reading perf.SystemPerf) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Perf = reading
}
