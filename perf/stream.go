package perf

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/muurk/devportal"
	"github.com/muurk/devportal/logging"
	"github.com/muurk/devportal/version"
)

const (
	// SystemPerfEndpoint is the websocket endpoint streaming performance counters
	SystemPerfEndpoint = "/api/resourcemanager/systemperf"

	// DefaultHandshakeTimeout is the websocket dial timeout
	DefaultHandshakeTimeout = 10 * time.Second

	// readWait is how long to wait for the next reading before giving up
	// on the connection
	readWait = 60 * time.Second
)

// Stream is a live feed of SystemPerf readings from a device.
//
// Readings are delivered on the channel returned by Readings. The channel is
// closed when the stream ends, either because Close was called or because the
// connection failed; in the latter case Err reports the failure.
type Stream struct {
	ws       *websocket.Conn
	readings chan SystemPerf

	done      chan struct{}
	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

// Connect dials the device's system performance endpoint and starts
// streaming readings. Returns an invalid-argument error if conn or creds is
// nil. The context covers the websocket handshake only; use Close to end the
// stream.
func Connect(ctx context.Context, conn *devportal.Connection, creds *devportal.Credentials) (*Stream, error) {
	if conn == nil {
		return nil, devportal.NewInvalidArgumentError("connection must not be nil")
	}
	if creds == nil {
		return nil, devportal.NewInvalidArgumentError("credentials must not be nil")
	}

	wsURL, err := websocketURL(conn)
	if err != nil {
		return nil, devportal.NewNetworkError("failed to build websocket URL", err, SystemPerfEndpoint)
	}

	header := http.Header{}
	header.Set("User-Agent", version.UserAgent())

	dialer := websocket.Dialer{HandshakeTimeout: DefaultHandshakeTimeout}

	// Basic auth goes in the dial URL so the upgrade request carries it
	u, _ := url.Parse(wsURL)
	u.User = url.UserPassword(creds.Username, creds.Password)

	ws, resp, err := dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, devportal.NewAuthError("authentication failed (check credentials)", SystemPerfEndpoint)
		}
		return nil, devportal.NewNetworkError("websocket dial failed", err, SystemPerfEndpoint)
	}

	stream := &Stream{
		ws:       ws,
		readings: make(chan SystemPerf),
		done:     make(chan struct{}),
	}

	go stream.readLoop(conn.Host)

	return stream, nil
}

// Readings returns the channel of performance readings. The channel is
// closed when the stream ends.
func (s *Stream) Readings() <-chan SystemPerf {
	return s.readings
}

// Err returns the error that ended the stream, or nil if the stream is
// still running or was closed cleanly.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close ends the stream and closes the underlying connection.
// Safe to call multiple times.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		// Best-effort close handshake before tearing down the socket
		deadline := time.Now().Add(time.Second)
		_ = s.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = s.ws.Close()
	})
	return err
}

// readLoop receives frames until the connection ends, decoding each JSON
// frame into a SystemPerf reading.
func (s *Stream) readLoop(host string) {
	defer close(s.readings)

	for {
		if err := s.ws.SetReadDeadline(time.Now().Add(readWait)); err != nil {
			s.fail(err)
			return
		}

		_, data, err := s.ws.ReadMessage()
		if err != nil {
			// A close initiated by us or a normal close from the device
			// is not a stream failure
			select {
			case <-s.done:
				return
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return
			}
			s.fail(err)
			return
		}

		var reading SystemPerf
		if err := json.Unmarshal(data, &reading); err != nil {
			logging.LogDecodeFailure(SystemPerfEndpoint, len(data), err)
			continue
		}

		select {
		case s.readings <- reading:
		case <-s.done:
			return
		}
	}
}

// fail records the error that ended the stream
func (s *Stream) fail(err error) {
	s.mu.Lock()
	s.err = devportal.NewNetworkError("websocket stream failed", err, SystemPerfEndpoint)
	s.mu.Unlock()
}

// websocketURL derives the ws/wss URL for the perf endpoint from a connection
func websocketURL(conn *devportal.Connection) (string, error) {
	base, err := url.Parse(conn.BaseURL())
	if err != nil {
		return "", err
	}

	switch strings.ToLower(base.Scheme) {
	case "https":
		base.Scheme = "wss"
	default:
		base.Scheme = "ws"
	}

	base.Path = SystemPerfEndpoint
	return base.String(), nil
}
