package perf

import (
	"testing"

	"github.com/muurk/devportal"
)

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		name string
		conn *devportal.Connection
		want string
	}{
		{
			name: "http becomes ws",
			conn: devportal.NewConnection("192.168.1.42", 80),
			want: "ws://192.168.1.42:80/api/resourcemanager/systemperf",
		},
		{
			name: "https becomes wss",
			conn: &devportal.Connection{Host: "192.168.1.42", Port: 443, Scheme: "https"},
			want: "wss://192.168.1.42:443/api/resourcemanager/systemperf",
		},
		{
			name: "custom port carried over",
			conn: devportal.NewConnection("device.local", 8080),
			want: "ws://device.local:8080/api/resourcemanager/systemperf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := websocketURL(tt.conn)
			if err != nil {
				t.Fatalf("websocketURL() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("websocketURL() = %s, want %s", got, tt.want)
			}
		})
	}
}
