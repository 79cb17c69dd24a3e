package mpd_test

import (
	"context"
	"errors"
	"testing"

	"github.com/edumarques81/avplayer-sdk/internal/infra/mpd"
)

// unusedPort has no daemon listening on it in the test environment.
const unusedPort = 16600

func TestNewClient(t *testing.T) {
	client := mpd.NewClient("localhost", 6600, "")

	if got := client.Addr(); got != "localhost:6600" {
		t.Errorf("expected %q, got %q", "localhost:6600", got)
	}
}

func TestClientConnectFailure(t *testing.T) {
	client := mpd.NewClient("localhost", unusedPort, "")

	if err := client.Connect(); err == nil {
		t.Error("Connect should fail for non-existent server")
		client.Close()
	}
}

func TestClientPingWithoutConnect(t *testing.T) {
	client := mpd.NewClient("localhost", unusedPort, "")

	if err := client.Ping(); !errors.Is(err, mpd.ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestClientCommandsWithoutServer(t *testing.T) {
	client := mpd.NewClient("localhost", unusedPort, "")

	tests := []struct {
		name string
		call func() error
	}{
		{"Status", func() error { _, err := client.Status(); return err }},
		{"CurrentSong", func() error { _, err := client.CurrentSong(); return err }},
		{"Play", func() error { return client.Play(0) }},
		{"Pause", func() error { return client.Pause(true) }},
		{"Stop", client.Stop},
		{"Seek", func() error { return client.Seek(10) }},
		{"Clear", client.Clear},
		{"Add", func() error { return client.Add("http://example.com/stream") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err == nil {
				t.Errorf("%s should fail when the daemon is unreachable", tt.name)
			}
		})
	}
}

func TestClientWatchWithoutServer(t *testing.T) {
	client := mpd.NewClient("localhost", unusedPort, "")

	if _, err := client.Watch(context.Background(), "player"); err == nil {
		t.Error("Watch should fail when the daemon is unreachable")
	}
}

func TestClientCloseWithoutConnect(t *testing.T) {
	client := mpd.NewClient("localhost", unusedPort, "")

	if err := client.Close(); err != nil {
		t.Errorf("Close should be a no-op, got %v", err)
	}
}
