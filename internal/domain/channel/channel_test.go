package channel_test

import (
	"errors"
	"testing"

	"github.com/edumarques81/avplayer-sdk/internal/domain/channel"
	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
)

func TestPlayerStateString(t *testing.T) {
	tests := []struct {
		state channel.PlayerState
		want  string
	}{
		{channel.Playing, "playing"},
		{channel.Failed(nil), "error"},
		{channel.Failed(errors.New("decoder")), "error(decoder)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestFlowsReset(t *testing.T) {
	f := channel.NewFlows()
	f.ReadyFlow.Set(true)
	f.PlayerStateFlow.Set(channel.Playing)
	f.TracksFlow.Set(track.State{Audio: []track.AudioTrack{{}}})
	f.ProgressFlow.Set(channel.Progress{ProgressMs: 10, DurationMs: 20})
	f.StreamTypeFlow.Set(channel.Live)

	f.ResetFlows()

	if f.Ready().Value() {
		t.Error("expected not ready")
	}
	if f.PlayerState().Value() != channel.Idle {
		t.Errorf("expected idle, got %v", f.PlayerState().Value())
	}
	if len(f.Tracks().Value().Audio) != 0 {
		t.Error("expected no tracks")
	}
	if f.Progress().Value() != (channel.Progress{}) {
		t.Error("expected zero progress")
	}
	if f.StreamType().Value() != channel.Unknown {
		t.Error("expected unknown stream type")
	}
}
