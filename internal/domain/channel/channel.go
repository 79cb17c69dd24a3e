// Package channel defines the contract a playback engine implements to be
// driven by the player.
package channel

import (
	"fmt"

	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
	"github.com/edumarques81/avplayer-sdk/internal/infra/stateflow"
)

// LocalID is the identifier of the on-device channel.
const LocalID = "local"

// Asset is the resolved media to play.
type Asset struct {
	StreamURL string `json:"streamUrl"`
}

// StateKind is the lifecycle state of a channel's player.
type StateKind string

// Player lifecycle states.
const (
	StatePlaying   StateKind = "playing"
	StatePaused    StateKind = "paused"
	StateBuffering StateKind = "buffering"
	StateIdle      StateKind = "idle"
	StateEnded     StateKind = "ended"
	StateError     StateKind = "error"
)

// PlayerState is the lifecycle state reported by a channel. Err is only set
// when Kind is StateError, and may be nil even then.
type PlayerState struct {
	Kind StateKind
	Err  error
}

func (s PlayerState) String() string {
	if s.Kind == StateError && s.Err != nil {
		return fmt.Sprintf("%s(%v)", s.Kind, s.Err)
	}
	return string(s.Kind)
}

// Convenience values for the lifecycle states without a payload.
var (
	Playing   = PlayerState{Kind: StatePlaying}
	Paused    = PlayerState{Kind: StatePaused}
	Buffering = PlayerState{Kind: StateBuffering}
	Idle      = PlayerState{Kind: StateIdle}
	Ended     = PlayerState{Kind: StateEnded}
)

// Failed returns the error state.
func Failed(err error) PlayerState {
	return PlayerState{Kind: StateError, Err: err}
}

// Progress is the playback position reported by a channel.
type Progress struct {
	ProgressMs       int64 `json:"progressMs"`
	DurationMs       int64 `json:"durationMs"`
	BufferProgressMs int64 `json:"bufferProgressMs"`
}

// PlaybackType tells live streams from on-demand ones.
type PlaybackType string

const (
	Live    PlaybackType = "LIVE"
	VOD     PlaybackType = "VOD"
	Unknown PlaybackType = "UNKNOWN"
)

// Controllable is the transport control surface shared by channels and the
// player. Seek positions and offsets are in seconds.
type Controllable interface {
	PlayOrPause() error
	Play() error
	Pause() error
	SeekTo(positionS int64) error
	SeekBy(offsetS int64) error
	SeekToLive() error
}

// Channel is a playback engine adapter. A channel owns its state flows and is
// the only writer to them; the player only reads them.
type Channel interface {
	Controllable

	ID() string

	Ready() stateflow.Reader[bool]
	PlayerState() stateflow.Reader[PlayerState]
	Tracks() stateflow.Reader[track.State]
	Progress() stateflow.Reader[Progress]
	StreamType() stateflow.Reader[PlaybackType]

	// Prepare loads the asset. Readiness is reported through Ready.
	Prepare(asset Asset) error
	// Reset stops playback and returns the channel to its initial state.
	Reset()
	// Destroy releases all resources. The channel must not be used afterwards.
	Destroy()
	UpdatePlayerState(state PlayerState)
	SelectTrack(t track.Track) error
}
