package channel

import (
	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
	"github.com/edumarques81/avplayer-sdk/internal/infra/stateflow"
)

// Flows bundles the state flows every channel exposes. Adapters embed it and
// write through its fields.
type Flows struct {
	ReadyFlow       *stateflow.Flow[bool]
	PlayerStateFlow *stateflow.Flow[PlayerState]
	TracksFlow      *stateflow.Flow[track.State]
	ProgressFlow    *stateflow.Flow[Progress]
	StreamTypeFlow  *stateflow.Flow[PlaybackType]
}

// NewFlows returns flows in the initial state: not ready, idle, no tracks,
// zero progress, unknown stream type.
func NewFlows() Flows {
	return Flows{
		ReadyFlow:       stateflow.New(false, stateflow.Distinct[bool]()),
		PlayerStateFlow: stateflow.New(Idle),
		TracksFlow:      stateflow.New(track.State{}),
		ProgressFlow:    stateflow.New(Progress{}, stateflow.Distinct[Progress]()),
		StreamTypeFlow:  stateflow.New(Unknown, stateflow.Distinct[PlaybackType]()),
	}
}

func (f Flows) Ready() stateflow.Reader[bool]              { return f.ReadyFlow }
func (f Flows) PlayerState() stateflow.Reader[PlayerState] { return f.PlayerStateFlow }
func (f Flows) Tracks() stateflow.Reader[track.State]      { return f.TracksFlow }
func (f Flows) Progress() stateflow.Reader[Progress]       { return f.ProgressFlow }
func (f Flows) StreamType() stateflow.Reader[PlaybackType] { return f.StreamTypeFlow }

// ResetFlows puts every flow back into its initial state.
func (f Flows) ResetFlows() {
	f.ReadyFlow.Set(false)
	f.PlayerStateFlow.Set(Idle)
	f.TracksFlow.Set(track.State{})
	f.ProgressFlow.Set(Progress{})
	f.StreamTypeFlow.Set(Unknown)
}
