package player_test

import (
	"errors"
	"sync"

	"github.com/edumarques81/avplayer-sdk/internal/domain/channel"
	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
)

var errFake = errors.New("fake failure")

type fakeChannel struct {
	channel.Flows
	id string

	mu         sync.Mutex
	calls      []string
	prepared   []channel.Asset
	selected   []track.Track
	resets     int
	destroys   int
	prepareErr error
}

func newFakeChannel(id string) *fakeChannel {
	return &fakeChannel{Flows: channel.NewFlows(), id: id}
}

func (f *fakeChannel) ID() string { return f.id }

func (f *fakeChannel) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeChannel) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeChannel) PlayOrPause() error { return f.record("PlayOrPause") }
func (f *fakeChannel) Play() error { return f.record("Play") }
func (f *fakeChannel) Pause() error { return f.record("Pause") }
func (f *fakeChannel) SeekTo(int64) error { return f.record("SeekTo") }
func (f *fakeChannel) SeekBy(int64) error { return f.record("SeekBy") }
func (f *fakeChannel) SeekToLive() error { return f.record("SeekToLive") }

func (f *fakeChannel) Prepare(asset channel.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.prepareErr != nil {
		return f.prepareErr
	}
	f.prepared = append(f.prepared, asset)
	return nil
}

func (f *fakeChannel) Prepared() []channel.Asset {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]channel.Asset(nil), f.prepared...)
}

func (f *fakeChannel) Reset() {
	f.mu.Lock()
	f.resets++
	f.mu.Unlock()
	f.ResetFlows()
}

func (f *fakeChannel) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroys++
}

func (f *fakeChannel) Destroys() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroys
}

func (f *fakeChannel) UpdatePlayerState(state channel.PlayerState) {
	f.PlayerStateFlow.Set(state)
}

func (f *fakeChannel) SelectTrack(t track.Track) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = append(f.selected, t)
	return nil
}

func (f *fakeChannel) Selected() []track.Track {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]track.Track(nil), f.selected...)
}
