// Package simchannel is an in-process playback channel that simulates a
// player. It backs the reference binary and end-to-end tests.
package simchannel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/edumarques81/avplayer-sdk/internal/domain/channel"
	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
)

var _ channel.Channel = (*Channel)(nil)

var (
	ErrNotPrepared   = errors.New("simchannel: no asset prepared")
	ErrNotLive       = errors.New("simchannel: stream is not live")
	ErrUnknownTrack  = errors.New("simchannel: unknown track")
	ErrMissingStream = errors.New("simchannel: asset has no stream url")
)

const (
	DefaultTick       = 250 * time.Millisecond
	DefaultDurationMs = int64(10 * 60 * 1000)
)

// Channel simulates playback with a ticker. Streams whose URL contains
// "live" are treated as live: their duration grows with the position.
type Channel struct {
	channel.Flows

	id         string
	tick       time.Duration
	durationMs int64
	ladder     track.State

	mu       sync.Mutex
	prepared bool
	live     bool
	progress channel.Progress
	tracks   track.State
	stop     context.CancelFunc
	done     chan struct{}
}

type Option func(*Channel)

func WithID(id string) Option {
	return func(c *Channel) { c.id = id }
}

// WithTick sets the simulated clock resolution.
func WithTick(d time.Duration) Option {
	return func(c *Channel) { c.tick = d }
}

// WithDuration sets the length of on-demand streams.
func WithDuration(ms int64) Option {
	return func(c *Channel) { c.durationMs = ms }
}

// WithTracks replaces DefaultTracks.
func WithTracks(s track.State) Option {
	return func(c *Channel) { c.ladder = s }
}

// New creates a simulated channel with the local channel id.
func New(opts ...Option) *Channel {
	c := &Channel{
		Flows:      channel.NewFlows(),
		id:         channel.LocalID,
		tick:       DefaultTick,
		durationMs: DefaultDurationMs,
		ladder:     DefaultTracks(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultTracks is an HLS-like ladder with a duplicated rendition.
func DefaultTracks() track.State {
	return track.State{
		Video: []track.VideoTrack{
			{Option: track.Option{ID: "v0"}, Width: 640, Height: 360, Bitrate: 800_000, FrameRate: 25, Codecs: "avc1.4d401e", IsSupported: true},
			{Option: track.Option{ID: "v1"}, Width: 1280, Height: 720, Bitrate: 2_500_000, FrameRate: 25, Codecs: "avc1.4d401f", IsSupported: true},
			{Option: track.Option{ID: "v2"}, Width: 1280, Height: 720, Bitrate: 3_000_000, FrameRate: 25, Codecs: "avc1.640020", IsSupported: true},
			{Option: track.Option{ID: "v3"}, Width: 1920, Height: 1080, Bitrate: 6_000_000, FrameRate: 50, Codecs: "avc1.640028", IsSupported: true},
		},
		Audio: []track.AudioTrack{
			{Option: track.Option{ID: "a0", DisplayName: "English", IsSelected: true}, Language: "en", IsDefault: true},
			{Option: track.Option{ID: "a1", DisplayName: "Deutsch"}, Language: "de"},
		},
		Subtitle: []track.SubtitleTrack{
			{Option: track.Option{ID: "s0", DisplayName: "English"}, Language: "en"},
			{Option: track.Option{ID: "s1", DisplayName: "English"}, Language: "en"},
		},
	}
}

func (c *Channel) ID() string { return c.id }

// Prepare loads the asset paused at the start.
func (c *Channel) Prepare(asset channel.Asset) error {
	if strings.TrimSpace(asset.StreamURL) == "" {
		return ErrMissingStream
	}
	c.halt()

	live := strings.Contains(strings.ToLower(asset.StreamURL), "live")

	c.mu.Lock()
	c.prepared = true
	c.live = live
	c.tracks = c.ladder
	c.progress = channel.Progress{}
	if !live {
		c.progress.DurationMs = c.durationMs
	}
	progress := c.progress
	c.mu.Unlock()

	log.Info().Str("channel", c.id).Str("stream_url", asset.StreamURL).Bool("live", live).Msg("Preparing simulated stream")

	c.PlayerStateFlow.Set(channel.Buffering)
	c.StreamTypeFlow.Set(lo.Ternary(live, channel.Live, channel.VOD))
	c.TracksFlow.Set(c.ladder)
	c.ProgressFlow.Set(progress)
	c.ReadyFlow.Set(true)
	c.PlayerStateFlow.Set(channel.Paused)
	return nil
}

func (c *Channel) isPrepared() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prepared
}

func (c *Channel) PlayOrPause() error {
	if c.PlayerStateFlow.Value().Kind == channel.StatePlaying {
		return c.Pause()
	}
	return c.Play()
}

// Play starts the simulated clock. Playing an ended stream restarts it.
func (c *Channel) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.prepared {
		return ErrNotPrepared
	}
	if c.stop != nil {
		return nil
	}
	if !c.live && c.progress.ProgressMs >= c.progress.DurationMs {
		c.progress.ProgressMs = 0
		c.ProgressFlow.Set(c.progress)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.stop = cancel
	c.done = make(chan struct{})
	go c.run(ctx, c.done)

	c.PlayerStateFlow.Set(channel.Playing)
	return nil
}

func (c *Channel) Pause() error {
	if !c.isPrepared() {
		return ErrNotPrepared
	}
	c.halt()
	c.PlayerStateFlow.Set(channel.Paused)
	return nil
}

// halt stops the clock and waits for it to exit.
func (c *Channel) halt() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
}

func (c *Channel) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	step := c.tick.Milliseconds()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		c.mu.Lock()
		if ctx.Err() != nil {
			c.mu.Unlock()
			return
		}
		c.progress.ProgressMs += step
		if c.live {
			c.progress.DurationMs = max(c.progress.DurationMs, c.progress.ProgressMs)
		}
		ended := !c.live && c.progress.ProgressMs >= c.progress.DurationMs
		if ended {
			c.progress.ProgressMs = c.progress.DurationMs
			c.stop()
			c.stop, c.done = nil, nil
		}
		c.progress.BufferProgressMs = min(c.progress.ProgressMs+10_000, max(c.progress.DurationMs, c.progress.ProgressMs))
		c.ProgressFlow.Set(c.progress)
		c.mu.Unlock()

		if ended {
			c.PlayerStateFlow.Set(channel.Ended)
			return
		}
	}
}

// SeekTo moves to positionS seconds, clamped to the stream.
func (c *Channel) SeekTo(positionS int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.prepared {
		return ErrNotPrepared
	}
	c.progress.ProgressMs = min(max(positionS*1000, 0), c.progress.DurationMs)
	c.ProgressFlow.Set(c.progress)
	return nil
}

func (c *Channel) SeekBy(offsetS int64) error {
	c.mu.Lock()
	current := c.progress.ProgressMs / 1000
	c.mu.Unlock()
	return c.SeekTo(current + offsetS)
}

func (c *Channel) SeekToLive() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.prepared {
		return ErrNotPrepared
	}
	if !c.live {
		return ErrNotLive
	}
	c.progress.ProgressMs = c.progress.DurationMs
	c.ProgressFlow.Set(c.progress)
	return nil
}

// SelectTrack marks t as selected. The synthetic Auto and Off entries clear
// the selection of their kind.
func (c *Channel) SelectTrack(t track.Track) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := t.SettingOption().ID
	next := c.tracks
	var found bool
	switch t.Kind() {
	case track.KindVideo:
		next.Video, found = selectByID(c.tracks.Video, id)
	case track.KindAudio:
		next.Audio, found = selectByID(c.tracks.Audio, id)
	case track.KindSubtitle:
		next.Subtitle, found = selectByID(c.tracks.Subtitle, id)
	}
	if !found && id != track.SyntheticID {
		return fmt.Errorf("%w: %s %q", ErrUnknownTrack, t.Kind(), id)
	}

	c.tracks = next
	c.TracksFlow.Set(next)
	return nil
}

func selectByID[T track.Track](tracks []T, id string) ([]T, bool) {
	found := lo.ContainsBy(tracks, func(t T) bool { return t.SettingOption().ID == id })
	return lo.Map(tracks, func(t T, _ int) T {
		return t.WithSelected(t.SettingOption().ID == id).(T)
	}), found
}

// Reset stops the clock and forgets the asset.
func (c *Channel) Reset() {
	c.halt()

	c.mu.Lock()
	c.prepared = false
	c.live = false
	c.progress = channel.Progress{}
	c.tracks = track.State{}
	c.mu.Unlock()

	c.ResetFlows()
}

func (c *Channel) Destroy() {
	log.Debug().Str("channel", c.id).Msg("Destroying simulated channel")
	c.Reset()
}

func (c *Channel) UpdatePlayerState(state channel.PlayerState) {
	c.PlayerStateFlow.Set(state)
}
