package mpd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fhs/gompd/v2/mpd"
	"github.com/rs/zerolog/log"

	"github.com/edumarques81/avplayer-sdk/internal/domain/channel"
	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
)

var (
	_ Daemon          = (*Client)(nil)
	_ channel.Channel = (*Channel)(nil)
)

// ChannelID is the default id of the MPD channel.
const ChannelID = "mpd"

var (
	ErrNotLive            = errors.New("mpd: stream is not live")
	ErrTrackNotSelectable = errors.New("mpd: track cannot be selected")
	ErrMissingStreamURL   = errors.New("mpd: asset has no stream url")
)

// Daemon is the part of Client the channel drives.
type Daemon interface {
	Status() (mpd.Attrs, error)
	CurrentSong() (mpd.Attrs, error)
	Play(pos int) error
	Pause(pause bool) error
	Stop() error
	Seek(seconds int) error
	Clear() error
	Add(uri string) error
	Close() error
}

// Channel plays assets on an MPD instance. Its flows are refreshed after
// every command and whenever Run observes a change.
type Channel struct {
	channel.Flows

	id     string
	daemon Daemon

	mu          sync.Mutex
	audioFormat string
}

// ChannelOption configures a Channel.
type ChannelOption func(*Channel)

// WithChannelID overrides ChannelID.
func WithChannelID(id string) ChannelOption {
	return func(c *Channel) {
		c.id = id
	}
}

// NewChannel creates a channel over d.
func NewChannel(d Daemon, opts ...ChannelOption) *Channel {
	c := &Channel{
		Flows:  channel.NewFlows(),
		id:     ChannelID,
		daemon: d,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Channel) ID() string { return c.id }

// Run refreshes the flows on every change notification and every interval
// until ctx is done. changes may be nil.
func (c *Channel) Run(ctx context.Context, changes <-chan string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case subsystem, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			log.Debug().Str("subsystem", subsystem).Msg("MPD change")
		case <-ticker.C:
		}
		if err := c.Sync(); err != nil {
			log.Debug().Err(err).Str("channel", c.id).Msg("MPD sync failed")
		}
	}
}

// Sync reads the daemon status and publishes it.
func (c *Channel) Sync() error {
	status, err := c.daemon.Status()
	if err != nil {
		return fmt.Errorf("mpd status: %w", err)
	}
	song, err := c.daemon.CurrentSong()
	if err != nil {
		return fmt.Errorf("mpd current song: %w", err)
	}
	c.publish(status, song)
	return nil
}

func (c *Channel) publish(status, song mpd.Attrs) {
	if next := playerState(status); !sameState(c.PlayerStateFlow.Value(), next) {
		c.PlayerStateFlow.Set(next)
	}
	c.ProgressFlow.Set(progress(status))
	c.StreamTypeFlow.Set(streamType(status))

	format := status["audio"]
	c.mu.Lock()
	changed := format != c.audioFormat
	c.audioFormat = format
	c.mu.Unlock()
	if changed {
		c.TracksFlow.Set(tracks(format, song))
	}
}

func sameState(a, b channel.PlayerState) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Err == nil || b.Err == nil {
		return a.Err == b.Err
	}
	return a.Err.Error() == b.Err.Error()
}

func playerState(status mpd.Attrs) channel.PlayerState {
	if msg := status["error"]; msg != "" {
		return channel.Failed(errors.New(msg))
	}
	switch status["state"] {
	case "play":
		return channel.Playing
	case "pause":
		return channel.Paused
	default:
		return channel.Idle
	}
}

func seconds(v string) int64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return int64(f * 1000)
}

func progress(status mpd.Attrs) channel.Progress {
	elapsed := seconds(status["elapsed"])
	return channel.Progress{
		ProgressMs:       elapsed,
		DurationMs:       seconds(status["duration"]),
		BufferProgressMs: elapsed,
	}
}

// streamType treats songs without a duration as live radio.
func streamType(status mpd.Attrs) channel.PlaybackType {
	if status["songid"] == "" {
		return channel.Unknown
	}
	if seconds(status["duration"]) > 0 {
		return channel.VOD
	}
	return channel.Live
}

// tracks reports the single audio output as the only audio track.
func tracks(format string, song mpd.Attrs) track.State {
	if format == "" {
		return track.State{}
	}
	return track.State{
		Audio: []track.AudioTrack{{
			Option:    track.Option{ID: "0", DisplayName: FormatLabel(format), IsSelected: true},
			Language:  song["Language"],
			IsDefault: true,
		}},
	}
}

// FormatLabel renders an MPD audio format ("44100:24:2") for display.
func FormatLabel(format string) string {
	parts := strings.Split(format, ":")
	if len(parts) != 3 {
		return format
	}

	label := parts[0] + " Hz"
	if rate, err := strconv.ParseFloat(parts[0], 64); err == nil {
		label = strconv.FormatFloat(rate/1000, 'f', -1, 64) + " kHz"
	}
	if parts[1] != "f" && parts[1] != "*" {
		label += " / " + parts[1] + " bit"
	}
	switch parts[2] {
	case "1":
		label += " / mono"
	case "2":
		label += " / stereo"
	default:
		label += " / " + parts[2] + " ch"
	}
	return label
}

// refresh syncs after a successful command.
func (c *Channel) refresh(op string, err error) error {
	if err != nil {
		return fmt.Errorf("mpd %s: %w", op, err)
	}
	return c.Sync()
}

func (c *Channel) PlayOrPause() error {
	if c.PlayerStateFlow.Value().Kind == channel.StatePlaying {
		return c.Pause()
	}
	return c.Play()
}

func (c *Channel) Play() error {
	return c.refresh("play", c.daemon.Play(-1))
}

func (c *Channel) Pause() error {
	return c.refresh("pause", c.daemon.Pause(true))
}

func (c *Channel) SeekTo(positionS int64) error {
	return c.refresh("seek", c.daemon.Seek(int(max(positionS, 0))))
}

func (c *Channel) SeekBy(offsetS int64) error {
	return c.SeekTo(c.ProgressFlow.Value().ProgressMs/1000 + offsetS)
}

// SeekToLive restarts a live stream at the live edge.
func (c *Channel) SeekToLive() error {
	if c.StreamTypeFlow.Value() != channel.Live {
		return ErrNotLive
	}
	if err := c.daemon.Stop(); err != nil {
		return fmt.Errorf("mpd stop: %w", err)
	}
	return c.refresh("play", c.daemon.Play(0))
}

// Prepare replaces the queue with the asset's stream.
func (c *Channel) Prepare(asset channel.Asset) error {
	if strings.TrimSpace(asset.StreamURL) == "" {
		return ErrMissingStreamURL
	}
	if err := c.daemon.Clear(); err != nil {
		return fmt.Errorf("mpd clear: %w", err)
	}
	if err := c.daemon.Add(asset.StreamURL); err != nil {
		return fmt.Errorf("mpd add %s: %w", asset.StreamURL, err)
	}
	if err := c.Sync(); err != nil {
		return err
	}

	log.Info().Str("channel", c.id).Str("stream_url", asset.StreamURL).Msg("Asset queued on MPD")
	c.ReadyFlow.Set(true)
	return nil
}

// Reset stops playback and empties the queue.
func (c *Channel) Reset() {
	if err := c.daemon.Stop(); err != nil {
		log.Warn().Err(err).Str("channel", c.id).Msg("MPD stop failed")
	}
	if err := c.daemon.Clear(); err != nil {
		log.Warn().Err(err).Str("channel", c.id).Msg("MPD clear failed")
	}

	c.mu.Lock()
	c.audioFormat = ""
	c.mu.Unlock()
	c.ResetFlows()
}

func (c *Channel) Destroy() {
	c.Reset()
	if err := c.daemon.Close(); err != nil {
		log.Warn().Err(err).Str("channel", c.id).Msg("MPD close failed")
	}
}

func (c *Channel) UpdatePlayerState(state channel.PlayerState) {
	c.PlayerStateFlow.Set(state)
}

// SelectTrack accepts only the current audio output.
func (c *Channel) SelectTrack(t track.Track) error {
	if t.Kind() == track.KindAudio && t.SettingOption().ID == "0" {
		return nil
	}
	return fmt.Errorf("%w: %s %q", ErrTrackNotSelectable, t.Kind(), t.SettingOption().ID)
}
