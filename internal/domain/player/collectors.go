package player

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/avplayer-sdk/internal/domain/analytics"
	"github.com/edumarques81/avplayer-sdk/internal/domain/channel"
	"github.com/edumarques81/avplayer-sdk/internal/domain/controls"
	"github.com/edumarques81/avplayer-sdk/internal/domain/sdkerr"
	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
	"github.com/edumarques81/avplayer-sdk/internal/infra/stateflow"
)

// PlaybackErrorTitle is the title of errors reported by a channel's player.
const PlaybackErrorTitle = "Playback Error"

// PlaybackErrorUserMessage is shown for channel errors. The channel's own
// error text is kept as the diagnostic message.
const PlaybackErrorUserMessage = "An unknown error occurred during playback."

func (c *Coordinator) startCollectors() {
	c.mu.Lock()
	if c.collecting {
		c.mu.Unlock()
		return
	}
	c.collecting = true
	c.mu.Unlock()

	c.wg.Add(4)
	go follow(c, channel.Channel.Ready, c.onReady)
	go follow(c, channel.Channel.PlayerState, c.onPlayerState)
	go follow(c, channel.Channel.Tracks, c.onTracks)
	go follow(c, channel.Channel.Progress, c.onProgress)
}

// follow feeds handle with the values of one flow of the active channel.
// When the active channel changes the previous subscription is cancelled
// first, and values still buffered from a channel that is no longer active
// are dropped.
func follow[T any](c *Coordinator, pick func(channel.Channel) stateflow.Reader[T], handle func(T)) {
	defer c.wg.Done()

	var (
		current channel.Channel
		values  <-chan T
		stop    context.CancelFunc = func() {}
	)
	defer func() { stop() }()

	switchTo := func(ch channel.Channel) {
		stop()
		current, values, stop = ch, nil, func() {}
		if ch == nil {
			return
		}
		var inner context.Context
		inner, stop = context.WithCancel(c.ctx)
		values = pick(ch).Subscribe(inner)
	}

	actives := c.active.Subscribe(c.ctx)
	for {
		// A pending switch wins over pending values.
		select {
		case ch, ok := <-actives:
			if !ok {
				return
			}
			switchTo(ch)
			continue
		default:
		}

		select {
		case ch, ok := <-actives:
			if !ok {
				return
			}
			switchTo(ch)
		case v, ok := <-values:
			if !ok {
				values = nil
				continue
			}
			if c.active.Value() != current {
				continue
			}
			handle(v)
		}
	}
}

func (c *Coordinator) onReady(ready bool) {
	if !ready {
		return
	}
	log.Debug().Msg("Active channel ready")
	c.trackEvent(analytics.LoadingCompleted(""))
	c.loading.Set(false)
}

func (c *Coordinator) onPlayerState(state channel.PlayerState) {
	log.Debug().Stringer("state", state).Msg("Player state changed")

	switch state.Kind {
	case channel.StateBuffering:
		c.trackEvent(analytics.BufferingStarted)
	case channel.StateEnded, channel.StateIdle:
		c.setPlayPause(controls.ButtonDisabled)
	case channel.StateError:
		message := "N/A"
		trackMessage := "Unknown error"
		if state.Err != nil {
			message = state.Err.Error()
			trackMessage = message
		}
		c.trackError(analytics.PlaybackError{Code: -1, Message: trackMessage, Cause: state.Err})
		c.errorState.Set(sdkerr.Custom(-1, -1, PlaybackErrorTitle, PlaybackErrorUserMessage, message))
	case channel.StatePaused:
		c.trackEvent(analytics.Paused)
		c.setPlayPause(controls.ButtonPaused)
	case channel.StatePlaying:
		c.trackEvent(analytics.BufferingCompleted(0))
		c.setPlayPause(controls.ButtonPlaying)
	}
}

func (c *Coordinator) setPlayPause(b controls.PlayPause) {
	c.controlState.Update(func(s controls.UIState) controls.UIState {
		s.PlayPause = b
		return s
	})
}

// onTracks rebuilds the settings menu only when the number of categories
// changed, so that repeated reports do not reset the user's selection.
func (c *Coordinator) onTracks(tracks track.State) {
	normalized := tracks.Normalize()
	categories := normalized.NonEmptyCategories()

	c.controlState.Update(func(s controls.UIState) controls.UIState {
		items := s.SettingsButton.Items
		if len(items) == 0 || len(items) != categories {
			s.SettingsButton.Items = track.BuildSettings(normalized)
		}
		return s
	})
}

func (c *Coordinator) onProgress(p channel.Progress) {
	c.controlState.Update(func(s controls.UIState) controls.UIState {
		s.Progress.DurationMs = p.DurationMs
		s.Progress.PositionMs = p.ProgressMs
		s.Progress.BufferedMs = p.BufferProgressMs
		s.Progress.UserSeek = s.Progress.UserSeekPosition()
		return s
	})
}
