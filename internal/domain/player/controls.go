package player

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/mo"

	"github.com/edumarques81/avplayer-sdk/internal/domain/analytics"
	"github.com/edumarques81/avplayer-sdk/internal/domain/channel"
	"github.com/edumarques81/avplayer-sdk/internal/domain/controls"
	"github.com/edumarques81/avplayer-sdk/internal/domain/sdkerr"
	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
)

// target returns the channel control operations are routed to.
func (c *Coordinator) target() (channel.Channel, error) {
	if !c.config.IsValid() {
		return nil, sdkerr.Licence
	}
	ch := c.active.Value()
	if ch == nil {
		return nil, ErrNoActiveChannel
	}
	return ch, nil
}

// control runs op on the active channel after tracking action.
func (c *Coordinator) control(name string, action analytics.UserAction, op func(channel.Channel) error) error {
	ch, err := c.target()
	if err != nil {
		log.Warn().Err(err).Str("op", name).Msg("Control rejected")
		return err
	}

	log.Info().Str("op", name).Str("channel", ch.ID()).Msg("Control")
	c.trackAction(action)
	if err := op(ch); err != nil {
		return fmt.Errorf("%s on %s: %w", name, ch.ID(), err)
	}
	return nil
}

// PlayOrPause toggles playback on the active channel.
func (c *Coordinator) PlayOrPause() error {
	return c.control("PlayOrPause", analytics.Stop, channel.Channel.PlayOrPause)
}

// Play resumes the active channel.
func (c *Coordinator) Play() error {
	return c.control("Play", analytics.Play, channel.Channel.Play)
}

// Pause pauses the active channel.
func (c *Coordinator) Pause() error {
	return c.control("Pause", analytics.Pause, channel.Channel.Pause)
}

// SeekTo seeks to an absolute position in seconds.
func (c *Coordinator) SeekTo(positionS int64) error {
	err := c.control("SeekTo", analytics.Seek(positionS), func(ch channel.Channel) error {
		return ch.SeekTo(positionS)
	})
	if err == nil {
		c.clearUserSeek()
	}
	return err
}

// SeekBy seeks relative to the current position, in seconds.
func (c *Coordinator) SeekBy(offsetS int64) error {
	err := c.control("SeekBy", analytics.Seek(offsetS), func(ch channel.Channel) error {
		return ch.SeekBy(offsetS)
	})
	if err == nil {
		c.clearUserSeek()
	}
	return err
}

// SeekToLive jumps to the live edge of a live stream.
func (c *Coordinator) SeekToLive() error {
	err := c.control("SeekToLive", analytics.SwitchToLive, channel.Channel.SeekToLive)
	if err == nil {
		c.clearUserSeek()
	}
	return err
}

func (c *Coordinator) clearUserSeek() {
	c.UpdateUserSeekPosition(mo.None[float64]())
}

// UpdateUserSeekPosition sets the seek bar echo while the user drags it.
func (c *Coordinator) UpdateUserSeekPosition(pos mo.Option[float64]) {
	c.controlState.Update(func(s controls.UIState) controls.UIState {
		s.Progress.UserSeek = pos
		return s
	})
}

// ToggleFullscreen flips the fullscreen flag and tracks the transition.
func (c *Coordinator) ToggleFullscreen() {
	next := c.controlState.Update(func(s controls.UIState) controls.UIState {
		s.Fullscreen.IsFullscreen = !s.Fullscreen.IsFullscreen
		return s
	})
	if next.Fullscreen.IsFullscreen {
		c.trackAction(analytics.EnterFullscreen)
	} else {
		c.trackAction(analytics.ExitFullscreen)
	}
}

// SetFullscreen sets the fullscreen flag without tracking.
func (c *Coordinator) SetFullscreen(fullscreen bool) {
	c.controlState.Update(func(s controls.UIState) controls.UIState {
		s.Fullscreen.IsFullscreen = fullscreen
		return s
	})
}

// SetMediaInfo replaces the title, subtitle and artwork shown by the controls.
func (c *Coordinator) SetMediaInfo(info controls.MediaInfo) {
	c.controlState.Update(func(s controls.UIState) controls.UIState {
		s.MediaInfo = info
		return s
	})
}

// ToggleBottomSheet shows or hides the settings sheet for one category.
func (c *Coordinator) ToggleBottomSheet(visible bool, settings mo.Option[track.SettingType]) {
	c.controlState.Update(func(s controls.UIState) controls.UIState {
		s.BottomSheet = controls.BottomSheet{IsVisible: visible, Settings: settings}
		return s
	})
}

// SelectTrack marks t as selected in its settings category, closes the bottom
// sheet and asks the active channel to switch.
func (c *Coordinator) SelectTrack(t track.Track) error {
	ch, err := c.target()
	if err != nil {
		return err
	}

	log.Info().
		Str("kind", string(t.Kind())).
		Str("id", t.SettingOption().ID).
		Msg("Selecting track")

	c.controlState.Update(func(s controls.UIState) controls.UIState {
		s.SettingsButton.Items = track.Select(s.SettingsButton.Items, t)
		s.BottomSheet = controls.BottomSheet{Settings: mo.None[track.SettingType]()}
		return s
	})
	return ch.SelectTrack(t)
}

// SelectTrackByID selects the settings entry with the given kind and id.
func (c *Coordinator) SelectTrackByID(kind track.Kind, id string) error {
	t, ok := track.Find(c.controlState.Value().SettingsButton.Items, kind, id)
	if !ok {
		return fmt.Errorf("player: no %s track with id %q", kind, id)
	}
	return c.SelectTrack(t)
}
