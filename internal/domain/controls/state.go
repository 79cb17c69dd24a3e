// Package controls holds the aggregate UI state that player controls render.
package controls

import (
	"github.com/samber/mo"

	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
)

// PlayPause is the state of the play/pause button.
type PlayPause string

// Play/pause button states.
const (
	ButtonPlaying  PlayPause = "Playing"
	ButtonPaused   PlayPause = "Paused"
	ButtonDisabled PlayPause = "Disabled"
)

// DefaultSkipDurationMs is the skip forward/backward step.
const DefaultSkipDurationMs int64 = 15000

type Visibility struct {
	IsHidden bool `json:"isHidden"`
	IsLocked bool `json:"isLocked"`
}

type MediaInfo struct {
	Title    mo.Option[string] `json:"title"`
	Subtitle mo.Option[string] `json:"subtitle"`
	ImageURL mo.Option[string] `json:"imageUrl"`
}

type Fullscreen struct {
	Enabled      bool `json:"enabled"`
	IsFullscreen bool `json:"isFullscreen"`
}

type Share struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
}

type AutoPlay struct {
	Enabled    bool `json:"enabled"`
	IsAutoPlay bool `json:"isAutoPlay"`
}

type Skip struct {
	Enabled    bool  `json:"enabled"`
	DurationMs int64 `json:"skipDuration"`
}

type BottomSheet struct {
	IsVisible bool                         `json:"isVisible"`
	Settings  mo.Option[track.SettingType] `json:"settingsType"`
}

type Settings struct {
	Items []track.SettingType `json:"items"`
}

// UIState is the single source of truth for every control element.
// It is treated as a value: updates build a modified copy.
type UIState struct {
	Visibility     Visibility       `json:"controlVisibility"`
	MediaInfo      MediaInfo        `json:"mediaInfo"`
	Fullscreen     Fullscreen       `json:"fullscreenButton"`
	Share          Share            `json:"shareButtonState"`
	AutoPlay       AutoPlay         `json:"autoPlayToggle"`
	SkipForward    Skip             `json:"skipButton"`
	SkipBackward   Skip             `json:"skipBackwardButtonState"`
	PlayPause      PlayPause        `json:"playPauseButton"`
	Progress       ProgressScrubber `json:"progressScrubberState"`
	BottomSheet    BottomSheet      `json:"bottomSheetState"`
	SettingsButton Settings         `json:"settingsButtonState"`
}

// NewUIState returns the initial state: controls hidden, play/pause disabled,
// no media info and an empty settings menu.
func NewUIState() UIState {
	return UIState{
		Visibility: Visibility{IsHidden: true},
		MediaInfo: MediaInfo{
			Title:    mo.None[string](),
			Subtitle: mo.None[string](),
			ImageURL: mo.None[string](),
		},
		SkipForward:  Skip{DurationMs: DefaultSkipDurationMs},
		SkipBackward: Skip{DurationMs: DefaultSkipDurationMs},
		PlayPause:    ButtonDisabled,
		Progress:     ProgressScrubber{UserSeek: mo.None[float64]()},
		BottomSheet:  BottomSheet{Settings: mo.None[track.SettingType]()},
	}
}

// PlaybackConfiguration enables or disables individual control elements.
type PlaybackConfiguration struct {
	ControlsLayer    bool `json:"controlsLayer" mapstructure:"controls_layer"`
	ProgressBar      bool `json:"progressBar" mapstructure:"progress_bar"`
	CenterPlayButton bool `json:"centerPlayButton" mapstructure:"center_play_button"`
	TitleText        bool `json:"titleText" mapstructure:"title_text"`
	PictureInPicture bool `json:"pictureInPicture" mapstructure:"picture_in_picture"`
	SettingsMenu     bool `json:"settingsMenu" mapstructure:"settings_menu"`
	FullscreenToggle bool `json:"fullscreenToggle" mapstructure:"fullscreen_toggle"`
	ReplayButton     bool `json:"replayButton" mapstructure:"replay_button"`
	RemotePlayback   bool `json:"remotePlayback" mapstructure:"remote_playback"`
}

// DefaultPlaybackConfiguration enables every element.
func DefaultPlaybackConfiguration() PlaybackConfiguration {
	return PlaybackConfiguration{
		ControlsLayer:    true,
		ProgressBar:      true,
		CenterPlayButton: true,
		TitleText:        true,
		PictureInPicture: true,
		SettingsMenu:     true,
		FullscreenToggle: true,
		ReplayButton:     true,
		RemotePlayback:   true,
	}
}
