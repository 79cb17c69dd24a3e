// Package track models the media tracks a channel reports and the settings
// menu built from them.
package track

// Kind is the category of a track.
type Kind string

// Track kinds.
const (
	KindVideo    Kind = "VIDEO"
	KindAudio    Kind = "AUDIO"
	KindSubtitle Kind = "SUBTITLE"
)

// Option is the part of a track shown as a settings-menu entry.
type Option struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IsSelected  bool   `json:"isSelected"`
}

// Track is implemented by VideoTrack, AudioTrack and SubtitleTrack.
type Track interface {
	Kind() Kind
	SettingOption() Option
	WithSelected(selected bool) Track
}

// VideoTrack is one rendition of the video stream.
type VideoTrack struct {
	Option
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Bitrate     int     `json:"bitrate"`
	FrameRate   float32 `json:"frameRate"`
	Codecs      string  `json:"codecs"`
	IsSupported bool    `json:"isSupported"`
}

func (VideoTrack) Kind() Kind { return KindVideo }

func (t VideoTrack) SettingOption() Option { return t.Option }

func (t VideoTrack) WithSelected(selected bool) Track {
	t.IsSelected = selected
	return t
}

// AudioTrack is an alternate audio rendition.
type AudioTrack struct {
	Option
	Language  string `json:"language"`
	IsDefault bool   `json:"isDefault"`
}

func (AudioTrack) Kind() Kind { return KindAudio }

func (t AudioTrack) SettingOption() Option { return t.Option }

func (t AudioTrack) WithSelected(selected bool) Track {
	t.IsSelected = selected
	return t
}

// SubtitleTrack is a text track.
type SubtitleTrack struct {
	Option
	Language  string `json:"language"`
	IsDefault bool   `json:"isDefault"`
}

func (SubtitleTrack) Kind() Kind { return KindSubtitle }

func (t SubtitleTrack) SettingOption() Option { return t.Option }

func (t SubtitleTrack) WithSelected(selected bool) Track {
	t.IsSelected = selected
	return t
}

// State is the set of tracks a channel currently offers.
type State struct {
	Video    []VideoTrack    `json:"videoTracks"`
	Audio    []AudioTrack    `json:"audioTracks"`
	Subtitle []SubtitleTrack `json:"subtitleTracks"`
}

// SettingType is one category of the settings menu.
type SettingType struct {
	Name   string  `json:"name"`
	Type   Kind    `json:"type"`
	Values []Track `json:"value"`
}
