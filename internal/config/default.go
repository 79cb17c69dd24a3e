package config

import (
	"strings"
	"time"

	"github.com/edumarques81/avplayer-sdk/internal/domain/controls"
	"github.com/edumarques81/avplayer-sdk/internal/infra/calm"
	"github.com/edumarques81/avplayer-sdk/internal/infra/simchannel"
)

// Field is one configuration key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env returns the environment variable that overrides the field.
func (f Field) Env() string {
	return strings.ToUpper(Name + "_" + EnvKeyReplacer.Replace(f.Key))
}

func playbackDefaults() []Field {
	p := controls.DefaultPlaybackConfiguration()
	return []Field{
		{"playback.controls_layer", p.ControlsLayer, "Show the controls layer"},
		{"playback.progress_bar", p.ProgressBar, "Show the progress bar"},
		{"playback.center_play_button", p.CenterPlayButton, "Show the center play button"},
		{"playback.title_text", p.TitleText, "Show the title"},
		{"playback.picture_in_picture", p.PictureInPicture, "Allow picture in picture"},
		{"playback.settings_menu", p.SettingsMenu, "Show the settings menu"},
		{"playback.fullscreen_toggle", p.FullscreenToggle, "Show the fullscreen toggle"},
		{"playback.replay_button", p.ReplayButton, "Show the replay button"},
		{"playback.remote_playback", p.RemotePlayback, "Allow remote playback"},
	}
}

// Default lists every key with its default.
var Default = append([]Field{
	{"server.port", 3001, "HTTP server port"},
	{"server.debounce_window", 100 * time.Millisecond, "Control state broadcast window"},
	{"server.load_timeout", 30 * time.Second, "Asset resolution timeout"},

	{"log.level", "info", "Minimum log level: verbose, debug, info, warning, error, none"},
	{"log.json", false, "Log raw JSON instead of console output"},

	{"license.remote", false, "Validate with the licensing service instead of the allow list"},
	{"license.key", "", "License key"},
	{"license.app_key", "", "Application key for remote validation"},
	{"license.client_id", -1, "Client id for remote validation"},
	{"license.base_url", calm.DefaultBaseURL, "Licensing service base URL"},

	{"identity.platform", "ios", "Host platform: ios or android"},
	{"identity.bundle_id", "ag.sportradar.SRAVPlayerDemo", "iOS bundle id"},
	{"identity.application_id", "", "Android application id"},
	{"identity.fingerprint", "", "Android signing certificate SHA-256 fingerprint"},
	{"identity.locale", "en_US", "Host locale"},

	{"mpd.enabled", false, "Add an MPD channel"},
	{"mpd.host", "localhost", "MPD host"},
	{"mpd.port", 6600, "MPD port"},
	{"mpd.password", "", "MPD password"},
	{"mpd.poll", time.Second, "MPD status poll interval"},

	{"sim.tick", simchannel.DefaultTick, "Simulated player clock resolution"},
	{"sim.duration_ms", simchannel.DefaultDurationMs, "Simulated on-demand stream length"},

	{"player.hide_delay", 5 * time.Second, "Controls auto-hide delay"},

	{"analytics.db", "", "SQLite file for analytics events; empty logs them instead"},
}, playbackDefaults()...)
