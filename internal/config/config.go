// Package config loads the reference binary's settings with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/edumarques81/avplayer-sdk/internal/domain/controls"
	"github.com/edumarques81/avplayer-sdk/internal/domain/license"
	"github.com/edumarques81/avplayer-sdk/internal/infra/logging"
)

// Name is the config file base name and the environment prefix.
const Name = "avplayer"

// EnvKeyReplacer maps config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

type Server struct {
	Port           int           `mapstructure:"port"`
	DebounceWindow time.Duration `mapstructure:"debounce_window"`
	LoadTimeout    time.Duration `mapstructure:"load_timeout"`
}

type Log struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type License struct {
	Remote   bool   `mapstructure:"remote"`
	Key      string `mapstructure:"key"`
	AppKey   string `mapstructure:"app_key"`
	ClientID int    `mapstructure:"client_id"`
	BaseURL  string `mapstructure:"base_url"`
}

type Identity struct {
	Platform      string `mapstructure:"platform"`
	BundleID      string `mapstructure:"bundle_id"`
	ApplicationID string `mapstructure:"application_id"`
	Fingerprint   string `mapstructure:"fingerprint"`
	Locale        string `mapstructure:"locale"`
}

type MPD struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	Poll     time.Duration `mapstructure:"poll"`
}

type Sim struct {
	Tick       time.Duration `mapstructure:"tick"`
	DurationMs int64         `mapstructure:"duration_ms"`
}

type Analytics struct {
	DB string `mapstructure:"db"`
}

type Player struct {
	HideDelay time.Duration `mapstructure:"hide_delay"`
}

// Settings is the full configuration tree.
type Settings struct {
	Server    Server                         `mapstructure:"server"`
	Log       Log                            `mapstructure:"log"`
	License   License                        `mapstructure:"license"`
	Identity  Identity                       `mapstructure:"identity"`
	MPD       MPD                            `mapstructure:"mpd"`
	Sim       Sim                            `mapstructure:"sim"`
	Player    Player                         `mapstructure:"player"`
	Analytics Analytics                      `mapstructure:"analytics"`
	Playback  controls.PlaybackConfiguration `mapstructure:"playback"`
}

// Paths are searched in order for avplayer.toml.
func Paths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, Name))
	}
	return append(paths, filepath.Join("/etc", Name))
}

// Setup registers defaults and environment bindings and reads the config
// file from fs. A missing file is not an error.
func Setup(fs afero.Fs, paths ...string) error {
	viper.SetConfigName(Name)
	viper.SetConfigType("toml")
	viper.SetFs(fs)
	for _, p := range paths {
		viper.AddConfigPath(p)
	}

	viper.SetEnvPrefix(Name)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.AutomaticEnv()

	for _, field := range Default {
		viper.SetDefault(field.Key, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes the current viper state.
func Load() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// Client builds the SDK client configuration.
func (s Settings) Client() (license.ClientConfig, error) {
	level, err := logging.ParseLevel(s.Log.Level)
	if err != nil {
		return license.ClientConfig{}, err
	}

	client := license.DefaultClientConfig()
	client.LicenseKey = s.License.Key
	client.AppKey = s.License.AppKey
	client.ClientID = s.License.ClientID
	client.Logging = logging.Config{MinLevel: level, JSON: s.Log.JSON, Output: os.Stderr}
	return client, nil
}

// AppIdentity builds the host identity used for licensing.
func (s Settings) AppIdentity() license.Identity {
	return license.Identity{
		Platform:               license.Platform(strings.ToLower(s.Identity.Platform)),
		BundleID:               s.Identity.BundleID,
		ApplicationID:          s.Identity.ApplicationID,
		CertificateFingerprint: s.Identity.Fingerprint,
		Locale:                 s.Identity.Locale,
	}
}
