// Package avplayer is the entry point for hosts embedding the player: it
// configures logging, validates the license and builds players.
package avplayer

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/avplayer-sdk/internal/domain/analytics"
	"github.com/edumarques81/avplayer-sdk/internal/domain/channel"
	"github.com/edumarques81/avplayer-sdk/internal/domain/controls"
	"github.com/edumarques81/avplayer-sdk/internal/domain/license"
	"github.com/edumarques81/avplayer-sdk/internal/domain/player"
	"github.com/edumarques81/avplayer-sdk/internal/domain/provider"
	"github.com/edumarques81/avplayer-sdk/internal/domain/sdkerr"
	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
	"github.com/edumarques81/avplayer-sdk/internal/infra/calm"
	"github.com/edumarques81/avplayer-sdk/internal/infra/logging"
	"github.com/edumarques81/avplayer-sdk/internal/version"
)

type (
	ClientConfig          = license.ClientConfig
	Identity              = license.Identity
	Configuration         = license.Configuration
	AllowList             = license.AllowList
	Player                = player.Coordinator
	Channel               = channel.Channel
	Asset                 = channel.Asset
	Provider              = provider.Provider
	ProviderInput         = provider.Input
	Error                 = sdkerr.Error
	UIState               = controls.UIState
	PlaybackConfiguration = controls.PlaybackConfiguration
	Track                 = track.Track
	AnalyticsProvider     = analytics.Provider
	LogLevel              = logging.Level
)

// Platforms.
const (
	Android = license.Android
	IOS     = license.IOS
)

type options struct {
	allow  *license.AllowList
	remote bool
	calm   []calm.Option
}

// Option configures Initialize.
type Option func(*options)

// WithAllowList replaces the built-in allow list.
func WithAllowList(a AllowList) Option {
	return func(o *options) {
		o.allow = &a
	}
}

// WithRemoteLicensing validates with the licensing service. ClientConfig
// must carry an AppKey and a positive ClientID.
func WithRemoteLicensing(opts ...calm.Option) Option {
	return func(o *options) {
		o.remote = true
		o.calm = append(o.calm, opts...)
	}
}

// Initialize sets up logging, builds the license configuration and validates
// it. The configuration is returned even when validation fails so hosts can
// observe its state.
func Initialize(ctx context.Context, client ClientConfig, identity Identity, opts ...Option) (*Configuration, error) {
	logging.Setup(client.Logging)

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var licenseOpts []license.Option
	if o.allow != nil {
		licenseOpts = append(licenseOpts, license.WithAllowList(*o.allow))
	}
	if o.remote {
		calmOpts := append([]calm.Option{calm.WithAppIdentifierParam(calm.ParamFor(identity.Platform))}, o.calm...)
		licenseOpts = append(licenseOpts, license.WithRemoteValidator(calm.NewValidator(calm.NewClient(calmOpts...))))
	}

	log.Info().Str("sdk", version.GetInfo().String()).Str("platform", string(identity.Platform)).Msg("Initializing")

	cfg := license.New(client, identity, licenseOpts...)
	_, err := cfg.Validate(ctx)
	return cfg, err
}

// NewPlayer builds a player bound to cfg. Channels are attached with
// InitializeChannels.
func NewPlayer(cfg *Configuration) *Player {
	return player.New(cfg)
}

// DefaultClientConfig returns error-only logging and no analytics.
func DefaultClientConfig() ClientConfig {
	return license.DefaultClientConfig()
}
