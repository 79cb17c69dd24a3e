package license

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/edumarques81/avplayer-sdk/internal/domain/analytics"
	"github.com/edumarques81/avplayer-sdk/internal/infra/stateflow"
)

// Validity is the outcome of license validation.
type Validity int

const (
	Unknown Validity = iota
	Valid
	Invalid
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// ErrInvalidClientConfig is returned when remote validation is requested
// without an app key or a positive client id.
var ErrInvalidClientConfig = errors.New("license: app key and positive client id required")

// AllowList is the local list of accepted application identities.
type AllowList struct {
	BundleIDs    []string
	Fingerprints []string
}

// DefaultAllowList accepts the demo applications.
var DefaultAllowList = AllowList{
	BundleIDs:    []string{"ag.sportradar.SRAVPlayerDemo"},
	Fingerprints: []string{"67:CD:BC:64:EE:BF:08:BC:0E:3F:C3:B9:E8:0D:9E:65:8A:01:B8:A9:5F:6A:33:65:6D:16:19:F3:98:BC:04:3D"},
}

// Allows reports whether the identity is on the list. Values must match
// exactly.
func (a AllowList) Allows(id Identity) bool {
	switch id.Platform {
	case Android:
		return id.CertificateFingerprint != "" && lo.Contains(a.Fingerprints, id.CertificateFingerprint)
	case IOS:
		return id.BundleID != "" && lo.Contains(a.BundleIDs, id.BundleID)
	}
	return false
}

// RemoteValidator checks a license against the licensing service.
type RemoteValidator interface {
	Validate(ctx context.Context, clientID int, identity Identity, appKey string) (bool, error)
}

// Mode selects how Validate decides.
type Mode string

const (
	ModeAllowList Mode = "allowlist"
	ModeRemote    Mode = "remote"
)

// Option configures a Configuration.
type Option func(*Configuration)

// WithAllowList replaces DefaultAllowList.
func WithAllowList(a AllowList) Option {
	return func(c *Configuration) {
		c.allow = a
	}
}

// WithRemoteValidator switches validation to the licensing service.
func WithRemoteValidator(v RemoteValidator) Option {
	return func(c *Configuration) {
		c.remote = v
		c.mode = ModeRemote
	}
}

// Configuration is the validated SDK configuration shared by players.
// It is read-only after New except for the validity flag, which is written
// once by Validate.
type Configuration struct {
	client   ClientConfig
	identity Identity
	mode     Mode
	allow    AllowList
	remote   RemoteValidator

	validity *stateflow.Flow[Validity]
	once     sync.Once
	err      error
}

// New builds a configuration. The identity is normalized for its platform.
func New(client ClientConfig, identity Identity, opts ...Option) *Configuration {
	c := &Configuration{
		client:   client,
		identity: identity.Normalized(),
		mode:     ModeAllowList,
		allow:    DefaultAllowList,
		validity: stateflow.New(Unknown, stateflow.Distinct[Validity]()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate runs license validation once. Later calls return the first result.
// A failing remote call records Invalid and is not retried.
func (c *Configuration) Validate(ctx context.Context) (bool, error) {
	c.once.Do(func() {
		valid, err := c.validate(ctx)
		c.err = err
		if valid {
			c.validity.Set(Valid)
			log.Info().Str("mode", string(c.mode)).Msg("License validated")
			return
		}
		c.validity.Set(Invalid)
		if err != nil {
			log.Error().Err(err).Str("mode", string(c.mode)).Msg("License validation failed")
		} else {
			log.Warn().Str("mode", string(c.mode)).Str("app_identifier", c.identity.AppIdentifier()).Msg("License rejected")
		}
	})
	return c.validity.Value() == Valid, c.err
}

func (c *Configuration) validate(ctx context.Context) (bool, error) {
	if c.mode != ModeRemote {
		return c.allow.Allows(c.identity), nil
	}
	if strings.TrimSpace(c.client.AppKey) == "" || c.client.ClientID <= 0 {
		return false, ErrInvalidClientConfig
	}

	log.Info().Int("client_id", c.client.ClientID).Str("app_identifier", c.identity.AppIdentifier()).
		Msg("Validating license with licensing service")
	valid, err := c.remote.Validate(ctx, c.client.ClientID, c.identity, c.client.AppKey)
	if err != nil {
		return false, fmt.Errorf("remote validation: %w", err)
	}
	return valid, nil
}

// Validity exposes the tri-state validation outcome.
func (c *Configuration) Validity() stateflow.Reader[Validity] {
	return c.validity
}

// IsValid reports whether validation succeeded.
func (c *Configuration) IsValid() bool {
	return c.validity.Value() == Valid
}

func (c *Configuration) Client() ClientConfig { return c.client }
func (c *Configuration) Identity() Identity   { return c.identity }
func (c *Configuration) Mode() Mode           { return c.mode }

// Analytics returns the host analytics provider, or analytics.Nop.
func (c *Configuration) Analytics() analytics.Provider {
	if c.client.Analytics == nil {
		return analytics.Nop{}
	}
	return c.client.Analytics
}
