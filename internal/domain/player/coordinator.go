// Package player coordinates playback channels into a single control UI state.
package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/edumarques81/avplayer-sdk/internal/domain/analytics"
	"github.com/edumarques81/avplayer-sdk/internal/domain/channel"
	"github.com/edumarques81/avplayer-sdk/internal/domain/controls"
	"github.com/edumarques81/avplayer-sdk/internal/domain/license"
	"github.com/edumarques81/avplayer-sdk/internal/domain/provider"
	"github.com/edumarques81/avplayer-sdk/internal/domain/sdkerr"
	"github.com/edumarques81/avplayer-sdk/internal/infra/stateflow"
)

// Errors returned by the coordinator in addition to *sdkerr.Error values.
var (
	ErrNotInitialized  = errors.New("player: channels not initialized")
	ErrNoActiveChannel = errors.New("player: no active channel")
)

// Coordinator is the single writer of the player's UI state. It follows the
// active channel's state flows and forwards control operations to it.
//
// Channel subscriptions start only once the license is valid. Control
// operations issued before that are rejected with sdkerr.Licence.
type Coordinator struct {
	config *license.Configuration

	mu             sync.Mutex
	provider       provider.Provider
	local          channel.Channel
	extra          []channel.Channel
	lastInput      mo.Option[provider.Input]
	playbackConfig controls.PlaybackConfiguration
	sessionID      string
	initialized    bool
	collecting     bool

	controlState *stateflow.Flow[controls.UIState]
	errorState   *stateflow.Flow[*sdkerr.Error]
	loading      *stateflow.Flow[bool]
	active       *stateflow.Flow[channel.Channel]

	hide *hideTimer

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	destroyed sync.Once
}

// New creates a coordinator bound to a license configuration.
func New(config *license.Configuration) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		config:         config,
		playbackConfig: controls.DefaultPlaybackConfiguration(),
		controlState:   stateflow.New(controls.NewUIState()),
		errorState:     stateflow.New[*sdkerr.Error](nil),
		loading:        stateflow.New(false, stateflow.Distinct[bool]()),
		active:         stateflow.New[channel.Channel](nil),
		ctx:            ctx,
		cancel:         cancel,
	}
	c.hide = newHideTimer(DefaultHideDelay, c.autoHide)
	return c
}

// InitializeChannels sets the asset provider and channels, makes the local
// channel active and arms the license gate. It may only be called once.
func (c *Coordinator) InitializeChannels(p provider.Provider, local channel.Channel, extra ...channel.Channel) error {
	if local == nil {
		return fmt.Errorf("%w: local channel is required", ErrNotInitialized)
	}

	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return errors.New("player: channels already initialized")
	}
	c.provider = p
	c.local = local
	c.extra = extra
	c.initialized = true
	c.mu.Unlock()

	log.Info().
		Str("local", local.ID()).
		Int("additional", len(extra)).
		Msg("Initializing channels and asset provider")

	c.active.Set(local)

	c.wg.Add(1)
	go c.gate()
	return nil
}

// gate waits for the license outcome. Valid starts the channel collectors,
// Invalid publishes the licence error.
func (c *Coordinator) gate() {
	defer c.wg.Done()

	for v := range c.config.Validity().Subscribe(c.ctx) {
		switch v {
		case license.Valid:
			log.Info().Msg("License validated, starting channel state collectors")
			c.startCollectors()
			return
		case license.Invalid:
			log.Error().Msg("License not validated")
			c.errorState.Set(sdkerr.Licence)
			return
		}
	}
}

// ControlState is the aggregate UI state.
func (c *Coordinator) ControlState() stateflow.Reader[controls.UIState] { return c.controlState }

// ErrorState is the current user-facing error, nil when there is none.
func (c *Coordinator) ErrorState() stateflow.Reader[*sdkerr.Error] { return c.errorState }

// Loading reports whether an asset is being loaded.
func (c *Coordinator) Loading() stateflow.Reader[bool] { return c.loading }

// ActiveChannel is the channel controls are routed to.
func (c *Coordinator) ActiveChannel() stateflow.Reader[channel.Channel] { return c.active }

// PlaybackConfiguration returns the configuration of the last load.
func (c *Coordinator) PlaybackConfiguration() controls.PlaybackConfiguration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playbackConfig
}

// SessionID identifies the current load. It is empty before the first load.
func (c *Coordinator) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Channels returns the local channel followed by the additional channels.
func (c *Coordinator) Channels() []channel.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.local == nil {
		return nil
	}
	return append([]channel.Channel{c.local}, c.extra...)
}

// LoadAsset resets the player and loads input on the local channel.
// Provider and prepare failures publish sdkerr.Asset and clear loading.
func (c *Coordinator) LoadAsset(ctx context.Context, input provider.Input, cfg controls.PlaybackConfiguration) error {
	c.Reset()

	c.mu.Lock()
	c.playbackConfig = cfg
	prov, local := c.provider, c.local
	c.mu.Unlock()

	if !c.config.IsValid() {
		log.Error().Msg("Asset load rejected: license not validated")
		c.loading.Set(false)
		c.errorState.Set(sdkerr.Licence)
		return sdkerr.Licence
	}
	if prov == nil || local == nil {
		return ErrNotInitialized
	}

	c.mu.Lock()
	c.sessionID = uuid.NewString()
	c.lastInput = mo.Some(input)
	c.mu.Unlock()

	log.Info().Str("session", c.SessionID()).Interface("input", input).Msg("Loading asset")
	c.trackEvent(analytics.LoadingStarted)
	c.loading.Set(true)

	asset, err := prov.Provide(ctx, input)
	if err != nil {
		return c.failLoad(fmt.Errorf("provide asset: %w", err))
	}
	log.Debug().Str("stream_url", asset.StreamURL).Msg("Asset provided")

	if err := local.Prepare(asset); err != nil {
		return c.failLoad(fmt.Errorf("prepare %s: %w", local.ID(), err))
	}
	return nil
}

func (c *Coordinator) failLoad(err error) error {
	log.Error().Err(err).Msg("Asset load failed")
	c.errorState.Set(sdkerr.Asset)
	c.loading.Set(false)
	return fmt.Errorf("%w: %w", sdkerr.Asset, err)
}

// Retry repeats the last LoadAsset with its input and configuration.
func (c *Coordinator) Retry(ctx context.Context) error {
	c.mu.Lock()
	input, ok := c.lastInput.Get()
	cfg := c.playbackConfig
	c.mu.Unlock()

	if !ok {
		log.Error().Msg("Retry failed: no previous input")
		c.errorState.Set(sdkerr.Asset)
		return sdkerr.Asset
	}
	log.Info().Msg("Retrying asset load with previous input")
	return c.LoadAsset(ctx, input, cfg)
}

// SwitchChannel makes the channel with the given id active. Unknown ids fall
// back to the local channel.
func (c *Coordinator) SwitchChannel(id string) {
	all := c.Channels()
	found, ok := lo.Find(all, func(ch channel.Channel) bool { return ch.ID() == id })
	if ok {
		log.Info().Str("channel", id).Msg("Switching active channel")
	} else {
		log.Debug().Str("channel", id).Msg("Channel not found, defaulting to local channel")
		c.mu.Lock()
		found = c.local
		c.mu.Unlock()
	}
	c.active.Set(found)
}

// Reset returns every channel and all state to the initial values. The
// fullscreen state survives, and the local channel becomes active.
func (c *Coordinator) Reset() {
	log.Debug().Msg("Resetting player state")

	for _, ch := range c.Channels() {
		ch.Reset()
	}

	c.hide.Cancel()
	c.errorState.Set(nil)
	c.controlState.Update(func(s controls.UIState) controls.UIState {
		next := controls.NewUIState()
		next.Fullscreen = s.Fullscreen
		return next
	})
	c.loading.Set(false)

	c.mu.Lock()
	local := c.local
	c.mu.Unlock()
	if local != nil {
		c.active.Set(local)
	}
}

// Destroy stops all background work and destroys every channel. The
// coordinator must not be used afterwards.
func (c *Coordinator) Destroy() {
	c.destroyed.Do(func() {
		log.Info().Msg("Destroying player and all channels")
		c.cancel()
		c.hide.Stop()
		c.wg.Wait()
		for _, ch := range c.Channels() {
			ch.Destroy()
		}
	})
}

func (c *Coordinator) metadata() analytics.Metadata {
	md := analytics.Metadata{"sessionId": c.SessionID()}
	if ch := c.active.Value(); ch != nil {
		md["channelId"] = ch.ID()
	}
	return md
}

func (c *Coordinator) trackEvent(e analytics.StreamEvent) {
	c.config.Analytics().TrackStreamEvent(e, c.metadata())
}

func (c *Coordinator) trackAction(a analytics.UserAction) {
	c.config.Analytics().TrackUserAction(a, c.metadata())
}

func (c *Coordinator) trackError(e analytics.PlaybackError) {
	c.config.Analytics().TrackError(e, c.metadata())
}

// DefaultHideDelay is how long controls stay visible without interaction.
const DefaultHideDelay = 3 * time.Second
