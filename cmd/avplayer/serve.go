package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	avplayer "github.com/edumarques81/avplayer-sdk"
	"github.com/edumarques81/avplayer-sdk/internal/config"
	"github.com/edumarques81/avplayer-sdk/internal/domain/analytics"
	"github.com/edumarques81/avplayer-sdk/internal/domain/channel"
	"github.com/edumarques81/avplayer-sdk/internal/domain/provider"
	"github.com/edumarques81/avplayer-sdk/internal/infra/eventstore"
	"github.com/edumarques81/avplayer-sdk/internal/infra/mpd"
	"github.com/edumarques81/avplayer-sdk/internal/infra/simchannel"
	"github.com/edumarques81/avplayer-sdk/internal/transport/socketio"
	"github.com/edumarques81/avplayer-sdk/internal/version"
)

const shutdownTimeout = 10 * time.Second

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP server port")
	lo.Must0(viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port")))

	serveCmd.Flags().Bool("mpd", false, "Add an MPD channel")
	lo.Must0(viper.BindPFlag("mpd.enabled", serveCmd.Flags().Lookup("mpd")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a player behind a Socket.IO control server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := serve(ctx, settings); err != nil {
			return fail(cmd, err)
		}
		return nil
	},
}

func serve(ctx context.Context, s config.Settings) error {
	info := version.GetInfo()
	log.Info().Msgf("  %s", info.String())
	log.Info().
		Int("port", s.Server.Port).
		Bool("mpd", s.MPD.Enabled).
		Bool("remote_license", s.License.Remote).
		Msg("Configuration")

	var sink analytics.Provider = analytics.Logger{}
	var events *eventstore.Store
	if s.Analytics.DB != "" {
		events = eventstore.NewStore(s.Analytics.DB)
		if err := events.Open(); err != nil {
			return err
		}
		defer events.Close()
		sink = events
	}

	cfg, err := initialize(ctx, s, sink)
	if err != nil {
		return err
	}
	if !cfg.IsValid() {
		return fmt.Errorf("%w for %s", errInvalidLicense, cfg.Identity().AppIdentifier())
	}

	coord := avplayer.NewPlayer(cfg)
	defer coord.Destroy()

	local := simchannel.New(
		simchannel.WithTick(s.Sim.Tick),
		simchannel.WithDuration(s.Sim.DurationMs),
	)

	var extra []channel.Channel
	if s.MPD.Enabled {
		ch, err := startMPD(ctx, s.MPD)
		if err != nil {
			return err
		}
		extra = append(extra, ch)
	}

	if err := coord.InitializeChannels(provider.Default{}, local, extra...); err != nil {
		return err
	}
	coord.SetControlVisibilityDuration(s.Player.HideDelay)

	socketServer, err := socketio.NewServer(coord,
		socketio.WithDebounceWindow(s.Server.DebounceWindow),
		socketio.WithLoadTimeout(s.Server.LoadTimeout),
		socketio.WithPlaybackConfiguration(s.Playback),
	)
	if err != nil {
		return fmt.Errorf("create socket.io server: %w", err)
	}
	defer socketServer.Close()
	socketServer.Watch(ctx)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(s.Server.Port),
		Handler:           newMux(coord, cfg, socketServer, events),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
	return nil
}

// startMPD connects to the daemon and keeps the channel in sync until ctx
// ends. Idle notifications are optional; polling covers their absence.
func startMPD(ctx context.Context, m config.MPD) (*mpd.Channel, error) {
	client := mpd.NewClient(m.Host, m.Port, m.Password)
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("connect mpd at %s: %w", client.Addr(), err)
	}

	poll := m.Poll
	if poll <= 0 {
		poll = time.Second
	}

	ch := mpd.NewChannel(client)
	changes, err := client.Watch(ctx, "player", "mixer")
	if err != nil {
		log.Warn().Err(err).Msg("MPD idle watcher unavailable, polling only")
		changes = nil
	}
	go ch.Run(ctx, changes, poll)

	log.Info().Str("addr", client.Addr()).Msg("MPD channel ready")
	return ch, nil
}
