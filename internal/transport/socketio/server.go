// Package socketio bridges the player coordinator to browser controls over
// Socket.IO.
package socketio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/mo"
	"github.com/zishang520/socket.io/servers/socket/v3"
	"github.com/zishang520/socket.io/v3/pkg/types"

	"github.com/edumarques81/avplayer-sdk/internal/domain/controls"
	"github.com/edumarques81/avplayer-sdk/internal/domain/player"
	"github.com/edumarques81/avplayer-sdk/internal/domain/provider"
	"github.com/edumarques81/avplayer-sdk/internal/domain/sdkerr"
	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
)

// Events pushed to clients.
const (
	EventControlState = "pushControlState"
	EventErrorState   = "pushErrorState"
	EventLoading      = "pushLoading"
)

// DefaultDebounceWindow batches control state pushes.
const DefaultDebounceWindow = 100 * time.Millisecond

// Server handles Socket.IO connections and events.
type Server struct {
	io        *socket.Server
	player    *player.Coordinator
	debouncer *BroadcastDebouncer

	playbackConfig controls.PlaybackConfiguration
	loadTimeout    time.Duration
	window         time.Duration

	mu      sync.RWMutex
	clients map[string]*socket.Socket
}

// Option configures a Server.
type Option func(*Server)

// WithDebounceWindow overrides DefaultDebounceWindow.
func WithDebounceWindow(d time.Duration) Option {
	return func(s *Server) {
		s.window = d
	}
}

// WithPlaybackConfiguration sets the configuration used by "load".
func WithPlaybackConfiguration(cfg controls.PlaybackConfiguration) Option {
	return func(s *Server) {
		s.playbackConfig = cfg
	}
}

// WithLoadTimeout bounds asset resolution for "load" and "retry".
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.loadTimeout = d
	}
}

// NewServer creates a Socket.IO server driving p.
func NewServer(p *player.Coordinator, opts ...Option) (*Server, error) {
	if p == nil {
		return nil, errors.New("socketio: coordinator is required")
	}

	ioOpts := socket.DefaultServerOptions()
	ioOpts.SetPingTimeout(20 * time.Second)
	ioOpts.SetPingInterval(25 * time.Second)
	ioOpts.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	s := &Server{
		io:             socket.NewServer(nil, ioOpts),
		player:         p,
		playbackConfig: controls.DefaultPlaybackConfiguration(),
		loadTimeout:    30 * time.Second,
		window:         DefaultDebounceWindow,
		clients:        make(map[string]*socket.Socket),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.debouncer = NewBroadcastDebouncer(s.window, map[Topic]func(){
		TopicControlState: s.BroadcastControlState,
		TopicLoading:      s.BroadcastLoading,
	}, TopicControlState, TopicLoading)

	s.setupHandlers()
	return s, nil
}

// ControlStatePayload is the UI state plus the strings a client renders.
type ControlStatePayload struct {
	controls.UIState
	PositionText    string  `json:"positionText"`
	DurationText    string  `json:"durationText"`
	UserSeekText    string  `json:"userSeekText"`
	SeekbarPosition float64 `json:"seekbarPosition"`
}

// NewControlStatePayload derives the rendered strings from s.
func NewControlStatePayload(s controls.UIState) ControlStatePayload {
	return ControlStatePayload{
		UIState:         s,
		PositionText:    s.Progress.PositionString(),
		DurationText:    s.Progress.DurationString(),
		UserSeekText:    s.Progress.UserSeekString(),
		SeekbarPosition: s.Progress.SeekbarPosition(),
	}
}

func errorPayload(e *sdkerr.Error) map[string]interface{} {
	if e == nil {
		return nil
	}
	return e.ToJSON()
}

func (s *Server) setupHandlers() {
	s.io.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		clientID := string(client.Id())

		log.Info().Str("id", clientID).Msg("Client connected")

		s.mu.Lock()
		s.clients[clientID] = client
		s.mu.Unlock()

		s.pushAll(client)

		client.On("disconnect", func(args ...any) {
			reason := ""
			if len(args) > 0 {
				if r, ok := args[0].(string); ok {
					reason = r
				}
			}
			log.Info().Str("id", clientID).Str("reason", reason).Msg("Client disconnected")

			s.mu.Lock()
			delete(s.clients, clientID)
			s.mu.Unlock()
		})

		client.On("getState", func(args ...any) {
			log.Debug().Str("id", clientID).Msg("getState")
			s.pushAll(client)
		})

		s.registerControls(client, clientID)
	})
}

func (s *Server) registerControls(client *socket.Socket, clientID string) {
	simple := map[string]func() error{
		"play":        s.player.Play,
		"pause":       s.player.Pause,
		"playOrPause": s.player.PlayOrPause,
		"seekToLive":  s.player.SeekToLive,
	}
	for event, op := range simple {
		client.On(event, func(args ...any) {
			log.Debug().Str("id", clientID).Msg(event)
			report(event, op())
		})
	}

	client.On("seekTo", func(args ...any) {
		if v, ok := number(args); ok {
			log.Debug().Str("id", clientID).Float64("pos", v).Msg("seekTo")
			report("seekTo", s.player.SeekTo(int64(v)))
		}
	})

	client.On("seekBy", func(args ...any) {
		if v, ok := number(args); ok {
			log.Debug().Str("id", clientID).Float64("offset", v).Msg("seekBy")
			report("seekBy", s.player.SeekBy(int64(v)))
		}
	})

	client.On("userSeek", func(args ...any) {
		if v, ok := number(args); ok {
			s.player.UpdateUserSeekPosition(mo.Some(v))
			return
		}
		s.player.UpdateUserSeekPosition(mo.None[float64]())
	})

	client.On("toggleFullscreen", func(args ...any) {
		log.Debug().Str("id", clientID).Msg("toggleFullscreen")
		s.player.ToggleFullscreen()
	})

	client.On("toggleControls", func(args ...any) {
		show, _ := flag(args)
		s.player.ToggleControls(show)
	})

	client.On("lockControls", func(args ...any) {
		lock, _ := flag(args)
		s.player.LockControls(lock)
	})

	client.On("setControlVisibilityDuration", func(args ...any) {
		if ms, ok := number(args); ok {
			s.player.SetControlVisibilityDuration(time.Duration(ms) * time.Millisecond)
		}
	})

	client.On("toggleBottomSheet", func(args ...any) {
		m := object(args)
		visible, _ := m["visible"].(bool)
		kind, _ := m["type"].(string)

		settings := mo.None[track.SettingType]()
		for _, item := range s.player.ControlState().Value().SettingsButton.Items {
			if string(item.Type) == kind {
				settings = mo.Some(item)
			}
		}
		s.player.ToggleBottomSheet(visible, settings)
	})

	client.On("selectTrack", func(args ...any) {
		m := object(args)
		kind, _ := m["type"].(string)
		id, _ := m["id"].(string)
		log.Debug().Str("id", clientID).Str("type", kind).Str("track", id).Msg("selectTrack")
		report("selectTrack", s.player.SelectTrackByID(track.Kind(kind), id))
	})

	client.On("switchChannel", func(args ...any) {
		id, _ := object(args)["id"].(string)
		s.player.SwitchChannel(id)
	})

	client.On("load", func(args ...any) {
		url, _ := object(args)["streamUrl"].(string)
		log.Info().Str("id", clientID).Str("stream_url", url).Msg("load")
		go s.withTimeout("load", func(ctx context.Context) error {
			return s.player.LoadAsset(ctx, provider.DefaultInput{StreamURL: url}, s.playbackConfig)
		})
	})

	client.On("retry", func(args ...any) {
		log.Info().Str("id", clientID).Msg("retry")
		go s.withTimeout("retry", s.player.Retry)
	})
}

func (s *Server) withTimeout(op string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.loadTimeout)
	defer cancel()
	report(op, fn(ctx))
}

func report(op string, err error) {
	if err != nil {
		log.Error().Err(err).Str("op", op).Msg("Player operation failed")
	}
}

// number reads a bare number or {"value": n}.
func number(args []any) (float64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	switch v := args[0].(type) {
	case float64:
		return v, true
	case map[string]interface{}:
		n, ok := v["value"].(float64)
		return n, ok
	}
	return 0, false
}

// flag reads a bare bool or {"value": b}.
func flag(args []any) (bool, bool) {
	if len(args) == 0 {
		return false, false
	}
	switch v := args[0].(type) {
	case bool:
		return v, true
	case map[string]interface{}:
		b, ok := v["value"].(bool)
		return b, ok
	}
	return false, false
}

func object(args []any) map[string]interface{} {
	if len(args) > 0 {
		if m, ok := args[0].(map[string]interface{}); ok {
			return m
		}
	}
	return map[string]interface{}{}
}

func (s *Server) pushAll(client *socket.Socket) {
	client.Emit(EventControlState, NewControlStatePayload(s.player.ControlState().Value()))
	client.Emit(EventErrorState, errorPayload(s.player.ErrorState().Value()))
	client.Emit(EventLoading, s.player.Loading().Value())
}

// BroadcastControlState sends the UI state to all connected clients.
func (s *Server) BroadcastControlState() {
	payload := NewControlStatePayload(s.player.ControlState().Value())
	s.io.Emit(EventControlState, payload)

	if e := log.Trace(); e.Enabled() {
		data, _ := json.Marshal(payload)
		e.RawJSON("state", data).Int("clients", s.ClientCount()).Msg("Broadcast control state")
	}
}

func (s *Server) BroadcastErrorState() {
	s.io.Emit(EventErrorState, errorPayload(s.player.ErrorState().Value()))
}

func (s *Server) BroadcastLoading() {
	s.io.Emit(EventLoading, s.player.Loading().Value())
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Watch pushes coordinator changes to clients until ctx is done. Control
// state and loading changes are debounced; errors are sent immediately.
func (s *Server) Watch(ctx context.Context) {
	state := s.player.ControlState().Subscribe(ctx)
	errs := s.player.ErrorState().Subscribe(ctx)
	loading := s.player.Loading().Subscribe(ctx)

	go func() {
		log.Info().Msg("Coordinator watcher started")
		defer log.Info().Msg("Coordinator watcher stopped")
		for {
			select {
			case _, ok := <-state:
				if !ok {
					return
				}
				s.debouncer.Trigger(TopicControlState)
			case e, ok := <-errs:
				if !ok {
					return
				}
				s.io.Emit(EventErrorState, errorPayload(e))
			case _, ok := <-loading:
				if !ok {
					return
				}
				s.debouncer.Trigger(TopicLoading)
			}
		}
	}()
}

// ServeHTTP implements http.Handler for the Socket.IO server.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.io.ServeHandler(nil).ServeHTTP(w, r)
}

// Close stops broadcasting and closes the Socket.IO server.
func (s *Server) Close() error {
	s.debouncer.Stop()
	s.io.Close(nil)
	return nil
}
