package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/avplayer-sdk/internal/domain/license"
	"github.com/edumarques81/avplayer-sdk/internal/domain/player"
	"github.com/edumarques81/avplayer-sdk/internal/infra/eventstore"
	"github.com/edumarques81/avplayer-sdk/internal/transport/socketio"
	"github.com/edumarques81/avplayer-sdk/internal/version"
)

// healthResponse is served on /health.
type healthResponse struct {
	Status  string `json:"status"`
	License string `json:"license"`
	Channel string `json:"channel,omitempty"`
	Clients int    `json:"clients"`
}

const defaultEventLimit = 50

// newMux wires the HTTP surface. socket and events may be nil; their routes
// are then left out.
func newMux(coord *player.Coordinator, cfg *license.Configuration, socket *socketio.Server, events *eventstore.Store) http.Handler {
	mux := http.NewServeMux()

	if socket != nil {
		mux.Handle("/socket.io/", socket)
	}

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", License: cfg.Validity().Value().String()}
		if ch := coord.ActiveChannel().Value(); ch != nil {
			resp.Channel = ch.ID()
		}
		if socket != nil {
			resp.Clients = socket.ClientCount()
		}

		status := http.StatusOK
		if !cfg.IsValid() {
			resp.Status = "error"
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	})

	mux.HandleFunc("/api/v1/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, version.GetInfo())
	})

	mux.HandleFunc("/api/v1/state", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"controlState": socketio.NewControlStatePayload(coord.ControlState().Value()),
			"errorState":   coord.ErrorState().Value(),
			"loading":      coord.Loading().Value(),
		})
	})

	if events != nil {
		mux.HandleFunc("/api/v1/events", func(w http.ResponseWriter, r *http.Request) {
			var (
				entries []eventstore.Entry
				err     error
			)
			if session := r.URL.Query().Get("session"); session != "" {
				entries, err = events.Session(session)
			} else {
				limit := defaultEventLimit
				if n, convErr := strconv.Atoi(r.URL.Query().Get("limit")); convErr == nil && n > 0 {
					limit = n
				}
				entries, err = events.Recent(limit)
			}
			if err != nil {
				log.Error().Err(err).Msg("Failed to query analytics events")
				http.Error(w, "events unavailable", http.StatusInternalServerError)
				return
			}
			if entries == nil {
				entries = []eventstore.Entry{}
			}
			writeJSON(w, http.StatusOK, entries)
		})
	}

	return corsMiddleware(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to encode response")
	}
}
