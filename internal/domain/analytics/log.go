package analytics

import "github.com/rs/zerolog/log"

// Logger reports every event through zerolog at debug level.
type Logger struct{}

func (Logger) TrackUserAction(action UserAction, metadata Metadata) {
	log.Debug().Str("action", action.String()).Fields(map[string]any(metadata)).Msg("analytics: user action")
}

func (Logger) TrackStreamEvent(event StreamEvent, metadata Metadata) {
	log.Debug().Str("event", event.String()).Fields(map[string]any(metadata)).Msg("analytics: stream event")
}

func (Logger) TrackError(err PlaybackError, metadata Metadata) {
	log.Debug().Err(err.Cause).Int("code", err.Code).Str("message", err.Message).
		Fields(map[string]any(metadata)).Msg("analytics: error")
}
