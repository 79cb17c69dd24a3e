// Package logging configures the global zerolog logger for the SDK.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level is the SDK log level.
type Level int

// Log levels with their SDK priorities.
const (
	Verbose Level = 0
	Info    Level = 1
	Debug   Level = 2
	Warning Level = 3
	Error   Level = 4
	None    Level = 10
)

var levelNames = map[Level]string{
	Verbose: "verbose",
	Info:    "info",
	Debug:   "debug",
	Warning: "warning",
	Error:   "error",
	None:    "none",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Priority returns the numeric priority of the level.
func (l Level) Priority() int {
	return int(l)
}

// ParseLevel parses a level name, case-insensitively. "warn" and "trace" are
// accepted as aliases.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose", "trace":
		return Verbose, nil
	case "info":
		return Info, nil
	case "debug":
		return Debug, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	case "none", "off", "disabled":
		return None, nil
	}
	return None, fmt.Errorf("unknown log level %q", s)
}

// Zerolog maps the SDK level to the zerolog level. zerolog orders debug below
// info, so a Debug minimum also lets info through.
func (l Level) Zerolog() zerolog.Level {
	switch l {
	case Verbose:
		return zerolog.TraceLevel
	case Debug:
		return zerolog.DebugLevel
	case Info:
		return zerolog.InfoLevel
	case Warning:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// Config controls the global logger.
type Config struct {
	MinLevel Level
	// JSON writes raw JSON lines instead of the human-readable console format.
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig logs errors only.
func DefaultConfig() Config {
	return Config{MinLevel: Error}
}

// Setup installs cfg as the global logger configuration.
func Setup(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(cfg.MinLevel.Zerolog())

	if cfg.JSON {
		log.Logger = zerolog.New(out).With().Timestamp().Str("component", "avplayer").Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
}
