package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edumarques81/avplayer-sdk/internal/infra/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logging.Level
		wantErr bool
	}{
		{"verbose", logging.Verbose, false},
		{"TRACE", logging.Verbose, false},
		{"info", logging.Info, false},
		{"Debug", logging.Debug, false},
		{"warn", logging.Warning, false},
		{"error", logging.Error, false},
		{"none", logging.None, false},
		{"loud", logging.None, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPriorities(t *testing.T) {
	if logging.Verbose.Priority() != 0 || logging.Error.Priority() != 4 || logging.None.Priority() != 10 {
		t.Error("unexpected priorities")
	}
	if logging.None.Zerolog() != zerolog.Disabled {
		t.Error("none should disable logging")
	}
}

func TestSetupFiltersByLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logging.Setup(logging.Config{MinLevel: logging.Warning, JSON: true, Output: &buf})

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `"component":"avplayer"`) {
		t.Errorf("expected warning in JSON output: %s", out)
	}
}
