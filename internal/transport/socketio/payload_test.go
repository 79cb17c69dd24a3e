package socketio

import (
	"encoding/json"
	"testing"

	"github.com/samber/mo"

	"github.com/edumarques81/avplayer-sdk/internal/domain/controls"
	"github.com/edumarques81/avplayer-sdk/internal/domain/sdkerr"
)

func TestControlStatePayload(t *testing.T) {
	state := controls.NewUIState()
	state.Progress.DurationMs = 125_000
	state.Progress.PositionMs = 65_000
	state.Progress.UserSeek = mo.Some(0.5)

	data, err := json.Marshal(NewControlStatePayload(state))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tests := map[string]any{
		"positionText":    "01:05",
		"durationText":    "02:05",
		"userSeekText":    "01:02",
		"playPauseButton": "Disabled",
	}
	for key, want := range tests {
		if got[key] != want {
			t.Errorf("%s: expected %v, got %v", key, want, got[key])
		}
	}
	if _, ok := got["controlVisibility"]; !ok {
		t.Error("embedded UI state fields should be flattened into the payload")
	}
}

func TestErrorPayload(t *testing.T) {
	if errorPayload(nil) != nil {
		t.Error("nil error should encode as null")
	}

	p := errorPayload(sdkerr.Licence)
	if p["externalCode"] != sdkerr.Licence.ExternalCode {
		t.Errorf("unexpected payload %v", p)
	}
}

func TestArgumentHelpers(t *testing.T) {
	if v, ok := number([]any{float64(12)}); !ok || v != 12 {
		t.Errorf("bare number: got %v, %v", v, ok)
	}
	if v, ok := number([]any{map[string]interface{}{"value": float64(3)}}); !ok || v != 3 {
		t.Errorf("wrapped number: got %v, %v", v, ok)
	}
	if _, ok := number([]any{"x"}); ok {
		t.Error("strings are not numbers")
	}
	if _, ok := number(nil); ok {
		t.Error("missing argument should not parse")
	}

	if b, ok := flag([]any{true}); !ok || !b {
		t.Errorf("bare flag: got %v, %v", b, ok)
	}
	if b, ok := flag([]any{map[string]interface{}{"value": true}}); !ok || !b {
		t.Errorf("wrapped flag: got %v, %v", b, ok)
	}

	if m := object(nil); m == nil || len(m) != 0 {
		t.Errorf("expected empty object, got %v", m)
	}
}
