package player_test

import (
	"testing"
	"time"

	"github.com/edumarques81/avplayer-sdk/internal/domain/player"
)

func TestAutoHide(t *testing.T) {
	f := validFixture(t, nil)
	f.coord.SetHideDelay(20 * time.Millisecond)

	f.coord.ToggleControls(true)
	if f.state().Visibility.IsHidden {
		t.Fatal("controls should be shown")
	}
	eventually(t, "auto hide", func() bool { return f.state().Visibility.IsHidden })
}

func TestCancelHideTimer(t *testing.T) {
	f := validFixture(t, nil)
	f.coord.SetHideDelay(20 * time.Millisecond)

	f.coord.ToggleControls(true)
	f.coord.CancelHideTimer()
	if f.coord.HidePending() {
		t.Error("no hide should be pending after cancel")
	}

	time.Sleep(60 * time.Millisecond)
	if f.state().Visibility.IsHidden {
		t.Error("cancelled timer must not hide the controls")
	}
}

func TestRestartHideTimerKeepsSingleTask(t *testing.T) {
	f := validFixture(t, nil)
	f.coord.SetHideDelay(150 * time.Millisecond)

	f.coord.ToggleControls(true)
	for i := 0; i < 5; i++ {
		time.Sleep(20 * time.Millisecond)
		f.coord.RestartHideTimer()
	}
	if f.state().Visibility.IsHidden {
		t.Error("restarts should postpone the hide")
	}
	eventually(t, "auto hide", func() bool { return f.state().Visibility.IsHidden })
}

func TestLockedControlsStayVisible(t *testing.T) {
	f := validFixture(t, nil)
	f.coord.SetHideDelay(20 * time.Millisecond)

	f.coord.ToggleControls(true)
	f.coord.LockControls(true)
	f.coord.StartHideTimer()
	f.coord.ToggleControls(false)

	time.Sleep(60 * time.Millisecond)
	v := f.state().Visibility
	if v.IsHidden || !v.IsLocked {
		t.Errorf("locked controls must stay visible, got %+v", v)
	}

	f.coord.LockControls(false)
	f.coord.ToggleControls(false)
	if !f.state().Visibility.IsHidden {
		t.Error("unlocked controls should hide")
	}
}

func TestControlVisibilityDuration(t *testing.T) {
	f := newFixture(t, demoBundle, nil)

	if got := f.coord.ControlVisibilityDuration(); got != player.DefaultHideDelay {
		t.Errorf("expected default %v, got %v", player.DefaultHideDelay, got)
	}

	f.coord.SetControlVisibilityDuration(player.MinHideDelay)
	if got := f.coord.ControlVisibilityDuration(); got != player.DefaultHideDelay {
		t.Errorf("durations up to the minimum should be ignored, got %v", got)
	}

	f.coord.SetControlVisibilityDuration(5 * time.Second)
	if got := f.coord.ControlVisibilityDuration(); got != 5*time.Second {
		t.Errorf("expected 5s, got %v", got)
	}
}
