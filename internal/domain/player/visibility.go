package player

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/avplayer-sdk/internal/domain/controls"
)

// MinHideDelay is the shortest accepted auto-hide delay. Shorter or equal
// values are ignored.
const MinHideDelay = 3 * time.Second

// hideTimer runs a single delayed hide. Every Start or Cancel bumps the
// generation so a timer that already fired but has not yet taken the lock
// becomes a no-op.
type hideTimer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	stopped bool
	fire    func()
}

func newHideTimer(delay time.Duration, fire func()) *hideTimer {
	return &hideTimer{delay: delay, fire: fire}
}

// Start cancels any pending hide and schedules a new one.
func (h *hideTimer) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return
	}
	h.cancelLocked()
	gen := h.gen
	h.timer = time.AfterFunc(h.delay, func() {
		h.run(gen)
	})
}

// Cancel drops the pending hide, if any.
func (h *hideTimer) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelLocked()
}

// Stop cancels the pending hide and disables the timer for good.
func (h *hideTimer) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelLocked()
	h.stopped = true
}

// Pending reports whether a hide is scheduled.
func (h *hideTimer) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.timer != nil
}

// SetDelay changes the delay used by the next Start.
func (h *hideTimer) SetDelay(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.delay = d
}

func (h *hideTimer) Delay() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.delay
}

func (h *hideTimer) cancelLocked() {
	h.gen++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

func (h *hideTimer) run(gen uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped || gen != h.gen {
		return
	}
	h.timer = nil
	h.fire()
}

// autoHide is the timer callback. Locked controls stay visible.
func (c *Coordinator) autoHide() {
	c.controlState.Update(func(s controls.UIState) controls.UIState {
		if s.Visibility.IsLocked {
			return s
		}
		s.Visibility.IsHidden = true
		return s
	})
}

// SetControlVisibilityDuration changes the auto-hide delay. Values not
// greater than MinHideDelay are ignored.
func (c *Coordinator) SetControlVisibilityDuration(d time.Duration) {
	if d <= MinHideDelay {
		log.Debug().Dur("duration", d).Msg("Ignoring control visibility duration")
		return
	}
	c.hide.SetDelay(d)
}

// ControlVisibilityDuration returns the current auto-hide delay.
func (c *Coordinator) ControlVisibilityDuration() time.Duration {
	return c.hide.Delay()
}

// ToggleControls shows or hides the controls. Showing restarts the auto-hide
// timer unless the controls are locked; hiding is ignored while locked.
func (c *Coordinator) ToggleControls(show bool) {
	locked := c.controlState.Value().Visibility.IsLocked

	if !show {
		if locked {
			log.Debug().Msg("Controls locked, ignoring hide")
			return
		}
		c.hide.Cancel()
		c.setHidden(true)
		return
	}

	c.setHidden(false)
	if !locked {
		c.hide.Start()
	}
}

// LockControls locks or unlocks the controls. Either way the pending hide is
// cancelled.
func (c *Coordinator) LockControls(lock bool) {
	c.hide.Cancel()
	c.controlState.Update(func(s controls.UIState) controls.UIState {
		s.Visibility.IsLocked = lock
		return s
	})
}

// StartHideTimer schedules the auto-hide, replacing any pending one.
func (c *Coordinator) StartHideTimer() {
	if c.controlState.Value().Visibility.IsLocked {
		return
	}
	c.hide.Start()
}

// RestartHideTimer starts the auto-hide delay over.
func (c *Coordinator) RestartHideTimer() {
	c.StartHideTimer()
}

// CancelHideTimer drops a pending auto-hide.
func (c *Coordinator) CancelHideTimer() {
	c.hide.Cancel()
}

func (c *Coordinator) setHidden(hidden bool) {
	c.controlState.Update(func(s controls.UIState) controls.UIState {
		s.Visibility.IsHidden = hidden
		return s
	})
}
