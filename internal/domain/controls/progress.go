package controls

import (
	"fmt"

	"github.com/samber/mo"
)

// NoSeeking is shown in place of a user seek position when none is set.
const NoSeeking = "No seeking"

// ProgressScrubber is the state of the seek bar.
// UserSeek echoes the position the user is dragging to, as a fraction of the
// duration, until a seek is issued.
type ProgressScrubber struct {
	DurationMs int64              `json:"durationMs"`
	BufferedMs int64              `json:"bufferedPosition"`
	PositionMs int64              `json:"currentPositionMs"`
	IsLive     bool               `json:"isLive"`
	Enabled    bool               `json:"enabled"`
	IsSeekable bool               `json:"isSeekable"`
	UserSeek   mo.Option[float64] `json:"currentUserSeekPosition"`
}

// SeekbarPosition returns the playback position as a fraction in [0,1].
func (p ProgressScrubber) SeekbarPosition() float64 {
	if p.DurationMs <= 0 {
		return 0
	}
	return float64(clamp(p.PositionMs, 0, p.DurationMs)) / float64(p.DurationMs)
}

// UserSeekPosition returns the user seek echo clamped to [0,1].
func (p ProgressScrubber) UserSeekPosition() mo.Option[float64] {
	if v, ok := p.UserSeek.Get(); ok {
		return mo.Some(clamp(v, 0, 1))
	}
	return mo.None[float64]()
}

func (p ProgressScrubber) DurationString() string {
	return FormatPosition(p.DurationMs)
}

func (p ProgressScrubber) PositionString() string {
	return FormatPosition(p.PositionMs)
}

// UserSeekString formats the user seek echo as a position, or NoSeeking.
func (p ProgressScrubber) UserSeekString() string {
	v, ok := p.UserSeekPosition().Get()
	if !ok {
		return NoSeeking
	}
	return FormatPosition(int64(float64(p.DurationMs) * v))
}

// FormatPosition renders milliseconds as mm:ss. Minutes are not capped.
func FormatPosition(ms int64) string {
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func clamp[T int64 | float64](v, low, high T) T {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
