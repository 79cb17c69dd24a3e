package track

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ComputedDisplayName derives a label for a video track that has none:
// the height-like width ("1080p"), then the bitrate, then the frame rate,
// then the codecs.
func ComputedDisplayName(t VideoTrack) string {
	switch {
	case strings.TrimSpace(t.DisplayName) != "":
		return t.DisplayName
	case t.Width > 1:
		return strconv.Itoa(t.Width) + "p"
	case t.Bitrate > 0:
		return strconv.Itoa(t.Bitrate/1000) + "kbps"
	case t.FrameRate > 0:
		return frameRateLabel(t.FrameRate) + "fps"
	case strings.TrimSpace(t.Codecs) != "":
		return t.Codecs
	default:
		return "Unknown"
	}
}

// frameRateLabel prints whole rates with one decimal ("25.0") and keeps
// fractional rates as they are ("29.97").
func frameRateLabel(fps float32) string {
	s := strconv.FormatFloat(float64(fps), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func displayName[T Track](t T) string {
	return t.SettingOption().DisplayName
}

func hasDuplicateNames[T Track](tracks []T) bool {
	return len(lo.FindDuplicatesBy(tracks, displayName[T])) > 0
}

// DedupeByName keeps the first track for every display name.
// A list without duplicate names is returned as is.
func DedupeByName[T Track](tracks []T) []T {
	if !hasDuplicateNames(tracks) {
		return tracks
	}
	return lo.UniqBy(tracks, displayName[T])
}

// DedupeVideo keeps the highest-bitrate track for every display name, in the
// order names first appear. A list without duplicate names is returned as is.
func DedupeVideo(tracks []VideoTrack) []VideoTrack {
	if !hasDuplicateNames(tracks) {
		return tracks
	}

	groups := lo.GroupBy(tracks, displayName[VideoTrack])
	names := lo.Uniq(lo.Map(tracks, func(t VideoTrack, _ int) string { return t.DisplayName }))

	return lo.Map(names, func(name string, _ int) VideoTrack {
		return lo.MaxBy(groups[name], func(a, b VideoTrack) bool {
			return a.Bitrate > b.Bitrate
		})
	})
}

// Normalize prepares a channel's raw tracks for the settings menu.
// Audio and subtitles are deduplicated by name. Video tracks get computed
// display names first and are then reduced to the best bitrate per name.
func (s State) Normalize() State {
	video := lo.Map(s.Video, func(t VideoTrack, _ int) VideoTrack {
		t.DisplayName = ComputedDisplayName(t)
		return t
	})

	return State{
		Video:    DedupeVideo(video),
		Audio:    DedupeByName(s.Audio),
		Subtitle: DedupeByName(s.Subtitle),
	}
}

// NonEmptyCategories counts the kinds that have at least one track.
func (s State) NonEmptyCategories() int {
	return lo.Count([]bool{len(s.Video) > 0, len(s.Audio) > 0, len(s.Subtitle) > 0}, true)
}
