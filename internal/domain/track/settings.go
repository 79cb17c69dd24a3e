package track

import "github.com/samber/lo"

// SyntheticID marks the Auto and Off menu entries.
const SyntheticID = "-1"

func asTracks[T Track](tracks []T) []Track {
	return lo.Map(tracks, func(t T, _ int) Track { return t })
}

// BuildSettings builds the settings menu for a normalized track state.
//
// Video lists every track followed by a selected "Auto" entry carrying the
// attributes of the highest-bitrate track. Audio is only offered when there is
// a choice. Subtitle lists every track followed by "Off", which is selected
// when no subtitle is.
func BuildSettings(s State) []SettingType {
	var items []SettingType

	if len(s.Video) > 0 {
		best := lo.MaxBy(s.Video, func(a, b VideoTrack) bool { return a.Bitrate > b.Bitrate })
		auto := VideoTrack{
			Option:      Option{ID: SyntheticID, DisplayName: "Auto", IsSelected: true},
			Width:       best.Width,
			Height:      best.Height,
			Bitrate:     best.Bitrate,
			FrameRate:   best.FrameRate,
			Codecs:      best.Codecs,
			IsSupported: true,
		}
		items = append(items, SettingType{
			Name:   "Video",
			Type:   KindVideo,
			Values: append(asTracks(s.Video), auto),
		})
	}

	if len(s.Audio) > 1 {
		items = append(items, SettingType{
			Name:   "Audio",
			Type:   KindAudio,
			Values: asTracks(s.Audio),
		})
	}

	if len(s.Subtitle) > 0 {
		anySelected := lo.ContainsBy(s.Subtitle, func(t SubtitleTrack) bool { return t.IsSelected })
		off := SubtitleTrack{
			Option: Option{ID: SyntheticID, DisplayName: "Off", IsSelected: !anySelected},
		}
		items = append(items, SettingType{
			Name:   "Subtitle",
			Type:   KindSubtitle,
			Values: append(asTracks(s.Subtitle), off),
		})
	}

	return items
}

// Select marks t as the only selected entry of its kind. Categories of other
// kinds are left untouched. The input slice is not modified.
func Select(items []SettingType, t Track) []SettingType {
	return lo.Map(items, func(item SettingType, _ int) SettingType {
		if len(item.Values) == 0 || item.Values[0].Kind() != t.Kind() {
			return item
		}
		item.Values = lo.Map(item.Values, func(v Track, _ int) Track {
			if v.Kind() != t.Kind() {
				return v
			}
			return v.WithSelected(v.SettingOption().ID == t.SettingOption().ID)
		})
		return item
	})
}

// Find returns the menu entry of the given kind and id.
func Find(items []SettingType, kind Kind, id string) (Track, bool) {
	for _, item := range items {
		if item.Type != kind {
			continue
		}
		if t, ok := lo.Find(item.Values, func(v Track) bool { return v.SettingOption().ID == id }); ok {
			return t, true
		}
	}
	return nil, false
}
