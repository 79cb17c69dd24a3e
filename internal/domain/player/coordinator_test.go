package player_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/mo"

	"github.com/edumarques81/avplayer-sdk/internal/domain/analytics"
	"github.com/edumarques81/avplayer-sdk/internal/domain/channel"
	"github.com/edumarques81/avplayer-sdk/internal/domain/controls"
	"github.com/edumarques81/avplayer-sdk/internal/domain/license"
	"github.com/edumarques81/avplayer-sdk/internal/domain/player"
	"github.com/edumarques81/avplayer-sdk/internal/domain/provider"
	"github.com/edumarques81/avplayer-sdk/internal/domain/sdkerr"
	"github.com/edumarques81/avplayer-sdk/internal/domain/track"
)

const demoBundle = "ag.sportradar.SRAVPlayerDemo"

type fixture struct {
	coord    *player.Coordinator
	config   *license.Configuration
	recorder *analytics.Recorder
	local    *fakeChannel
	cast     *fakeChannel
}

func newFixture(t *testing.T, bundleID string, prov provider.Provider) *fixture {
	t.Helper()

	rec := &analytics.Recorder{}
	client := license.DefaultClientConfig()
	client.Analytics = rec
	cfg := license.New(client, license.Identity{Platform: license.IOS, BundleID: bundleID})

	f := &fixture{
		coord:    player.New(cfg),
		config:   cfg,
		recorder: rec,
		local:    newFakeChannel(channel.LocalID),
		cast:     newFakeChannel("cast"),
	}
	if prov == nil {
		prov = provider.Default{}
	}
	if err := f.coord.InitializeChannels(prov, f.local, f.cast); err != nil {
		t.Fatalf("InitializeChannels: %v", err)
	}
	t.Cleanup(f.coord.Destroy)
	return f
}

// validFixture returns a fixture whose license is validated and whose
// collectors follow the local channel.
func validFixture(t *testing.T, prov provider.Provider) *fixture {
	t.Helper()
	f := newFixture(t, demoBundle, prov)
	if ok, err := f.config.Validate(context.Background()); !ok || err != nil {
		t.Fatalf("expected valid license, got %v, %v", ok, err)
	}
	waitFollowing(t, f.local)
	return f
}

func waitFollowing(t *testing.T, ch *fakeChannel) {
	t.Helper()
	eventually(t, "collectors subscribed to "+ch.id, func() bool {
		return ch.ReadyFlow.Subscribers() > 0 &&
			ch.PlayerStateFlow.Subscribers() > 0 &&
			ch.TracksFlow.Subscribers() > 0 &&
			ch.ProgressFlow.Subscribers() > 0
	})
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func (f *fixture) state() controls.UIState {
	return f.coord.ControlState().Value()
}

func TestControlsRejectedBeforeValidation(t *testing.T) {
	f := newFixture(t, demoBundle, nil)

	ops := map[string]func() error{
		"Play":        f.coord.Play,
		"Pause":       f.coord.Pause,
		"PlayOrPause": f.coord.PlayOrPause,
		"SeekTo":      func() error { return f.coord.SeekTo(10) },
		"SeekBy":      func() error { return f.coord.SeekBy(-10) },
		"SeekToLive":  f.coord.SeekToLive,
		"SelectTrack": func() error { return f.coord.SelectTrack(track.AudioTrack{}) },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, sdkerr.Licence) {
			t.Errorf("%s: expected licence error, got %v", name, err)
		}
	}

	if _, err := f.config.Validate(context.Background()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	waitFollowing(t, f.local)

	if calls := f.local.Calls(); len(calls) != 0 {
		t.Errorf("rejected ops must not be replayed, got %v", calls)
	}
	if len(f.recorder.Actions()) != 0 {
		t.Errorf("rejected ops must not be tracked, got %v", f.recorder.Actions())
	}
}

func TestInvalidLicensePublishesLicenceError(t *testing.T) {
	f := newFixture(t, "com.example.unknown", nil)

	if ok, _ := f.config.Validate(context.Background()); ok {
		t.Fatal("expected license to be rejected")
	}
	eventually(t, "licence error", func() bool {
		return f.coord.ErrorState().Value() == sdkerr.Licence
	})

	time.Sleep(20 * time.Millisecond)
	if n := f.local.PlayerStateFlow.Subscribers(); n != 0 {
		t.Errorf("collectors must not start on an invalid license, got %d subscribers", n)
	}
}

func TestControlsDelegateAndTrack(t *testing.T) {
	f := validFixture(t, nil)
	f.coord.UpdateUserSeekPosition(mo.Some(0.4))

	if err := f.coord.PlayOrPause(); err != nil {
		t.Fatal(err)
	}
	if err := f.coord.SeekBy(15); err != nil {
		t.Fatal(err)
	}
	if err := f.coord.SeekToLive(); err != nil {
		t.Fatal(err)
	}

	want := []string{"PlayOrPause", "SeekBy", "SeekToLive"}
	got := f.local.Calls()
	if len(got) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	actions := f.recorder.Actions()
	wantActions := []analytics.UserAction{analytics.Stop, analytics.Seek(15), analytics.SwitchToLive}
	if len(actions) != len(wantActions) {
		t.Fatalf("expected actions %v, got %v", wantActions, actions)
	}
	for i := range wantActions {
		if actions[i] != wantActions[i] {
			t.Errorf("action %d: expected %v, got %v", i, wantActions[i], actions[i])
		}
	}

	if f.state().Progress.UserSeek.IsPresent() {
		t.Error("seek should clear the user seek echo")
	}

	md := f.recorder.Records()[0].Metadata
	if md["channelId"] != channel.LocalID {
		t.Errorf("expected channelId %q in metadata, got %v", channel.LocalID, md)
	}
	if _, ok := md["sessionId"]; !ok {
		t.Errorf("expected sessionId in metadata, got %v", md)
	}
}

func TestPlayerStateMapping(t *testing.T) {
	f := validFixture(t, nil)

	tests := []struct {
		name   string
		state  channel.PlayerState
		button controls.PlayPause
	}{
		{"playing", channel.Playing, controls.ButtonPlaying},
		{"paused", channel.Paused, controls.ButtonPaused},
		{"ended", channel.Ended, controls.ButtonDisabled},
		{"playing again", channel.Playing, controls.ButtonPlaying},
		{"idle", channel.Idle, controls.ButtonDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.local.UpdatePlayerState(tt.state)
			eventually(t, string(tt.button), func() bool {
				return f.state().PlayPause == tt.button
			})
		})
	}

	f.local.UpdatePlayerState(channel.Buffering)
	eventually(t, "buffering event", func() bool {
		for _, e := range f.recorder.Events() {
			if e == analytics.BufferingStarted {
				return true
			}
		}
		return false
	})

	var sawPaused, sawCompleted bool
	for _, e := range f.recorder.Events() {
		sawPaused = sawPaused || e == analytics.Paused
		sawCompleted = sawCompleted || e == analytics.BufferingCompleted(0)
	}
	if !sawPaused || !sawCompleted {
		t.Errorf("expected Pause and BufferingCompleted events, got %v", f.recorder.Events())
	}
	if actions := f.recorder.Actions(); len(actions) != 0 {
		t.Errorf("player state changes should not track user actions, got %v", actions)
	}
}

func TestPausedStateTracksStreamEvent(t *testing.T) {
	f := validFixture(t, nil)

	f.local.UpdatePlayerState(channel.Paused)
	eventually(t, "pause event", func() bool {
		for _, e := range f.recorder.Events() {
			if e == analytics.Paused {
				return true
			}
		}
		return false
	})

	for _, a := range f.recorder.Actions() {
		if a == analytics.Pause {
			t.Errorf("a paused channel should not report a Pause user action, got %v", f.recorder.Actions())
		}
	}
}

func TestPlayerErrorState(t *testing.T) {
	f := validFixture(t, nil)

	f.local.UpdatePlayerState(channel.Failed(errFake))
	eventually(t, "playback error", func() bool {
		return f.coord.ErrorState().Value() != nil
	})

	e := f.coord.ErrorState().Value()
	if e.Title != player.PlaybackErrorTitle {
		t.Errorf("expected title %q, got %q", player.PlaybackErrorTitle, e.Title)
	}
	if e.InternalCode != -1 || e.ExternalCode != -1 {
		t.Errorf("expected codes -1/-1, got %d/%d", e.InternalCode, e.ExternalCode)
	}
	if e.Message != errFake.Error() {
		t.Errorf("expected message %q, got %q", errFake.Error(), e.Message)
	}
	if e.UserMessage != player.PlaybackErrorUserMessage {
		t.Errorf("expected user message %q, got %q", player.PlaybackErrorUserMessage, e.UserMessage)
	}

	errs := f.recorder.Errors()
	if len(errs) != 1 || errs[0].Message != errFake.Error() || !errors.Is(errs[0], errFake) {
		t.Errorf("unexpected tracked errors %v", errs)
	}

	f.local.UpdatePlayerState(channel.Failed(nil))
	eventually(t, "N/A message", func() bool {
		e := f.coord.ErrorState().Value()
		return e != nil && e.Message == "N/A" && e.UserMessage == player.PlaybackErrorUserMessage
	})
	eventually(t, "unknown error tracked", func() bool {
		errs := f.recorder.Errors()
		return len(errs) == 2 && errs[1].Message == "Unknown error"
	})
}

func TestLoadAsset(t *testing.T) {
	f := validFixture(t, nil)

	err := f.coord.LoadAsset(context.Background(), provider.DefaultInput{StreamURL: "https://example.com/live.m3u8"},
		controls.DefaultPlaybackConfiguration())
	if err != nil {
		t.Fatalf("LoadAsset: %v", err)
	}

	prepared := f.local.Prepared()
	if len(prepared) != 1 || prepared[0].StreamURL != "https://example.com/live.m3u8" {
		t.Errorf("unexpected prepared assets %v", prepared)
	}
	if !f.coord.Loading().Value() {
		t.Error("expected loading until the channel is ready")
	}
	if f.coord.SessionID() == "" {
		t.Error("expected a session id")
	}

	f.local.ReadyFlow.Set(true)
	eventually(t, "loading cleared", func() bool { return !f.coord.Loading().Value() })

	events := f.recorder.Events()
	if len(events) < 2 || events[0] != analytics.LoadingStarted {
		t.Fatalf("expected LoadingStarted first, got %v", events)
	}
	if !containsEvent(events, analytics.LoadingCompleted("")) {
		t.Errorf("expected LoadingCompleted, got %v", events)
	}
}

func containsEvent(events []analytics.StreamEvent, want analytics.StreamEvent) bool {
	for _, e := range events {
		if e == want {
			return true
		}
	}
	return false
}

func TestLoadAssetFailures(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		failing := provider.Func(func(context.Context, provider.Input) (channel.Asset, error) {
			return channel.Asset{}, errFake
		})
		f := validFixture(t, failing)

		err := f.coord.LoadAsset(context.Background(), "anything", controls.DefaultPlaybackConfiguration())
		if !errors.Is(err, sdkerr.Asset) || !errors.Is(err, errFake) {
			t.Errorf("expected asset error wrapping cause, got %v", err)
		}
		if f.coord.ErrorState().Value() != sdkerr.Asset {
			t.Errorf("expected asset error state, got %v", f.coord.ErrorState().Value())
		}
		if f.coord.Loading().Value() {
			t.Error("loading should be cleared")
		}
	})

	t.Run("prepare error", func(t *testing.T) {
		f := validFixture(t, nil)
		f.local.prepareErr = errFake

		err := f.coord.LoadAsset(context.Background(), provider.DefaultInput{StreamURL: "u"}, controls.PlaybackConfiguration{})
		if !errors.Is(err, sdkerr.Asset) {
			t.Errorf("expected asset error, got %v", err)
		}
	})

	t.Run("license not validated", func(t *testing.T) {
		f := newFixture(t, demoBundle, nil)

		err := f.coord.LoadAsset(context.Background(), provider.DefaultInput{StreamURL: "u"}, controls.PlaybackConfiguration{})
		if !errors.Is(err, sdkerr.Licence) {
			t.Errorf("expected licence error, got %v", err)
		}
		if f.coord.ErrorState().Value() != sdkerr.Licence {
			t.Errorf("expected licence error state, got %v", f.coord.ErrorState().Value())
		}
		if len(f.local.Prepared()) != 0 {
			t.Error("nothing should be prepared")
		}
	})
}

func TestRetry(t *testing.T) {
	f := validFixture(t, nil)

	if err := f.coord.Retry(context.Background()); !errors.Is(err, sdkerr.Asset) {
		t.Errorf("expected asset error without a previous input, got %v", err)
	}

	cfg := controls.DefaultPlaybackConfiguration()
	cfg.ReplayButton = false
	input := provider.DefaultInput{StreamURL: "https://example.com/vod.mpd"}
	if err := f.coord.LoadAsset(context.Background(), input, cfg); err != nil {
		t.Fatal(err)
	}
	first := f.coord.SessionID()

	if err := f.coord.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if n := len(f.local.Prepared()); n != 2 {
		t.Errorf("expected the asset to be prepared twice, got %d", n)
	}
	if f.coord.PlaybackConfiguration() != cfg {
		t.Error("retry should keep the playback configuration")
	}
	if f.coord.SessionID() == first {
		t.Error("retry should start a new session")
	}
	if f.coord.ErrorState().Value() != nil {
		t.Errorf("retry should clear the error, got %v", f.coord.ErrorState().Value())
	}
}

func TestSwitchChannelIsLatestWins(t *testing.T) {
	f := validFixture(t, nil)

	f.coord.SwitchChannel("cast")
	waitFollowing(t, f.cast)
	eventually(t, "local unsubscribed", func() bool {
		return f.local.PlayerStateFlow.Subscribers() == 0
	})

	f.local.UpdatePlayerState(channel.Playing)
	f.cast.UpdatePlayerState(channel.Paused)
	eventually(t, "cast state", func() bool { return f.state().PlayPause == controls.ButtonPaused })

	time.Sleep(20 * time.Millisecond)
	if got := f.state().PlayPause; got != controls.ButtonPaused {
		t.Errorf("stale local update leaked: %s", got)
	}

	if err := f.coord.Play(); err != nil {
		t.Fatal(err)
	}
	if calls := f.cast.Calls(); len(calls) != 1 || calls[0] != "Play" {
		t.Errorf("expected Play routed to cast, got %v", calls)
	}

	f.coord.SwitchChannel("nope")
	if got := f.coord.ActiveChannel().Value().ID(); got != channel.LocalID {
		t.Errorf("unknown id should fall back to local, got %q", got)
	}
}

func TestTracksRebuildHeuristic(t *testing.T) {
	f := validFixture(t, nil)

	tracks := track.State{
		Video: []track.VideoTrack{
			{Option: track.Option{ID: "v1"}, Width: 1280, Height: 720, Bitrate: 2_000_000},
			{Option: track.Option{ID: "v2"}, Width: 1920, Height: 1080, Bitrate: 5_000_000},
		},
		Subtitle: []track.SubtitleTrack{
			{Option: track.Option{ID: "s1", DisplayName: "English"}, Language: "en"},
		},
	}
	f.local.TracksFlow.Set(tracks)
	eventually(t, "settings built", func() bool { return len(f.state().SettingsButton.Items) == 2 })

	if err := f.coord.SelectTrackByID(track.KindSubtitle, "s1"); err != nil {
		t.Fatalf("SelectTrackByID: %v", err)
	}
	if sel := f.local.Selected(); len(sel) != 1 || sel[0].SettingOption().ID != "s1" {
		t.Errorf("expected s1 forwarded to channel, got %v", sel)
	}

	// Same categories: the user's selection survives a new report.
	tracks.Video = append(tracks.Video, track.VideoTrack{Option: track.Option{ID: "v3"}, Width: 640, Height: 360})
	f.local.TracksFlow.Set(tracks)
	time.Sleep(30 * time.Millisecond)

	sub, ok := track.Find(f.state().SettingsButton.Items, track.KindSubtitle, "s1")
	if !ok || !sub.SettingOption().IsSelected {
		t.Errorf("selection should survive a report with the same categories, got %+v", sub)
	}

	tracks.Audio = []track.AudioTrack{
		{Option: track.Option{ID: "a1", DisplayName: "English"}},
		{Option: track.Option{ID: "a2", DisplayName: "German"}},
	}
	f.local.TracksFlow.Set(tracks)
	eventually(t, "settings rebuilt", func() bool { return len(f.state().SettingsButton.Items) == 3 })
}

func TestSelectTrackClosesBottomSheet(t *testing.T) {
	f := validFixture(t, nil)
	f.local.TracksFlow.Set(track.State{Subtitle: []track.SubtitleTrack{{Option: track.Option{ID: "s1", DisplayName: "English"}}}})
	eventually(t, "settings built", func() bool { return len(f.state().SettingsButton.Items) == 1 })

	f.coord.ToggleBottomSheet(true, mo.Some(f.state().SettingsButton.Items[0]))
	if !f.state().BottomSheet.IsVisible {
		t.Fatal("bottom sheet should be visible")
	}

	if err := f.coord.SelectTrackByID(track.KindSubtitle, track.SyntheticID); err != nil {
		t.Fatal(err)
	}
	sheet := f.state().BottomSheet
	if sheet.IsVisible || sheet.Settings.IsPresent() {
		t.Errorf("bottom sheet should be closed, got %+v", sheet)
	}

	if err := f.coord.SelectTrackByID(track.KindVideo, "missing"); err == nil {
		t.Error("expected an error for an unknown track")
	}
}

func TestProgressKeepsUserSeek(t *testing.T) {
	f := validFixture(t, nil)
	f.coord.UpdateUserSeekPosition(mo.Some(1.5))

	f.local.ProgressFlow.Set(channel.Progress{ProgressMs: 30_000, DurationMs: 60_000, BufferProgressMs: 45_000})
	eventually(t, "progress", func() bool { return f.state().Progress.PositionMs == 30_000 })

	p := f.state().Progress
	if p.DurationMs != 60_000 || p.BufferedMs != 45_000 {
		t.Errorf("unexpected progress %+v", p)
	}
	if v, ok := p.UserSeek.Get(); !ok || v != 1 {
		t.Errorf("expected clamped user seek 1, got %v", p.UserSeek)
	}
}

func TestFullscreen(t *testing.T) {
	f := validFixture(t, nil)

	f.coord.ToggleFullscreen()
	f.coord.ToggleFullscreen()
	f.coord.SetFullscreen(true)

	actions := f.recorder.Actions()
	if len(actions) != 2 || actions[0] != analytics.EnterFullscreen || actions[1] != analytics.ExitFullscreen {
		t.Errorf("unexpected fullscreen actions %v", actions)
	}

	f.coord.Reset()
	if !f.state().Fullscreen.IsFullscreen {
		t.Error("reset should keep fullscreen")
	}
}

func TestResetAndDestroy(t *testing.T) {
	f := validFixture(t, nil)
	f.local.UpdatePlayerState(channel.Failed(errFake))
	eventually(t, "playback error", func() bool { return f.coord.ErrorState().Value() != nil })
	f.coord.SwitchChannel("cast")
	f.coord.LockControls(true)

	f.coord.Reset()

	if got := f.coord.ActiveChannel().Value().ID(); got != channel.LocalID {
		t.Errorf("reset should activate local, got %q", got)
	}
	if f.coord.ErrorState().Value() != nil {
		t.Error("reset should clear the error")
	}
	if f.state().Visibility.IsLocked {
		t.Error("reset should rebuild the UI state")
	}

	f.coord.Destroy()
	f.coord.Destroy()
	if f.local.Destroys() != 1 || f.cast.Destroys() != 1 {
		t.Errorf("expected each channel destroyed once, got %d/%d", f.local.Destroys(), f.cast.Destroys())
	}
	eventually(t, "subscriptions released", func() bool {
		return f.local.PlayerStateFlow.Subscribers() == 0 && f.cast.PlayerStateFlow.Subscribers() == 0
	})
}
