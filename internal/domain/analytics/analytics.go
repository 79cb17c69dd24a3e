// Package analytics defines the events the player reports to a host-supplied
// analytics provider.
package analytics

import "fmt"

// Metadata is free-form context attached to every tracked event.
type Metadata map[string]any

// Provider receives analytics events. Implementations are supplied by the host
// and may be called from any goroutine.
type Provider interface {
	TrackUserAction(action UserAction, metadata Metadata)
	TrackStreamEvent(event StreamEvent, metadata Metadata)
	TrackError(err PlaybackError, metadata Metadata)
}

// ActionKind identifies a user action.
type ActionKind string

// User action kinds.
const (
	ActionPlay            ActionKind = "play"
	ActionPause           ActionKind = "pause"
	ActionStop            ActionKind = "stop"
	ActionResume          ActionKind = "resume"
	ActionSeek            ActionKind = "seek"
	ActionSwitchToLive    ActionKind = "switch_to_live"
	ActionEnterFullscreen ActionKind = "enter_fullscreen"
	ActionExitFullscreen  ActionKind = "exit_fullscreen"
)

// UserAction is an interaction initiated by the viewer.
// Seconds is only meaningful for ActionSeek.
type UserAction struct {
	Kind    ActionKind
	Seconds int64
}

func (a UserAction) String() string {
	if a.Kind == ActionSeek {
		return fmt.Sprintf("%s(%d)", a.Kind, a.Seconds)
	}
	return string(a.Kind)
}

// Constructors for the user actions.
var (
	Play            = UserAction{Kind: ActionPlay}
	Pause           = UserAction{Kind: ActionPause}
	Stop            = UserAction{Kind: ActionStop}
	Resume          = UserAction{Kind: ActionResume}
	SwitchToLive    = UserAction{Kind: ActionSwitchToLive}
	EnterFullscreen = UserAction{Kind: ActionEnterFullscreen}
	ExitFullscreen  = UserAction{Kind: ActionExitFullscreen}
)

// Seek returns a seek action to the given position in seconds.
func Seek(seconds int64) UserAction {
	return UserAction{Kind: ActionSeek, Seconds: seconds}
}

// EventKind identifies a stream event.
type EventKind string

// Stream event kinds.
const (
	EventLoadingStarted     EventKind = "loading_started"
	EventLoadingCompleted   EventKind = "loading_completed"
	EventBufferingStarted   EventKind = "buffering_started"
	EventPause              EventKind = "pause"
	EventBufferingCompleted EventKind = "buffering_completed"
)

// StreamEvent is a lifecycle event emitted by the playing stream.
type StreamEvent struct {
	Kind       EventKind
	StreamURL  string
	DurationMs int64
}

func (e StreamEvent) String() string {
	switch e.Kind {
	case EventLoadingCompleted:
		return fmt.Sprintf("%s(%q)", e.Kind, e.StreamURL)
	case EventBufferingCompleted:
		return fmt.Sprintf("%s(%d)", e.Kind, e.DurationMs)
	default:
		return string(e.Kind)
	}
}

// Constructors for the stream events.
var (
	LoadingStarted   = StreamEvent{Kind: EventLoadingStarted}
	BufferingStarted = StreamEvent{Kind: EventBufferingStarted}
	Paused           = StreamEvent{Kind: EventPause}
)

// LoadingCompleted reports that the stream is ready to play.
func LoadingCompleted(streamURL string) StreamEvent {
	return StreamEvent{Kind: EventLoadingCompleted, StreamURL: streamURL}
}

// BufferingCompleted reports the end of a buffering phase.
func BufferingCompleted(durationMs int64) StreamEvent {
	return StreamEvent{Kind: EventBufferingCompleted, DurationMs: durationMs}
}

// PlaybackError describes a failure reported to analytics.
type PlaybackError struct {
	Code    int
	Message string
	Cause   error
}

func (e PlaybackError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("playback error %d: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("playback error %d: %s", e.Code, e.Message)
}

func (e PlaybackError) Unwrap() error {
	return e.Cause
}

// Nop discards every event.
type Nop struct{}

func (Nop) TrackUserAction(UserAction, Metadata)   {}
func (Nop) TrackStreamEvent(StreamEvent, Metadata) {}
func (Nop) TrackError(PlaybackError, Metadata)     {}
