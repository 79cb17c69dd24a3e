package analytics

import "sync"

// Record is one tracked call captured by a Recorder.
type Record struct {
	Action   *UserAction
	Event    *StreamEvent
	Error    *PlaybackError
	Metadata Metadata
}

// Recorder keeps every tracked call in memory. Hosts and tests use it to
// assert on what the player reported.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

func (r *Recorder) TrackUserAction(action UserAction, metadata Metadata) {
	r.append(Record{Action: &action, Metadata: metadata})
}

func (r *Recorder) TrackStreamEvent(event StreamEvent, metadata Metadata) {
	r.append(Record{Event: &event, Metadata: metadata})
}

func (r *Recorder) TrackError(err PlaybackError, metadata Metadata) {
	r.append(Record{Error: &err, Metadata: metadata})
}

func (r *Recorder) append(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

// Records returns a copy of everything tracked so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Actions returns the tracked user actions in order.
func (r *Recorder) Actions() []UserAction {
	var out []UserAction
	for _, rec := range r.Records() {
		if rec.Action != nil {
			out = append(out, *rec.Action)
		}
	}
	return out
}

// Events returns the tracked stream events in order.
func (r *Recorder) Events() []StreamEvent {
	var out []StreamEvent
	for _, rec := range r.Records() {
		if rec.Event != nil {
			out = append(out, *rec.Event)
		}
	}
	return out
}

// Errors returns the tracked errors in order.
func (r *Recorder) Errors() []PlaybackError {
	var out []PlaybackError
	for _, rec := range r.Records() {
		if rec.Error != nil {
			out = append(out, *rec.Error)
		}
	}
	return out
}
