package socketio

import (
	"sync"
	"time"
)

// Topic names a kind of state push that can be batched.
type Topic string

const (
	TopicControlState Topic = "controlState"
	TopicLoading      Topic = "loading"
)

// BroadcastDebouncer collapses bursts of state changes into one broadcast per
// topic per window. The window starts at the first trigger and is not extended
// by later ones, so a steady stream such as progress ticks still flushes once
// per window.
type BroadcastDebouncer struct {
	window    time.Duration
	callbacks map[Topic]func()
	order     []Topic

	mu      sync.Mutex
	pending map[Topic]bool
	timer   *time.Timer
	stopped bool
}

// NewBroadcastDebouncer creates a debouncer. Callbacks fire in the order of
// topics; triggers for topics without a callback are ignored.
func NewBroadcastDebouncer(window time.Duration, callbacks map[Topic]func(), topics ...Topic) *BroadcastDebouncer {
	return &BroadcastDebouncer{
		window:    window,
		callbacks: callbacks,
		order:     topics,
		pending:   make(map[Topic]bool),
	}
}

// Trigger marks topic as changed and arms the window if it is not running.
func (d *BroadcastDebouncer) Trigger(topic Topic) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || d.callbacks[topic] == nil {
		return
	}
	d.pending[topic] = true
	if d.timer == nil {
		d.timer = time.AfterFunc(d.window, d.flush)
	}
}

func (d *BroadcastDebouncer) flush() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	var due []func()
	for _, topic := range d.order {
		if d.pending[topic] {
			due = append(due, d.callbacks[topic])
		}
	}
	clear(d.pending)
	d.timer = nil
	d.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

// Stop prevents any further callbacks from firing.
func (d *BroadcastDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}
