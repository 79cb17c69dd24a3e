// Package stateflow provides an observable value holder with conflated,
// latest-value subscriptions.
package stateflow

import (
	"context"
	"sync"
)

// Reader is the read-only view of a Flow.
type Reader[T any] interface {
	// Value returns the current value.
	Value() T
	// Subscribe returns a channel that first receives the current value and
	// then the latest value after each change. Intermediate values may be
	// skipped if the receiver is slow. The channel is closed when ctx is done.
	Subscribe(ctx context.Context) <-chan T
}

// Option configures a Flow.
type Option[T any] func(*Flow[T])

// WithEqual makes the flow drop updates that are equal to the current value.
func WithEqual[T any](equal func(a, b T) bool) Option[T] {
	return func(f *Flow[T]) {
		f.equal = equal
	}
}

// Distinct is WithEqual using ==.
func Distinct[T comparable]() Option[T] {
	return WithEqual(func(a, b T) bool { return a == b })
}

// Flow holds a single value and notifies subscribers when it changes.
type Flow[T any] struct {
	mu    sync.Mutex
	value T
	equal func(a, b T) bool
	subs  map[uint64]chan T
	next  uint64
}

// New creates a flow holding initial.
func New[T any](initial T, opts ...Option[T]) *Flow[T] {
	f := &Flow[T]{
		value: initial,
		subs:  make(map[uint64]chan T),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Value returns the current value.
func (f *Flow[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Set replaces the current value.
func (f *Flow[T]) Set(v T) {
	f.Update(func(T) T { return v })
}

// Update atomically replaces the value with fn(current) and returns the new value.
// fn runs under the flow's lock and must not call back into the flow.
func (f *Flow[T]) Update(fn func(T) T) T {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := fn(f.value)
	if f.equal != nil && f.equal(f.value, next) {
		return f.value
	}
	f.value = next
	for _, ch := range f.subs {
		offer(ch, next)
	}
	return next
}

// Subscribe implements Reader.
func (f *Flow[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = ch
	ch <- f.value
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, id)
		close(ch)
		f.mu.Unlock()
	}()

	return ch
}

// Subscribers returns the number of live subscriptions.
func (f *Flow[T]) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// offer replaces any pending value in the single-slot buffer. Callers hold the
// flow lock, so no other sender can fill the slot between drain and send.
func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
