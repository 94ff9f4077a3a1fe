// Package signals provides reactive values that notify subscribers synchronously.
// No build tags: fully testable outside a browser.
package signals

import "sync"

// Subscription identifies one registered callback on a Signal.
// The zero value is an inert subscription that unsubscribes nothing.
type Subscription struct {
	owner any // the issuing *Signal[T]
	id    uint64
}

// Active reports whether the subscription was issued by a live signal.
func (s Subscription) Active() bool {
	return s.owner != nil && s.id != 0
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Signal[T] is a reactive value that notifies subscribers when changed.
type Signal[T any] struct {
	mu     sync.RWMutex
	value  T
	subs   []subscriber[T]
	nextID uint64
	closed bool
}

// New creates a Signal with an initial value.
func New[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies all subscribers.
func (s *Signal[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update applies fn to the current value under the write lock, stores the
// result and notifies all subscribers with it before returning.
func (s *Signal[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	// Callbacks run outside the lock so they may read the signal or
	// (un)subscribe; such changes apply from the next notification on.
	for _, sub := range subs {
		sub.fn(v)
	}
	return v
}

// Subscribe registers a callback fired after every change.
// Call Unsubscribe with the returned handle in OnUnmount to avoid memory leaks.
// Subscribing to a closed signal returns an inert subscription.
func (s *Signal[T]) Subscribe(fn func(T)) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || fn == nil {
		return Subscription{}
	}
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: s.nextID, fn: fn})
	return Subscription{owner: s, id: s.nextID}
}

// Unsubscribe removes the callback registered under sub.
// Unknown, already removed or foreign subscriptions are ignored.
func (s *Signal[T]) Unsubscribe(sub Subscription) {
	if !sub.Active() || sub.owner != any(s) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.subs {
		if existing.id == sub.id {
			// Build a fresh slice: a notification in flight may still hold the old one.
			subs := make([]subscriber[T], 0, len(s.subs)-1)
			subs = append(subs, s.subs[:i]...)
			s.subs = append(subs, s.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of registered callbacks.
func (s *Signal[T]) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Close drops every subscriber. Later Subscribe calls return inert handles;
// Set keeps updating the value without notifying anyone.
func (s *Signal[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = nil
}

// Closed reports whether Close has been called.
func (s *Signal[T]) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
