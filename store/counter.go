// Package store holds the application state shared by render surfaces.
package store

import (
	"sync"

	"github.com/vcrobe/nojs-counter/signals"
)

// Subscription is the handle returned by Counter.Subscribe.
type Subscription = signals.Subscription

// Counter holds an integer count. The count only changes through Increment
// and Decrement, and every change is delivered to all subscribers before the
// mutating call returns.
type Counter struct {
	count *signals.Signal[int]
}

// New creates a Counter starting at zero.
func New() *Counter {
	return NewWithCount(0)
}

// NewWithCount creates a Counter starting at initial.
func NewWithCount(initial int) *Counter {
	return &Counter{count: signals.New(initial)}
}

// Increment adds one to the count and notifies subscribers.
func (c *Counter) Increment() {
	c.count.Update(func(n int) int { return n + 1 })
}

// Decrement subtracts one from the count and notifies subscribers.
// There is no lower bound.
func (c *Counter) Decrement() {
	c.count.Update(func(n int) int { return n - 1 })
}

// Count returns the current count.
func (c *Counter) Count() int {
	return c.count.Get()
}

// Subscribe registers fn to receive the new count after every mutation.
func (c *Counter) Subscribe(fn func(count int)) Subscription {
	return c.count.Subscribe(fn)
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (c *Counter) Unsubscribe(sub Subscription) {
	c.count.Unsubscribe(sub)
}

// Subscribers returns the number of active subscriptions.
func (c *Counter) Subscribers() int {
	return c.count.Subscribers()
}

// Close drops all subscriptions. The count stays readable and writable.
func (c *Counter) Close() {
	c.count.Close()
}

// Closed reports whether the counter has been closed.
func (c *Counter) Closed() bool {
	return c.count.Closed()
}

// Share wraps c in a new reference-counted handle holding the first reference.
func (c *Counter) Share() *Ref {
	return &Ref{owner: &owner{counter: c, refs: 1}}
}

type owner struct {
	mu      sync.Mutex
	counter *Counter
	refs    int
}

// Ref is a shared-ownership handle to a Counter. Parent views hand a Clone
// to each child; the counter is closed when the last Ref is released.
type Ref struct {
	owner    *owner
	released bool
}

// Store returns the counter behind the handle.
func (r *Ref) Store() *Counter {
	return r.owner.counter
}

// Clone returns a new handle to the same counter and increments the
// reference count.
func (r *Ref) Clone() *Ref {
	r.owner.mu.Lock()
	defer r.owner.mu.Unlock()
	r.owner.refs++
	return &Ref{owner: r.owner}
}

// Release drops this handle's reference. Releasing the last reference closes
// the counter. A second Release on the same handle does nothing.
func (r *Ref) Release() {
	r.owner.mu.Lock()
	if r.released {
		r.owner.mu.Unlock()
		return
	}
	r.released = true
	r.owner.refs--
	last := r.owner.refs == 0
	r.owner.mu.Unlock()

	if last {
		r.owner.counter.Close()
	}
}

// Refs returns the number of live references to the counter.
func (r *Ref) Refs() int {
	r.owner.mu.Lock()
	defer r.owner.mu.Unlock()
	return r.owner.refs
}
