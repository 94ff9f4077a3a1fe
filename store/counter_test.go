package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_StartsAtZero(t *testing.T) {
	assert.Equal(t, 0, New().Count())
}

func TestCounter_Increments(t *testing.T) {
	for _, n := range []int{0, 1, 2, 17, 250} {
		c := New()
		for i := 0; i < n; i++ {
			c.Increment()
		}
		assert.Equal(t, n, c.Count(), "after %d increments", n)
	}
}

func TestCounter_DecrementsBelowZero(t *testing.T) {
	for _, n := range []int{1, 3, 40} {
		c := New()
		for i := 0; i < n; i++ {
			c.Decrement()
		}
		assert.Equal(t, -n, c.Count(), "after %d decrements", n)
	}
}

func TestCounter_IncrementThenDecrementRestores(t *testing.T) {
	for _, start := range []int{-100, -1, 0, 1, 99} {
		c := NewWithCount(start)

		c.Increment()
		c.Decrement()

		assert.Equal(t, start, c.Count())
	}
}

func TestCounter_IncIncDec(t *testing.T) {
	c := New()

	c.Increment()
	c.Increment()
	c.Decrement()

	assert.Equal(t, 1, c.Count())
}

func TestCounter_OneNotificationPerMutation(t *testing.T) {
	// Arrange
	c := New()
	var a, b []int
	c.Subscribe(func(n int) { a = append(a, n) })
	c.Subscribe(func(n int) { b = append(b, n) })

	// Act
	c.Increment()
	c.Increment()
	c.Decrement()

	// Assert: each subscriber saw every mutation exactly once, in order
	assert.Equal(t, []int{1, 2, 1}, a)
	assert.Equal(t, []int{1, 2, 1}, b)
}

func TestCounter_NotificationDeliveredBeforeReturn(t *testing.T) {
	c := New()
	delivered := false
	c.Subscribe(func(int) { delivered = true })

	c.Increment()

	assert.True(t, delivered)
}

func TestCounter_Unsubscribe(t *testing.T) {
	c := New()
	var calls int
	sub := c.Subscribe(func(int) { calls++ })

	c.Increment()
	c.Unsubscribe(sub)
	c.Unsubscribe(sub)
	c.Increment()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, c.Subscribers())
}

func TestCounter_UnsubscribeZeroHandleIgnored(t *testing.T) {
	c := New()
	var calls int
	c.Subscribe(func(int) { calls++ })

	c.Unsubscribe(Subscription{})
	c.Increment()

	assert.Equal(t, 1, calls)
}

// A handle issued by another counter must not remove anything here, even
// when its sequence number collides with a local one.
func TestCounter_UnsubscribeForeignHandleIgnored(t *testing.T) {
	// Arrange
	a, b := New(), New()
	var calls int
	a.Subscribe(func(int) { calls++ })
	foreign := b.Subscribe(func(int) {})

	// Act
	a.Unsubscribe(foreign)
	a.Increment()

	// Assert
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, a.Subscribers())
	assert.Equal(t, 1, b.Subscribers())
}

// Two surfaces sharing one counter read the same value without talking to each other.
func TestRef_SharedSurfacesObserveSameCount(t *testing.T) {
	parent := New().Share()
	child := parent.Clone()

	parent.Store().Increment()
	assert.Equal(t, 1, child.Store().Count())

	child.Store().Increment()
	assert.Equal(t, 2, parent.Store().Count())
	assert.Same(t, parent.Store(), child.Store())
}

func TestRef_LastReleaseClosesCounter(t *testing.T) {
	parent := New().Share()
	child := parent.Clone()
	var calls int
	child.Store().Subscribe(func(int) { calls++ })
	require.Equal(t, 2, parent.Refs())

	parent.Release()
	parent.Release()
	assert.False(t, child.Store().Closed(), "a clone keeps the counter alive")
	assert.Equal(t, 1, child.Refs())

	child.Store().Increment()
	assert.Equal(t, 1, calls)

	child.Release()
	assert.True(t, child.Store().Closed())
	assert.Equal(t, 0, child.Refs())

	child.Store().Increment()
	assert.Equal(t, 1, calls, "no notification after close")
	assert.Equal(t, 2, child.Store().Count())
}

func TestCounter_ConcurrentMutations(t *testing.T) {
	c := New()
	var mu sync.Mutex
	var notified int
	c.Subscribe(func(int) {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); c.Increment() }()
		go func() { defer wg.Done(); c.Decrement() }()
	}
	wg.Wait()

	assert.Equal(t, 0, c.Count())
	assert.Equal(t, 100, notified)
}
