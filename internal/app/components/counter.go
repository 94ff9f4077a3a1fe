package components

import (
	"strconv"

	"github.com/vcrobe/nojs-counter/runtime"
	"github.com/vcrobe/nojs-counter/store"
	"github.com/vcrobe/nojs-counter/vdom"
)

// Element ids used by CounterView. Surfaces dispatch clicks by id.
const (
	IncrementID = "increment"
	DecrementID = "decrement"
	CountID     = "count"
)

// CounterView is the single-screen counter: a "Count: N" label with
// decrement and increment buttons. It re-renders on every store change.
type CounterView struct {
	runtime.ComponentBase

	// Store is the view's reference to the counter; the view releases it on unmount.
	Store *store.Ref

	sub store.Subscription
}

// NewCounterView creates a view holding ref.
func NewCounterView(ref *store.Ref) *CounterView {
	return &CounterView{Store: ref}
}

func (c *CounterView) OnMount() {
	c.sub = c.Store.Store().Subscribe(func(int) { c.StateHasChanged() })
}

func (c *CounterView) OnUnmount() {
	c.Store.Store().Unsubscribe(c.sub)
	c.Store.Release()
}

// Increment is bound to the ➕ button.
func (c *CounterView) Increment() {
	c.Store.Store().Increment()
}

// Decrement is bound to the ➖ button.
func (c *CounterView) Decrement() {
	c.Store.Store().Decrement()
}

func (c *CounterView) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Div(map[string]any{"class": "counter"},
		vdom.Heading(CountLabel("Count", c.Store.Store().Count()), map[string]any{"id": CountID}),
		vdom.Div(map[string]any{"class": "controls"},
			vdom.Button("➖", map[string]any{
				"id":         DecrementID,
				"aria-label": "decrement",
				"onClick":    c.Decrement,
			}),
			vdom.Button("➕", map[string]any{
				"id":         IncrementID,
				"aria-label": "increment",
				"onClick":    c.Increment,
			}),
		),
	)
}

// CountLabel formats the text every counter surface displays.
func CountLabel(prefix string, count int) string {
	return prefix + ": " + strconv.Itoa(count)
}
