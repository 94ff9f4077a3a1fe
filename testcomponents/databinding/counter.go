// Package databinding holds a small component used to exercise store-driven
// re-rendering through the test renderer.
package databinding

import (
	"github.com/vcrobe/nojs-counter/internal/app/components"
	"github.com/vcrobe/nojs-counter/runtime"
	"github.com/vcrobe/nojs-counter/store"
	"github.com/vcrobe/nojs-counter/vdom"
)

// Counter binds a store's count and a local label into two paragraphs.
type Counter struct {
	runtime.ComponentBase

	Store *store.Counter
	Label string

	sub store.Subscription
}

func (c *Counter) OnMount() {
	c.sub = c.Store.Subscribe(func(int) { c.StateHasChanged() })
}

func (c *Counter) OnUnmount() {
	c.Store.Unsubscribe(c.sub)
}

// Increment increases the stored count; the subscription triggers the re-render.
func (c *Counter) Increment() {
	c.Store.Increment()
}

// SetLabel updates the label and triggers a re-render.
func (c *Counter) SetLabel(newLabel string) {
	c.Label = newLabel
	c.StateHasChanged()
}

func (c *Counter) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Div(nil,
		vdom.Paragraph(components.CountLabel("Count", c.Store.Count()), nil),
		vdom.Paragraph("Label: "+c.Label, nil),
	)
}
