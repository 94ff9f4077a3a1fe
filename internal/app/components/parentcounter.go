package components

import (
	"github.com/vcrobe/nojs-counter/runtime"
	"github.com/vcrobe/nojs-counter/store"
	"github.com/vcrobe/nojs-counter/vdom"
)

const (
	ParentIncrementID = "parent-increment"
	ChildIncrementID  = "child-increment"
)

// ParentCounterView shows the count and embeds a ChildCounterView that holds
// a clone of the same store reference, so both render the same state.
type ParentCounterView struct {
	runtime.ComponentBase

	Store *store.Ref

	child *ChildCounterView
	sub   store.Subscription
}

// NewParentCounterView creates a parent view holding ref.
func NewParentCounterView(ref *store.Ref) *ParentCounterView {
	return &ParentCounterView{Store: ref}
}

func (p *ParentCounterView) OnMount() {
	// One child for the parent's lifetime: the clone is taken exactly once.
	p.child = &ChildCounterView{Store: p.Store.Clone()}
	p.sub = p.Store.Store().Subscribe(func(int) { p.StateHasChanged() })
}

func (p *ParentCounterView) OnUnmount() {
	p.Store.Store().Unsubscribe(p.sub)
	p.Store.Release()
}

func (p *ParentCounterView) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Div(map[string]any{"class": "parent"},
		vdom.Heading(CountLabel("Parent View Count", p.Store.Store().Count()), nil),
		vdom.Button("Parent Increment", map[string]any{
			"id":      ParentIncrementID,
			"onClick": p.Store.Store().Increment,
		}),
		r.RenderChild("child", p.child),
	)
}

// ChildCounterView renders the shared count it was handed by its parent.
type ChildCounterView struct {
	runtime.ComponentBase

	Store *store.Ref

	sub store.Subscription
}

func (c *ChildCounterView) OnMount() {
	c.sub = c.Store.Store().Subscribe(func(int) { c.StateHasChanged() })
}

func (c *ChildCounterView) OnUnmount() {
	c.Store.Store().Unsubscribe(c.sub)
	c.Store.Release()
}

func (c *ChildCounterView) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Div(map[string]any{"class": "child"},
		vdom.Paragraph(CountLabel("Child View Count", c.Store.Store().Count()), nil),
		vdom.Button("Child Increment", map[string]any{
			"id":      ChildIncrementID,
			"onClick": c.Store.Store().Increment,
		}),
	)
}
