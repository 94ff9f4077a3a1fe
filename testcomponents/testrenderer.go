// Package testcomponents provides an in-memory render surface for tests.
package testcomponents

import (
	"fmt"

	"github.com/vcrobe/nojs-counter/runtime"
	"github.com/vcrobe/nojs-counter/vdom"
)

// TestRenderer is a minimal test harness that implements runtime.Renderer
// for in-memory testing without a browser or terminal.
//
// It captures VDOM output from component renders and allows tests to:
// - Attach components to the renderer
// - Trigger re-renders via StateHasChanged()
// - Click elements by id and inspect the resulting VDOM tree
type TestRenderer struct {
	currentVDOM *vdom.VNode
	component   runtime.Component
	children    map[string]runtime.Component
	mounted     bool
	renders     int
	paths       []string
}

// Compile-time assertion to ensure TestRenderer implements runtime.Renderer interface.
var _ runtime.Renderer = (*TestRenderer)(nil)

// NewTestRenderer creates a test renderer attached to the given component.
func NewTestRenderer(comp runtime.Component) *TestRenderer {
	r := &TestRenderer{
		component: comp,
		children:  make(map[string]runtime.Component),
	}
	comp.SetRenderer(r)
	return r
}

// RenderRoot performs the initial render of the component, calling OnMount
// first if the component implements runtime.Mounter.
func (r *TestRenderer) RenderRoot() *vdom.VNode {
	if !r.mounted {
		r.mounted = true
		if m, ok := r.component.(runtime.Mounter); ok {
			m.OnMount()
		}
	}
	r.ReRender()
	return r.currentVDOM
}

// ReRender performs a re-render of the component.
// This is called by StateHasChanged() when the component requests a re-render.
func (r *TestRenderer) ReRender() {
	r.renders++
	if p, ok := r.component.(runtime.ParameterReceiver); ok {
		p.OnParametersSet()
	}
	r.currentVDOM = r.component.Render(r)
}

// GetCurrentVDOM returns the most recently rendered VDOM tree.
// Tests use this to inspect the component's output after renders.
func (r *TestRenderer) GetCurrentVDOM() *vdom.VNode {
	return r.currentVDOM
}

// Renders returns how many times the root has been rendered.
func (r *TestRenderer) Renders() int {
	return r.renders
}

// RenderChild keeps the first instance seen under key, mounting it once.
func (r *TestRenderer) RenderChild(key string, child runtime.Component) *vdom.VNode {
	instance, ok := r.children[key]
	if !ok {
		instance = child
		r.children[key] = instance
		instance.SetRenderer(r)
		if m, ok := instance.(runtime.Mounter); ok {
			m.OnMount()
		}
	} else if instance != child {
		if u, ok := instance.(runtime.PropUpdater); ok {
			u.ApplyProps(child)
		}
	}
	return instance.Render(r)
}

// Child returns the preserved child instance rendered under key.
func (r *TestRenderer) Child(key string) runtime.Component {
	return r.children[key]
}

// Click invokes the click handler of the element with the given id.
func (r *TestRenderer) Click(id string) error {
	node := vdom.FindByID(r.currentVDOM, id)
	if node == nil || node.OnClick == nil {
		return fmt.Errorf("click %q: %w", id, runtime.ErrNoHandler)
	}
	node.OnClick()
	return nil
}

// Unmount calls OnUnmount on every child and then on the root.
func (r *TestRenderer) Unmount() {
	for key, child := range r.children {
		if u, ok := child.(runtime.Unmounter); ok {
			u.OnUnmount()
		}
		delete(r.children, key)
	}
	if u, ok := r.component.(runtime.Unmounter); ok {
		u.OnUnmount()
	}
	r.mounted = false
}

// Navigate records the path; tests inspect it with Paths.
func (r *TestRenderer) Navigate(path string) error {
	r.paths = append(r.paths, path)
	return nil
}

// Paths returns every path passed to Navigate.
func (r *TestRenderer) Paths() []string {
	return r.paths
}
