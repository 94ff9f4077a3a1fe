package runtime

import "github.com/vcrobe/nojs-counter/vdom"

// Renderer defines the minimal set of runtime operations used by Render() code.
// Both the Engine and the in-memory test renderer implement it.
type Renderer interface {
	// RenderChild is used to render child components.
	// The key parameter uniquely identifies the component instance for state preservation.
	RenderChild(key string, childWithProps Component) *vdom.VNode

	// ReRender requests that the renderer re-run the render cycle.
	// Used by StateHasChanged() when component state changes.
	ReRender()

	// Navigate performs client-side navigation to the given path.
	Navigate(path string) error
}

// NavigationManager resolves paths to components for the renderer.
type NavigationManager interface {
	Navigate(path string) error
}

// Surface displays rendered trees. Present receives the previous tree (nil on
// the first render) and the new one.
type Surface interface {
	Present(prev, next *vdom.VNode) error
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(prev, next *vdom.VNode) error

// Present calls f(prev, next).
func (f SurfaceFunc) Present(prev, next *vdom.VNode) error {
	return f(prev, next)
}
