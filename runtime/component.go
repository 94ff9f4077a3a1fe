package runtime

import "github.com/vcrobe/nojs-counter/vdom"

// Component interface defines the structure for all components in the framework.
// The Render method accepts the Renderer interface (not concrete type) so both the
// live engine and test implementations can use it.
type Component interface {
	// Render generates the virtual DOM tree for this component.
	// The renderer parameter provides access to framework services like RenderChild.
	Render(r Renderer) *vdom.VNode

	// SetRenderer is called by the framework to attach the renderer to the component.
	// This enables StateHasChanged() to trigger re-renders.
	SetRenderer(r Renderer)
}

// ComponentFactory builds a fresh component for a route. Params holds the
// values of the route's {placeholders}.
type ComponentFactory func(params map[string]string) Component

// Mounter is implemented by components that need setup before their first render.
type Mounter interface {
	OnMount()
}

// ParameterReceiver is implemented by components that react to new
// parameters before every render, including the first.
type ParameterReceiver interface {
	OnParametersSet()
}

// Unmounter is implemented by components that release resources, such as
// store subscriptions, when they leave the tree.
type Unmounter interface {
	OnUnmount()
}

// PropUpdater copies props from a freshly constructed component onto the
// instance the renderer preserved from an earlier render.
type PropUpdater interface {
	ApplyProps(from Component)
}
