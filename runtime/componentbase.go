package runtime

import (
	"fmt"

	"github.com/vcrobe/nojs-counter/console"
)

// ComponentBase is a struct that components can embed to gain access to the
// StateHasChanged method, which triggers a UI re-render.
type ComponentBase struct {
	renderer Renderer // Use interface type, not concrete implementation
}

// SetRenderer is called by the framework's runtime to inject a reference
// to the renderer, enabling StateHasChanged. This method should not be
// called by user code.
func (b *ComponentBase) SetRenderer(r Renderer) {
	b.renderer = r
}

// GetRenderer returns the renderer instance associated with this component.
func (b *ComponentBase) GetRenderer() Renderer {
	return b.renderer
}

// Prerendering reports whether the component is being rendered once for
// static markup rather than onto a live surface.
func (b *ComponentBase) Prerendering() bool {
	p, ok := b.renderer.(interface{ Prerendering() bool })
	return ok && p.Prerendering()
}

// StateHasChanged signals to the framework that the component's state has
// been updated and the UI should be re-rendered to reflect the changes.
func (b *ComponentBase) StateHasChanged() {
	if b.renderer == nil {
		console.Warn("StateHasChanged called, but renderer is nil (component not mounted?)")
		return
	}
	b.renderer.ReRender()
}

// Navigate requests client-side navigation to a new path.
//
// Example usage in a component:
//
//	func (c *MyComponent) HandleClick() {
//	    if err := c.Navigate("/shared"); err != nil {
//	        console.Error("Navigation failed:", err.Error())
//	    }
//	}
//
// Returns an error if the renderer is not set or navigation fails.
func (b *ComponentBase) Navigate(path string) error {
	if b.renderer == nil {
		return fmt.Errorf("navigate to %s: %w", path, ErrNotMounted)
	}
	return b.renderer.Navigate(path)
}
