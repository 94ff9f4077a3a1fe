package components

import (
	"github.com/vcrobe/nojs-counter/console"
	"github.com/vcrobe/nojs-counter/runtime"
	"github.com/vcrobe/nojs-counter/vdom"
)

// DebugView is a static marker page that logs when it appears.
type DebugView struct {
	runtime.ComponentBase

	Appeared bool
}

func (d *DebugView) OnMount() {
	if d.Prerendering() {
		return
	}
	d.Appeared = true
	console.Log("DebugView appeared")
}

func (d *DebugView) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Div(map[string]any{"class": "debug"},
		vdom.Paragraph("🧪 Debug", nil),
	)
}

// NotFound is rendered for unknown paths.
type NotFound struct {
	runtime.ComponentBase

	Path string
}

func (n *NotFound) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Div(map[string]any{"class": "not-found"},
		vdom.Paragraph("Page not found: "+n.Path, nil),
		vdom.Button("Back to counter", map[string]any{
			"id": "home",
			"onClick": func() {
				if err := n.Navigate("/"); err != nil {
					console.Error("Navigation failed:", err.Error())
				}
			},
		}),
	)
}
