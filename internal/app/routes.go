package app

import (
	"github.com/vcrobe/nojs-counter/internal/app/components"
	"github.com/vcrobe/nojs-counter/router"
	"github.com/vcrobe/nojs-counter/runtime"
)

// Routes returns the page table. Counter pages receive their own clone of
// the shared reference and release it on unmount.
func (a *App) Routes() []router.Route {
	return []router.Route{
		{
			Path:  "/",
			Title: "Counter",
			Factory: func(map[string]string) runtime.Component {
				return components.NewCounterView(a.Ref())
			},
		},
		{
			Path:  "/shared",
			Title: "Parent & child",
			Factory: func(map[string]string) runtime.Component {
				return components.NewParentCounterView(a.Ref())
			},
		},
		{
			Path:  "/debug",
			Title: "Debug",
			Factory: func(map[string]string) runtime.Component {
				return &components.DebugView{}
			},
		},
	}
}

func notFound(params map[string]string) runtime.Component {
	return &components.NotFound{Path: params["path"]}
}
