package app

import (
	"github.com/sirupsen/logrus"

	"github.com/vcrobe/nojs-counter/console"
	"github.com/vcrobe/nojs-counter/internal/app/components"
	"github.com/vcrobe/nojs-counter/internal/metrics"
	"github.com/vcrobe/nojs-counter/router"
	"github.com/vcrobe/nojs-counter/runtime"
	"github.com/vcrobe/nojs-counter/vdom"
)

// Surface kinds. KindPrerender mounts are rendered once for static markup;
// components skip their mount side effects there.
const (
	KindWeb       = "web"
	KindTUI       = "tui"
	KindPrerender = "ssr"
)

// Mount is one live render surface: an engine presenting to a surface and a
// router choosing its root component.
type Mount struct {
	Engine *runtime.Engine
	Router *router.Router

	kind      string
	name      string
	unmounted func()
}

// Mount renders path onto surface. Kind labels metrics (KindWeb, KindTUI,
// KindPrerender);
// name identifies this surface in logs.
func (a *App) Mount(kind, name string, surface runtime.Surface, path string) (*Mount, error) {
	counted := runtime.SurfaceFunc(func(prev, next *vdom.VNode) error {
		metrics.RecordRender(kind)
		return surface.Present(prev, next)
	})

	m := &Mount{
		Engine: runtime.NewEngine(name, counted, nil),
		Router: router.New(a.Routes()),
		kind:   kind,
		name:   name,
	}
	m.Engine.SetPrerendering(kind == KindPrerender)
	m.Router.HandleNotFound(notFound)
	m.Engine.SetNavigator(m.Router)

	err := m.Router.Start(path, func(comp runtime.Component, key string) {
		m.Engine.SetCurrentComponent(comp, key)
		m.Engine.ReRender()
	})
	if err != nil {
		m.Engine.Close()
		return nil, err
	}

	m.unmounted = metrics.SurfaceMounted(kind)
	console.With(logrus.Fields{"surface": name, "kind": kind, "path": path}).Info("surface mounted")
	return m, nil
}

// Dispatch clicks the element with the given id and records counter
// mutations for metrics.
func (m *Mount) Dispatch(id string) error {
	if err := m.Engine.Dispatch(id); err != nil {
		return err
	}
	switch id {
	case components.IncrementID, components.ParentIncrementID, components.ChildIncrementID:
		metrics.RecordMutation("increment", m.kind)
	case components.DecrementID:
		metrics.RecordMutation("decrement", m.kind)
	}
	return nil
}

// Navigate switches the surface to another page.
func (m *Mount) Navigate(path string) error {
	return m.Engine.Navigate(path)
}

// Close unmounts every component, releasing their store references.
func (m *Mount) Close() {
	m.Engine.Close()
	if m.unmounted != nil {
		m.unmounted()
		m.unmounted = nil
	}
	console.With(logrus.Fields{"surface": m.name}).Info("surface unmounted")
}
