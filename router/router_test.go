package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-counter/runtime"
	"github.com/vcrobe/nojs-counter/vdom"
)

type page struct {
	runtime.ComponentBase
	name   string
	params map[string]string
}

func (p *page) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Paragraph(p.name, nil)
}

func factory(name string) runtime.ComponentFactory {
	return func(params map[string]string) runtime.Component {
		return &page{name: name, params: params}
	}
}

func TestRouter_StartNavigatesToInitialPath(t *testing.T) {
	r := New([]Route{{Path: "/", Factory: factory("home")}})

	var got *page
	var key string
	err := r.Start("", func(comp runtime.Component, k string) {
		got = comp.(*page)
		key = k
	})

	require.NoError(t, err)
	assert.Equal(t, "home", got.name)
	assert.Equal(t, "/", key)
	assert.Equal(t, "/", r.CurrentPath())
}

func TestRouter_LiteralBeatsParameter(t *testing.T) {
	r := New([]Route{
		{Path: "/count/{start}", Factory: factory("param")},
		{Path: "/count/shared", Factory: factory("literal")},
	})

	var got *page
	require.NoError(t, r.Start("/count/shared", func(comp runtime.Component, _ string) { got = comp.(*page) }))
	assert.Equal(t, "literal", got.name)

	require.NoError(t, r.Navigate("/count/42/"))
	assert.Equal(t, "param", got.name)
	assert.Equal(t, map[string]string{"start": "42"}, got.params)
}

func TestRouter_QueryStringIgnored(t *testing.T) {
	r := New([]Route{{Path: "/shared", Factory: factory("shared")}})

	assert.True(t, r.Match("/shared?tab=1"))
	assert.False(t, r.Match("/other"))
}

func TestRouter_NoRoute(t *testing.T) {
	r := New([]Route{{Path: "/", Factory: factory("home")}})
	called := false
	require.NoError(t, r.Start("/", func(runtime.Component, string) { called = true }))
	called = false

	err := r.Navigate("/missing")

	assert.True(t, errors.Is(err, ErrNoRoute))
	assert.False(t, called)
	assert.Equal(t, "/", r.CurrentPath(), "failed navigation keeps the current path")
}

func TestRouter_NotFoundHandler(t *testing.T) {
	r := New(nil)
	r.HandleNotFound(factory("404"))

	var got *page
	require.NoError(t, r.Start("/nowhere", func(comp runtime.Component, _ string) { got = comp.(*page) }))

	assert.Equal(t, "404", got.name)
	assert.Equal(t, "/nowhere", got.params["path"])
}

func TestRouter_DrivesEngine(t *testing.T) {
	var presented []*vdom.VNode
	engine := runtime.NewEngine("test", runtime.SurfaceFunc(func(_, next *vdom.VNode) error {
		presented = append(presented, next)
		return nil
	}), nil)
	r := New([]Route{
		{Path: "/", Factory: factory("home")},
		{Path: "/shared", Factory: factory("shared")},
	})
	engine.SetNavigator(r)

	require.NoError(t, r.Start("/", func(comp runtime.Component, key string) {
		engine.SetCurrentComponent(comp, key)
		engine.ReRender()
	}))
	require.NoError(t, engine.Navigate("/shared"))

	require.Len(t, presented, 2)
	assert.Equal(t, "home", presented[0].Content)
	assert.Equal(t, "shared", presented[1].Content)
	assert.Equal(t, "/shared", engine.CurrentKey())
}

func TestRouter_LookupNormalizesPath(t *testing.T) {
	r := New([]Route{
		{Path: "/", Title: "Counter", Factory: factory("home")},
		{Path: "/shared", Title: "Parent & child", Factory: factory("shared")},
	})

	route, ok := r.Lookup("/shared/?tab=1")
	require.True(t, ok)
	assert.Equal(t, "Parent & child", route.Title)

	_, ok = r.Lookup("/missing")
	assert.False(t, ok)
}
