//go:build !dev

package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-counter/vdom"
)

type panicky struct {
	ComponentBase
}

func (p *panicky) OnMount() { panic("mount exploded") }

func (p *panicky) Render(r Renderer) *vdom.VNode {
	return vdom.Button("boom", map[string]any{"id": "boom", "onClick": func() { panic("click exploded") }})
}

func TestEngine_ProdRecoversPanics(t *testing.T) {
	surface := &recordingSurface{}
	engine := NewEngine("test", surface, nil)
	engine.SetCurrentComponent(&panicky{}, "/")

	assert.NotPanics(t, engine.ReRender)
	require.Len(t, surface.presented, 1)

	assert.NotPanics(t, func() {
		require.NoError(t, engine.Dispatch("boom"))
	})
}

// flaky panics in the render that follows its first click.
type flaky struct {
	ComponentBase
	boom bool
}

func (f *flaky) Render(r Renderer) *vdom.VNode {
	if f.boom {
		f.boom = false
		panic("render exploded")
	}
	return vdom.Button("b", map[string]any{"id": "b", "onClick": func() {
		f.boom = true
		f.StateHasChanged()
	}})
}

func TestEngine_ProdRenderPanicKeepsEngineAlive(t *testing.T) {
	// Arrange
	surface := &recordingSurface{}
	engine := NewEngine("test", surface, nil)
	engine.SetCurrentComponent(&flaky{}, "/")
	engine.ReRender()
	first := engine.Tree()

	// Act: the click's re-render panics
	require.NoError(t, engine.Dispatch("b"))

	// Assert: nothing presented, previous tree kept
	require.Len(t, surface.presented, 1)
	assert.Same(t, first, engine.Tree())

	// Act: the next request renders normally
	engine.ReRender()

	// Assert
	assert.Len(t, surface.presented, 2)
	assert.Same(t, first, surface.prevs[1])
}
