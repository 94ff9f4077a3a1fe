package runtime

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vcrobe/nojs-counter/console"
	"github.com/vcrobe/nojs-counter/vdom"
)

// Compile-time assertion to ensure the Engine implements the Renderer interface.
var _ Renderer = (*Engine)(nil)

// Engine is the build-tag-free Renderer used by every live surface.
// It manages the component instance tree and handles the rendering lifecycle.
//
// Renders are serialized per engine. A ReRender requested while a render is in
// progress (from another goroutine or from a lifecycle hook) is coalesced
// into one more pass of the running cycle instead of blocking.
type Engine struct {
	mu        sync.Mutex
	surface   Surface
	navigator NavigationManager
	name      string

	current    Component // The root component (set by router or directly)
	currentKey string
	prevVDOM   *vdom.VNode // Previous VDOM tree handed to the surface

	rendering  bool
	pending    bool
	prerender  bool
	closed     bool
	closeAfter bool

	// Owned by the goroutine holding the rendering flag.
	instances   map[string]Component
	activeKeys  map[string]bool
	mountedRoot Component
	rootKey     string
}

// NewEngine creates a renderer that hands every new tree to surface.
// If navigator is nil, Navigate returns ErrNoRouter.
func NewEngine(name string, surface Surface, navigator NavigationManager) *Engine {
	return &Engine{
		name:       name,
		surface:    surface,
		navigator:  navigator,
		instances:  make(map[string]Component),
		activeKeys: make(map[string]bool),
	}
}

// SetNavigator attaches the NavigationManager, typically a router that was
// built after the engine.
func (e *Engine) SetNavigator(n NavigationManager) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.navigator = n
}

// SetCurrentComponent sets the component to be rendered under key.
// This is typically called by the router's onChange callback when navigation occurs.
// The previous root, if different, is unmounted on the next render.
func (e *Engine) SetCurrentComponent(comp Component, key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = comp
	e.currentKey = key
}

// SetPrerendering marks the engine as a one-off render whose output is
// captured and discarded, such as server-side markup for a page that a live
// session takes over. Components can skip side effects with
// ComponentBase.Prerendering.
func (e *Engine) SetPrerendering(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prerender = on
}

// Prerendering reports whether the engine only prerenders.
func (e *Engine) Prerendering() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prerender
}

// CurrentKey returns the key of the current root component.
func (e *Engine) CurrentKey() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentKey
}

// Tree returns the most recently rendered VDOM tree.
func (e *Engine) Tree() *vdom.VNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prevVDOM
}

// ReRender runs the render cycle and presents the result.
// A render that fails keeps the previous tree on the surface.
func (e *Engine) ReRender() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	if e.rendering {
		e.pending = true
		e.mu.Unlock()
		return
	}
	e.rendering = true

	finished := false
	defer func() {
		if finished {
			return
		}
		// Unwinding from a panic in the unlocked section; the engine must
		// stay usable for the next ReRender.
		e.mu.Lock()
		e.rendering = false
		e.pending = false
		e.mu.Unlock()
	}()

	for {
		e.pending = false
		root, key, prev := e.current, e.currentKey, e.prevVDOM
		e.mu.Unlock()

		next, ok := e.renderRoot(root, key)
		if ok && e.surface != nil {
			if err := e.surface.Present(prev, next); err != nil {
				e.log().WithError(err).Error("present failed")
			}
		}

		e.mu.Lock()
		if ok {
			e.prevVDOM = next
		}
		if !e.pending || e.closeAfter {
			break
		}
	}

	e.rendering = false
	if e.closeAfter {
		e.closeAfter = false
		e.rendering = true
		e.mu.Unlock()
		e.unmountAll()
		e.mu.Lock()
		e.rendering = false
	}
	finished = true
	e.mu.Unlock()
}

// renderRoot starts the rendering process for the entire tree.
// It reports false when the root's Render failed.
func (e *Engine) renderRoot(root Component, key string) (*vdom.VNode, bool) {
	// Reset activeKeys for this render cycle
	e.activeKeys = make(map[string]bool)

	if e.mountedRoot != nil && (e.mountedRoot != root || e.rootKey != key) {
		if unmounter, ok := e.mountedRoot.(Unmounter); ok {
			e.callOnUnmount(unmounter, e.rootKey)
		}
		e.mountedRoot = nil
	}

	if root == nil {
		e.cleanupUnmountedComponents()
		return nil, true
	}

	// Ensure the component has a reference to the renderer for StateHasChanged and Navigate.
	root.SetRenderer(e)

	if e.mountedRoot == nil {
		e.mountedRoot = root
		e.rootKey = key
		// Call OnMount only once, before first render
		if mounter, ok := root.(Mounter); ok {
			e.callOnMount(mounter, key)
		}
	}

	// Call OnParametersSet before every render (including first)
	if receiver, ok := root.(ParameterReceiver); ok {
		e.callOnParametersSet(receiver, key)
	}

	tree, ok := e.callRender(root, key)
	if !ok {
		// activeKeys is partial; unmounting now would drop live children.
		return nil, false
	}

	// Clean up components that were not rendered in this cycle
	e.cleanupUnmountedComponents()
	return tree, true
}

// RenderChild renders a child component. It handles the core logic of
// instance creation and reuse: the first instance seen under a key is kept
// for as long as the key is rendered, so its state survives re-renders.
func (e *Engine) RenderChild(key string, childWithProps Component) *vdom.VNode {
	fullKey := e.rootKey + "/" + key
	e.activeKeys[fullKey] = true

	instance, exists := e.instances[fullKey]
	isFirstRender := false

	if !exists {
		instance = childWithProps
		e.instances[fullKey] = instance
		isFirstRender = true
	} else if instance != childWithProps {
		// Preserve the existing instance to keep state; apply new props to it.
		if updater, ok := instance.(PropUpdater); ok {
			updater.ApplyProps(childWithProps)
		}
	}

	instance.SetRenderer(e)

	if isFirstRender {
		if mounter, ok := instance.(Mounter); ok {
			e.callOnMount(mounter, fullKey)
		}
	}

	if receiver, ok := instance.(ParameterReceiver); ok {
		e.callOnParametersSet(receiver, fullKey)
	}

	return instance.Render(e)
}

// cleanupUnmountedComponents removes components that are no longer in the tree
// and calls their OnUnmount lifecycle method if they implement Unmounter.
func (e *Engine) cleanupUnmountedComponents() {
	for key, instance := range e.instances {
		if e.activeKeys[key] {
			continue
		}
		if unmounter, ok := instance.(Unmounter); ok {
			e.callOnUnmount(unmounter, key)
		}
		delete(e.instances, key)
	}
}

// Dispatch invokes the click handler of the element with the given id in the
// latest rendered tree. The handler runs without holding engine locks, so it
// may mutate stores whose subscribers re-render this engine.
func (e *Engine) Dispatch(id string) error {
	e.mu.Lock()
	tree := e.prevVDOM
	e.mu.Unlock()

	node := vdom.FindByID(tree, id)
	if node == nil || node.OnClick == nil {
		return fmt.Errorf("dispatch %q: %w", id, ErrNoHandler)
	}
	e.callHandler(node.OnClick, id)
	return nil
}

// Navigate delegates to the NavigationManager (router) to perform navigation.
func (e *Engine) Navigate(path string) error {
	e.mu.Lock()
	nav := e.navigator
	e.mu.Unlock()

	if nav == nil {
		return fmt.Errorf("navigate to %s: %w", path, ErrNoRouter)
	}
	return nav.Navigate(path)
}

// Close unmounts every component. Later ReRender calls are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.rendering {
		// The running cycle unmounts once it finishes.
		e.closeAfter = true
		e.mu.Unlock()
		return
	}
	e.rendering = true
	e.mu.Unlock()

	e.unmountAll()

	e.mu.Lock()
	e.rendering = false
	e.mu.Unlock()
}

func (e *Engine) unmountAll() {
	e.activeKeys = make(map[string]bool)
	e.cleanupUnmountedComponents()
	if e.mountedRoot != nil {
		if unmounter, ok := e.mountedRoot.(Unmounter); ok {
			e.callOnUnmount(unmounter, e.rootKey)
		}
		e.mountedRoot = nil
	}
}

func (e *Engine) log() *logrus.Entry {
	return console.With(logrus.Fields{"renderer": e.name})
}
