//go:build dev

package runtime

import "github.com/vcrobe/nojs-counter/vdom"

// callOnMount invokes the OnMount lifecycle method in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func (e *Engine) callOnMount(mounter Mounter, key string) {
	mounter.OnMount()
}

// callOnParametersSet invokes the OnParametersSet lifecycle method in development mode.
func (e *Engine) callOnParametersSet(receiver ParameterReceiver, key string) {
	receiver.OnParametersSet()
}

// callOnUnmount invokes the OnUnmount lifecycle method in development mode.
func (e *Engine) callOnUnmount(unmounter Unmounter, key string) {
	unmounter.OnUnmount()
}

// callRender renders the root in development mode; panics propagate.
func (e *Engine) callRender(root Component, key string) (*vdom.VNode, bool) {
	return root.Render(e), true
}

// callHandler invokes an event handler in development mode.
func (e *Engine) callHandler(handler func(), id string) {
	handler()
}
