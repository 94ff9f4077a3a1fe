//go:build !dev

package runtime

import (
	"github.com/sirupsen/logrus"

	"github.com/vcrobe/nojs-counter/vdom"
)

// callOnMount invokes the OnMount lifecycle method in production mode.
// In production mode, panics are recovered and logged to keep the surface alive.
func (e *Engine) callOnMount(mounter Mounter, key string) {
	defer e.recoverPanic("OnMount", key)
	mounter.OnMount()
}

// callOnParametersSet invokes the OnParametersSet lifecycle method in production mode.
func (e *Engine) callOnParametersSet(receiver ParameterReceiver, key string) {
	defer e.recoverPanic("OnParametersSet", key)
	receiver.OnParametersSet()
}

// callOnUnmount invokes the OnUnmount lifecycle method in production mode.
func (e *Engine) callOnUnmount(unmounter Unmounter, key string) {
	defer e.recoverPanic("OnUnmount", key)
	unmounter.OnUnmount()
}

// callRender renders the root in production mode. A panic anywhere in the
// tree is logged and reported as a failed render.
func (e *Engine) callRender(root Component, key string) (tree *vdom.VNode, ok bool) {
	defer e.recoverPanic("Render", key)
	return root.Render(e), true
}

// callHandler invokes an event handler in production mode.
func (e *Engine) callHandler(handler func(), id string) {
	defer e.recoverPanic("click", id)
	handler()
}

func (e *Engine) recoverPanic(hook, key string) {
	if rec := recover(); rec != nil {
		e.log().WithFields(logrus.Fields{"hook": hook, "component": key}).
			Errorf("panic: %v", rec)
	}
}
