package runtime

import "errors"

var (
	// ErrNotMounted is returned when a component has no renderer attached.
	ErrNotMounted = errors.New("component not mounted")

	// ErrNoHandler is returned by Dispatch when no element with the given id
	// has a click handler in the latest render.
	ErrNoHandler = errors.New("no click handler")

	// ErrNoRouter is returned by Navigate when the renderer has no NavigationManager.
	ErrNoRouter = errors.New("no router configured for navigation")
)
