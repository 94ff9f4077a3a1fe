// Package router maps paths to component factories and drives the renderer
// when navigation occurs.
package router

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vcrobe/nojs-counter/console"
	"github.com/vcrobe/nojs-counter/runtime"
)

// ErrNoRoute is returned when no route matches a path and no not-found
// handler is registered.
var ErrNoRoute = errors.New("no route")

// Route binds a path pattern to a component factory.
// The pattern can contain parameters in curly braces, e.g., "/count/{start}".
type Route struct {
	Path    string
	Title   string
	Factory runtime.ComponentFactory
}

// ChangeFunc receives the component for the new route and a unique key for
// reconciliation.
type ChangeFunc func(comp runtime.Component, key string)

// Compile-time assertion to ensure Router implements runtime.NavigationManager.
var _ runtime.NavigationManager = (*Router)(nil)

// Router resolves paths for one render surface. Each surface owns its
// Router so surfaces navigate independently.
type Router struct {
	mu          sync.Mutex
	routes      []Route
	notFound    runtime.ComponentFactory
	currentPath string
	onChange    ChangeFunc
}

// New creates a router over routes. More specific patterns (fewer
// parameters) win when several match.
func New(routes []Route) *Router {
	sorted := make([]Route, len(routes))
	copy(sorted, routes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return paramCount(sorted[i].Path) < paramCount(sorted[j].Path)
	})
	return &Router{routes: sorted}
}

// HandleNotFound sets the factory used when no route matches.
func (r *Router) HandleNotFound(factory runtime.ComponentFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound = factory
}

// Start registers the change callback and navigates to initialPath.
func (r *Router) Start(initialPath string, onChange ChangeFunc) error {
	r.mu.Lock()
	r.onChange = onChange
	r.mu.Unlock()

	if initialPath == "" {
		initialPath = "/"
	}
	return r.Navigate(initialPath)
}

// Navigate builds the component for path and hands it to the change callback.
func (r *Router) Navigate(path string) error {
	r.mu.Lock()
	comp, err := r.resolve(path)
	if err != nil {
		r.mu.Unlock()
		console.With(logrus.Fields{"path": path}).Warn("navigation failed")
		return err
	}
	r.currentPath = path
	onChange := r.onChange
	r.mu.Unlock()

	console.With(logrus.Fields{"path": path}).Debug("navigate")
	if onChange != nil {
		onChange(comp, path)
	}
	return nil
}

// CurrentPath returns the current route path.
func (r *Router) CurrentPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentPath
}

// Match reports whether any route matches path.
func (r *Router) Match(path string) bool {
	_, ok := r.Lookup(path)
	return ok
}

// Lookup returns the route that path resolves to, ignoring trailing slashes
// and query strings. The not-found handler is not consulted.
func (r *Router) Lookup(path string) (Route, bool) {
	for _, route := range r.routes {
		if matchesPattern(route.Path, path) {
			return route, true
		}
	}
	return Route{}, false
}

// Routes returns the registered routes.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

func (r *Router) resolve(path string) (runtime.Component, error) {
	for _, route := range r.routes {
		if matchesPattern(route.Path, path) {
			return route.Factory(extractParams(route.Path, path)), nil
		}
	}
	if r.notFound != nil {
		return r.notFound(map[string]string{"path": path}), nil
	}
	return nil, fmt.Errorf("%w for path: %s", ErrNoRoute, path)
}

func paramCount(pattern string) int {
	return strings.Count(pattern, "{")
}

// matchesPattern checks if an actual path matches a route pattern.
func matchesPattern(pattern, path string) bool {
	pattern = normalize(pattern)
	path = normalize(path)

	if pattern == path {
		return true
	}

	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i := range patternParts {
		if isParam(patternParts[i]) {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if patternParts[i] != pathParts[i] {
			return false
		}
	}

	return true
}

// extractParams parses URL parameters from a path based on route pattern.
func extractParams(routePath, actualPath string) map[string]string {
	routeParts := strings.Split(strings.Trim(normalize(routePath), "/"), "/")
	actualParts := strings.Split(strings.Trim(normalize(actualPath), "/"), "/")

	params := make(map[string]string)
	for i := range routeParts {
		if i >= len(actualParts) {
			break
		}
		if isParam(routeParts[i]) {
			params[strings.Trim(routeParts[i], "{}")] = actualParts[i]
		}
	}
	return params
}

func isParam(part string) bool {
	return strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}")
}

func normalize(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return "/"
	}
	return p
}
