package app

import (
	"github.com/sirupsen/logrus"

	"github.com/vcrobe/nojs-counter/console"
	"github.com/vcrobe/nojs-counter/internal/config"
	"github.com/vcrobe/nojs-counter/internal/metrics"
	"github.com/vcrobe/nojs-counter/store"
)

// App holds the process-wide state shared by every surface.
type App struct {
	Config config.Config

	root        *store.Ref
	stopMetrics func()
}

// New creates the shared counter from cfg and starts observing it.
func New(cfg config.Config) *App {
	counter := store.NewWithCount(cfg.InitialCount)
	console.With(logrus.Fields{"initial_count": cfg.InitialCount}).Info("counter store created")
	return &App{
		Config:      cfg,
		root:        counter.Share(),
		stopMetrics: metrics.Observe(counter),
	}
}

// Store returns the shared counter.
func (a *App) Store() *store.Counter {
	return a.root.Store()
}

// Ref returns a new reference to the shared counter. Callers release it.
func (a *App) Ref() *store.Ref {
	return a.root.Clone()
}

// Close drops the App's own reference. The counter closes once every
// mounted component has released its clone as well.
func (a *App) Close() {
	a.stopMetrics()
	a.root.Release()
}
