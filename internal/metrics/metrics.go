// Package metrics exposes Prometheus collectors for the counter store and
// its render surfaces.
package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vcrobe/nojs-counter/store"
)

const namespace = "nojs_counter"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	counterValue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "count",
			Help:      "Current value of the shared counter.",
		},
	)

	notifications = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "notifications_total",
			Help:      "Change notifications observed on the shared counter.",
		},
	)

	mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Counter mutations by operation and the surface that issued them.",
		},
		[]string{"op", "surface"},
	)

	surfacesActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "surface",
			Name:      "active",
			Help:      "Render surfaces currently mounted.",
		},
		[]string{"kind"},
	)

	renders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "surface",
			Name:      "renders_total",
			Help:      "Render passes presented by surfaces.",
		},
		[]string{"kind"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"method", "path"},
	)
)

func init() {
	Registry.MustRegister(
		counterValue,
		notifications,
		mutations,
		surfacesActive,
		renders,
		httpRequests,
		httpDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Observe subscribes to c and keeps the count gauge and notification counter
// current. The returned function unsubscribes.
func Observe(c *store.Counter) (stop func()) {
	counterValue.Set(float64(c.Count()))
	sub := c.Subscribe(func(n int) {
		notifications.Inc()
		counterValue.Set(float64(n))
	})
	return func() { c.Unsubscribe(sub) }
}

// RecordMutation counts an increment or decrement issued by a surface.
func RecordMutation(op, surface string) {
	mutations.WithLabelValues(op, surface).Inc()
}

// SurfaceMounted increments the active gauge for kind and returns the
// matching decrement.
func SurfaceMounted(kind string) (unmounted func()) {
	surfacesActive.WithLabelValues(kind).Inc()
	return func() { surfacesActive.WithLabelValues(kind).Dec() }
}

// RecordRender counts one presented render pass.
func RecordRender(kind string) {
	renders.WithLabelValues(kind).Inc()
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets WebSocket upgrades pass through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// canonicalPath keeps label cardinality bounded: only the first segment is kept.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.SplitN(trimmed, "/", 3)
	if parts[0] == "api" && len(parts) > 1 {
		return "/api/" + parts[1]
	}
	return "/" + parts[0]
}
