// Package metrics exports controller outcomes as prometheus collectors.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rpggio/projectboard/internal/state"
)

const namespace = "projectboard"

var _ state.Recorder = (*Recorder)(nil)

// Recorder implements state.Recorder on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	fetches   *prometheus.CounterVec
	mutations *prometheus.CounterVec
	rollbacks prometheus.Counter
	duration  *prometheus.HistogramVec
}

// New creates a recorder with fresh collectors. Go runtime and process
// collectors are registered alongside.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Fetch commands by mode (load, refresh) and outcome.",
		}, []string{"mode", "outcome"}),
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Mutation commands by command and outcome.",
		}, []string{"command", "outcome"}),
		rollbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollbacks_total",
			Help:      "Optimistic updates rolled back after a failed confirmation.",
		}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Time from command issue to resolution.",
			Buckets:   []float64{.05, .1, .25, .35, .5, 1, 2.5, 5},
		}, []string{"command"}),
	}
}

// FetchCompleted records a resolved fetch.
func (r *Recorder) FetchCompleted(refreshing bool, err error, elapsed time.Duration) {
	mode := "load"
	if refreshing {
		mode = "refresh"
	}
	r.fetches.WithLabelValues(mode, outcome(err)).Inc()
	r.duration.WithLabelValues("fetch").Observe(elapsed.Seconds())
}

// MutationCompleted records a resolved or rejected mutation.
func (r *Recorder) MutationCompleted(cmd state.Command, err error, elapsed time.Duration) {
	r.mutations.WithLabelValues(string(cmd), outcome(err)).Inc()
	r.duration.WithLabelValues(string(cmd)).Observe(elapsed.Seconds())
}

// RolledBack counts a rollback.
func (r *Recorder) RolledBack(state.Command) {
	r.rollbacks.Inc()
}

// Handler serves the registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, state.ErrMutationInFlight):
		return "rejected"
	default:
		return "error"
	}
}
