// Package metrics holds the Prometheus counters for the game service. Each
// Metrics owns its registry so tests never collide on registration.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sense"

type Metrics struct {
	registry *prometheus.Registry

	guesses        *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	gamesCompleted *prometheus.CounterVec
	storeFailures  *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	importJobs     *prometheus.CounterVec
	importedTotal  prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		guesses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_total",
			Help:      "Accepted guesses, partitioned by tier and the rule that matched.",
		}, []string{"tier", "match_kind"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guess_rejections_total",
			Help:      "Guesses rejected before evaluation, partitioned by reason.",
		}, []string{"reason"}),
		gamesCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_completed_total",
			Help:      "Finished games, partitioned by outcome.",
		}, []string{"outcome"}),
		storeFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_failures_total",
			Help:      "Failed persistence calls, partitioned by operation.",
		}, []string{"op"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "puzzle_cache_lookups_total",
			Help:      "Puzzle cache lookups, partitioned by result (hit, miss, error).",
		}, []string{"result"}),
		importJobs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_jobs_total",
			Help:      "Puzzle import jobs, partitioned by result.",
		}, []string{"result"}),
		importedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "puzzles_imported_total",
			Help:      "Puzzles written by import jobs.",
		}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// All recorders accept a nil receiver so callers without metrics can skip wiring.

func (m *Metrics) ObserveGuess(tier, matchKind string) {
	if m == nil {
		return
	}
	m.guesses.WithLabelValues(tier, matchKind).Inc()
}

func (m *Metrics) ObserveRejection(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveCompletion(outcome string) {
	if m == nil {
		return
	}
	m.gamesCompleted.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveStoreFailure(op string) {
	if m == nil {
		return
	}
	m.storeFailures.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveCacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveImport(result string, puzzles int) {
	if m == nil {
		return
	}
	m.importJobs.WithLabelValues(result).Inc()
	m.importedTotal.Add(float64(puzzles))
}
