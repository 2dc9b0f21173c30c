package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance module. The oracle
// failure counter matters operationally: with no negative caching, a
// persistently failing oracle shows up here as repeated calls.
type Metrics struct {
	CacheHits              prometheus.Counter
	CacheMisses            prometheus.Counter
	OracleCalls            prometheus.Counter
	OracleEmptyResults     prometheus.Counter
	MaterializedChecklists prometheus.Counter
	MaterializeDuration    prometheus.Histogram
	TasksToggled           prometheus.Counter
}

// New creates a new Metrics instance with all compliance module metrics registered.
func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentcheck_checklist_cache_hits_total",
			Help: "Checklist reads served from durable storage",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentcheck_checklist_cache_misses_total",
			Help: "Checklist reads that required materialization",
		}),
		OracleCalls: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentcheck_oracle_calls_total",
			Help: "Total rule oracle invocations",
		}),
		OracleEmptyResults: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentcheck_oracle_empty_results_total",
			Help: "Oracle invocations that yielded no usable rules (failure or empty)",
		}),
		MaterializedChecklists: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentcheck_checklists_materialized_total",
			Help: "Checklists durably materialized (at most one batch per property)",
		}),
		MaterializeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rentcheck_materialize_duration_seconds",
			Help:    "Duration of cache-miss materialization including the oracle call",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		TasksToggled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rentcheck_tasks_toggled_total",
			Help: "Completion toggles applied to compliance tasks",
		}),
	}
}

// ObserveMaterialize records the duration of a materialization attempt.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveMaterialize(start time.Time) {
	m.MaterializeDuration.Observe(time.Since(start).Seconds())
}
