// Package metrics exposes ambient Prometheus counters for the engine's
// own health: ticks run, events emitted, cascades fired/suppressed, and
// systems failed. This is independent of the narrative/rendering layers
// spec.md's Non-goals exclude — it is the same kind of in-process
// observability every package in this corpus carries, grounded on
// r3e-network-service_layer's direct use of
// github.com/prometheus/client_golang for exactly this counter/gauge
// role.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every counter the engine updates during a run, backed
// by its own registry so a host can embed it in a larger Prometheus
// registry or scrape it standalone.
type Metrics struct {
	Registry *prometheus.Registry

	TicksRun         prometheus.Counter
	EventsEmitted    *prometheus.CounterVec // labeled by category
	CascadesFired    prometheus.Counter
	CascadesDamped   prometheus.Counter
	SystemFailures   *prometheus.CounterVec // labeled by system name
	CascadeFailures  *prometheus.CounterVec // labeled by rule handle name
}

// New constructs a Metrics bundle registered against a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		TicksRun: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "historia",
			Name:      "ticks_run_total",
			Help:      "Number of simulation ticks executed.",
		}),
		EventsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "historia",
			Name:      "events_emitted_total",
			Help:      "Number of events appended to the log, by category.",
		}, []string{"category"}),
		CascadesFired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "historia",
			Name:      "cascades_fired_total",
			Help:      "Number of derived events emitted by the cascade engine.",
		}),
		CascadesDamped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "historia",
			Name:      "cascades_damped_total",
			Help:      "Number of consequence potentials sampled but not fired.",
		}),
		SystemFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "historia",
			Name:      "system_failures_total",
			Help:      "Number of contained system execution failures, by system name.",
		}, []string{"system"}),
		CascadeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "historia",
			Name:      "cascade_rule_failures_total",
			Help:      "Number of contained cascade rule handle failures, by rule name.",
		}, []string{"rule"}),
	}
	reg.MustRegister(m.TicksRun, m.EventsEmitted, m.CascadesFired, m.CascadesDamped, m.SystemFailures, m.CascadeFailures)
	return m
}
