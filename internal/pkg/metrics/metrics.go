package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the scheduler.
type Metrics struct {
	registry *prometheus.Registry

	// SectionDecisions counts create/update outcomes of the offered-course pipeline,
	// labelled by operation (create|update) and result (accepted|rejected).
	SectionDecisions *prometheus.CounterVec

	// ScheduleConflicts counts candidates rejected by the instructor conflict scan.
	ScheduleConflicts prometheus.Counter

	// StatusRecomputations counts bulk registration status recomputation passes.
	StatusRecomputations prometheus.Counter
}

// New creates the scheduler metrics on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		SectionDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_section_decisions_total",
			Help: "Offered-course scheduling decisions by operation and result.",
		}, []string{"operation", "result"}),
		ScheduleConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "registrar_schedule_conflicts_total",
			Help: "Candidates rejected because the instructor was already booked.",
		}),
		StatusRecomputations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "registrar_status_recomputations_total",
			Help: "Bulk semester-registration status recomputation passes.",
		}),
	}

	registry.MustRegister(m.SectionDecisions, m.ScheduleConflicts, m.StatusRecomputations)
	return m
}

// Handler returns the HTTP handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
