// Package metrics holds the Prometheus collectors shared by the store, the
// propagation engine and the query console.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "economap"

// Simulation outcomes.
const (
	OutcomeSimulated = "simulated"
	OutcomeNotFound  = "not_found"
	OutcomeNoTable   = "no_objects_table"
)

var (
	// simulations counts propagation runs.
	// Labels: outcome (simulated, not_found, no_objects_table)
	simulations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "propagation",
		Name:      "simulations_total",
		Help:      "Total price propagation simulations by outcome",
	}, []string{"outcome"})

	// affectedRows tracks how many objects a simulation touched.
	affectedRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "propagation",
		Name:      "affected_rows",
		Help:      "Objects affected per simulation, source included",
		Buckets:   []float64{1, 2, 3, 5, 10, 25, 50, 100},
	})

	// gateDecisions counts ad-hoc query gate verdicts.
	// Labels: decision (allowed, rejected)
	gateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "querygate",
		Name:      "decisions_total",
		Help:      "Total ad-hoc query gate decisions",
	}, []string{"decision"})

	// storeQueryDuration measures store round trips.
	// Labels: backend (sqlite, postgres), status (ok, error)
	storeQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "query_duration_seconds",
		Help:      "Store query latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
	}, []string{"backend", "status"})
)

func RecordSimulation(outcome string, rows int) {
	simulations.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSimulated {
		affectedRows.Observe(float64(rows))
	}
}

func RecordGateDecision(allowed bool) {
	decision := "rejected"
	if allowed {
		decision = "allowed"
	}
	gateDecisions.WithLabelValues(decision).Inc()
}

func ObserveStoreQuery(backend string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	storeQueryDuration.WithLabelValues(backend, status).Observe(time.Since(start).Seconds())
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
