package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SimulationsTotal counts completed simulation runs by outcome.
	SimulationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grid_balance_simulations_total",
			Help: "Number of simulation runs by outcome",
		},
		[]string{"outcome"},
	)

	// SimulationDuration observes wall time of full simulation calls.
	SimulationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "grid_balance_simulation_duration_seconds",
			Help:    "Wall time of complete simulation calls",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)

	// AlertsEmitted counts alerts produced by runs, by level.
	AlertsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grid_balance_alerts_emitted_total",
			Help: "Alerts emitted by simulation runs, by level",
		},
		[]string{"level"},
	)
)
