package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcome label values.
const (
	outcomePDF        = "pdf"
	outcomeFallback   = "fallback"
	outcomeValidation = "validation_error"
	outcomeError      = "error"
)

// serverMetrics holds the Prometheus instruments for report generation.
type serverMetrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

// newServerMetrics registers the instruments on the given registerer.
func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)
	return &serverMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reportd",
			Name:      "generate_requests_total",
			Help:      "Report generation requests by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "reportd",
			Name:      "generate_duration_seconds",
			Help:      "End-to-end report generation latency.",
			// Generation is browser-bound; buckets cover the ~60s worst case.
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60, 90},
		}),
	}
}
