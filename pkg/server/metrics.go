package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the HTTP service.
type Metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	evaluations *prometheus.CounterVec
}

// MustNewMetrics registers the service collectors with reg. A nil reg uses
// the default registerer. Registration errors panic.
func MustNewMetrics(reg prometheus.Registerer) (m *Metrics) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "candidate_scorer",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "candidate_scorer",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	evaluations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "candidate_scorer",
			Subsystem: "engine",
			Name:      "evaluations_total",
			Help:      "Evaluations by final state and recommendation.",
		},
		[]string{"state", "recommendation"},
	)

	reg.MustRegister(requests, duration, evaluations)

	m = &Metrics{
		requests:    requests,
		duration:    duration,
		evaluations: evaluations,
	}
	return m
}
