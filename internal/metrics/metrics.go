package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Request outcome labels for StudentRequestsTotal.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	// StatusSkipped marks operations answered without a request, e.g. a blank search term.
	StatusSkipped = "skipped"
)

// Student service metrics
var (
	StudentRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "student_requests_total",
			Help: "Total number of student service operations by outcome.",
		},
		[]string{"operation", "status"},
	)

	StudentRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "student_request_duration_seconds",
			Help:    "Latency of student service requests against the REST API.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(
		StudentRequestsTotal,
		StudentRequestDuration,
	)
}
