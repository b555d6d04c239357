package lib

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acelera",
		Name:      "bookings_created_total",
		Help:      "Bookings created, by source",
	}, []string{"source"})

	requestTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acelera",
		Name:      "request_transitions_total",
		Help:      "Triage actions applied to tattoo requests",
	}, []string{"action", "result"})

	requestsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "acelera",
		Name:      "requests_submitted_total",
		Help:      "Requests received through the public form",
	})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "acelera",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func IncBookingsCreated(source string) {
	bookingsCreated.WithLabelValues(source).Inc()
}

func IncRequestTransition(action, result string) {
	requestTransitions.WithLabelValues(action, result).Inc()
}

func IncRequestsSubmitted() {
	requestsSubmitted.Inc()
}
