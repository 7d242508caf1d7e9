// Package metrics defines the Prometheus instruments used across the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served HTTP requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billing",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests served.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by method and route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "billing",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RemoteLookups counts calls to the customer and inventory services
	// by outcome (ok, not_found, unavailable).
	RemoteLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billing",
		Subsystem: "remote",
		Name:      "lookups_total",
		Help:      "Total number of remote lookup calls by outcome.",
	}, []string{"service", "outcome"})
)
