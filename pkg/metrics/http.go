// Package metrics registers Prometheus collectors for the HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts finished HTTP requests by route and status class.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kamalsite",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Finished HTTP requests.",
	}, []string{"method", "route", "status"})

	// RequestDuration observes request latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kamalsite",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// PurchasesTotal counts committed purchases.
	PurchasesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "kamalsite",
		Subsystem: "orders",
		Name:      "purchases_total",
		Help:      "Orders committed to purchase.",
	})
)
