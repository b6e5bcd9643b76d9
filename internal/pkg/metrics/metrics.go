// Package metrics provides Prometheus metrics definitions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bistroapi"

var (
	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route", "status_code"},
	)

	// MongoPoolConnections tracks document store connection pool state.
	MongoPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "mongo",
			Name:      "pool_connections",
			Help:      "Number of MongoDB connections by state",
		},
		[]string{"state"},
	)

	// PaymentIntentsCreated counts payment intents requested from the gateway.
	PaymentIntentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "intents_created_total",
			Help:      "Number of payment intents created",
		},
	)

	// PaymentsRecorded counts payments persisted after checkout.
	PaymentsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "recorded_total",
			Help:      "Number of payments recorded",
		},
	)
)
