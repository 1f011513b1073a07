package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery queue metrics for Prometheus monitoring.
var (
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_items_pending",
			Help: "Number of pending delivery items in the queue",
		},
	)

	ItemsEnqueuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_items_enqueued_total",
			Help: "Total number of delivery items enqueued",
		},
	)

	ItemsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_items_processed_total",
			Help: "Total number of delivery items processed by status",
		},
		[]string{"status"}, // sent, failed
	)

	DeliveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_delivery_duration_seconds",
			Help:    "Duration of individual delivery attempts",
			Buckets: prometheus.DefBuckets,
		},
	)
)
