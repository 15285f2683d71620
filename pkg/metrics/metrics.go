package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	OutboxEventsProcessed   prometheus.Counter
	OutboxEventsFailed      prometheus.Counter
	OutboxProcessingLatency prometheus.Histogram

	NotificationsCreated prometheus.Counter
	DonorSearches        prometheus.Counter

	DatabaseOperations *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		OutboxEventsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "outbox_events_processed_total",
			Help:      "Total number of successfully processed outbox events",
		}),
		OutboxEventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "outbox_events_failed_total",
			Help:      "Total number of failed outbox events",
		}),
		OutboxProcessingLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "outbox_processing_duration_seconds",
			Help:      "Time spent processing outbox events",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		NotificationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notifications_created_total",
			Help:      "Total number of donor notifications created",
		}),
		DonorSearches: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "donor_searches_total",
			Help:      "Total number of donor matching searches performed",
		}),
		DatabaseOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operations_total",
			Help:      "Total number of database operations by table and result",
		}, []string{"operation", "result"}),
	}
}
