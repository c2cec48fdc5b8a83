// Package metrics defines Prometheus metrics for the stock tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stock"

// Import row outcomes used as the "outcome" label of ImportRowsTotal.
const (
	OutcomeInserted = "inserted"
	OutcomeMerged   = "merged"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last liveness probe succeeded.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last readiness probe succeeded.",
	})
)

// Import metrics.
var (
	ImportRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Import rows processed, by outcome.",
	}, []string{"outcome"})

	ImportBatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_batches_total",
		Help:      "Import batches run, by result (success, failed).",
	}, []string{"result"})

	ImportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "import_duration_seconds",
		Help:      "Duration of import batches in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	BrokenItemsImportedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broken_items_imported_total",
		Help:      "Total number of import rows that arrived broken.",
	})
)

// Inventory metrics.
var (
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Manual inventory mutations, by operation (add, reconcile, modify, delete).",
	}, []string{"op"})

	EquipmentRows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "equipment_rows",
		Help:      "Number of equipment rows at the last refresh.",
	})

	LowStockItems = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "low_stock_items",
		Help:      "Functional rows below the low-stock threshold at the last refresh.",
	})

	BrokenItems = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "broken_items",
		Help:      "Broken rows at the last refresh.",
	})
)

// Notification metrics.
var (
	NotificationsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notifications delivered.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification deliveries in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	DigestRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "digest_runs_total",
		Help:      "Scheduled stock digests, by result (sent, skipped, failed).",
	}, []string{"result"})
)

// Scheduler metrics.
var (
	SchedulerNextDigestTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_digest_timestamp",
		Help:      "Unix timestamp of the next scheduled stock digest.",
	})
)
