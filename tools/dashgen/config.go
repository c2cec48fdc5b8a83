package main

import "errors"

// KnownMetrics is the set of metric names exported by stock-tracker plus
// recording rule names referenced in dashboards and alerts. Histogram series
// (_bucket, _sum, _count) match their base name.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"stock_http_request_duration_seconds": true,
	"stock_http_requests_total":           true,

	// Health metrics.
	"stock_healthz_up": true,
	"stock_readyz_up":  true,

	// Import metrics.
	"stock_import_rows_total":           true,
	"stock_import_batches_total":        true,
	"stock_import_duration_seconds":     true,
	"stock_broken_items_imported_total": true,

	// Inventory metrics.
	"stock_mutations_total": true,
	"stock_equipment_rows":  true,
	"stock_low_stock_items": true,
	"stock_broken_items":    true,

	// Notification metrics.
	"stock_notifications_sent_total":      true,
	"stock_notification_failures_total":   true,
	"stock_notification_duration_seconds": true,
	"stock_digest_runs_total":             true,

	// Scheduler metrics.
	"stock_scheduler_next_digest_timestamp": true,

	// Recording rules.
	"stock:http_requests:rate5m":         true,
	"stock:http_errors:rate5m":           true,
	"stock:import_rows:rate5m":           true,
	"stock:import_failed_batches:rate5m": true,
	"stock:notification_failures:rate5m": true,
	"stock:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
