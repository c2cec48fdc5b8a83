package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// NotificationsRate returns a timeseries panel showing delivered
// notifications.
func NotificationsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notifications Sent / h").
		Description("Broken-item alerts and digests delivered per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(increase(stock_notifications_sent_total{job="stock-tracker"}[1h]))`,
			"sent", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NotificationLatency returns a timeseries panel showing the p95 delivery
// latency.
func NotificationLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notification Latency (p95)").
		Description("95th percentile Discord webhook and SendGrid latency").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`stock:notification_duration:p95_5m`,
			"p95", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NotificationFailures returns a stat panel showing notification failures
// in the past 24 hours.
func NotificationFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Notification Failures (24h)").
		Description("Failed notification deliveries in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`increase(stock_notification_failures_total{job="stock-tracker"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// DigestRuns returns a timeseries panel of scheduled digests by result.
func DigestRuns() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Digest Runs").
		Description("Stock digests by result (sent, skipped, failed)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(
			`sum by (result) (increase(stock_digest_runs_total{job="stock-tracker"}[1d]))`,
			"{{result}}", "A",
		)).
		FillOpacity(30).
		LineWidth(1).
		Legend(TableLegend("sum")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}
