package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ImportRowsRate returns a timeseries panel showing imported rows per minute
// by outcome.
func ImportRowsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Import Rows / min").
		Description("Import rows per minute by outcome (inserted, merged, skipped, failed)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`stock:import_rows:rate5m * 60`, "{{outcome}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FailedImports returns a stat panel showing failed batches in the past 24
// hours.
func FailedImports() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Failed Imports (24h)").
		Description("Import batches stopped by a bad row or a database error").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(increase(stock_import_batches_total{job="stock-tracker",result="failed"}[24h]))`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// ImportDuration returns a timeseries panel showing p50 and p95 batch
// duration.
func ImportDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Import Duration").
		Description("Import batch duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(stock_import_duration_seconds_bucket{job="stock-tracker"}[1h])) by (le))`,
			"p50", "A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(stock_import_duration_seconds_bucket{job="stock-tracker"}[1h])) by (le))`,
			"p95", "B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// BrokenImported returns a timeseries panel of equipment that arrived broken.
func BrokenImported() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Arrived Broken / day").
		Description("Import rows whose status was En Panne").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(
			`increase(stock_broken_items_imported_total{job="stock-tracker"}[1d])`,
			"broken", "A",
		)).
		FillOpacity(30).
		LineWidth(1).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}
