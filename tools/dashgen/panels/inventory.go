package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// EquipmentRows returns a stat panel showing the number of stock rows.
func EquipmentRows() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Stock Rows").
		Description("Equipment rows (name, type, status buckets) at the last refresh").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`stock_equipment_rows{job="stock-tracker"}`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// LowStockStat returns a stat panel showing functional rows below the
// low-stock threshold.
func LowStockStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Low Stock").
		Description("Functional rows below the low-stock threshold").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`stock_low_stock_items{job="stock-tracker"}`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// BrokenStat returns a stat panel showing rows that are broken or in
// maintenance.
func BrokenStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Out of Service").
		Description("Rows with status En Panne or Maintenance").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`stock_broken_items{job="stock-tracker"}`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// AlertTrend returns a timeseries panel of the two alert buckets.
func AlertTrend() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Alert Buckets").
		Description("Low-stock and out-of-service rows over time").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`stock_low_stock_items{job="stock-tracker"}`, "low stock", "A")).
		WithTarget(PromQuery(`stock_broken_items{job="stock-tracker"}`, "out of service", "B")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("last", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// MutationsRate returns a timeseries panel of manual edits per operation.
func MutationsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Manual Edits / h").
		Description("Add, modify and delete operations per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (op) (increase(stock_mutations_total{job="stock-tracker"}[1h]))`,
			"{{op}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}
