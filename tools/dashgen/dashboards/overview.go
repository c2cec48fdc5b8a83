// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/stock-tracker/tools/dashgen/panels"
)

// BuildOverview constructs the Stock Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Stock Overview").
		Uid("stock-overview").
		Tags([]string{"stock", "stock-tracker"}).
		Refresh("1m").
		Time("now-7d", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.NextDigest()).
		WithPanel(panels.UptimeStat()))

	// Row 2: Inventory.
	b.WithRow(dashboard.NewRowBuilder("Inventory").
		WithPanel(panels.EquipmentRows()).
		WithPanel(panels.LowStockStat()).
		WithPanel(panels.BrokenStat()).
		WithPanel(panels.AlertTrend()).
		WithPanel(panels.MutationsRate()))

	// Row 3: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 4: Imports.
	b.WithRow(dashboard.NewRowBuilder("Imports").
		WithPanel(panels.ImportRowsRate()).
		WithPanel(panels.FailedImports()).
		WithPanel(panels.ImportDuration()).
		WithPanel(panels.BrokenImported()))

	// Row 5: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationsRate()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()).
		WithPanel(panels.DigestRuns()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
