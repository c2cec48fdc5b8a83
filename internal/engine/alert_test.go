package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

func row(name string, qty int, st domain.Status) domain.Equipment {
	return domain.Equipment{Name: name, Type: "CPE", Quantity: qty, Status: st}
}

func TestAlertRules_Classify(t *testing.T) {
	t.Parallel()

	rules := DefaultAlertRules()

	tests := []struct {
		name string
		row  domain.Equipment
		want domain.AlertBucket
	}{
		{"functional plenty", row("a", 10, domain.StatusFunctional), domain.AlertNone},
		{"functional at threshold", row("a", 5, domain.StatusFunctional), domain.AlertNone},
		{"functional low", row("a", 4, domain.StatusFunctional), domain.AlertLowStock},
		{"functional empty", row("a", 0, domain.StatusFunctional), domain.AlertLowStock},
		{"broken plenty", row("a", 50, domain.StatusBroken), domain.AlertOutOfService},
		{"broken low", row("a", 1, domain.StatusBroken), domain.AlertOutOfService},
		{"maintenance low", row("a", 1, domain.StatusMaintenance), domain.AlertOutOfService},
		{"maintenance plenty", row("a", 9, domain.StatusMaintenance), domain.AlertOutOfService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rules.Classify(&tt.row))
		})
	}
}

func TestAlertRules_Aggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		threshold int
		rows      []domain.Equipment
		want      domain.StockSummary
	}{
		{
			name:      "empty inventory",
			threshold: 5,
			want:      domain.StockSummary{},
		},
		{
			name:      "broken low row counts as broken only",
			threshold: 5,
			rows:      []domain.Equipment{row("a", 2, domain.StatusBroken)},
			want:      domain.StockSummary{Broken: 1, Total: 1},
		},
		{
			name:      "maintenance counts as neither",
			threshold: 5,
			rows:      []domain.Equipment{row("a", 1, domain.StatusMaintenance)},
			want:      domain.StockSummary{Total: 1},
		},
		{
			name:      "mixed",
			threshold: 5,
			rows: []domain.Equipment{
				row("a", 3, domain.StatusFunctional),
				row("b", 5, domain.StatusFunctional),
				row("c", 0, domain.StatusFunctional),
				row("d", 8, domain.StatusBroken),
				row("e", 2, domain.StatusMaintenance),
			},
			want: domain.StockSummary{LowStock: 2, Broken: 1, Total: 5},
		},
		{
			name:      "custom threshold",
			threshold: 10,
			rows: []domain.Equipment{
				row("a", 9, domain.StatusFunctional),
				row("b", 10, domain.StatusFunctional),
			},
			want: domain.StockSummary{LowStock: 1, Total: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := AlertRules{LowStockThreshold: tt.threshold}.Aggregate(tt.rows)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlertRules_Aggregate_LowStockExclusive(t *testing.T) {
	t.Parallel()

	rules := DefaultAlertRules()
	for qty := 0; qty < 10; qty++ {
		for _, st := range domain.Statuses {
			s := rules.Aggregate([]domain.Equipment{row("a", qty, st)})
			assert.LessOrEqual(t, s.LowStock+s.Broken, 1, "qty=%d status=%s", qty, st)
			if st == domain.StatusBroken {
				assert.Zero(t, s.LowStock, "broken row counted as low stock")
			}
		}
	}
}

func TestAlertRules_FilterAlertable(t *testing.T) {
	t.Parallel()

	rows := []domain.Equipment{
		row("plenty", 20, domain.StatusFunctional),
		row("low", 2, domain.StatusFunctional),
		row("broken", 20, domain.StatusBroken),
		row("maint-low", 1, domain.StatusMaintenance),
		row("maint-plenty", 20, domain.StatusMaintenance),
	}

	got := DefaultAlertRules().FilterAlertable(rows)

	names := make([]string, 0, len(got))
	for i := range got {
		names = append(names, got[i].Name)
	}
	assert.Equal(t, []string{"low", "broken", "maint-low"}, names)
}

func TestAlertRules_FilterAlertable_Empty(t *testing.T) {
	t.Parallel()

	got := DefaultAlertRules().FilterAlertable(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
