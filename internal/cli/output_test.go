package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stock-tracker/internal/engine"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

func TestPrintEquipmentTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := PrintEquipmentTable(&buf, []engine.Listing{
		{Equipment: domain.Equipment{ID: 1, Name: "Router A", Type: "CPE", Quantity: 2, Status: domain.StatusFunctional}, Alert: domain.AlertLowStock},
		{Equipment: domain.Equipment{ID: 2, Name: "Switch B", Type: "LAN", Quantity: 9, Status: domain.StatusBroken}, Alert: domain.AlertOutOfService},
		{Equipment: domain.Equipment{ID: 3, Name: "ONT C", Type: "FTTH", Quantity: 40, Status: domain.StatusFunctional}},
	})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Contains(t, string(lines[0]), "ALERT")
	assert.Contains(t, string(lines[1]), "LOW STOCK")
	assert.Contains(t, string(lines[2]), "OUT OF SERVICE")
	assert.Contains(t, string(lines[2]), "En Panne")
	assert.NotContains(t, string(lines[3]), "STOCK")
}

func TestPrintEquipmentDetail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintEquipmentDetail(&buf, &domain.Equipment{
		ID: 7, Name: "Router A", Type: "CPE", Quantity: 3, Supplier: "Acme", Note: "rack 2", Status: domain.StatusMaintenance,
	}))

	out := buf.String()
	assert.Contains(t, out, "ID:")
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "Maintenance")
	assert.Contains(t, out, "rack 2")
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		summary domain.StockSummary
		want    string
	}{
		{name: "healthy", summary: domain.StockSummary{Total: 4}, want: "healthy"},
		{name: "alerts", summary: domain.StockSummary{Total: 4, LowStock: 1, Broken: 2}, want: "needs attention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, PrintSummary(&buf, tt.summary, 5))
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "Low stock (< 5)")
		})
	}
}

func TestPrintOutcome(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintOutcome(&buf, &engine.Outcome{Action: engine.ActionMerged, ID: 3, Quantity: 8}))
	require.NoError(t, PrintOutcome(&buf, &engine.Outcome{Action: engine.ActionInserted, ID: 9, Quantity: 1}))

	assert.Equal(t,
		"Merged into row 3, quantity now 8.\nInserted row 9 with quantity 1.\n",
		buf.String(),
	)
}

func TestPrintImportReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintImportReport(&buf, &engine.ImportReport{
		Processed:   3,
		Inserted:    2,
		Merged:      1,
		BrokenItems: []domain.BrokenItem{{Name: "Router A", Type: "CPE"}},
		Skipped:     []engine.SkippedRow{{Line: 4, Reason: "nom: is required"}},
	}))

	out := buf.String()
	assert.Contains(t, out, "Processed:")
	assert.Contains(t, out, "nom: is required")
	assert.Contains(t, out, "  - Router A (CPE)")
}

func TestOutputJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, domain.StockSummary{LowStock: 1}))

	var got domain.StockSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1, got.LowStock)
	assert.Contains(t, buf.String(), "\n  ")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "short", max: 10, want: "short"},
		{in: "exactly10!", max: 10, want: "exactly10!"},
		{in: "much longer than that", max: 10, want: "much lo..."},
		{in: "Équipement réseau", max: 8, want: "Équip..."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.max), tt.in)
	}
}

func TestValidFormat(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidFormat(FormatTable))
	assert.True(t, ValidFormat(FormatJSON))
	assert.False(t, ValidFormat("yaml"))
}
