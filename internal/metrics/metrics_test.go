package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, ImportRowsTotal)
	assert.NotNil(t, ImportBatchesTotal)
	assert.NotNil(t, ImportDuration)
	assert.NotNil(t, BrokenItemsImportedTotal)
	assert.NotNil(t, MutationsTotal)
	assert.NotNil(t, EquipmentRows)
	assert.NotNil(t, LowStockItems)
	assert.NotNil(t, BrokenItems)
	assert.NotNil(t, NotificationsSentTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, NotificationDuration)
	assert.NotNil(t, DigestRunsTotal)
}

func TestImportRowsTotal_OutcomeLabels(t *testing.T) {
	t.Parallel()

	for _, outcome := range []string{OutcomeInserted, OutcomeMerged, OutcomeSkipped, OutcomeFailed} {
		c := ImportRowsTotal.WithLabelValues(outcome)
		before := testutil.ToFloat64(c)
		c.Inc()
		assert.InDelta(t, before+1, testutil.ToFloat64(c), 0.001, outcome)
	}
}
