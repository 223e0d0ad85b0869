package observability_test

import (
	"testing"

	"production/internal/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestWorkflowMetrics_NilIsSafe(t *testing.T) {
	var m *observability.WorkflowMetrics
	assert.NotPanics(t, func() {
		m.OrderCreated(t.Context(), "sale", "retail")
		m.StageApproved(t.Context(), "design", false)
	})
}

func TestWorkflowMetrics_CountsApprovals(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := observability.NewWorkflowMetrics(provider.Meter("test"))
	require.NoError(t, err)

	m.StageApproved(t.Context(), "sale", false)
	m.StageApproved(t.Context(), "design", false)
	m.OrderCreated(t.Context(), "production", "wholesale")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	totals := map[string]int64{}
	for _, metrics := range rm.ScopeMetrics[0].Metrics {
		sum, ok := metrics.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		for _, dp := range sum.DataPoints {
			totals[metrics.Name] += dp.Value
		}
	}
	assert.Equal(t, int64(2), totals["stages.approved"])
	assert.Equal(t, int64(1), totals["orders.created"])
}
