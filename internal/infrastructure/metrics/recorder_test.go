package metrics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/metrics"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Sum[int64] {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Sum[int64])
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				out[m.Name] = sum
			}
		}
	}
	return out
}

func TestRecorder_CountsByStrategyAndVerdict(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	rec, err := metrics.NewRecorder(provider.Meter("jobsentinel"))
	require.NoError(t, err)

	ctx := context.Background()
	rec.RecordAssessment(ctx, valueobject.StrategyRules, valueobject.VerdictFromScore(90))
	rec.RecordAssessment(ctx, valueobject.StrategyRules, valueobject.VerdictFromScore(95))
	rec.RecordAssessment(ctx, valueobject.StrategyRemote, valueobject.VerdictFromScore(10))
	rec.RecordReport(ctx)

	sums := collectSums(t, reader)

	assessments, ok := sums[metrics.AssessmentsCounter]
	require.True(t, ok)
	counts := make(map[string]int64)
	for _, dp := range assessments.DataPoints {
		strategy, _ := dp.Attributes.Value(attribute.Key("strategy"))
		verdict, _ := dp.Attributes.Value(attribute.Key("verdict"))
		counts[strategy.AsString()+"/"+verdict.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{
		"rules/" + valueobject.VerdictFromScore(90).String():  2,
		"remote/" + valueobject.VerdictFromScore(10).String(): 1,
	}, counts)

	reports, ok := sums[metrics.ReportsCounter]
	require.True(t, ok)
	require.Len(t, reports.DataPoints, 1)
	assert.Equal(t, int64(1), reports.DataPoints[0].Value)
}

func TestNop(t *testing.T) {
	var n metrics.Nop
	assert.NotPanics(t, func() {
		n.RecordAssessment(context.Background(), valueobject.StrategyRules, valueobject.VerdictFromScore(50))
		n.RecordReport(context.Background())
	})
}
