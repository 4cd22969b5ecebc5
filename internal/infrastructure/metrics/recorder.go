package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

const (
	AssessmentsCounter = "jobsentinel_assessments_total"
	ReportsCounter     = "jobsentinel_reports_total"
)

// Recorder counts assessments and reports on an OpenTelemetry meter.
type Recorder struct {
	assessments metric.Int64Counter
	reports     metric.Int64Counter
}

var _ port.MetricsRecorder = (*Recorder)(nil)

// NewRecorder registers the counters on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	assessments, err := meter.Int64Counter(AssessmentsCounter,
		metric.WithDescription("Postings scored, by strategy and verdict."))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", AssessmentsCounter, err)
	}

	reports, err := meter.Int64Counter(ReportsCounter,
		metric.WithDescription("Postings reported by users."))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", ReportsCounter, err)
	}

	return &Recorder{assessments: assessments, reports: reports}, nil
}

func (r *Recorder) RecordAssessment(ctx context.Context, strategy valueobject.Strategy, verdict valueobject.Verdict) {
	r.assessments.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy.String()),
		attribute.String("verdict", verdict.String()),
	))
}

func (r *Recorder) RecordReport(ctx context.Context) {
	r.reports.Add(ctx, 1)
}

// Nop drops all measurements.
type Nop struct{}

func (Nop) RecordAssessment(context.Context, valueobject.Strategy, valueobject.Verdict) {}
func (Nop) RecordReport(context.Context)                                              {}
