package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
)

// ReportPosting records a user report of a suspicious posting.
type ReportPosting struct {
	reports     port.ReportRepository
	assessments port.AssessmentRepository
	publisher   port.EventPublisher
	notifier    port.ReportNotifier
	metrics     port.MetricsRecorder
	logger      *slog.Logger
}

// NewReportPosting creates a new ReportPosting use case. assessments may be
// nil, in which case reports are never linked to an earlier assessment.
func NewReportPosting(
	reports port.ReportRepository,
	assessments port.AssessmentRepository,
	publisher port.EventPublisher,
	notifier port.ReportNotifier,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *ReportPosting {
	return &ReportPosting{
		reports:     reports,
		assessments: assessments,
		publisher:   publisher,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute appends the report to the audit log, publishes PostingReported and
// notifies moderators. Notification failures are logged only.
func (uc *ReportPosting) Execute(ctx context.Context, req dto.ReportPostingRequest) (dto.ReportResponse, error) {
	posting := req.Posting()

	assessmentID := req.AssessmentID
	if assessmentID == nil && uc.assessments != nil {
		prior, err := uc.assessments.FindByFingerprint(ctx, posting.Fingerprint())
		if err != nil {
			uc.logger.Warn("assessment lookup by fingerprint failed", "error", err)
		} else if prior != nil {
			id := prior.ID()
			assessmentID = &id
		}
	}

	report, err := model.NewPostingReport(posting, req.URL, req.Reason, assessmentID)
	if err != nil {
		return dto.ReportResponse{}, fmt.Errorf("failed to create report: %w: %w", ErrInvalidRequest, err)
	}

	if err := uc.reports.Append(ctx, report); err != nil {
		return dto.ReportResponse{}, fmt.Errorf("failed to save report: %w", err)
	}

	if evts := report.ClearEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			return dto.ReportResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	if err := uc.notifier.NotifyReported(ctx, report); err != nil {
		uc.logger.Warn("report notification failed",
			"report_id", report.ID().String(),
			"error", err,
		)
	}

	uc.metrics.RecordReport(ctx)

	resp := dto.FromReport(report)
	if n, err := uc.reports.CountByURL(ctx, report.URL()); err == nil {
		resp.TimesSeen = n
	}

	return resp, nil
}
