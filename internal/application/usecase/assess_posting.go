package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/service"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

// CacheKey is the assessment cache key for a posting fingerprint under strategy.
func CacheKey(strategy valueobject.Strategy, fingerprint string) string {
	return "jobsentinel:assessment:" + strategy.String() + ":" + fingerprint
}

// AssessPosting is the use case for scoring a posting and recording the assessment.
type AssessPosting struct {
	repo      port.AssessmentRepository
	publisher port.EventPublisher
	cache     port.AssessmentCache
	metrics   port.MetricsRecorder
	scorer    service.Scorer
	logger    *slog.Logger
}

// NewAssessPosting creates a new AssessPosting use case.
func NewAssessPosting(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	cache port.AssessmentCache,
	metrics port.MetricsRecorder,
	scorer service.Scorer,
	logger *slog.Logger,
) *AssessPosting {
	return &AssessPosting{
		repo:      repo,
		publisher: publisher,
		cache:     cache,
		metrics:   metrics,
		scorer:    scorer,
		logger:    logger,
	}
}

// Execute scores the posting, persists the assessment, and publishes its events.
func (uc *AssessPosting) Execute(ctx context.Context, req dto.AssessPostingRequest) (dto.AssessmentResponse, error) {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Description) == "" {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: posting title or description is required", ErrInvalidRequest)
	}

	// 1. Create the assessment aggregate.
	posting := req.Posting()
	assessment, err := model.NewPostingAssessment(posting, req.SourceURL)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w: %w", ErrInvalidRequest, err)
	}

	// 2. Score, consulting the cache first.
	report, err := uc.score(ctx, posting, assessment.Fingerprint())
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to score posting: %w", err)
	}

	// 3. Apply the report to the assessment.
	if err := assessment.Assess(report, report.Strategy); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to assess posting: %w", err)
	}

	// 4. Persist the assessment.
	if err := uc.repo.Save(ctx, assessment); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to save assessment: %w", err)
	}

	// 5. Publish domain events.
	if evts := assessment.ClearEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	uc.metrics.RecordAssessment(ctx, report.Strategy, report.Verdict)

	return dto.FromModel(assessment), nil
}

func (uc *AssessPosting) score(ctx context.Context, posting model.JobPosting, fingerprint string) (model.ScoreReport, error) {
	strategy := uc.scorer.Strategy()
	key := CacheKey(strategy, fingerprint)

	cached, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("assessment cache lookup failed", "key", key, "error", err)
	} else if ok {
		return cached, nil
	}

	report, err := uc.scorer.Score(ctx, posting)
	if err != nil {
		return model.ScoreReport{}, err
	}
	if report.Strategy.IsZero() {
		report = report.WithStrategy(strategy)
	}

	// A fallback report belongs to another strategy and is not cached under this key.
	if report.Strategy.Equal(strategy) {
		if err := uc.cache.Set(ctx, key, report); err != nil {
			uc.logger.Warn("assessment cache store failed", "key", key, "error", err)
		}
	}

	return report, nil
}
