package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/event"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
)

// PostingAssessment is the aggregate root for a scored job posting.
type PostingAssessment struct {
	events.EventCollector
	assessedAt  time.Time
	createdAt   time.Time
	updatedAt   time.Time
	salaryRange valueobject.SalaryRange
	report      ScoreReport
	strategy    valueobject.Strategy
	posting     JobPosting
	sourceURL   string
	fingerprint string
	version     int
	id          uuid.UUID
}

// NewPostingAssessment creates an unscored assessment. sourceURL is optional
// but must be an absolute http(s) URL when given.
func NewPostingAssessment(posting JobPosting, sourceURL string) (*PostingAssessment, error) {
	if sourceURL != "" && !valueobject.IsValidURL(sourceURL) {
		return nil, fmt.Errorf("invalid source url: %q", sourceURL)
	}

	now := time.Now().UTC()

	return &PostingAssessment{
		id:          uuid.New(),
		sourceURL:   sourceURL,
		posting:     posting,
		fingerprint: posting.Fingerprint(),
		salaryRange: valueobject.ParseSalaryRange(posting.SalaryText()),
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Assess records the report produced by strategy. It emits PostingAssessed,
// and SuspiciousPostingDetected when the verdict is HIGHLY_FRAUDULENT.
func (a *PostingAssessment) Assess(report ScoreReport, strategy valueobject.Strategy) error {
	if report.Score < MinScore || report.Score > MaxScore {
		return fmt.Errorf("score must be between %d and %d, got %d", MinScore, MaxScore, report.Score)
	}
	if strategy.IsZero() {
		return fmt.Errorf("scoring strategy is required")
	}
	if report.Verdict.IsZero() {
		report.Verdict = valueobject.VerdictFromScore(report.Score)
	}
	if report.RedFlags == nil {
		report.RedFlags = make([]string, 0)
	}

	a.report = report.WithStrategy(strategy)
	a.strategy = strategy
	a.assessedAt = time.Now().UTC()
	a.updatedAt = a.assessedAt
	a.version++

	a.Record(event.NewPostingAssessed(
		a.id, a.fingerprint, a.sourceURL, a.posting.Title, a.posting.Company,
		a.report.Score, a.report.Verdict.String(), strategy.String(),
		a.report.RedFlags, a.assessedAt,
	))

	if a.report.Verdict.Equal(valueobject.VerdictHighlyFraudulent) {
		a.Record(event.NewSuspiciousPostingDetected(
			a.id, a.sourceURL, a.posting.Title, a.posting.Company,
			a.report.Score, a.report.RedFlags, a.assessedAt,
		))
	}

	return nil
}

// IsAssessed reports whether Assess has run.
func (a *PostingAssessment) IsAssessed() bool {
	return !a.assessedAt.IsZero()
}

// ReconstructAssessment rebuilds a PostingAssessment from persisted data (no validation, no events).
func ReconstructAssessment(
	id uuid.UUID,
	posting JobPosting,
	sourceURL, fingerprint string,
	report ScoreReport,
	strategy valueobject.Strategy,
	assessedAt time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *PostingAssessment {
	return &PostingAssessment{
		id:          id,
		posting:     posting,
		sourceURL:   sourceURL,
		fingerprint: fingerprint,
		report:      report.WithStrategy(strategy),
		strategy:    strategy,
		salaryRange: valueobject.ParseSalaryRange(posting.SalaryText()),
		assessedAt:  assessedAt,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Accessors ---

func (a *PostingAssessment) ID() uuid.UUID                        { return a.id }
func (a *PostingAssessment) Posting() JobPosting                  { return a.posting }
func (a *PostingAssessment) SourceURL() string                    { return a.sourceURL }
func (a *PostingAssessment) Fingerprint() string                  { return a.fingerprint }
func (a *PostingAssessment) Report() ScoreReport                  { return a.report }
func (a *PostingAssessment) Strategy() valueobject.Strategy       { return a.strategy }
func (a *PostingAssessment) SalaryRange() valueobject.SalaryRange { return a.salaryRange }
func (a *PostingAssessment) AssessedAt() time.Time                { return a.assessedAt }
func (a *PostingAssessment) Version() int                         { return a.version }
func (a *PostingAssessment) CreatedAt() time.Time                 { return a.createdAt }
func (a *PostingAssessment) UpdatedAt() time.Time                 { return a.updatedAt }
