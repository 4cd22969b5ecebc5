package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
)

// AssessmentRepository defines the persistence port for posting assessments.
type AssessmentRepository interface {
	// Save persists a new or updated assessment and its red flags.
	Save(ctx context.Context, assessment *model.PostingAssessment) error

	// FindByID retrieves an assessment by its unique identifier. It returns
	// nil, nil when no assessment matches.
	FindByID(ctx context.Context, id uuid.UUID) (*model.PostingAssessment, error)

	// FindByFingerprint returns the most recent assessment of an identical posting.
	FindByFingerprint(ctx context.Context, fingerprint string) (*model.PostingAssessment, error)

	// ListRecent returns assessments, newest first.
	ListRecent(ctx context.Context, limit, offset int) ([]*model.PostingAssessment, error)
}

// ReportRepository is the append-only audit log of user reports.
type ReportRepository interface {
	Append(ctx context.Context, report *model.PostingReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PostingReport, error)
	List(ctx context.Context, limit, offset int) ([]*model.PostingReport, error)
	CountByURL(ctx context.Context, url string) (int, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...events.DomainEvent) error
}
