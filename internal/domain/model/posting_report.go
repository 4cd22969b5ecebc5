package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/event"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
)

// PostingReport is a user's fraud report on a posting. Reports form an
// append-only audit log.
type PostingReport struct {
	events.EventCollector
	reportedAt   time.Time
	assessmentID *uuid.UUID
	posting      JobPosting
	url          string
	reason       string
	id           uuid.UUID
}

// NewPostingReport validates and creates a report. assessmentID may be nil.
func NewPostingReport(posting JobPosting, url, reason string, assessmentID *uuid.UUID) (*PostingReport, error) {
	if !valueobject.IsValidURL(url) {
		return nil, fmt.Errorf("invalid report url: %q", url)
	}
	if strings.TrimSpace(posting.Title) == "" && strings.TrimSpace(posting.Description) == "" {
		return nil, fmt.Errorf("posting title or description is required")
	}
	if assessmentID != nil && *assessmentID == uuid.Nil {
		assessmentID = nil
	}

	r := &PostingReport{
		id:           uuid.New(),
		posting:      posting,
		url:          strings.TrimSpace(url),
		reason:       strings.TrimSpace(reason),
		assessmentID: assessmentID,
		reportedAt:   time.Now().UTC(),
	}

	r.Record(event.NewPostingReported(
		r.id, r.assessmentID, r.url, posting.Title, posting.Company, r.reason, r.reportedAt,
	))

	return r, nil
}

// ReconstructReport rebuilds a PostingReport from persisted data (no validation, no events).
func ReconstructReport(
	id uuid.UUID,
	posting JobPosting,
	url, reason string,
	assessmentID *uuid.UUID,
	reportedAt time.Time,
) *PostingReport {
	return &PostingReport{
		id:           id,
		posting:      posting,
		url:          url,
		reason:       reason,
		assessmentID: assessmentID,
		reportedAt:   reportedAt,
	}
}

// --- Accessors ---

func (r *PostingReport) ID() uuid.UUID            { return r.id }
func (r *PostingReport) Posting() JobPosting      { return r.posting }
func (r *PostingReport) URL() string              { return r.url }
func (r *PostingReport) Reason() string           { return r.reason }
func (r *PostingReport) AssessmentID() *uuid.UUID { return r.assessmentID }
func (r *PostingReport) ReportedAt() time.Time    { return r.reportedAt }

// ReportedAtISO formats ReportedAt as RFC 3339 with milliseconds.
func (r *PostingReport) ReportedAtISO() string {
	return r.reportedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
