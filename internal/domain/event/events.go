package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
)

const (
	// EventTypePostingAssessed is emitted every time a posting is scored.
	EventTypePostingAssessed = "jobsentinel.posting.assessed"

	// EventTypeSuspiciousPostingDetected is emitted when a posting is judged
	// highly likely to be fraudulent.
	EventTypeSuspiciousPostingDetected = "jobsentinel.posting.suspicious"

	// EventTypePostingReported is emitted when a user reports a posting.
	EventTypePostingReported = "jobsentinel.posting.reported"

	// EventTypePostingSubmitted is consumed from the intake topic.
	EventTypePostingSubmitted = "jobsentinel.posting.submitted"
)

const (
	AggregateTypeAssessment = "PostingAssessment"
	AggregateTypeReport     = "PostingReport"
)

// PostingAssessed is published after an assessment has been stored.
type PostingAssessed struct {
	events.BaseEvent
	AssessedAt   time.Time `json:"assessed_at"`
	Fingerprint  string    `json:"fingerprint"`
	SourceURL    string    `json:"source_url,omitempty"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Verdict      string    `json:"verdict"`
	Strategy     string    `json:"strategy"`
	RedFlags     []string  `json:"red_flags"`
	Score        int       `json:"score"`
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// NewPostingAssessed creates a PostingAssessed event.
func NewPostingAssessed(
	assessmentID uuid.UUID,
	fingerprint, sourceURL, title, company string,
	score int, verdict, strategy string,
	redFlags []string,
	assessedAt time.Time,
) PostingAssessed {
	return PostingAssessed{
		BaseEvent:    events.NewBaseEvent(EventTypePostingAssessed, assessmentID, AggregateTypeAssessment),
		AssessmentID: assessmentID,
		Fingerprint:  fingerprint,
		SourceURL:    sourceURL,
		Title:        title,
		Company:      company,
		Score:        score,
		Verdict:      verdict,
		Strategy:     strategy,
		RedFlags:     redFlags,
		AssessedAt:   assessedAt,
	}
}

// SuspiciousPostingDetected is published alongside PostingAssessed when the
// verdict is HIGHLY_FRAUDULENT.
type SuspiciousPostingDetected struct {
	events.BaseEvent
	DetectedAt   time.Time `json:"detected_at"`
	SourceURL    string    `json:"source_url,omitempty"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	RedFlags     []string  `json:"red_flags"`
	Score        int       `json:"score"`
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// NewSuspiciousPostingDetected creates a SuspiciousPostingDetected event.
func NewSuspiciousPostingDetected(
	assessmentID uuid.UUID,
	sourceURL, title, company string,
	score int,
	redFlags []string,
	detectedAt time.Time,
) SuspiciousPostingDetected {
	return SuspiciousPostingDetected{
		BaseEvent:    events.NewBaseEvent(EventTypeSuspiciousPostingDetected, assessmentID, AggregateTypeAssessment),
		AssessmentID: assessmentID,
		SourceURL:    sourceURL,
		Title:        title,
		Company:      company,
		Score:        score,
		RedFlags:     redFlags,
		DetectedAt:   detectedAt,
	}
}

// PostingReported is published when a posting lands in the audit log.
type PostingReported struct {
	events.BaseEvent
	ReportedAt   time.Time  `json:"reported_at"`
	AssessmentID *uuid.UUID `json:"assessment_id,omitempty"`
	URL          string     `json:"url"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Reason       string     `json:"reason,omitempty"`
	ReportID     uuid.UUID  `json:"report_id"`
}

// NewPostingReported creates a PostingReported event.
func NewPostingReported(
	reportID uuid.UUID,
	assessmentID *uuid.UUID,
	url, title, company, reason string,
	reportedAt time.Time,
) PostingReported {
	return PostingReported{
		BaseEvent:    events.NewBaseEvent(EventTypePostingReported, reportID, AggregateTypeReport),
		ReportID:     reportID,
		AssessmentID: assessmentID,
		URL:          url,
		Title:        title,
		Company:      company,
		Reason:       reason,
		ReportedAt:   reportedAt,
	}
}
