package dto

import (
	"github.com/google/uuid"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
)

// ReportPostingRequest is the input DTO for the ReportPosting use case.
type ReportPostingRequest struct {
	AssessmentID *uuid.UUID `json:"assessment_id,omitempty"`
	Salary       *string    `json:"salary,omitempty"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Description  string     `json:"description"`
	Location     string     `json:"location,omitempty"`
	URL          string     `json:"url"`
	Reason       string     `json:"reason,omitempty"`
}

// Posting converts the request into the domain value.
func (r ReportPostingRequest) Posting() model.JobPosting {
	return model.NewJobPosting(r.Title, r.Company, r.Description, r.Location, r.Salary)
}

// ReportResponse is the output DTO for a posting report.
type ReportResponse struct {
	AssessmentID *uuid.UUID `json:"assessment_id,omitempty"`
	Posting      PostingDTO `json:"posting"`
	URL          string     `json:"url"`
	Reason       string     `json:"reason,omitempty"`
	ReportedAt   string     `json:"reported_at"`
	TimesSeen    int        `json:"times_reported,omitempty"`
	ID           uuid.UUID  `json:"id"`
}

// ReportListResponse is a page of the audit log.
type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// FromReport maps a domain report to the response DTO.
func FromReport(r *model.PostingReport) ReportResponse {
	return ReportResponse{
		ID:           r.ID(),
		AssessmentID: r.AssessmentID(),
		Posting:      FromPosting(r.Posting()),
		URL:          r.URL(),
		Reason:       r.Reason(),
		ReportedAt:   r.ReportedAtISO(),
	}
}
