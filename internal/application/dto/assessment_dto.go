package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

// AssessPostingRequest is the input DTO for the AssessPosting use case.
type AssessPostingRequest struct {
	Salary      *string `json:"salary,omitempty"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Description string  `json:"description"`
	Location    string  `json:"location,omitempty"`
	SourceURL   string  `json:"source_url,omitempty"`
}

// Posting converts the request into the domain value.
func (r AssessPostingRequest) Posting() model.JobPosting {
	return model.NewJobPosting(r.Title, r.Company, r.Description, r.Location, r.Salary)
}

// AssessURLRequest is the input DTO for the AssessURL use case.
type AssessURLRequest struct {
	URL string `json:"url"`
}

// BatchAssessRequest is the input DTO for the BatchAssess use case.
type BatchAssessRequest struct {
	Postings []AssessPostingRequest `json:"postings"`
}

// ListRequest carries pagination for list use cases.
type ListRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// PostingDTO is the wire form of a JobPosting.
type PostingDTO struct {
	Salary      *string `json:"salary,omitempty"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Description string  `json:"description"`
	Location    string  `json:"location,omitempty"`
}

// SalaryRangeDTO is the parsed salary, omitted when nothing could be read.
type SalaryRangeDTO struct {
	Min    string `json:"min"`
	Max    string `json:"max"`
	Period string `json:"period,omitempty"`
}

// AssessmentResponse is the output DTO returned after an assessment.
type AssessmentResponse struct {
	AssessedAt   time.Time         `json:"assessed_at"`
	CreatedAt    time.Time         `json:"created_at"`
	SalaryRange  *SalaryRangeDTO   `json:"salary_range,omitempty"`
	Badge        valueobject.Badge `json:"badge"`
	Posting      PostingDTO        `json:"posting"`
	RedFlags     []string          `json:"red_flags"`
	SourceURL    string            `json:"source_url,omitempty"`
	Fingerprint  string            `json:"fingerprint"`
	Verdict      string            `json:"verdict"`
	VerdictLabel string            `json:"verdict_label"`
	Summary      string            `json:"summary"`
	Strategy     string            `json:"strategy"`
	// CorrectJobTitle is only set when a remote analysis suggested one.
	CorrectJobTitle string    `json:"correct_job_title,omitempty"`
	Score           int       `json:"score"`
	ID              uuid.UUID `json:"id"`
}

// BatchItemResult is one entry of a batch response. Exactly one of
// Assessment and Error is set.
type BatchItemResult struct {
	Assessment *AssessmentResponse `json:"assessment,omitempty"`
	Error      string              `json:"error,omitempty"`
	Index      int                 `json:"index"`
}

// BatchAssessResponse keeps results in request order.
type BatchAssessResponse struct {
	Results []BatchItemResult `json:"results"`
	Failed  int               `json:"failed"`
}

// AssessmentListResponse is a page of assessments.
type AssessmentListResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

// FromPosting maps a JobPosting to its wire form.
func FromPosting(p model.JobPosting) PostingDTO {
	return PostingDTO{
		Title:       p.Title,
		Company:     p.Company,
		Description: p.Description,
		Location:    p.Location,
		Salary:      p.Salary,
	}
}

// FromModel maps a domain model to the response DTO.
func FromModel(a *model.PostingAssessment) AssessmentResponse {
	report := a.Report()

	resp := AssessmentResponse{
		ID:              a.ID(),
		SourceURL:       a.SourceURL(),
		Fingerprint:     a.Fingerprint(),
		Posting:         FromPosting(a.Posting()),
		Score:           report.Score,
		Verdict:         report.Verdict.String(),
		VerdictLabel:    report.Verdict.Label(),
		Summary:         report.Summary,
		RedFlags:        report.RedFlags,
		Badge:           valueobject.BadgeFromScore(report.Score),
		Strategy:        a.Strategy().String(),
		CorrectJobTitle: report.CorrectJobTitle,
		AssessedAt:      a.AssessedAt(),
		CreatedAt:       a.CreatedAt(),
	}
	if resp.RedFlags == nil {
		resp.RedFlags = []string{}
	}

	if sr := a.SalaryRange(); !sr.IsZero() {
		resp.SalaryRange = &SalaryRangeDTO{
			Min:    sr.Min.String(),
			Max:    sr.Max.String(),
			Period: sr.Period,
		}
	}

	return resp
}
