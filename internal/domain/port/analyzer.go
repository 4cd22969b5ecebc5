package port

import (
	"context"
	"errors"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

// RemoteAnalysis is what an external analysis service returns for a posting.
type RemoteAnalysis struct {
	Analysis string   `json:"analysis"`
	RedFlags []string `json:"redFlags"`
	Score    int      `json:"score"`
	// CorrectJobTitle is set when the service thinks the posted title
	// misrepresents the role.
	CorrectJobTitle string `json:"correctJobTitle,omitempty"`
}

// RemoteAnalyzer delegates scoring to an external language-model service.
type RemoteAnalyzer interface {
	Analyze(ctx context.Context, posting model.JobPosting) (RemoteAnalysis, error)
}

// ErrIncompleteExtraction means a page was fetched but title, company or
// description could not be found. The Extraction returned with it still
// carries whatever was found.
var ErrIncompleteExtraction = errors.New("could not extract essential job data")

// Extraction is a posting scraped from a job board page.
type Extraction struct {
	Site    valueobject.JobSite
	URL     string
	Posting model.JobPosting
}

// PostingExtractor turns a job board page into a JobPosting.
type PostingExtractor interface {
	// Extract fetches url and extracts the posting from it.
	Extract(ctx context.Context, url string) (Extraction, error)

	// ExtractHTML extracts the posting from an already fetched page.
	ExtractHTML(url, html string) (Extraction, error)
}

// AssessmentCache memoizes score reports by fingerprint and strategy.
type AssessmentCache interface {
	Get(ctx context.Context, key string) (model.ScoreReport, bool, error)
	Set(ctx context.Context, key string, report model.ScoreReport) error
}

// ReportNotifier alerts moderators about new reports.
type ReportNotifier interface {
	NotifyReported(ctx context.Context, report *model.PostingReport) error
}

// MetricsRecorder counts assessments and reports.
type MetricsRecorder interface {
	RecordAssessment(ctx context.Context, strategy valueobject.Strategy, verdict valueobject.Verdict)
	RecordReport(ctx context.Context)
}
