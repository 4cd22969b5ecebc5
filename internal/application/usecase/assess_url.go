package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

// AssessURL extracts a posting from a job board page and assesses it.
type AssessURL struct {
	extractor port.PostingExtractor
	assess    *AssessPosting
}

// NewAssessURL creates a new AssessURL use case.
func NewAssessURL(extractor port.PostingExtractor, assess *AssessPosting) *AssessURL {
	return &AssessURL{
		extractor: extractor,
		assess:    assess,
	}
}

// Execute validates the URL, extracts the posting and delegates to AssessPosting.
func (uc *AssessURL) Execute(ctx context.Context, req dto.AssessURLRequest) (dto.AssessmentResponse, error) {
	if !valueobject.IsJobPostingURL(req.URL) {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %q", ErrInvalidJobURL, req.URL)
	}

	extraction, err := uc.extractor.Extract(ctx, req.URL)
	if err != nil {
		if errors.Is(err, port.ErrIncompleteExtraction) {
			return dto.AssessmentResponse{}, &IncompleteExtractionError{
				URL:     req.URL,
				Site:    extraction.Site.String(),
				Posting: dto.FromPosting(extraction.Posting),
			}
		}
		return dto.AssessmentResponse{}, fmt.Errorf("failed to extract posting: %w", err)
	}

	p := extraction.Posting
	return uc.assess.Execute(ctx, dto.AssessPostingRequest{
		Title:       p.Title,
		Company:     p.Company,
		Description: p.Description,
		Location:    p.Location,
		Salary:      p.Salary,
		SourceURL:   req.URL,
	})
}
