package usecase

import (
	"errors"
	"fmt"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
)

var (
	// ErrInvalidRequest marks input the caller must fix.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidJobURL is returned when a URL does not look like a job posting.
	ErrInvalidJobURL = errors.New("invalid job posting url")

	// ErrAssessmentNotFound is returned when no assessment has the requested id.
	ErrAssessmentNotFound = errors.New("assessment not found")
)

// IncompleteExtractionError is returned by AssessURL when the page lacked a
// title, company or description. Posting holds what was found.
type IncompleteExtractionError struct {
	URL     string
	Site    string
	Posting dto.PostingDTO
}

func (e *IncompleteExtractionError) Error() string {
	return fmt.Sprintf("%s: %s", port.ErrIncompleteExtraction.Error(), e.URL)
}

func (e *IncompleteExtractionError) Unwrap() error {
	return port.ErrIncompleteExtraction
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// clampPage applies the default page size and bounds limit to [1,100].
func clampPage(req dto.ListRequest) dto.ListRequest {
	switch {
	case req.Limit <= 0:
		req.Limit = defaultPageSize
	case req.Limit > maxPageSize:
		req.Limit = maxPageSize
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	return req
}
