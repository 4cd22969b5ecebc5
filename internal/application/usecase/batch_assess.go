package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
)

// MaxBatchSize bounds the number of postings in one batch request.
const MaxBatchSize = 50

// BatchAssess scores several postings concurrently.
type BatchAssess struct {
	assess      *AssessPosting
	concurrency int
}

// NewBatchAssess creates a BatchAssess running at most concurrency
// assessments at once.
func NewBatchAssess(assess *AssessPosting, concurrency int) *BatchAssess {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchAssess{
		assess:      assess,
		concurrency: concurrency,
	}
}

// Execute assesses every posting. Results keep request order and a failing
// posting does not abort the others.
func (uc *BatchAssess) Execute(ctx context.Context, req dto.BatchAssessRequest) (dto.BatchAssessResponse, error) {
	n := len(req.Postings)
	if n == 0 {
		return dto.BatchAssessResponse{}, fmt.Errorf("%w: at least one posting is required", ErrInvalidRequest)
	}
	if n > MaxBatchSize {
		return dto.BatchAssessResponse{}, fmt.Errorf("%w: batch of %d exceeds limit of %d", ErrInvalidRequest, n, MaxBatchSize)
	}

	results := make([]dto.BatchItemResult, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, item := range req.Postings {
		i, item := i, item
		g.Go(func() error {
			results[i].Index = i
			resp, err := uc.assess.Execute(gctx, item)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Assessment = &resp
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}

	return dto.BatchAssessResponse{Results: results, Failed: failed}, nil
}
