package usecase

import (
	"context"
	"fmt"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
)

// ListAssessments pages through recent assessments.
type ListAssessments struct {
	repo port.AssessmentRepository
}

// NewListAssessments creates a new ListAssessments use case.
func NewListAssessments(repo port.AssessmentRepository) *ListAssessments {
	return &ListAssessments{repo: repo}
}

// Execute returns the newest assessments first.
func (uc *ListAssessments) Execute(ctx context.Context, req dto.ListRequest) (dto.AssessmentListResponse, error) {
	req = clampPage(req)

	assessments, err := uc.repo.ListRecent(ctx, req.Limit, req.Offset)
	if err != nil {
		return dto.AssessmentListResponse{}, fmt.Errorf("failed to list assessments: %w", err)
	}

	out := make([]dto.AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, dto.FromModel(a))
	}

	return dto.AssessmentListResponse{Assessments: out, Limit: req.Limit, Offset: req.Offset}, nil
}
