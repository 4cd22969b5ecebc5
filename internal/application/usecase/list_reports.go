package usecase

import (
	"context"
	"fmt"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
)

// ListReports pages through the report audit log.
type ListReports struct {
	reports port.ReportRepository
}

// NewListReports creates a new ListReports use case.
func NewListReports(reports port.ReportRepository) *ListReports {
	return &ListReports{reports: reports}
}

// Execute returns the newest reports first.
func (uc *ListReports) Execute(ctx context.Context, req dto.ListRequest) (dto.ReportListResponse, error) {
	req = clampPage(req)

	reports, err := uc.reports.List(ctx, req.Limit, req.Offset)
	if err != nil {
		return dto.ReportListResponse{}, fmt.Errorf("failed to list reports: %w", err)
	}

	out := make([]dto.ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, dto.FromReport(r))
	}

	return dto.ReportListResponse{Reports: out, Limit: req.Limit, Offset: req.Offset}, nil
}
