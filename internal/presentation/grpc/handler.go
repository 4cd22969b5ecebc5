package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/application/usecase"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/auth"
)

type (
	PostingAssessor interface {
		Execute(ctx context.Context, req dto.AssessPostingRequest) (dto.AssessmentResponse, error)
	}
	AssessmentGetter interface {
		Execute(ctx context.Context, id uuid.UUID) (dto.AssessmentResponse, error)
	}
	PostingReporter interface {
		Execute(ctx context.Context, req dto.ReportPostingRequest) (dto.ReportResponse, error)
	}
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

var _ JobSentinelServiceServer = (*Handler)(nil)

// Handler implements JobSentinelServiceServer on top of the use cases.
type Handler struct {
	UnimplementedJobSentinelServiceServer
	assessPosting PostingAssessor
	getAssessment AssessmentGetter
	reportPosting PostingReporter
	logger        *slog.Logger
}

// NewHandler creates a new gRPC handler.
func NewHandler(
	assessPosting PostingAssessor,
	getAssessment AssessmentGetter,
	reportPosting PostingReporter,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		assessPosting: assessPosting,
		getAssessment: getAssessment,
		reportPosting: reportPosting,
		logger:        logger,
	}
}

// Proto-aligned request/response message types.

// PostingMsg represents the proto JobPosting message.
type PostingMsg struct {
	Salary      *string `json:"salary,omitempty"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Description string  `json:"description"`
	Location    string  `json:"location,omitempty"`
}

// AssessmentMsg represents the proto Assessment message.
type AssessmentMsg struct {
	Posting      *PostingMsg `json:"posting"`
	ID           string      `json:"id"`
	Fingerprint  string      `json:"fingerprint"`
	SourceURL    string      `json:"source_url,omitempty"`
	Verdict      string      `json:"verdict"`
	VerdictLabel string      `json:"verdict_label"`
	Summary      string      `json:"summary"`
	Strategy     string      `json:"strategy"`
	AssessedAt   string      `json:"assessed_at"`
	RedFlags     []string    `json:"red_flags"`
	Score        int32       `json:"score"`
	// CorrectJobTitle is empty unless a remote analysis suggested one.
	CorrectJobTitle string `json:"correct_job_title,omitempty"`
}

// AssessPostingRequest represents the proto AssessPostingRequest message.
type AssessPostingRequest struct {
	Posting   *PostingMsg `json:"posting"`
	SourceURL string      `json:"source_url,omitempty"`
}

// AssessPostingResponse represents the proto AssessPostingResponse message.
type AssessPostingResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// GetAssessmentRequest represents the proto GetAssessmentRequest message.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// GetAssessmentResponse represents the proto GetAssessmentResponse message.
type GetAssessmentResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// ReportPostingRequest represents the proto ReportPostingRequest message.
type ReportPostingRequest struct {
	Posting      *PostingMsg `json:"posting"`
	URL          string      `json:"url"`
	Reason       string      `json:"reason,omitempty"`
	AssessmentID string      `json:"assessment_id,omitempty"`
}

// ReportPostingResponse represents the proto ReportPostingResponse message.
type ReportPostingResponse struct {
	ReportID      string `json:"report_id"`
	AssessmentID  string `json:"assessment_id,omitempty"`
	ReportedAt    string `json:"reported_at"`
	TimesReported int32  `json:"times_reported"`
}

// AssessPosting scores a posting.
func (h *Handler) AssessPosting(ctx context.Context, req *AssessPostingRequest) (*AssessPostingResponse, error) {
	if err := requireRole(ctx, auth.RoleClient, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req == nil || req.Posting == nil {
		return nil, status.Error(codes.InvalidArgument, "posting is required")
	}

	p := req.Posting
	result, err := h.assessPosting.Execute(ctx, dto.AssessPostingRequest{
		Title:       p.Title,
		Company:     p.Company,
		Description: p.Description,
		Location:    p.Location,
		Salary:      p.Salary,
		SourceURL:   req.SourceURL,
	})
	if err != nil {
		return nil, h.toStatus("assess posting", err)
	}

	return &AssessPostingResponse{Assessment: toAssessmentMsg(result)}, nil
}

// GetAssessment returns a stored assessment.
func (h *Handler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	if err := requireRole(ctx, auth.RoleReviewer, auth.RoleAdmin, auth.RoleClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getAssessment.Execute(ctx, id)
	if err != nil {
		return nil, h.toStatus("get assessment", err)
	}

	return &GetAssessmentResponse{Assessment: toAssessmentMsg(result)}, nil
}

// ReportPosting appends a posting to the audit log.
func (h *Handler) ReportPosting(ctx context.Context, req *ReportPostingRequest) (*ReportPostingResponse, error) {
	if err := requireRole(ctx, auth.RoleClient, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req == nil || req.Posting == nil {
		return nil, status.Error(codes.InvalidArgument, "posting is required")
	}

	in := dto.ReportPostingRequest{
		Title:       req.Posting.Title,
		Company:     req.Posting.Company,
		Description: req.Posting.Description,
		Location:    req.Posting.Location,
		Salary:      req.Posting.Salary,
		URL:         req.URL,
		Reason:      req.Reason,
	}
	if req.AssessmentID != "" {
		id, err := uuid.Parse(req.AssessmentID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid assessment_id: %v", err)
		}
		in.AssessmentID = &id
	}

	result, err := h.reportPosting.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus("report posting", err)
	}

	resp := &ReportPostingResponse{
		ReportID:      result.ID.String(),
		ReportedAt:    result.ReportedAt,
		TimesReported: int32(result.TimesSeen),
	}
	if result.AssessmentID != nil {
		resp.AssessmentID = result.AssessmentID.String()
	}
	return resp, nil
}

func (h *Handler) toStatus(op string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, usecase.ErrAssessmentNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		h.logger.Error("failed to "+op, slog.String("error", err.Error()))
		return status.Error(codes.Internal, "internal error")
	}
}

func toAssessmentMsg(a dto.AssessmentResponse) *AssessmentMsg {
	return &AssessmentMsg{
		ID:              a.ID.String(),
		Fingerprint:     a.Fingerprint,
		SourceURL:       a.SourceURL,
		Score:           int32(a.Score),
		Verdict:         a.Verdict,
		VerdictLabel:    a.VerdictLabel,
		Summary:         a.Summary,
		Strategy:        a.Strategy,
		RedFlags:        a.RedFlags,
		AssessedAt:      a.AssessedAt.UTC().Format(time.RFC3339),
		CorrectJobTitle: a.CorrectJobTitle,
		Posting: &PostingMsg{
			Title:       a.Posting.Title,
			Company:     a.Posting.Company,
			Description: a.Posting.Description,
			Location:    a.Posting.Location,
			Salary:      a.Posting.Salary,
		},
	}
}
