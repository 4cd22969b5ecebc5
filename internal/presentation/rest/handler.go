package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/application/usecase"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

type (
	PostingAssessor interface {
		Execute(ctx context.Context, req dto.AssessPostingRequest) (dto.AssessmentResponse, error)
	}
	URLAssessor interface {
		Execute(ctx context.Context, req dto.AssessURLRequest) (dto.AssessmentResponse, error)
	}
	BatchAssessor interface {
		Execute(ctx context.Context, req dto.BatchAssessRequest) (dto.BatchAssessResponse, error)
	}
	AssessmentGetter interface {
		Execute(ctx context.Context, id uuid.UUID) (dto.AssessmentResponse, error)
	}
	AssessmentLister interface {
		Execute(ctx context.Context, req dto.ListRequest) (dto.AssessmentListResponse, error)
	}
	PostingReporter interface {
		Execute(ctx context.Context, req dto.ReportPostingRequest) (dto.ReportResponse, error)
	}
	ReportLister interface {
		Execute(ctx context.Context, req dto.ListRequest) (dto.ReportListResponse, error)
	}
)

// UseCases groups the application operations the REST API exposes.
type UseCases struct {
	AssessPosting   PostingAssessor
	AssessURL       URLAssessor
	BatchAssess     BatchAssessor
	GetAssessment   AssessmentGetter
	ListAssessments AssessmentLister
	ReportPosting   PostingReporter
	ListReports     ReportLister
}

// Handler serves the /api/v1 endpoints.
type Handler struct {
	uc     UseCases
	logger *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(uc UseCases, logger *slog.Logger) *Handler {
	return &Handler{uc: uc, logger: logger}
}

// IncompleteExtractionResponse is returned with 422 when a page lacked
// essential fields.
type IncompleteExtractionResponse struct {
	Error   string         `json:"error"`
	URL     string         `json:"url"`
	Site    string         `json:"site"`
	Posting dto.PostingDTO `json:"posting"`
}

func (h *Handler) AssessPosting(w http.ResponseWriter, r *http.Request) {
	var req dto.AssessPostingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.uc.AssessPosting.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AssessURL(w http.ResponseWriter, r *http.Request) {
	var req dto.AssessURLRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.uc.AssessURL.Execute(r.Context(), req)
	if err != nil {
		var incomplete *usecase.IncompleteExtractionError
		if errors.As(err, &incomplete) {
			writeJSON(w, http.StatusUnprocessableEntity, IncompleteExtractionResponse{
				Error:   incomplete.Error(),
				URL:     incomplete.URL,
				Site:    incomplete.Site,
				Posting: incomplete.Posting,
			})
			return
		}
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) BatchAssess(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchAssessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.uc.BatchAssess.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}

	resp, err := h.uc.GetAssessment.Execute(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	resp, err := h.uc.ListAssessments.Execute(r.Context(), page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ReportPosting(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportPostingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.uc.ReportPosting.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	resp, err := h.uc.ListReports.Execute(r.Context(), page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parsePage(w http.ResponseWriter, r *http.Request) (dto.ListRequest, bool) {
	var page dto.ListRequest
	q := r.URL.Query()

	for name, dst := range map[string]*int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid "+name)
			return page, false
		}
		*dst = v
	}
	return page, true
}

// fail maps use case errors onto HTTP status codes.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest),
		errors.Is(err, usecase.ErrInvalidJobURL),
		errors.Is(err, valueobject.ErrUnsupportedSite):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrAssessmentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusRequestTimeout, "request cancelled")
	default:
		h.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
