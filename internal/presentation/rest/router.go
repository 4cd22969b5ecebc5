package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Adis-git/job-sentinel-ai-check/pkg/auth"
)

// RouterConfig holds everything NewRouter mounts besides the API handler.
type RouterConfig struct {
	Logger  *slog.Logger
	JWT     *auth.JWTService
	Health  *HealthHandler
	Metrics http.Handler
	Stream  *Hub
	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit int
}

// NewRouter builds the HTTP API. Admin listing endpoints require a bearer
// token with the admin role; everything else is public.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware(cfg.Logger))

	if cfg.Health != nil {
		r.Get("/healthz", cfg.Health.Healthz)
		r.Get("/readyz", cfg.Health.Readyz)
	}
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(RateLimitMiddleware(NewClientRateLimiter(cfg.RateLimit)))
		}

		r.Post("/assessments", h.AssessPosting)
		r.Post("/assessments/url", h.AssessURL)
		r.Post("/assessments/batch", h.BatchAssess)
		r.Get("/assessments/{id}", h.GetAssessment)
		r.Post("/reports", h.ReportPosting)

		if cfg.Stream != nil {
			r.Get("/stream", cfg.Stream.ServeHTTP)
		}

		r.Group(func(r chi.Router) {
			r.Use(auth.HTTPMiddleware(cfg.JWT))
			r.Use(auth.RequireHTTPRole(auth.RoleAdmin))

			r.Get("/assessments", h.ListAssessments)
			r.Get("/reports", h.ListReports)
		})
	})

	return r
}
