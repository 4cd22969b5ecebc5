package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/application/usecase"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/event"
	pkgkafka "github.com/Adis-git/job-sentinel-ai-check/pkg/kafka"
)

// PostingAssessor is satisfied by *usecase.AssessPosting.
type PostingAssessor interface {
	Execute(ctx context.Context, req dto.AssessPostingRequest) (dto.AssessmentResponse, error)
}

// IntakeHandler turns submitted-posting messages into assessments.
type IntakeHandler struct {
	assessor PostingAssessor
	logger   *slog.Logger
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(assessor PostingAssessor, logger *slog.Logger) *IntakeHandler {
	return &IntakeHandler{assessor: assessor, logger: logger}
}

// Handle is a pkgkafka.Handler. Messages that can never succeed (other event
// types, bad JSON, invalid postings) are logged and skipped so they get
// committed. Other failures are returned and the message is retried.
func (h *IntakeHandler) Handle(ctx context.Context, msg pkgkafka.Message) error {
	if et, ok := msg.Headers["event_type"]; ok && et != event.EventTypePostingSubmitted {
		h.logger.DebugContext(ctx, "ignoring intake message", slog.String("event_type", et))
		return nil
	}

	var req dto.AssessPostingRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		h.logger.WarnContext(ctx, "dropping malformed intake message",
			slog.String("key", string(msg.Key)),
			slog.String("error", err.Error()),
		)
		return nil
	}

	resp, err := h.assessor.Execute(ctx, req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRequest) {
			h.logger.WarnContext(ctx, "dropping invalid intake posting",
				slog.String("key", string(msg.Key)),
				slog.String("error", err.Error()),
			)
			return nil
		}
		return err
	}

	h.logger.InfoContext(ctx, "assessed submitted posting",
		slog.String("assessment_id", resp.ID.String()),
		slog.Int("score", resp.Score),
		slog.String("verdict", resp.Verdict),
	)
	return nil
}

// NewIntakeConsumer wires an IntakeHandler to a consumer on topic.
func NewIntakeConsumer(cfg pkgkafka.Config, topic string, assessor PostingAssessor, logger *slog.Logger) (*pkgkafka.Consumer, error) {
	h := NewIntakeHandler(assessor, logger)
	return pkgkafka.NewConsumer(cfg, topic, h.Handle, logger)
}
