package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
)

// FanoutPublisher delivers events to a primary publisher and then to
// best-effort secondaries. Only the primary can fail a publish.
type FanoutPublisher struct {
	primary     port.EventPublisher
	secondaries []port.EventPublisher
	logger      *slog.Logger
}

// NewFanoutPublisher creates a FanoutPublisher.
func NewFanoutPublisher(primary port.EventPublisher, logger *slog.Logger, secondaries ...port.EventPublisher) *FanoutPublisher {
	return &FanoutPublisher{
		primary:     primary,
		secondaries: secondaries,
		logger:      logger,
	}
}

// Publish implements port.EventPublisher.
func (p *FanoutPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	if err := p.primary.Publish(ctx, domainEvents...); err != nil {
		return fmt.Errorf("primary publisher: %w", err)
	}

	for _, s := range p.secondaries {
		if err := s.Publish(ctx, domainEvents...); err != nil {
			p.logger.WarnContext(ctx, "secondary publisher failed", slog.String("error", err.Error()))
		}
	}
	return nil
}
