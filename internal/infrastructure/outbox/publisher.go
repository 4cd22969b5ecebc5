package outbox

import (
	"context"
	"fmt"

	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
)

// Publisher implements port.EventPublisher by writing events to the outbox.
// The Relay forwards them to the broker later.
type Publisher struct {
	repo events.OutboxRepository
}

// NewPublisher creates a new outbox-backed event publisher.
func NewPublisher(repo events.OutboxRepository) *Publisher {
	return &Publisher{repo: repo}
}

// Publish stores the events as unpublished outbox entries.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	entries := make([]events.OutboxEntry, 0, len(domainEvents))
	for _, evt := range domainEvents {
		entry, err := events.NewOutboxEntry(evt)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil
	}

	if err := p.repo.Store(ctx, entries); err != nil {
		return fmt.Errorf("failed to store outbox entries: %w", err)
	}
	return nil
}
