package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/kafka"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
)

// Relay periodically forwards unpublished outbox entries to Kafka.
type Relay struct {
	cron      *cron.Cron
	repo      events.OutboxRepository
	producer  kafka.MessageProducer
	logger    *slog.Logger
	topic     string
	spec      string // cron spec, e.g. "@every 5s"
	batchSize int
	mu        sync.Mutex
}

// NewRelay creates a Relay that runs on spec.
func NewRelay(repo events.OutboxRepository, producer kafka.MessageProducer, topic, spec string, batchSize int, logger *slog.Logger) *Relay {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Relay{
		cron:      cron.New(),
		repo:      repo,
		producer:  producer,
		logger:    logger,
		topic:     topic,
		spec:      spec,
		batchSize: batchSize,
	}
}

// Start registers the job and starts the scheduler.
func (r *Relay) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		if _, err := r.RunOnce(ctx); err != nil {
			r.logger.Error("outbox relay failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	r.cron.Start()
	r.logger.Info("outbox relay started", "schedule", r.spec, "topic", r.topic)
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (r *Relay) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("outbox relay stopped")
}

// RunOnce forwards one batch and returns how many entries were published.
// Overlapping runs are serialised.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.repo.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch outbox entries: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		msg := kafka.EventMessage(e.AggregateID.String(), e.EventType, e.ID.String(), e.AggregateType, e.Payload)
		if err := r.producer.Publish(ctx, r.topic, msg); err != nil {
			// Keep what already went out; the rest is retried next tick.
			if markErr := r.markPublished(ctx, ids); markErr != nil {
				return len(ids), markErr
			}
			return len(ids), fmt.Errorf("failed to publish outbox entry %s: %w", e.ID, err)
		}
		ids = append(ids, e.ID)
	}

	if err := r.markPublished(ctx, ids); err != nil {
		return len(ids), err
	}

	r.logger.Debug("outbox batch relayed", "count", len(ids))
	return len(ids), nil
}

func (r *Relay) markPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.repo.MarkPublished(ctx, ids); err != nil {
		return fmt.Errorf("failed to mark outbox entries published: %w", err)
	}
	return nil
}
