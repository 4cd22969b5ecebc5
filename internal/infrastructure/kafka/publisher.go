package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
	pkgkafka "github.com/Adis-git/job-sentinel-ai-check/pkg/kafka"
)

// MessageProducer is the part of *pkgkafka.Producer the publishers use.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements port.EventPublisher using Kafka.
type Publisher struct {
	producer MessageProducer
	logger   *slog.Logger
	topic    string
}

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer MessageProducer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka, keyed by aggregate id so one
// posting's events stay ordered on one partition.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)

		messages = append(messages, EventMessage(evt.AggregateID().String(), eventType, evt.EventID().String(), evt.AggregateType(), payload))
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}

// EventMessage builds the wire message for an encoded event.
func EventMessage(key, eventType, eventID, aggregateType string, payload []byte) pkgkafka.Message {
	return pkgkafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: map[string]string{
			"event_type":     eventType,
			"event_id":       eventID,
			"aggregate_type": aggregateType,
		},
	}
}
