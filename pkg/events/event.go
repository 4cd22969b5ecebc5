package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent carries the envelope every domain event shares. It is meant to be
// embedded; its fields are flattened into the event's JSON payload.
type BaseEvent struct {
	Timestamp     time.Time `json:"occurred_at"`
	Type          string    `json:"event_type"`
	AggregateKind string    `json:"aggregate_type"`
	ID            uuid.UUID `json:"event_id"`
	Aggregate     uuid.UUID `json:"aggregate_id"`
}

// NewBaseEvent creates a BaseEvent with a generated ID and the current UTC time.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, aggregateType string) BaseEvent {
	return BaseEvent{
		ID:            uuid.New(),
		Type:          eventType,
		Aggregate:     aggregateID,
		AggregateKind: aggregateType,
		Timestamp:     time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID     { return e.ID }
func (e BaseEvent) EventType() string      { return e.Type }
func (e BaseEvent) AggregateID() uuid.UUID { return e.Aggregate }
func (e BaseEvent) AggregateType() string  { return e.AggregateKind }
func (e BaseEvent) OccurredAt() time.Time  { return e.Timestamp }
