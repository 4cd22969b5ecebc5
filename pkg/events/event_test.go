package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

type postingFlagged struct {
	BaseEvent
	Score int `json:"score"`
}

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()

	before := time.Now().UTC()
	event := NewBaseEvent("posting.assessed", aggregateID, "PostingAssessment")
	after := time.Now().UTC()

	if event.EventID() == uuid.Nil {
		t.Error("expected non-nil event ID")
	}
	if event.EventType() != "posting.assessed" {
		t.Errorf("expected event type %q, got %q", "posting.assessed", event.EventType())
	}
	if event.AggregateID() != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, event.AggregateID())
	}
	if event.AggregateType() != "PostingAssessment" {
		t.Errorf("expected aggregate type %q, got %q", "PostingAssessment", event.AggregateType())
	}
	if event.OccurredAt().Before(before) || event.OccurredAt().After(after) {
		t.Errorf("expected occurredAt between %v and %v, got %v", before, after, event.OccurredAt())
	}
}

func TestEmbeddedEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = postingFlagged{}
}

func TestEmbeddedEventJSONFlattensEnvelope(t *testing.T) {
	evt := postingFlagged{
		BaseEvent: NewBaseEvent("posting.suspicious", uuid.New(), "PostingAssessment"),
		Score:     12,
	}

	raw, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"event_id", "event_type", "aggregate_id", "aggregate_type", "occurred_at", "score"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("expected key %q in payload %s", key, raw)
		}
	}
	if parsed["event_type"] != "posting.suspicious" {
		t.Errorf("event_type = %v", parsed["event_type"])
	}
}

func TestNewOutboxEntry(t *testing.T) {
	aggregateID := uuid.New()
	event := postingFlagged{
		BaseEvent: NewBaseEvent("posting.reported", aggregateID, "PostingReport"),
		Score:     40,
	}

	entry, err := NewOutboxEntry(event)
	if err != nil {
		t.Fatalf("NewOutboxEntry: %v", err)
	}

	if entry.ID != event.EventID() {
		t.Errorf("expected outbox ID %v, got %v", event.EventID(), entry.ID)
	}
	if entry.AggregateID != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, entry.AggregateID)
	}
	if entry.AggregateType != "PostingReport" {
		t.Errorf("expected aggregate type %q, got %q", "PostingReport", entry.AggregateType)
	}
	if entry.EventType != "posting.reported" {
		t.Errorf("expected event type %q, got %q", "posting.reported", entry.EventType)
	}
	if !entry.CreatedAt.Equal(event.OccurredAt()) {
		t.Errorf("expected created at %v, got %v", event.OccurredAt(), entry.CreatedAt)
	}
	if entry.PublishedAt != nil {
		t.Error("expected published at to be nil")
	}

	var parsed map[string]any
	if err := json.Unmarshal(entry.Payload, &parsed); err != nil {
		t.Fatalf("expected valid JSON payload, got error: %v", err)
	}
	if parsed["score"] != float64(40) {
		t.Errorf("payload score = %v, want 40", parsed["score"])
	}
}

func TestEventCollector(t *testing.T) {
	aggregateID := uuid.New()

	t.Run("record keeps order", func(t *testing.T) {
		c := &EventCollector{}
		c.Record(NewBaseEvent("first", aggregateID, "Agg"))
		c.Record(NewBaseEvent("second", aggregateID, "Agg"), NewBaseEvent("third", aggregateID, "Agg"))

		evts := c.Events()
		if len(evts) != 3 || c.Pending() != 3 {
			t.Fatalf("expected 3 events, got %d", len(evts))
		}
		if evts[0].EventType() != "first" || evts[2].EventType() != "third" {
			t.Errorf("unexpected order: %s, %s", evts[0].EventType(), evts[2].EventType())
		}
	})

	t.Run("events does not drain", func(t *testing.T) {
		c := &EventCollector{}
		c.Record(NewBaseEvent("only", aggregateID, "Agg"))
		_ = c.Events()
		if c.Pending() != 1 {
			t.Error("expected Events() to leave the queue intact")
		}
	})

	t.Run("clear drains", func(t *testing.T) {
		c := &EventCollector{}
		c.Record(NewBaseEvent("a", aggregateID, "Agg"), NewBaseEvent("b", aggregateID, "Agg"))

		drained := c.ClearEvents()
		if len(drained) != 2 {
			t.Fatalf("expected 2 drained events, got %d", len(drained))
		}
		if c.Pending() != 0 {
			t.Errorf("expected empty queue, got %d", c.Pending())
		}
	})

	t.Run("clear on empty returns nil", func(t *testing.T) {
		c := &EventCollector{}
		if got := c.ClearEvents(); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}
