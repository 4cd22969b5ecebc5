package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
)

func newTestProducer(t *testing.T, cfg Config) *Producer {
	t.Helper()
	p, err := NewProducer(cfg)
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}
	return p
}

func TestNewProducer(t *testing.T) {
	p := newTestProducer(t, Config{Brokers: []string{"localhost:9092", "localhost:9093"}})

	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.brokers[0] != "localhost:9092" {
		t.Errorf("expected broker localhost:9092, got %s", p.brokers[0])
	}
	if p.transport != nil {
		t.Error("expected default transport when TLS/SASL are off")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
}

func TestNewProducerWithSASL(t *testing.T) {
	p := newTestProducer(t, Config{
		Brokers:       []string{"kafka:9093"},
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "SCRAM-SHA-512",
		SASLUsername:  "sentinel",
		SASLPassword:  "secret",
	})

	if p.transport == nil {
		t.Fatal("expected custom transport")
	}
	if p.transport.TLS == nil {
		t.Error("expected TLS config on transport")
	}
	if p.transport.SASL == nil || p.transport.SASL.Name() != "SCRAM-SHA-512" {
		t.Errorf("unexpected SASL mechanism: %v", p.transport.SASL)
	}
}

func TestNewProducerRejectsUnknownMechanism(t *testing.T) {
	_, err := NewProducer(Config{SASLEnabled: true, SASLMechanism: "GSSAPI"})
	if err == nil {
		t.Fatal("expected error for unsupported mechanism")
	}
}

func TestToKafkaMessages(t *testing.T) {
	msgs := toKafkaMessages([]Message{{
		Key:   []byte("posting-1"),
		Value: []byte(`{"score":65}`),
		Headers: map[string]string{
			"event_type": "jobsentinel.posting.assessed",
		},
	}})

	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if string(msgs[0].Key) != "posting-1" {
		t.Errorf("unexpected key %q", msgs[0].Key)
	}
	if len(msgs[0].Headers) != 1 || msgs[0].Headers[0].Key != "event_type" {
		t.Errorf("unexpected headers %+v", msgs[0].Headers)
	}
}

func TestFromKafkaMessage(t *testing.T) {
	msg := fromKafkaMessage(kafkago.Message{
		Key:   []byte("k"),
		Value: []byte("v"),
		Headers: []kafkago.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})

	if msg.Headers["content-type"] != "application/json" {
		t.Errorf("unexpected header map %v", msg.Headers)
	}
	if string(msg.Value) != "v" {
		t.Errorf("unexpected value %q", msg.Value)
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	p := newTestProducer(t, Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("topic-a")
	if w1 == nil {
		t.Fatal("expected non-nil writer")
	}
	if w2 := p.getOrCreateWriter("topic-a"); w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}
	if w3 := p.getOrCreateWriter("topic-b"); w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}
	if len(p.writers) != 2 {
		t.Errorf("expected 2 writers, got %d", len(p.writers))
	}
}

func TestProducerClose(t *testing.T) {
	p := newTestProducer(t, Config{Brokers: []string{"localhost:9092"}})
	_ = p.getOrCreateWriter("topic-a")
	_ = p.getOrCreateWriter("topic-b")

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}

func TestParseBrokers(t *testing.T) {
	got := ParseBrokers(" a:9092, ,b:9092 ,")
	if len(got) != 2 || got[0] != "a:9092" || got[1] != "b:9092" {
		t.Errorf("ParseBrokers = %v", got)
	}
	if ParseBrokers("") != nil {
		t.Error("expected nil for empty input")
	}
}

func TestNewConsumerRequiresGroup(t *testing.T) {
	_, err := NewConsumer(Config{Brokers: []string{"localhost:9092"}}, "topic", nil, nil)
	if err == nil {
		t.Fatal("expected error without consumer group")
	}
}
