package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/service"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/cache"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/config"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/extractor"
	infrakafka "github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/kafka"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/llm"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/messaging"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/notify"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/outbox"
	"github.com/Adis-git/job-sentinel-ai-check/internal/presentation/rest"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
	pkgkafka "github.com/Adis-git/job-sentinel-ai-check/pkg/kafka"
)

// eventStack owns the publisher chain and whatever it needs shut down.
type eventStack struct {
	Publisher port.EventPublisher
	producer  *pkgkafka.Producer
	relay     *outbox.Relay
	consumer  *pkgkafka.Consumer
}

// Close stops the relay and consumer before closing the producer.
func (s *eventStack) Close() {
	if s.relay != nil {
		s.relay.Stop()
	}
	if s.consumer != nil {
		_ = s.consumer.Close()
	}
	if s.producer != nil {
		_ = s.producer.Close()
	}
}

func buildEvents(ctx context.Context, cfg config.Config, outboxRepo events.OutboxRepository, stream port.EventPublisher, logger *slog.Logger) (*eventStack, error) {
	stack := &eventStack{}

	var primary port.EventPublisher
	switch cfg.EventsBackend {
	case config.EventsBackendKafka, config.EventsBackendOutbox:
		producer, err := pkgkafka.NewProducer(cfg.Kafka.Client())
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka producer: %w", err)
		}
		stack.producer = producer

		if cfg.EventsBackend == config.EventsBackendKafka {
			primary = infrakafka.NewPublisher(producer, cfg.Kafka.Topic, logger)
			break
		}

		relay := outbox.NewRelay(outboxRepo, producer, cfg.Kafka.Topic, cfg.Outbox.Schedule, cfg.Outbox.BatchSize, logger)
		if err := relay.Start(ctx); err != nil {
			_ = producer.Close()
			return nil, fmt.Errorf("failed to start outbox relay: %w", err)
		}
		stack.relay = relay
		primary = outbox.NewPublisher(outboxRepo)
	default:
		primary = messaging.NewLogPublisher(logger)
	}

	stack.Publisher = messaging.NewFanoutPublisher(primary, logger, stream)
	logger.Info("event publishing configured", "backend", cfg.EventsBackend, "topic", cfg.Kafka.Topic)
	return stack, nil
}

func startIntake(ctx context.Context, cfg config.Config, assessor infrakafka.PostingAssessor, stack *eventStack, logger *slog.Logger) error {
	if cfg.Kafka.IntakeTopic == "" {
		return nil
	}

	consumer, err := infrakafka.NewIntakeConsumer(cfg.Kafka.Client(), cfg.Kafka.IntakeTopic, assessor, logger)
	if err != nil {
		return err
	}
	stack.consumer = consumer

	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("intake consumer stopped", "error", err)
		}
	}()
	logger.Info("intake consumer started", "topic", cfg.Kafka.IntakeTopic)
	return nil
}

// buildCache returns the assessment cache, a readiness probe for it (nil
// without redis) and a close func.
func buildCache(ctx context.Context, cfg config.Config) (port.AssessmentCache, rest.ReadinessCheck, func(), error) {
	if cfg.Redis.URL == "" {
		return cache.Nop{}, nil, func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, nil, err
	}
	ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
	return cache.NewRedisCache(client, cfg.Redis.TTL), ping, func() { _ = client.Close() }, nil
}

func buildScorer(cfg config.Config, logger *slog.Logger) (service.Scorer, error) {
	rules := service.NewRiskScorer()
	if cfg.Scoring.Strategy != valueobject.StrategyRemote.String() {
		return rules, nil
	}

	client, err := llm.NewClient(llm.Config{
		BaseURL: cfg.Remote.BaseURL,
		Model:   cfg.Remote.Model,
		APIKey:  cfg.Remote.APIKey,
		Timeout: cfg.Remote.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create remote analyzer: %w", err)
	}

	var fallback service.Scorer
	if cfg.Scoring.Fallback {
		fallback = rules
	}
	return service.NewRemoteScorer(client, fallback, logger), nil
}

func buildExtractor(cfg config.Config) (*extractor.Extractor, error) {
	selectors, err := extractor.LoadSelectors(cfg.Extractor.SelectorsFile)
	if err != nil {
		return nil, err
	}

	var fetcher extractor.Fetcher
	if cfg.Extractor.UseBrowser {
		fetcher = extractor.NewBrowserFetcher(cfg.Extractor.UserAgent, cfg.Extractor.Timeout, "")
	} else {
		fetcher = extractor.NewHTTPFetcher(
			&http.Client{Timeout: cfg.Extractor.Timeout},
			cfg.Extractor.UserAgent,
			cfg.Extractor.MaxBodyBytes,
			extractor.NewHostLimiter(cfg.Extractor.FetchRate, 1),
		)
	}
	return extractor.New(fetcher, selectors), nil
}

func buildNotifier(cfg config.Config) (port.ReportNotifier, error) {
	if !cfg.Telegram.Enabled() {
		return notify.Nop{}, nil
	}
	return notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
}
