package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

// DefaultTTL applies when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// RedisCache stores score reports as JSON strings with a TTL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ port.AssessmentCache = (*RedisCache)(nil)

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// NewRedisCache wraps client. A non-positive ttl falls back to DefaultTTL.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

type record struct {
	Summary         string   `json:"summary"`
	Strategy        string   `json:"strategy"`
	CorrectJobTitle string   `json:"correct_job_title,omitempty"`
	RedFlags        []string `json:"red_flags"`
	Score           int      `json:"score"`
}

// Get implements port.AssessmentCache.
func (c *RedisCache) Get(ctx context.Context, key string) (model.ScoreReport, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.ScoreReport{}, false, nil
	}
	if err != nil {
		return model.ScoreReport{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	report, err := decode(raw)
	if err != nil {
		return model.ScoreReport{}, false, fmt.Errorf("decode cached report %s: %w", key, err)
	}
	return report, true, nil
}

// Set implements port.AssessmentCache.
func (c *RedisCache) Set(ctx context.Context, key string, report model.ScoreReport) error {
	raw, err := encode(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func encode(report model.ScoreReport) ([]byte, error) {
	return json.Marshal(record{
		Score:           report.Score,
		RedFlags:        report.RedFlags,
		Summary:         report.Summary,
		Strategy:        report.Strategy.String(),
		CorrectJobTitle: report.CorrectJobTitle,
	})
}

func decode(raw []byte) (model.ScoreReport, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.ScoreReport{}, err
	}

	report := model.NewScoreReport(rec.Score, rec.RedFlags, rec.Summary).WithCorrectJobTitle(rec.CorrectJobTitle)
	if rec.Strategy != "" {
		strategy, err := valueobject.StrategyFromString(rec.Strategy)
		if err != nil {
			return model.ScoreReport{}, err
		}
		report = report.WithStrategy(strategy)
	}
	return report, nil
}
