package service

import (
	"context"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

// Scorer defines the interface for posting scoring strategies.
// RiskScorer (rule-based) and RemoteScorer (language model) implement it.
type Scorer interface {
	Score(ctx context.Context, posting model.JobPosting) (model.ScoreReport, error)
	Strategy() valueobject.Strategy
}
