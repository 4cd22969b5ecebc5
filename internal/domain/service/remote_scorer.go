package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

// RemoteScorer delegates scoring to a language-model analyzer.
// If the analyzer fails and a fallback is configured, the fallback's report
// is returned unchanged. The two outputs are never blended.
type RemoteScorer struct {
	analyzer port.RemoteAnalyzer
	fallback Scorer
	logger   *slog.Logger
}

// NewRemoteScorer creates a RemoteScorer. fallback may be nil.
func NewRemoteScorer(analyzer port.RemoteAnalyzer, fallback Scorer, logger *slog.Logger) *RemoteScorer {
	return &RemoteScorer{
		analyzer: analyzer,
		fallback: fallback,
		logger:   logger,
	}
}

// Strategy identifies the remote strategy.
func (s *RemoteScorer) Strategy() valueobject.Strategy {
	return valueobject.StrategyRemote
}

// Score asks the analyzer for a verdict. The returned score is clamped and
// the verdict is derived from it, never taken from the analyzer.
func (s *RemoteScorer) Score(ctx context.Context, posting model.JobPosting) (model.ScoreReport, error) {
	analysis, err := s.analyzer.Analyze(ctx, posting)
	if err != nil {
		if s.fallback == nil {
			return model.ScoreReport{}, fmt.Errorf("remote analysis failed: %w", err)
		}
		s.logger.Warn("remote analysis failed, using fallback scorer",
			"error", err,
			"fallback", s.fallback.Strategy().String(),
		)
		return s.fallback.Score(ctx, posting)
	}

	report := model.NewScoreReport(analysis.Score, analysis.RedFlags, analysis.Analysis)
	return report.WithStrategy(valueobject.StrategyRemote).WithCorrectJobTitle(analysis.CorrectJobTitle), nil
}
