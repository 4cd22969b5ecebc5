package model

import (
	"strings"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

const (
	MinScore = 0
	MaxScore = 100
)

// ScoreReport is the outcome of scoring one posting.
type ScoreReport struct {
	Verdict  valueobject.Verdict
	Strategy valueobject.Strategy
	Summary  string
	RedFlags []string
	Score    int
	// CorrectJobTitle is an optional title suggested by a remote analysis.
	CorrectJobTitle string
}

// NewScoreReport clamps score to [0,100] and derives the verdict from it.
// An empty summary defaults to the verdict description.
func NewScoreReport(score int, redFlags []string, summary string) ScoreReport {
	score = ClampScore(score)
	verdict := valueobject.VerdictFromScore(score)

	flags := make([]string, len(redFlags))
	copy(flags, redFlags)

	if summary == "" {
		summary = verdict.Description()
	}

	return ScoreReport{
		Score:    score,
		Verdict:  verdict,
		RedFlags: flags,
		Summary:  summary,
	}
}

// WithStrategy returns a copy attributed to strategy.
func (r ScoreReport) WithStrategy(strategy valueobject.Strategy) ScoreReport {
	r.Strategy = strategy
	return r
}

// WithCorrectJobTitle returns a copy carrying a suggested title.
func (r ScoreReport) WithCorrectJobTitle(title string) ScoreReport {
	r.CorrectJobTitle = strings.TrimSpace(title)
	return r
}

// ClampScore bounds score to [MinScore, MaxScore].
func ClampScore(score int) int {
	switch {
	case score < MinScore:
		return MinScore
	case score > MaxScore:
		return MaxScore
	default:
		return score
	}
}
