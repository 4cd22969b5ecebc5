package cache

import (
	"context"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
)

// Nop never hits. Used when no Redis URL is configured.
type Nop struct{}

func (Nop) Get(context.Context, string) (model.ScoreReport, bool, error) {
	return model.ScoreReport{}, false, nil
}

func (Nop) Set(context.Context, string, model.ScoreReport) error { return nil }
