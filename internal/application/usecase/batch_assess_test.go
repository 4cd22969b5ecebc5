package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/application/usecase"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/service"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/testutil"
)

func TestBatchAssess_Execute(t *testing.T) {
	t.Run("keeps request order and isolates failures", func(t *testing.T) {
		f := newAssessFixture()
		uc := usecase.NewBatchAssess(f.useCase(service.NewRiskScorer()), 3)

		generic := validAssessRequest()
		generic.Company = "Global"

		req := dto.BatchAssessRequest{Postings: []dto.AssessPostingRequest{
			validAssessRequest(),
			{Company: "nothing else"},
			generic,
			{Title: "Work From Home", Description: testutil.ScamDescription},
		}}

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, resp.Results, 4)
		assert.Equal(t, 1, resp.Failed)
		for i, r := range resp.Results {
			assert.Equal(t, i, r.Index)
		}

		require.NotNil(t, resp.Results[0].Assessment)
		assert.Equal(t, 90, resp.Results[0].Assessment.Score)

		assert.Nil(t, resp.Results[1].Assessment)
		assert.Contains(t, resp.Results[1].Error, "posting title or description is required")

		require.NotNil(t, resp.Results[2].Assessment)
		assert.Equal(t, 80, resp.Results[2].Assessment.Score)

		require.NotNil(t, resp.Results[3].Assessment)
		assert.Equal(t, 0, resp.Results[3].Assessment.Score)

		assert.Len(t, f.repo.saved, 3)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		uc := usecase.NewBatchAssess(newAssessFixture().useCase(service.NewRiskScorer()), 2)

		_, err := uc.Execute(context.Background(), dto.BatchAssessRequest{})

		assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
	})

	t.Run("rejects an oversized batch", func(t *testing.T) {
		uc := usecase.NewBatchAssess(newAssessFixture().useCase(service.NewRiskScorer()), 2)

		postings := make([]dto.AssessPostingRequest, usecase.MaxBatchSize+1)
		for i := range postings {
			postings[i] = validAssessRequest()
		}

		_, err := uc.Execute(context.Background(), dto.BatchAssessRequest{Postings: postings})

		assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
	})
}
