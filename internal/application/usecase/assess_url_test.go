package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/application/usecase"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/service"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/testutil"
)

func TestAssessURL_Execute(t *testing.T) {
	const jobURL = "https://www.indeed.com/viewjob?jk=abc123"

	t.Run("extracts and assesses the posting", func(t *testing.T) {
		f := newAssessFixture()
		extractor := &mockExtractor{extraction: port.Extraction{
			Site: valueobject.JobSiteIndeed,
			Posting: model.NewJobPosting("Software Engineer", "Global", testutil.CleanDescription,
				"Remote", nil),
		}}
		uc := usecase.NewAssessURL(extractor, f.useCase(service.NewRiskScorer()))

		resp, err := uc.Execute(context.Background(), dto.AssessURLRequest{URL: jobURL})
		require.NoError(t, err)

		assert.Equal(t, 80, resp.Score)
		assert.Equal(t, jobURL, resp.SourceURL)
		assert.Equal(t, "Global", resp.Posting.Company)
		require.Len(t, f.repo.saved, 1)
		assert.Equal(t, jobURL, f.repo.saved[0].SourceURL())
	})

	t.Run("rejects urls that are not job postings", func(t *testing.T) {
		extractor := &mockExtractor{}
		uc := usecase.NewAssessURL(extractor, newAssessFixture().useCase(service.NewRiskScorer()))

		for _, raw := range []string{
			"",
			"ftp://www.linkedin.com/jobs/1",
			"https://example.com/about",
			"http://169.254.169.254/latest/meta-data?x=linkedin.com",
		} {
			_, err := uc.Execute(context.Background(), dto.AssessURLRequest{URL: raw})
			assert.ErrorIs(t, err, usecase.ErrInvalidJobURL, raw)
		}
		assert.Equal(t, 0, extractor.calls)
	})

	t.Run("returns the partial posting on incomplete extraction", func(t *testing.T) {
		f := newAssessFixture()
		extractor := &mockExtractor{
			extraction: port.Extraction{
				Site:    valueobject.JobSiteIndeed,
				Posting: model.NewJobPosting("Data Entry Clerk", "", "", "Remote", nil),
			},
			err: port.ErrIncompleteExtraction,
		}
		uc := usecase.NewAssessURL(extractor, f.useCase(service.NewRiskScorer()))

		_, err := uc.Execute(context.Background(), dto.AssessURLRequest{URL: jobURL})

		require.Error(t, err)
		assert.ErrorIs(t, err, port.ErrIncompleteExtraction)

		var incomplete *usecase.IncompleteExtractionError
		require.ErrorAs(t, err, &incomplete)
		assert.Equal(t, "Data Entry Clerk", incomplete.Posting.Title)
		assert.Equal(t, "indeed", incomplete.Site)
		assert.Empty(t, f.repo.saved)
	})

	t.Run("wraps fetch failures", func(t *testing.T) {
		extractor := &mockExtractor{err: errors.New("timeout")}
		uc := usecase.NewAssessURL(extractor, newAssessFixture().useCase(service.NewRiskScorer()))

		_, err := uc.Execute(context.Background(), dto.AssessURLRequest{URL: jobURL})

		testutil.AssertErrorContains(t, err, "failed to extract posting")
		assert.NotErrorIs(t, err, port.ErrIncompleteExtraction)
	})
}
