//go:build integration

package postgres_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/service"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/postgres"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/testutil"
)

func migrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "migrations")
}

func assessedPosting(t *testing.T, posting model.JobPosting) *model.PostingAssessment {
	t.Helper()
	a, err := model.NewPostingAssessment(posting, "https://www.linkedin.com/jobs/view/42")
	require.NoError(t, err)
	report, err := service.NewRiskScorer().Score(context.Background(), posting)
	require.NoError(t, err)
	require.NoError(t, a.Assess(report, report.Strategy))
	return a
}

func TestPostgresRepositories(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t, migrationsDir())

	t.Run("assessment round trip keeps red flag order", func(t *testing.T) {
		pg.Truncate(t, "posting_assessments", "posting_reports", "outbox")
		repo := postgres.NewAssessmentRepository(pg.Pool)

		posting := model.NewJobPosting("Work From Home", "", testutil.ScamDescription, "", model.StringPtr("unlimited"))
		a := assessedPosting(t, posting)
		require.NoError(t, repo.Save(ctx, a))

		got, err := repo.FindByID(ctx, a.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, a.Report().RedFlags, got.Report().RedFlags)
		assert.Equal(t, a.Report().Score, got.Report().Score)
		assert.Equal(t, a.Report().Verdict, got.Report().Verdict)
		assert.Equal(t, "unlimited", got.Posting().SalaryText())
		assert.Equal(t, a.Fingerprint(), got.Fingerprint())

		byFP, err := repo.FindByFingerprint(ctx, a.Fingerprint())
		require.NoError(t, err)
		require.NotNil(t, byFP)
		assert.Equal(t, a.ID(), byFP.ID())
	})

	t.Run("suggested title survives a round trip", func(t *testing.T) {
		pg.Truncate(t, "posting_assessments")
		repo := postgres.NewAssessmentRepository(pg.Pool)

		posting := model.NewJobPosting("Senior Architect", "Acme", testutil.CleanDescription, "", nil)
		a, err := model.NewPostingAssessment(posting, "https://www.linkedin.com/jobs/view/43")
		require.NoError(t, err)
		report := model.NewScoreReport(68, []string{"title mismatch"}, "Duties describe support work.").
			WithCorrectJobTitle("Support Specialist")
		require.NoError(t, a.Assess(report, valueobject.StrategyRemote))
		require.NoError(t, repo.Save(ctx, a))

		got, err := repo.FindByID(ctx, a.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Support Specialist", got.Report().CorrectJobTitle)
		assert.Equal(t, valueobject.StrategyRemote, got.Strategy())

		plain := assessedPosting(t, model.NewJobPosting("Backend Engineer", "Acme", testutil.CleanDescription, "", nil))
		require.NoError(t, repo.Save(ctx, plain))
		got, err = repo.FindByID(ctx, plain.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.Report().CorrectJobTitle)
	})

	t.Run("missing assessment is nil", func(t *testing.T) {
		repo := postgres.NewAssessmentRepository(pg.Pool)

		got, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list recent is newest first", func(t *testing.T) {
		pg.Truncate(t, "posting_assessments")
		repo := postgres.NewAssessmentRepository(pg.Pool)

		first := assessedPosting(t, model.NewJobPosting("Backend Engineer", "Acme", testutil.CleanDescription, "", nil))
		require.NoError(t, repo.Save(ctx, first))
		second := assessedPosting(t, model.NewJobPosting("Frontend Engineer", "Acme", testutil.CleanDescription, "", nil))
		require.NoError(t, repo.Save(ctx, second))

		list, err := repo.ListRecent(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID(), list[0].ID())
		assert.Empty(t, list[0].Report().RedFlags)
	})

	t.Run("reports append and count by url", func(t *testing.T) {
		pg.Truncate(t, "posting_reports")
		repo := postgres.NewReportRepository(pg.Pool)

		for i := 0; i < 2; i++ {
			r, err := model.NewPostingReport(
				model.NewJobPosting("Online Job", "", "Send ur cv", "", nil),
				"https://www.indeed.com/viewjob?jk=1", "fee", nil,
			)
			require.NoError(t, err)
			require.NoError(t, repo.Append(ctx, r))
		}

		n, err := repo.CountByURL(ctx, "https://www.indeed.com/viewjob?jk=1")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		list, err := repo.List(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)

		got, err := repo.FindByID(ctx, list[0].ID())
		require.NoError(t, err)
		assert.Equal(t, "fee", got.Reason())
		assert.Nil(t, got.AssessmentID())
	})

	t.Run("outbox store fetch mark", func(t *testing.T) {
		pg.Truncate(t, "outbox")
		repo := postgres.NewOutboxRepository(pg.Pool)

		a := assessedPosting(t, model.NewJobPosting("Backend Engineer", "Acme", testutil.CleanDescription, "", nil))
		var entries []events.OutboxEntry
		for _, evt := range a.ClearEvents() {
			e, err := events.NewOutboxEntry(evt)
			require.NoError(t, err)
			entries = append(entries, e)
		}
		require.NoError(t, repo.Store(ctx, entries))
		require.NoError(t, repo.Store(ctx, entries))

		pending, err := repo.FetchUnpublished(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, len(entries))

		require.NoError(t, repo.MarkPublished(ctx, []uuid.UUID{pending[0].ID}))

		pending, err = repo.FetchUnpublished(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, pending, len(entries)-1)
	})
}
