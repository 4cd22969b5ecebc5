package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/dto"
	"github.com/Adis-git/job-sentinel-ai-check/internal/application/usecase"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/event"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/observability"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/testutil"
)

type reportFixture struct {
	reports     *mockReportRepository
	assessments *mockAssessmentRepository
	publisher   *mockEventPublisher
	notifier    *mockNotifier
	metrics     *mockMetrics
}

func newReportFixture() *reportFixture {
	return &reportFixture{
		reports:     &mockReportRepository{},
		assessments: &mockAssessmentRepository{},
		publisher:   &mockEventPublisher{},
		notifier:    &mockNotifier{},
		metrics:     newMockMetrics(),
	}
}

func (f *reportFixture) useCase() *usecase.ReportPosting {
	return usecase.NewReportPosting(f.reports, f.assessments, f.publisher, f.notifier, f.metrics, observability.NopLogger())
}

func validReportRequest() dto.ReportPostingRequest {
	return dto.ReportPostingRequest{
		Title:       "Work From Home",
		Company:     "Global",
		Description: testutil.ScamDescription,
		URL:         "https://www.indeed.com/viewjob?jk=scam1",
		Reason:      "  asked for a registration fee ",
	}
}

func TestReportPosting_Execute(t *testing.T) {
	t.Run("records, publishes and notifies", func(t *testing.T) {
		f := newReportFixture()

		resp, err := f.useCase().Execute(context.Background(), validReportRequest())
		require.NoError(t, err)

		assert.Equal(t, "asked for a registration fee", resp.Reason)
		assert.Equal(t, 1, resp.TimesSeen)
		assert.Nil(t, resp.AssessmentID)
		require.Len(t, f.reports.appended, 1)
		assert.Equal(t, resp.ID, f.reports.appended[0].ID())
		testutil.RequireEventTypes(t, f.publisher.publishedEvents, event.EventTypePostingReported)
		assert.Len(t, f.notifier.notified, 1)
		assert.Equal(t, 1, f.metrics.reports)
	})

	t.Run("links the latest assessment of the same posting", func(t *testing.T) {
		f := newReportFixture()
		f.assessments.findByFingerprintFn = func(_ context.Context, fp string) (*model.PostingAssessment, error) {
			if fp == validReportRequest().Posting().Fingerprint() {
				return reconstructedAssessment(testutil.AssessmentID1), nil
			}
			return nil, nil
		}

		resp, err := f.useCase().Execute(context.Background(), validReportRequest())
		require.NoError(t, err)

		require.NotNil(t, resp.AssessmentID)
		assert.Equal(t, testutil.AssessmentID1, *resp.AssessmentID)
	})

	t.Run("keeps an explicit assessment id", func(t *testing.T) {
		f := newReportFixture()
		req := validReportRequest()
		id := testutil.AssessmentID2
		req.AssessmentID = &id

		resp, err := f.useCase().Execute(context.Background(), req)
		require.NoError(t, err)

		require.NotNil(t, resp.AssessmentID)
		assert.Equal(t, id, *resp.AssessmentID)
	})

	t.Run("counts repeated reports of one url", func(t *testing.T) {
		f := newReportFixture()
		uc := f.useCase()

		_, err := uc.Execute(context.Background(), validReportRequest())
		require.NoError(t, err)
		resp, err := uc.Execute(context.Background(), validReportRequest())
		require.NoError(t, err)

		assert.Equal(t, 2, resp.TimesSeen)
	})

	t.Run("notifier failure is not fatal", func(t *testing.T) {
		f := newReportFixture()
		f.notifier.err = errors.New("telegram unreachable")

		_, err := f.useCase().Execute(context.Background(), validReportRequest())
		require.NoError(t, err)
		assert.Equal(t, 1, f.metrics.reports)
	})

	t.Run("rejects an invalid url", func(t *testing.T) {
		f := newReportFixture()
		req := validReportRequest()
		req.URL = "indeed"

		_, err := f.useCase().Execute(context.Background(), req)

		assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
		assert.Empty(t, f.reports.appended)
	})

	t.Run("fails when the audit log is unavailable", func(t *testing.T) {
		f := newReportFixture()
		f.reports.appendErr = errors.New("disk full")

		_, err := f.useCase().Execute(context.Background(), validReportRequest())

		testutil.AssertErrorContains(t, err, "failed to save report")
		assert.Empty(t, f.notifier.notified)
	})
}

func TestListReports_Execute(t *testing.T) {
	reports := &mockReportRepository{}
	for i := 0; i < 3; i++ {
		r, err := model.NewPostingReport(
			model.NewJobPosting("Online Job", "", "Send ur cv", "", nil),
			"https://www.monster.com/job-openings/x", "", nil,
		)
		require.NoError(t, err)
		reports.appended = append(reports.appended, r)
	}
	uc := usecase.NewListReports(reports)

	resp, err := uc.Execute(context.Background(), dto.ListRequest{Limit: 1000})
	require.NoError(t, err)

	assert.Equal(t, 100, reports.listLimit)
	assert.Len(t, resp.Reports, 3)
	assert.NotEqual(t, uuid.Nil, resp.Reports[0].ID)
}
