package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/events"
)

// --- Mock implementations ---

type mockAssessmentRepository struct {
	mu                  sync.Mutex
	saved               []*model.PostingAssessment
	saveFunc            func(ctx context.Context, a *model.PostingAssessment) error
	findByIDFunc        func(ctx context.Context, id uuid.UUID) (*model.PostingAssessment, error)
	findByFingerprintFn func(ctx context.Context, fp string) (*model.PostingAssessment, error)
	listLimit           int
	listOffset          int
}

func (m *mockAssessmentRepository) Save(ctx context.Context, a *model.PostingAssessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PostingAssessment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAssessmentRepository) FindByFingerprint(ctx context.Context, fp string) (*model.PostingAssessment, error) {
	if m.findByFingerprintFn != nil {
		return m.findByFingerprintFn(ctx, fp)
	}
	return nil, nil
}

func (m *mockAssessmentRepository) ListRecent(_ context.Context, limit, offset int) ([]*model.PostingAssessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listLimit, m.listOffset = limit, offset
	return m.saved, nil
}

type mockReportRepository struct {
	appended   []*model.PostingReport
	appendErr  error
	listLimit  int
	listOffset int
}

func (m *mockReportRepository) Append(_ context.Context, r *model.PostingReport) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appended = append(m.appended, r)
	return nil
}

func (m *mockReportRepository) FindByID(_ context.Context, id uuid.UUID) (*model.PostingReport, error) {
	for _, r := range m.appended {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockReportRepository) List(_ context.Context, limit, offset int) ([]*model.PostingReport, error) {
	m.listLimit, m.listOffset = limit, offset
	return m.appended, nil
}

func (m *mockReportRepository) CountByURL(_ context.Context, url string) (int, error) {
	n := 0
	for _, r := range m.appended {
		if r.URL() == url {
			n++
		}
	}
	return n, nil
}

type mockEventPublisher struct {
	mu              sync.Mutex
	publishedEvents []events.DomainEvent
	publishErr      error
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockCache struct {
	mu      sync.Mutex
	entries map[string]model.ScoreReport
	getErr  error
	setErr  error
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]model.ScoreReport)}
}

func (m *mockCache) Get(_ context.Context, key string) (model.ScoreReport, bool, error) {
	if m.getErr != nil {
		return model.ScoreReport{}, false, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.entries[key]
	return r, ok, nil
}

func (m *mockCache) Set(_ context.Context, key string, report model.ScoreReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = report
	return nil
}

type mockMetrics struct {
	mu          sync.Mutex
	assessments map[string]int
	reports     int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{assessments: make(map[string]int)}
}

func (m *mockMetrics) RecordAssessment(_ context.Context, strategy valueobject.Strategy, verdict valueobject.Verdict) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments[strategy.String()+"/"+verdict.String()]++
}

func (m *mockMetrics) RecordReport(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports++
}

type mockNotifier struct {
	notified []*model.PostingReport
	err      error
}

func (m *mockNotifier) NotifyReported(_ context.Context, r *model.PostingReport) error {
	m.notified = append(m.notified, r)
	return m.err
}

type mockExtractor struct {
	extraction port.Extraction
	err        error
	calls      int
}

func (m *mockExtractor) Extract(_ context.Context, url string) (port.Extraction, error) {
	m.calls++
	ext := m.extraction
	ext.URL = url
	return ext, m.err
}

func (m *mockExtractor) ExtractHTML(url, _ string) (port.Extraction, error) {
	return m.Extract(context.Background(), url)
}

type countingScorer struct {
	mu     sync.Mutex
	report model.ScoreReport
	err    error
	calls  int
}

func (s *countingScorer) Score(_ context.Context, _ model.JobPosting) (model.ScoreReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.report, s.err
}

func (s *countingScorer) Strategy() valueobject.Strategy {
	return valueobject.StrategyRemote
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(_ context.Context, _ model.JobPosting) (port.RemoteAnalysis, error) {
	return port.RemoteAnalysis{}, errors.New("analyzer unavailable")
}
