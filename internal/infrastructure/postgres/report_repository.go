package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
)

// ReportRepository implements port.ReportRepository using PostgreSQL.
// Rows are only ever inserted.
type ReportRepository struct {
	db DB
}

// NewReportRepository creates a new PostgreSQL-backed report audit log.
func NewReportRepository(db DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const selectReportSQL = `
	SELECT id, assessment_id, url, title, company, description, location, salary, reason, reported_at
	FROM posting_reports
`

// Append inserts a report.
func (r *ReportRepository) Append(ctx context.Context, report *model.PostingReport) error {
	posting := report.Posting()

	_, err := r.db.Exec(ctx, `
		INSERT INTO posting_reports (
			id, assessment_id, url, title, company, description, location, salary, reason, reported_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		report.ID(),
		report.AssessmentID(),
		report.URL(),
		posting.Title,
		posting.Company,
		posting.Description,
		posting.Location,
		nullableString(posting.Salary),
		report.Reason(),
		report.ReportedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to append report: %w", err)
	}
	return nil
}

// FindByID retrieves a report, or nil when none matches.
func (r *ReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PostingReport, error) {
	return scanReport(r.db.QueryRow(ctx, selectReportSQL+` WHERE id = $1`, id))
}

// List returns reports newest first.
func (r *ReportRepository) List(ctx context.Context, limit, offset int) ([]*model.PostingReport, error) {
	rows, err := r.db.Query(ctx, selectReportSQL+` ORDER BY reported_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*model.PostingReport, 0, limit)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return reports, nil
}

// CountByURL counts reports filed against url.
func (r *ReportRepository) CountByURL(ctx context.Context, url string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posting_reports WHERE url = $1`, url).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return n, nil
}

func scanReport(row pgx.Row) (*model.PostingReport, error) {
	var (
		id           uuid.UUID
		assessmentID *uuid.UUID
		url          string
		title        string
		company      string
		description  string
		location     string
		salary       *string
		reason       string
		reportedAt   time.Time
	)

	err := row.Scan(&id, &assessmentID, &url, &title, &company, &description, &location, &salary, &reason, &reportedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	posting := model.NewJobPosting(title, company, description, location, salary)
	return model.ReconstructReport(id, posting, url, reason, assessmentID, reportedAt), nil
}
