package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
)

const schemaVersion = 1

// timeLayout is fixed-width so reported_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schemaV1 = `
CREATE TABLE IF NOT EXISTS posting_reports (
	id            TEXT PRIMARY KEY,
	assessment_id TEXT,
	url           TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	company       TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	location      TEXT NOT NULL DEFAULT '',
	salary        TEXT,
	reason        TEXT NOT NULL DEFAULT '',
	reported_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posting_reports_url ON posting_reports (url);
CREATE INDEX IF NOT EXISTS idx_posting_reports_reported_at ON posting_reports (reported_at);
`

// ReportStore is a file-backed report audit log implementing
// port.ReportRepository. It is what the CLI writes to.
type ReportStore struct {
	db *sql.DB
}

// Open opens or creates the audit log at path and brings its schema up to date.
func Open(ctx context.Context, path string) (*ReportStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// sqlite has a single writer
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &ReportStore{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *ReportStore) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *ReportStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append inserts a report.
func (s *ReportStore) Append(ctx context.Context, report *model.PostingReport) error {
	posting := report.Posting()

	var assessmentID, salary any
	if id := report.AssessmentID(); id != nil {
		assessmentID = id.String()
	}
	if posting.Salary != nil {
		salary = *posting.Salary
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO posting_reports (id, assessment_id, url, title, company, description, location, salary, reason, reported_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		report.ID().String(), assessmentID, report.URL(),
		posting.Title, posting.Company, posting.Description, posting.Location, salary,
		report.Reason(), report.ReportedAt().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

const selectReports = `
SELECT id, assessment_id, url, title, company, description, location, salary, reason, reported_at
FROM posting_reports`

// FindByID returns the report with id, or nil.
func (s *ReportStore) FindByID(ctx context.Context, id uuid.UUID) (*model.PostingReport, error) {
	row := s.db.QueryRowContext(ctx, selectReports+` WHERE id = ?;`, id.String())
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// List returns reports newest first.
func (s *ReportStore) List(ctx context.Context, limit, offset int) ([]*model.PostingReport, error) {
	rows, err := s.db.QueryContext(ctx, selectReports+` ORDER BY reported_at DESC, rowid DESC LIMIT ? OFFSET ?;`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []*model.PostingReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountByURL counts reports filed against url.
func (s *ReportStore) CountByURL(ctx context.Context, url string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posting_reports WHERE url = ?;`, url).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*model.PostingReport, error) {
	var (
		idStr, url, title, company, description, location, reason, reportedAtStr string
		assessmentIDStr, salary                                                  sql.NullString
	)
	if err := row.Scan(&idStr, &assessmentIDStr, &url, &title, &company, &description, &location, &salary, &reason, &reportedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse report id: %w", err)
	}

	var assessmentID *uuid.UUID
	if assessmentIDStr.Valid {
		aid, err := uuid.Parse(assessmentIDStr.String)
		if err != nil {
			return nil, fmt.Errorf("parse assessment id: %w", err)
		}
		assessmentID = &aid
	}

	var salaryPtr *string
	if salary.Valid {
		salaryPtr = &salary.String
	}

	reportedAt, err := time.Parse(timeLayout, reportedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parse reported_at: %w", err)
	}

	posting := model.NewJobPosting(title, company, description, location, salaryPtr)
	return model.ReconstructReport(id, posting, url, reason, assessmentID, reportedAt), nil
}
