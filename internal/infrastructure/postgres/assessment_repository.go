package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
	pgutil "github.com/Adis-git/job-sentinel-ai-check/pkg/postgres"
)

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
type AssessmentRepository struct {
	db DB
}

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(db DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

const selectAssessmentSQL = `
	SELECT a.id, a.fingerprint, a.source_url,
		a.title, a.company, a.description, a.location, a.salary,
		a.score, a.summary, a.strategy, a.correct_job_title,
		a.assessed_at, a.version, a.created_at, a.updated_at,
		COALESCE(array_agg(f.flag ORDER BY f.position) FILTER (WHERE f.flag IS NOT NULL), '{}') AS red_flags
	FROM posting_assessments a
	LEFT JOIN assessment_red_flags f ON f.assessment_id = a.id
`

// Save persists an assessment and its red flags.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.PostingAssessment) error {
	return pgutil.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		posting := assessment.Posting()
		report := assessment.Report()

		_, err := tx.Exec(ctx, `
			INSERT INTO posting_assessments (
				id, fingerprint, source_url,
				title, company, description, location, salary,
				score, verdict, summary, strategy, correct_job_title,
				assessed_at, version, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			ON CONFLICT (id) DO UPDATE SET
				score = EXCLUDED.score,
				verdict = EXCLUDED.verdict,
				summary = EXCLUDED.summary,
				strategy = EXCLUDED.strategy,
				correct_job_title = EXCLUDED.correct_job_title,
				assessed_at = EXCLUDED.assessed_at,
				version = EXCLUDED.version,
				updated_at = EXCLUDED.updated_at`,
			assessment.ID(),
			assessment.Fingerprint(),
			assessment.SourceURL(),
			posting.Title,
			posting.Company,
			posting.Description,
			posting.Location,
			nullableString(posting.Salary),
			report.Score,
			report.Verdict.String(),
			report.Summary,
			assessment.Strategy().String(),
			report.CorrectJobTitle,
			assessment.AssessedAt(),
			assessment.Version(),
			assessment.CreatedAt(),
			assessment.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to save assessment: %w", err)
		}

		// Replace red flags wholesale.
		if _, err := tx.Exec(ctx, `DELETE FROM assessment_red_flags WHERE assessment_id = $1`, assessment.ID()); err != nil {
			return fmt.Errorf("failed to delete old red flags: %w", err)
		}

		if len(report.RedFlags) > 0 {
			rows := make([][]any, 0, len(report.RedFlags))
			for i, flag := range report.RedFlags {
				rows = append(rows, []any{assessment.ID(), i, flag})
			}
			_, err := tx.CopyFrom(ctx,
				pgx.Identifier{"assessment_red_flags"},
				[]string{"assessment_id", "position", "flag"},
				pgx.CopyFromRows(rows),
			)
			if err != nil {
				return fmt.Errorf("failed to save red flags: %w", err)
			}
		}

		return nil
	})
}

// FindByID retrieves an assessment by its unique identifier.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PostingAssessment, error) {
	row := r.db.QueryRow(ctx, selectAssessmentSQL+`
		WHERE a.id = $1
		GROUP BY a.id`, id)
	return scanAssessment(row)
}

// FindByFingerprint returns the most recent assessment of an identical posting.
func (r *AssessmentRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*model.PostingAssessment, error) {
	row := r.db.QueryRow(ctx, selectAssessmentSQL+`
		WHERE a.fingerprint = $1
		GROUP BY a.id
		ORDER BY a.created_at DESC
		LIMIT 1`, fingerprint)
	return scanAssessment(row)
}

// ListRecent returns assessments newest first.
func (r *AssessmentRepository) ListRecent(ctx context.Context, limit, offset int) ([]*model.PostingAssessment, error) {
	rows, err := r.db.Query(ctx, selectAssessmentSQL+`
		GROUP BY a.id
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	assessments := make([]*model.PostingAssessment, 0, limit)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}

	return assessments, nil
}

func scanAssessment(row pgx.Row) (*model.PostingAssessment, error) {
	var (
		id              uuid.UUID
		fingerprint     string
		sourceURL       string
		title           string
		company         string
		description     string
		location        string
		salary          *string
		score           int
		summary         string
		strategyStr     string
		correctJobTitle string
		assessedAt      time.Time
		version         int
		createdAt       time.Time
		updatedAt       time.Time
		redFlags        []string
	)

	err := row.Scan(
		&id, &fingerprint, &sourceURL,
		&title, &company, &description, &location, &salary,
		&score, &summary, &strategyStr, &correctJobTitle,
		&assessedAt, &version, &createdAt, &updatedAt,
		&redFlags,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	strategy, err := valueobject.StrategyFromString(strategyStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse strategy: %w", err)
	}

	posting := model.NewJobPosting(title, company, description, location, salary)
	report := model.NewScoreReport(score, redFlags, summary).WithCorrectJobTitle(correctJobTitle)

	return model.ReconstructAssessment(
		id, posting, sourceURL, fingerprint,
		report, strategy,
		assessedAt, version, createdAt, updatedAt,
	), nil
}
