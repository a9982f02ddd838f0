package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/job"
	pgdb "github.com/ogurasousui/staffing-readiness-engine/internal/platform/db/postgres"
)

// JobRepository は PostgreSQL を利用した求人カタログの実装です。
type JobRepository struct {
	pool pgdb.Queryer
}

// NewJobRepository は JobRepository を生成します。
func NewJobRepository(pool pgdb.Queryer) *JobRepository {
	return &JobRepository{pool: pool}
}

// FindByID は ID で求人を取得します。
func (r *JobRepository) FindByID(ctx context.Context, id string) (*job.Job, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id,
               title,
               department,
               requirements,
               tags,
               template_id,
               created_at,
               updated_at
          FROM jobs
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanJob(row)
	if err != nil {
		return nil, err
	}
	return found, nil
}

// List は求人の一覧を取得します。
func (r *JobRepository) List(ctx context.Context, filter job.ListFilter) ([]*job.Job, string, error) {
	if filter.Limit <= 0 {
		return nil, "", job.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", job.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	args := make([]any, 0, 3)
	whereClause := ""
	if filter.Department != nil {
		args = append(args, *filter.Department)
		whereClause = " WHERE department = $1"
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, limitWithBuffer)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := `
        SELECT id,
               title,
               department,
               requirements,
               tags,
               template_id,
               created_at,
               updated_at
          FROM jobs` + whereClause + `
         ORDER BY created_at DESC, id DESC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	jobs := make([]*job.Job, 0, filter.Limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, "", err
		}
		jobs = append(jobs, j)
	}

	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	var nextToken string
	if len(jobs) == limitWithBuffer {
		jobs = jobs[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	return jobs, nextToken, nil
}

func scanJob(row pgx.Row) (*job.Job, error) {
	var (
		id           string
		title        string
		department   string
		requirements []string
		tags         []string
		templateID   sql.NullString
		createdAt    time.Time
		updatedAt    time.Time
	)

	if err := row.Scan(
		&id,
		&title,
		&department,
		&requirements,
		&tags,
		&templateID,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, job.ErrJobNotFound
		}
		return nil, err
	}

	template := ""
	if templateID.Valid {
		template = templateID.String
	}

	return &job.Job{
		ID:           id,
		Title:        title,
		Department:   department,
		Requirements: requirements,
		Tags:         tags,
		TemplateID:   template,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}
