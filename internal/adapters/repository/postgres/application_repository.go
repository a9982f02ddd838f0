package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/application"
	pgdb "github.com/ogurasousui/staffing-readiness-engine/internal/platform/db/postgres"
)

const (
	applicationUniqueViolationCode     = "23505"
	applicationForeignKeyViolationCode = "23503"
)

// ApplicationRepository は PostgreSQL を利用した応募永続化の実装です。
// (candidate_id, job_id) の一意制約が同時提出の勝敗を決めます。
type ApplicationRepository struct {
	pool pgdb.Queryer
}

// NewApplicationRepository は ApplicationRepository を生成します。
func NewApplicationRepository(pool pgdb.Queryer) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

const applicationSelectColumns = `
        SELECT id,
               candidate_id,
               job_id,
               status,
               document_state,
               missing_documents,
               match_score,
               submitted_at,
               last_updated
          FROM applications
`

// Create は応募を新規作成します。
func (r *ApplicationRepository) Create(ctx context.Context, app *application.Application) (*application.Application, error) {
	missing := app.MissingDocuments
	if missing == nil {
		missing = []string{}
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO applications (id, candidate_id, job_id, status, document_state,
                                  missing_documents, match_score, submitted_at, last_updated)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, candidate_id, job_id, status, document_state, missing_documents, match_score, submitted_at, last_updated
    `,
		app.ID,
		app.CandidateID,
		app.JobID,
		string(app.Status),
		string(app.DocumentState),
		missing,
		app.MatchScoreAtSubmission,
		app.SubmittedAt,
		nullableTimePtr(app.LastUpdated),
	)

	created, err := scanApplication(row)
	if err != nil {
		return nil, translateApplicationPgError(err)
	}
	return created, nil
}

// Update は応募の状態を更新します。提出時スナップショットの列は不変です。
func (r *ApplicationRepository) Update(ctx context.Context, app *application.Application) (*application.Application, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE applications
           SET status = $1,
               last_updated = $2
         WHERE id = $3
        RETURNING id, candidate_id, job_id, status, document_state, missing_documents, match_score, submitted_at, last_updated
    `,
		string(app.Status),
		nullableTimePtr(app.LastUpdated),
		app.ID,
	)

	updated, err := scanApplication(row)
	if err != nil {
		return nil, translateApplicationPgError(err)
	}
	return updated, nil
}

// FindByID は ID で応募を取得します。
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*application.Application, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, applicationSelectColumns+`
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanApplication(row)
	if err != nil {
		return nil, translateApplicationPgError(err)
	}
	return found, nil
}

// FindByCandidateAndJob は候補者と求人の組で応募を検索します。取り下げ済みも
// 対象に含めます (組につき最大 1 件)。
func (r *ApplicationRepository) FindByCandidateAndJob(ctx context.Context, candidateID, jobID string) (*application.Application, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, applicationSelectColumns+`
         WHERE candidate_id = $1 AND job_id = $2
         LIMIT 1
    `, candidateID, jobID)

	found, err := scanApplication(row)
	if err != nil {
		return nil, translateApplicationPgError(err)
	}
	return found, nil
}

// List は応募の一覧を取得します。
func (r *ApplicationRepository) List(ctx context.Context, filter application.ListFilter) ([]*application.Application, string, error) {
	if filter.Limit <= 0 {
		return nil, "", application.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", application.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	args := make([]any, 0, 5)
	conditions := make([]string, 0, 4)

	if filter.CandidateID != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "candidate_id = "+placeholder)
		args = append(args, *filter.CandidateID)
	}

	if filter.JobID != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "job_id = "+placeholder)
		args = append(args, *filter.JobID)
	}

	if filter.Status != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "status = "+placeholder)
		args = append(args, string(*filter.Status))
	}

	if !filter.IncludeWithdrawn {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "status <> "+placeholder)
		args = append(args, string(application.StatusWithdrawn))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, limitWithBuffer)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := applicationSelectColumns + whereClause + `
         ORDER BY submitted_at DESC, id DESC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateApplicationPgError(err)
	}
	defer rows.Close()

	applications := make([]*application.Application, 0, filter.Limit)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, "", translateApplicationPgError(err)
		}
		applications = append(applications, app)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateApplicationPgError(err)
	}

	var nextToken string
	if len(applications) == limitWithBuffer {
		applications = applications[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	return applications, nextToken, nil
}

func scanApplication(row pgx.Row) (*application.Application, error) {
	var (
		id               string
		candidateID      string
		jobID            string
		status           string
		documentState    string
		missingDocuments []string
		matchScore       int
		submittedAt      time.Time
		lastUpdated      sql.NullTime
	)

	if err := row.Scan(
		&id,
		&candidateID,
		&jobID,
		&status,
		&documentState,
		&missingDocuments,
		&matchScore,
		&submittedAt,
		&lastUpdated,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrApplicationNotFound
		}
		return nil, err
	}

	var lastUpdatedPtr *time.Time
	if lastUpdated.Valid {
		t := lastUpdated.Time.UTC()
		lastUpdatedPtr = &t
	}

	return &application.Application{
		ID:                     id,
		CandidateID:            candidateID,
		JobID:                  jobID,
		Status:                 application.Status(status),
		DocumentState:          application.DocumentState(documentState),
		MissingDocuments:       missingDocuments,
		MatchScoreAtSubmission: matchScore,
		SubmittedAt:            submittedAt,
		LastUpdated:            lastUpdatedPtr,
	}, nil
}

func translateApplicationPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case applicationUniqueViolationCode:
			return application.ErrDuplicateApplication
		case applicationForeignKeyViolationCode:
			return application.ErrApplicationNotFound
		}
	}

	return err
}

func nullableTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
