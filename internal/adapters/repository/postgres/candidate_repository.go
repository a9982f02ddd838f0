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
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/candidate"
	pgdb "github.com/ogurasousui/staffing-readiness-engine/internal/platform/db/postgres"
)

const (
	candidateUniqueViolationCode = "23505"
	candidateCheckViolationCode  = "23514"
)

// CandidateRepository は PostgreSQL を利用した候補者プロファイルの実装です。
// 書類は candidate_documents 子テーブルに保持され、アップロード順を保ちます。
type CandidateRepository struct {
	pool pgdb.Queryer
}

// NewCandidateRepository は CandidateRepository を生成します。
func NewCandidateRepository(pool pgdb.Queryer) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

// Create は候補者を新規作成します。
func (r *CandidateRepository) Create(ctx context.Context, c *candidate.Candidate) (*candidate.Candidate, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, `
        INSERT INTO candidates (id, name, phone, basic_info_provided, professional_info_provided,
                                occupation_code, skills, specialties, profile_completion_pct,
                                created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `,
		c.ID,
		c.Name,
		nullableString(strPtrOrNil(c.Phone)),
		c.BasicInfoProvided,
		c.ProfessionalInfoProvided,
		nullableString(c.OccupationCode),
		c.Skills,
		c.Specialties,
		c.ProfileCompletionPct,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return nil, translateCandidatePgError(err)
	}

	if err := r.replaceDocuments(ctx, c.ID, c.Documents); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, c.ID)
}

// Update は候補者プロファイルを更新します。書類列も全置換されます。
func (r *CandidateRepository) Update(ctx context.Context, c *candidate.Candidate) (*candidate.Candidate, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE candidates
           SET name = $1,
               phone = $2,
               basic_info_provided = $3,
               professional_info_provided = $4,
               occupation_code = $5,
               skills = $6,
               specialties = $7,
               profile_completion_pct = $8,
               updated_at = $9
         WHERE id = $10
    `,
		c.Name,
		nullableString(strPtrOrNil(c.Phone)),
		c.BasicInfoProvided,
		c.ProfessionalInfoProvided,
		nullableString(c.OccupationCode),
		c.Skills,
		c.Specialties,
		c.ProfileCompletionPct,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return nil, translateCandidatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, candidate.ErrCandidateNotFound
	}

	if err := r.replaceDocuments(ctx, c.ID, c.Documents); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, c.ID)
}

// FindByID は ID で候補者を取得します。
func (r *CandidateRepository) FindByID(ctx context.Context, id string) (*candidate.Candidate, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id,
               name,
               phone,
               basic_info_provided,
               professional_info_provided,
               occupation_code,
               skills,
               specialties,
               profile_completion_pct,
               created_at,
               updated_at
          FROM candidates
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanCandidate(row)
	if err != nil {
		return nil, translateCandidatePgError(err)
	}

	docs, err := r.loadDocuments(ctx, id)
	if err != nil {
		return nil, err
	}
	found.Documents = docs

	return found, nil
}

// List は候補者の一覧を取得します。
func (r *CandidateRepository) List(ctx context.Context, filter candidate.ListFilter) ([]*candidate.Candidate, string, error) {
	if filter.Limit <= 0 {
		return nil, "", candidate.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", candidate.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	args := make([]any, 0, 3)
	whereClause := ""
	if filter.OccupationCode != nil {
		args = append(args, *filter.OccupationCode)
		whereClause = " WHERE occupation_code = $1"
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, limitWithBuffer)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := `
        SELECT id,
               name,
               phone,
               basic_info_provided,
               professional_info_provided,
               occupation_code,
               skills,
               specialties,
               profile_completion_pct,
               created_at,
               updated_at
          FROM candidates` + whereClause + `
         ORDER BY created_at DESC, id DESC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateCandidatePgError(err)
	}
	defer rows.Close()

	candidates := make([]*candidate.Candidate, 0, filter.Limit)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, "", translateCandidatePgError(err)
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateCandidatePgError(err)
	}

	var nextToken string
	if len(candidates) == limitWithBuffer {
		candidates = candidates[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	for _, c := range candidates {
		docs, err := r.loadDocuments(ctx, c.ID)
		if err != nil {
			return nil, "", err
		}
		c.Documents = docs
	}

	return candidates, nextToken, nil
}

func (r *CandidateRepository) replaceDocuments(ctx context.Context, candidateID string, docs []candidate.Document) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM candidate_documents WHERE candidate_id = $1`, candidateID); err != nil {
		return translateCandidatePgError(err)
	}

	for i, doc := range docs {
		if _, err := exec.Exec(ctx, `
            INSERT INTO candidate_documents (candidate_id, document_type, status, position)
            VALUES ($1, $2, $3, $4)
        `, candidateID, doc.Type, string(doc.Status), i); err != nil {
			return translateCandidatePgError(err)
		}
	}

	return nil
}

func (r *CandidateRepository) loadDocuments(ctx context.Context, candidateID string) ([]candidate.Document, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT document_type, status
          FROM candidate_documents
         WHERE candidate_id = $1
         ORDER BY position
    `, candidateID)
	if err != nil {
		return nil, translateCandidatePgError(err)
	}
	defer rows.Close()

	var docs []candidate.Document
	for rows.Next() {
		var (
			docType string
			status  string
		)
		if err := rows.Scan(&docType, &status); err != nil {
			return nil, translateCandidatePgError(err)
		}
		docs = append(docs, candidate.Document{Type: docType, Status: candidate.DocumentStatus(status)})
	}

	if err := rows.Err(); err != nil {
		return nil, translateCandidatePgError(err)
	}

	return docs, nil
}

func scanCandidate(row pgx.Row) (*candidate.Candidate, error) {
	var (
		id               string
		name             string
		phone            sql.NullString
		basicProvided    bool
		professional     bool
		occupationCode   sql.NullString
		skills           []string
		specialties      []string
		completionPct    int
		createdAt        time.Time
		updatedAt        time.Time
	)

	if err := row.Scan(
		&id,
		&name,
		&phone,
		&basicProvided,
		&professional,
		&occupationCode,
		&skills,
		&specialties,
		&completionPct,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound
		}
		return nil, err
	}

	var occupationPtr *string
	if occupationCode.Valid {
		code := occupationCode.String
		occupationPtr = &code
	}

	phoneValue := ""
	if phone.Valid {
		phoneValue = phone.String
	}

	return &candidate.Candidate{
		ID:                       id,
		Name:                     name,
		Phone:                    phoneValue,
		BasicInfoProvided:        basicProvided,
		ProfessionalInfoProvided: professional,
		OccupationCode:           occupationPtr,
		Skills:                   skills,
		Specialties:              specialties,
		ProfileCompletionPct:     completionPct,
		CreatedAt:                createdAt,
		UpdatedAt:                updatedAt,
	}, nil
}

func translateCandidatePgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case candidateUniqueViolationCode:
			return candidate.ErrInvalidID
		case candidateCheckViolationCode:
			return candidate.ErrInvalidCompletionPct
		}
	}

	return err
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func strPtrOrNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
