package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/timecard"
	pgdb "github.com/ogurasousui/staffing-readiness-engine/internal/platform/db/postgres"
)

const timecardForeignKeyViolationCode = "23503"

// TimecardRepository は PostgreSQL を利用したタイムカード永続化の実装です。
type TimecardRepository struct {
	pool pgdb.Queryer
}

// NewTimecardRepository は TimecardRepository を生成します。
func NewTimecardRepository(pool pgdb.Queryer) *TimecardRepository {
	return &TimecardRepository{pool: pool}
}

const timecardSelectColumns = `
        SELECT id,
               application_id,
               status,
               regular_hours,
               overtime_hours,
               bill_rate,
               total_amount,
               submitted_at,
               updated_at
          FROM timecards
`

// Create はタイムカードを新規作成します。
func (r *TimecardRepository) Create(ctx context.Context, tc *timecard.Timecard) (*timecard.Timecard, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO timecards (id, application_id, status, regular_hours, overtime_hours,
                               bill_rate, total_amount, submitted_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, application_id, status, regular_hours, overtime_hours, bill_rate, total_amount, submitted_at, updated_at
    `,
		tc.ID,
		tc.ApplicationID,
		string(tc.Status),
		tc.RegularHours,
		tc.OvertimeHours,
		tc.BillRate,
		tc.TotalAmount,
		tc.SubmittedAt,
		tc.UpdatedAt,
	)

	created, err := scanTimecard(row)
	if err != nil {
		return nil, translateTimecardPgError(err)
	}
	return created, nil
}

// Update はタイムカードの時間・状態を更新します。
func (r *TimecardRepository) Update(ctx context.Context, tc *timecard.Timecard) (*timecard.Timecard, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE timecards
           SET status = $1,
               regular_hours = $2,
               overtime_hours = $3,
               bill_rate = $4,
               total_amount = $5,
               updated_at = $6
         WHERE id = $7
        RETURNING id, application_id, status, regular_hours, overtime_hours, bill_rate, total_amount, submitted_at, updated_at
    `,
		string(tc.Status),
		tc.RegularHours,
		tc.OvertimeHours,
		tc.BillRate,
		tc.TotalAmount,
		tc.UpdatedAt,
		tc.ID,
	)

	updated, err := scanTimecard(row)
	if err != nil {
		return nil, translateTimecardPgError(err)
	}
	return updated, nil
}

// FindByID は ID でタイムカードを取得します。
func (r *TimecardRepository) FindByID(ctx context.Context, id string) (*timecard.Timecard, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, timecardSelectColumns+`
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanTimecard(row)
	if err != nil {
		return nil, translateTimecardPgError(err)
	}
	return found, nil
}

// ListByApplication は応募に紐づくタイムカードを提出日時の降順で返します。
func (r *TimecardRepository) ListByApplication(ctx context.Context, applicationID string) ([]*timecard.Timecard, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, timecardSelectColumns+`
         WHERE application_id = $1
         ORDER BY submitted_at DESC, id DESC
    `, applicationID)
	if err != nil {
		return nil, translateTimecardPgError(err)
	}
	defer rows.Close()

	timecards := make([]*timecard.Timecard, 0)
	for rows.Next() {
		tc, err := scanTimecard(rows)
		if err != nil {
			return nil, translateTimecardPgError(err)
		}
		timecards = append(timecards, tc)
	}

	if err := rows.Err(); err != nil {
		return nil, translateTimecardPgError(err)
	}

	return timecards, nil
}

func scanTimecard(row pgx.Row) (*timecard.Timecard, error) {
	var (
		id            string
		applicationID string
		status        string
		regularHours  float64
		overtimeHours float64
		billRate      float64
		totalAmount   float64
		submittedAt   time.Time
		updatedAt     time.Time
	)

	if err := row.Scan(
		&id,
		&applicationID,
		&status,
		&regularHours,
		&overtimeHours,
		&billRate,
		&totalAmount,
		&submittedAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, timecard.ErrTimecardNotFound
		}
		return nil, err
	}

	return &timecard.Timecard{
		ID:            id,
		ApplicationID: applicationID,
		Status:        timecard.Status(status),
		RegularHours:  regularHours,
		OvertimeHours: overtimeHours,
		BillRate:      billRate,
		TotalAmount:   totalAmount,
		SubmittedAt:   submittedAt,
		UpdatedAt:     updatedAt,
	}, nil
}

func translateTimecardPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == timecardForeignKeyViolationCode {
		return timecard.ErrInvalidApplicationID
	}

	return err
}
