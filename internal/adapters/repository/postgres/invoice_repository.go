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
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/invoice"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/timecard"
	pgdb "github.com/ogurasousui/staffing-readiness-engine/internal/platform/db/postgres"
)

const invoiceForeignKeyViolationCode = "23503"

// InvoiceRepository は PostgreSQL を利用した請求書永続化の実装です。
type InvoiceRepository struct {
	pool pgdb.Queryer
}

// NewInvoiceRepository は InvoiceRepository を生成します。
func NewInvoiceRepository(pool pgdb.Queryer) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

const invoiceSelectColumns = `
        SELECT id,
               status,
               amount,
               timecard_id,
               issued_at,
               paid_at
          FROM invoices
`

// Create は請求書を新規作成します。
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO invoices (id, status, amount, timecard_id, issued_at, paid_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, status, amount, timecard_id, issued_at, paid_at
    `,
		inv.ID,
		string(inv.Status),
		inv.Amount,
		nullableString(inv.TimecardID),
		inv.IssuedAt,
		nullableTimePtr(inv.PaidAt),
	)

	created, err := scanInvoice(row)
	if err != nil {
		return nil, translateInvoicePgError(err)
	}
	return created, nil
}

// Update は請求書の支払い状態を更新します。
func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE invoices
           SET status = $1,
               paid_at = $2
         WHERE id = $3
        RETURNING id, status, amount, timecard_id, issued_at, paid_at
    `,
		string(inv.Status),
		nullableTimePtr(inv.PaidAt),
		inv.ID,
	)

	updated, err := scanInvoice(row)
	if err != nil {
		return nil, translateInvoicePgError(err)
	}
	return updated, nil
}

// FindByID は ID で請求書を取得します。
func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, invoiceSelectColumns+`
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanInvoice(row)
	if err != nil {
		return nil, translateInvoicePgError(err)
	}
	return found, nil
}

// List は請求書の一覧を取得します。
func (r *InvoiceRepository) List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, string, error) {
	if filter.Limit <= 0 {
		return nil, "", invoice.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", invoice.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	args := make([]any, 0, 3)
	conditions := make([]string, 0, 1)

	if filter.Status != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "status = "+placeholder)
		args = append(args, string(*filter.Status))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, limitWithBuffer)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := invoiceSelectColumns + whereClause + `
         ORDER BY issued_at DESC, id DESC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateInvoicePgError(err)
	}
	defer rows.Close()

	invoices := make([]*invoice.Invoice, 0, filter.Limit)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, "", translateInvoicePgError(err)
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateInvoicePgError(err)
	}

	var nextToken string
	if len(invoices) == limitWithBuffer {
		invoices = invoices[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	return invoices, nextToken, nil
}

func scanInvoice(row pgx.Row) (*invoice.Invoice, error) {
	var (
		id         string
		status     string
		amount     float64
		timecardID sql.NullString
		issuedAt   time.Time
		paidAt     sql.NullTime
	)

	if err := row.Scan(
		&id,
		&status,
		&amount,
		&timecardID,
		&issuedAt,
		&paidAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrInvoiceNotFound
		}
		return nil, err
	}

	var timecardIDPtr *string
	if timecardID.Valid {
		timecardIDPtr = &timecardID.String
	}

	var paidAtPtr *time.Time
	if paidAt.Valid {
		t := paidAt.Time.UTC()
		paidAtPtr = &t
	}

	return &invoice.Invoice{
		ID:         id,
		Status:     invoice.Status(status),
		Amount:     amount,
		TimecardID: timecardIDPtr,
		IssuedAt:   issuedAt,
		PaidAt:     paidAtPtr,
	}, nil
}

func translateInvoicePgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invoiceForeignKeyViolationCode {
		return timecard.ErrTimecardNotFound
	}

	return err
}
