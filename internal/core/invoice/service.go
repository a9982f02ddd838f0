package invoice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/timecard"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// TimecardSource は請求書からリンクされるタイムカードの解決を行います。
type TimecardSource interface {
	FindByID(ctx context.Context, id string) (*timecard.Timecard, error)
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
)

// Service は請求書のユースケースをまとめます。
type Service struct {
	repo      Repository
	timecards TimecardSource
	clock     Clock
	tx        TransactionManager
}

// UseCase は請求書ユースケースの公開インターフェースです。
type UseCase interface {
	CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*Invoice, error)
	MarkPaid(ctx context.Context, in MarkPaidInput) (*Invoice, error)
	GetInvoice(ctx context.Context, in GetInvoiceInput) (*Invoice, error)
	ListInvoices(ctx context.Context, in ListInvoicesInput) (*ListInvoicesResult, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, timecards TimecardSource, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, timecards: timecards, clock: clock, tx: tx}
}

// CreateInvoiceInput は請求書作成時の入力です。TimecardID を指定した場合は
// 参照先の存在が検証されますが、金額は独立に扱われます。
type CreateInvoiceInput struct {
	Amount     float64
	TimecardID *string
}

// MarkPaidInput は支払い記録時の入力です。
type MarkPaidInput struct {
	ID string
}

// GetInvoiceInput は取得時の入力です。
type GetInvoiceInput struct {
	ID string
}

// ListInvoicesInput は一覧取得時の入力です。
type ListInvoicesInput struct {
	Status    *Status
	PageSize  int
	PageToken string
}

// ListInvoicesResult は一覧取得結果を表します。
type ListInvoicesResult struct {
	Invoices      []*Invoice
	NextPageToken string
}

// CreateInvoice は請求書を作成します。
func (s *Service) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*Invoice, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var timecardID *string
	if in.TimecardID != nil {
		trimmed := strings.TrimSpace(*in.TimecardID)
		if trimmed != "" {
			timecardID = &trimmed
		}
	}

	var created *Invoice
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if timecardID != nil {
			if _, err := s.timecards.FindByID(txCtx, *timecardID); err != nil {
				return err
			}
		}

		inv := &Invoice{
			ID:         uuid.NewString(),
			Status:     StatusPending,
			Amount:     in.Amount,
			TimecardID: timecardID,
			IssuedAt:   s.clock.Now(),
		}

		result, err := s.repo.Create(txCtx, inv)
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// MarkPaid は請求書を支払い済みにします。支払い済みは終端です。
func (s *Service) MarkPaid(ctx context.Context, in MarkPaidInput) (*Invoice, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Invoice
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if existing.Status == StatusPaid {
			return ErrAlreadyPaid
		}

		existing.Status = StatusPaid
		now := s.clock.Now()
		existing.PaidAt = &now

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// GetInvoice は請求書を取得します。
func (s *Service) GetInvoice(ctx context.Context, in GetInvoiceInput) (*Invoice, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Invoice
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListInvoices は請求書の一覧を取得します。
func (s *Service) ListInvoices(ctx context.Context, in ListInvoicesInput) (*ListInvoicesResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	var (
		invoices  []*Invoice
		nextToken string
	)

	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, token, err := s.repo.List(txCtx, ListFilter{
			Status: in.Status,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return err
		}
		invoices = found
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListInvoicesResult{Invoices: invoices, NextPageToken: nextToken}, nil
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}
