package timecard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
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

// Service はタイムカードのユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// UseCase はタイムカードユースケースの公開インターフェースです。
type UseCase interface {
	Submit(ctx context.Context, in SubmitInput) (*Timecard, error)
	UpdateHours(ctx context.Context, in UpdateHoursInput) (*Timecard, error)
	Approve(ctx context.Context, in ApproveInput) (*Timecard, error)
	Reject(ctx context.Context, in RejectInput) (*Timecard, error)
	GetTimecard(ctx context.Context, in GetTimecardInput) (*Timecard, error)
	ListByApplication(ctx context.Context, in ListByApplicationInput) ([]*Timecard, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// SubmitInput はタイムカード提出時の入力です。
type SubmitInput struct {
	ApplicationID string
	RegularHours  float64
	OvertimeHours float64
	BillRate      float64
}

// UpdateHoursInput は承認前の時間・単価修正時の入力です。nil のフィールドは
// 変更されません。
type UpdateHoursInput struct {
	ID            string
	RegularHours  *float64
	OvertimeHours *float64
	BillRate      *float64
}

// ApproveInput は承認時の入力です。
type ApproveInput struct {
	ID string
}

// RejectInput は却下時の入力です。
type RejectInput struct {
	ID string
}

// GetTimecardInput は取得時の入力です。
type GetTimecardInput struct {
	ID string
}

// ListByApplicationInput は応募単位の一覧取得時の入力です。
type ListByApplicationInput struct {
	ApplicationID string
}

// Submit はタイムカードを提出します。請求額は提出時点の時間と単価から
// 導出されます。
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Timecard, error) {
	applicationID := strings.TrimSpace(in.ApplicationID)
	if applicationID == "" {
		return nil, fmt.Errorf("application_id: %w", ErrInvalidApplicationID)
	}
	if in.RegularHours < 0 || in.OvertimeHours < 0 {
		return nil, ErrInvalidHours
	}
	if in.BillRate <= 0 {
		return nil, ErrInvalidBillRate
	}

	var created *Timecard
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		tc := &Timecard{
			ID:            uuid.NewString(),
			ApplicationID: applicationID,
			Status:        StatusSubmitted,
			RegularHours:  in.RegularHours,
			OvertimeHours: in.OvertimeHours,
			BillRate:      in.BillRate,
			SubmittedAt:   now,
			UpdatedAt:     now,
		}
		tc.Recalculate()

		result, err := s.repo.Create(txCtx, tc)
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

// UpdateHours は承認前のタイムカードの時間・単価を修正し、請求額を
// 再計算します。承認・却下済みのタイムカードは修正できません。
func (s *Service) UpdateHours(ctx context.Context, in UpdateHoursInput) (*Timecard, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Timecard
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if existing.Status.IsTerminal() {
			return fmt.Errorf("update %s timecard: %w", existing.Status, ErrAlreadyFinalized)
		}

		if in.RegularHours != nil {
			if *in.RegularHours < 0 {
				return ErrInvalidHours
			}
			existing.RegularHours = *in.RegularHours
		}
		if in.OvertimeHours != nil {
			if *in.OvertimeHours < 0 {
				return ErrInvalidHours
			}
			existing.OvertimeHours = *in.OvertimeHours
		}
		if in.BillRate != nil {
			if *in.BillRate <= 0 {
				return ErrInvalidBillRate
			}
			existing.BillRate = *in.BillRate
		}

		existing.Recalculate()
		existing.UpdatedAt = s.clock.Now()

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

// Approve はタイムカードを承認します。承認は終端です。
func (s *Service) Approve(ctx context.Context, in ApproveInput) (*Timecard, error) {
	return s.finalize(ctx, in.ID, StatusApproved)
}

// Reject はタイムカードを却下します。却下は終端で、再提出はできません。
func (s *Service) Reject(ctx context.Context, in RejectInput) (*Timecard, error) {
	return s.finalize(ctx, in.ID, StatusRejected)
}

func (s *Service) finalize(ctx context.Context, id string, next Status) (*Timecard, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Timecard
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if existing.Status.IsTerminal() {
			return fmt.Errorf("%s to %s: %w", existing.Status, next, ErrAlreadyFinalized)
		}

		existing.Status = next
		existing.UpdatedAt = s.clock.Now()

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

// GetTimecard はタイムカードを取得します。
func (s *Service) GetTimecard(ctx context.Context, in GetTimecardInput) (*Timecard, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Timecard
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

// ListByApplication は応募に紐づくタイムカード一覧を取得します。
func (s *Service) ListByApplication(ctx context.Context, in ListByApplicationInput) ([]*Timecard, error) {
	applicationID := strings.TrimSpace(in.ApplicationID)
	if applicationID == "" {
		return nil, fmt.Errorf("application_id: %w", ErrInvalidApplicationID)
	}

	var result []*Timecard
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.ListByApplication(txCtx, applicationID)
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
