package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/candidate"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/compliance"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/job"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/matching"
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

// CandidateSource は候補者の解決を行います。
type CandidateSource interface {
	FindByID(ctx context.Context, id string) (*candidate.Candidate, error)
}

// JobSource は求人の解決を行います。
type JobSource interface {
	FindByID(ctx context.Context, id string) (*job.Job, error)
}

// RequirementSource は求人にリンクされたテンプレートの提出時要件を解決します。
type RequirementSource interface {
	ResolveTemplateItems(ctx context.Context, templateID string) ([]string, error)
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
)

// Service は応募ライフサイクルのユースケースをまとめます。
type Service struct {
	repo         Repository
	candidates   CandidateSource
	jobs         JobSource
	requirements RequirementSource
	clock        Clock
	tx           TransactionManager
}

// UseCase は応募ユースケースの公開インターフェースです。
type UseCase interface {
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
	Transition(ctx context.Context, in TransitionInput) (*Application, error)
	Withdraw(ctx context.Context, in WithdrawInput) (*Application, error)
	GetApplication(ctx context.Context, in GetApplicationInput) (*Application, error)
	ListApplications(ctx context.Context, in ListApplicationsInput) (*ListApplicationsResult, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, candidates CandidateSource, jobs JobSource, requirements RequirementSource, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{
		repo:         repo,
		candidates:   candidates,
		jobs:         jobs,
		requirements: requirements,
		clock:        clock,
		tx:           tx,
	}
}

// SubmitInput は応募提出時の入力です。
type SubmitInput struct {
	CandidateID string
	JobID       string
}

// SubmitResult は提出結果です。既存応募があった場合は AlreadySubmitted が
// 真になり、既存レコードがそのまま返されます (冪等)。
type SubmitResult struct {
	Application      *Application
	AlreadySubmitted bool
}

// TransitionInput は状態遷移時の入力です。
type TransitionInput struct {
	ID         string
	NextStatus Status
}

// WithdrawInput は取り下げ時の入力です。
type WithdrawInput struct {
	ID string
}

// GetApplicationInput は応募取得時の入力です。
type GetApplicationInput struct {
	ID string
}

// ListApplicationsInput は一覧取得時の入力です。
type ListApplicationsInput struct {
	CandidateID      *string
	JobID            *string
	Status           *Status
	IncludeWithdrawn bool
	PageSize         int
	PageToken        string
}

// ListApplicationsResult は一覧取得結果を表します。
type ListApplicationsResult struct {
	Applications  []*Application
	NextPageToken string
}

// Submit は応募を提出します。同じ候補者・求人の組で既に応募が存在する
// 場合は新規作成せず既存レコードを返します。書類不足の有無と適合度スコアは
// 提出時点で確定し、以後変化しないスナップショットとして保存されます。
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	candidateID := strings.TrimSpace(in.CandidateID)
	if candidateID == "" {
		return nil, fmt.Errorf("candidate_id: %w", ErrInvalidCandidateID)
	}
	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" {
		return nil, fmt.Errorf("job_id: %w", ErrInvalidJobID)
	}

	var result *SubmitResult
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByCandidateAndJob(txCtx, candidateID, jobID)
		if err == nil {
			result = &SubmitResult{Application: existing, AlreadySubmitted: true}
			return nil
		}
		if !errors.Is(err, ErrApplicationNotFound) {
			return err
		}

		cand, err := s.candidates.FindByID(txCtx, candidateID)
		if err != nil {
			return err
		}

		jb, err := s.jobs.FindByID(txCtx, jobID)
		if err != nil {
			return err
		}

		required, err := s.effectiveRequirements(txCtx, jb)
		if err != nil {
			return err
		}

		// 提出ゲートは状態を問わず「書類が存在するか」だけを見る。
		// 準備判定 (readiness) より意図的に緩い。
		present := cand.DocumentTypes()
		var missing []string
		for _, name := range required {
			if _, ok := present[name]; !ok {
				missing = append(missing, name)
			}
		}
		sort.Strings(missing)

		documentState := DocumentsComplete
		if len(missing) > 0 {
			documentState = DocumentsMissing
		}

		app := &Application{
			ID:                     uuid.NewString(),
			CandidateID:            candidateID,
			JobID:                  jobID,
			Status:                 StatusSubmitted,
			DocumentState:          documentState,
			MissingDocuments:       missing,
			MatchScoreAtSubmission: matching.Compute(cand, jb).Score,
			SubmittedAt:            s.clock.Now(),
		}

		created, err := s.repo.Create(txCtx, app)
		if err != nil {
			// 競合する提出が先に通った場合はその結果を採用する。
			if errors.Is(err, ErrDuplicateApplication) {
				winner, findErr := s.repo.FindByCandidateAndJob(txCtx, candidateID, jobID)
				if findErr != nil {
					return findErr
				}
				result = &SubmitResult{Application: winner, AlreadySubmitted: true}
				return nil
			}
			return err
		}

		result = &SubmitResult{Application: created}
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// Transition は応募状態を前進させます。不正な遷移では状態を変えずに
// ErrInvalidTransition を返します。
func (s *Service) Transition(ctx context.Context, in TransitionInput) (*Application, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if !isKnownStatus(in.NextStatus) {
		return nil, ErrInvalidStatus
	}
	if in.NextStatus == StatusWithdrawn {
		return nil, fmt.Errorf("use withdraw for %s: %w", StatusWithdrawn, ErrInvalidTransition)
	}

	var updated *Application
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if !existing.Status.CanTransitionTo(in.NextStatus) {
			return fmt.Errorf("%s to %s: %w", existing.Status, in.NextStatus, ErrInvalidTransition)
		}

		existing.Status = in.NextStatus
		now := s.clock.Now()
		existing.LastUpdated = &now

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

// Withdraw は応募を取り下げます。終端状態の応募は取り下げられません。
// 取り下げ済み応募は既定の一覧からは除外されますが、監査用に保持されます。
func (s *Service) Withdraw(ctx context.Context, in WithdrawInput) (*Application, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Application
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if existing.Status.IsTerminal() {
			return fmt.Errorf("withdraw from %s: %w", existing.Status, ErrAlreadyFinalized)
		}

		existing.Status = StatusWithdrawn
		now := s.clock.Now()
		existing.LastUpdated = &now

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

// GetApplication は応募を取得します。
func (s *Service) GetApplication(ctx context.Context, in GetApplicationInput) (*Application, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Application
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

// ListApplications は応募の一覧を取得します。
func (s *Service) ListApplications(ctx context.Context, in ListApplicationsInput) (*ListApplicationsResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && !isKnownStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}

	var (
		applications []*Application
		nextToken    string
	)

	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, token, err := s.repo.List(txCtx, ListFilter{
			CandidateID:      in.CandidateID,
			JobID:            in.JobID,
			Status:           in.Status,
			IncludeWithdrawn: in.IncludeWithdrawn,
			Limit:            limit,
			Offset:           offset,
		})
		if err != nil {
			return err
		}
		applications = found
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListApplicationsResult{Applications: applications, NextPageToken: nextToken}, nil
}

// effectiveRequirements は提出時の有効要件集合を決定します。求人にテンプレート
// がリンクされていればその有効項目名を優先し、テンプレートが解決できない
// 場合のみ求人側の要件へフォールバックします。
func (s *Service) effectiveRequirements(ctx context.Context, jb *job.Job) ([]string, error) {
	if strings.TrimSpace(jb.TemplateID) != "" {
		names, err := s.requirements.ResolveTemplateItems(ctx, jb.TemplateID)
		if err == nil {
			return names, nil
		}
		if !errors.Is(err, compliance.ErrTemplateNotFound) {
			return nil, err
		}
	}

	seen := make(map[string]struct{}, len(jb.Requirements))
	var names []string
	for _, name := range jb.Requirements {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

func isKnownStatus(status Status) bool {
	switch status {
	case StatusSubmitted, StatusQualified, StatusInterview, StatusOffer, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
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
