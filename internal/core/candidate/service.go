package candidate

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
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

// RequirementResolver は職種コードから必要書類名を解決します。
type RequirementResolver interface {
	ResolveRequiredDocuments(ctx context.Context, occupationCode string) ([]string, error)
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
)

// Service は候補者プロファイルと提出準備判定のユースケースをまとめます。
type Service struct {
	repo     Repository
	resolver RequirementResolver
	clock    Clock
	tx       TransactionManager
}

// UseCase は候補者ユースケースの公開インターフェースです。
type UseCase interface {
	GetCandidate(ctx context.Context, in GetCandidateInput) (*Candidate, error)
	ListCandidates(ctx context.Context, in ListCandidatesInput) (*ListCandidatesResult, error)
	UpsertDocument(ctx context.Context, in UpsertDocumentInput) (*Candidate, error)
	EvaluateReadiness(ctx context.Context, in EvaluateReadinessInput) (*Readiness, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, resolver RequirementResolver, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, resolver: resolver, clock: clock, tx: tx}
}

// GetCandidateInput は候補者取得時の入力です。
type GetCandidateInput struct {
	ID string
}

// ListCandidatesInput は一覧取得時の入力です。
type ListCandidatesInput struct {
	OccupationCode *string
	PageSize       int
	PageToken      string
}

// ListCandidatesResult は一覧取得結果を表します。
type ListCandidatesResult struct {
	Candidates    []*Candidate
	NextPageToken string
}

// UpsertDocumentInput は書類アップロード・検証状態反映時の入力です。
type UpsertDocumentInput struct {
	CandidateID string
	Type        string
	Status      DocumentStatus
}

// EvaluateReadinessInput は提出準備判定時の入力です。UploadedTypes は
// Profile Store 側で把握している追加アップロード済み書類種別です。
type EvaluateReadinessInput struct {
	CandidateID   string
	UploadedTypes []string
}

// Readiness は提出準備状態の評価結果です。Complete は基本情報・職業情報・
// 書類充足の 3 条件すべてが成立した場合にのみ真になります。
type Readiness struct {
	Complete                 bool
	BasicInfoProvided        bool
	ProfessionalInfoProvided bool
	RequiredDocuments        []string
	MissingDocuments         []string
}

// GetCandidate は候補者を取得します。
func (s *Service) GetCandidate(ctx context.Context, in GetCandidateInput) (*Candidate, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Candidate
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

// ListCandidates は候補者の一覧を取得します。
func (s *Service) ListCandidates(ctx context.Context, in ListCandidatesInput) (*ListCandidatesResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	var (
		candidates []*Candidate
		nextToken  string
	)

	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, token, err := s.repo.List(txCtx, ListFilter{
			OccupationCode: in.OccupationCode,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			return err
		}
		candidates = found
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListCandidatesResult{Candidates: candidates, NextPageToken: nextToken}, nil
}

// UpsertDocument は書類を種別単位で登録・更新します。既存種別は状態を
// 置き換え、新規種別は保有書類列の末尾に追加されます。
func (s *Service) UpsertDocument(ctx context.Context, in UpsertDocumentInput) (*Candidate, error) {
	if strings.TrimSpace(in.CandidateID) == "" {
		return nil, fmt.Errorf("candidate_id: %w", ErrInvalidID)
	}

	docType := strings.TrimSpace(in.Type)
	if docType == "" {
		return nil, ErrInvalidDocumentType
	}

	if !isValidDocumentStatus(in.Status) {
		return nil, ErrInvalidDocumentStatus
	}

	var updated *Candidate
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.CandidateID)
		if err != nil {
			return err
		}

		replaced := false
		for i, doc := range existing.Documents {
			if doc.Type == docType {
				existing.Documents[i].Status = in.Status
				replaced = true
				break
			}
		}
		if !replaced {
			existing.Documents = append(existing.Documents, Document{Type: docType, Status: in.Status})
		}

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

// EvaluateReadiness は提出準備状態を評価します。必要書類が 0 件の職種は
// 書類条件を空充足とみなします。
func (s *Service) EvaluateReadiness(ctx context.Context, in EvaluateReadinessInput) (*Readiness, error) {
	if strings.TrimSpace(in.CandidateID) == "" {
		return nil, fmt.Errorf("candidate_id: %w", ErrInvalidID)
	}

	var result *Readiness
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		cand, err := s.repo.FindByID(txCtx, in.CandidateID)
		if err != nil {
			return err
		}

		occupation := ""
		if cand.OccupationCode != nil {
			occupation = *cand.OccupationCode
		}

		required, err := s.resolver.ResolveRequiredDocuments(txCtx, occupation)
		if err != nil {
			return err
		}

		result = evaluate(cand, required, in.UploadedTypes)
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// evaluate は判定本体の純粋関数です。
func evaluate(cand *Candidate, required []string, uploadedTypes []string) *Readiness {
	satisfying := cand.SatisfyingDocumentTypes()
	for _, t := range uploadedTypes {
		trimmed := strings.TrimSpace(t)
		if trimmed != "" {
			satisfying[trimmed] = struct{}{}
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := satisfying[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	return &Readiness{
		Complete:                 cand.BasicInfoProvided && cand.ProfessionalInfoProvided && len(missing) == 0,
		BasicInfoProvided:        cand.BasicInfoProvided,
		ProfessionalInfoProvided: cand.ProfessionalInfoProvided,
		RequiredDocuments:        required,
		MissingDocuments:         missing,
	}
}

func isValidDocumentStatus(status DocumentStatus) bool {
	switch status {
	case DocumentPendingUpload, DocumentPendingVerification, DocumentCompleted, DocumentExpired:
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
