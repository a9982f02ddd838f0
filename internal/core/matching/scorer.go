package matching

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ogurasousui/staffing-readiness-engine/internal/core/candidate"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/job"
)

// スコア算出の重み。プロファイルが薄くても 45 を下回らず、どれほど適合
// していても 100% と表示しないよう 99 で頭打ちにします。
const (
	baseScore             = 55
	requirementWeight     = 6
	skillWeight           = 4
	specialtyBonusValue   = 8
	documentPenaltyWeight = 2
	completionPivot       = 70
	completionDivisor     = 3
	minScore              = 45
	maxScore              = 99
)

// Result は適合度スコアとその内訳です。
type Result struct {
	CandidateID        string
	JobID              string
	Score              int
	RequirementMatches int
	SkillMatches       int
	SpecialtyBonus     int
	CompletionBonus    int
	DocumentPenalty    int
}

// CandidateSource は候補者の解決を行います。
type CandidateSource interface {
	FindByID(ctx context.Context, id string) (*candidate.Candidate, error)
}

// JobSource は求人の解決を行います。
type JobSource interface {
	FindByID(ctx context.Context, id string) (*job.Job, error)
}

// Service は候補者と求人の適合度を算出するユースケースです。参照 id が
// 解決できない場合はエラーを返し、既定値で補うことはしません。
type Service struct {
	candidates CandidateSource
	jobs       JobSource
}

// UseCase はスコア算出ユースケースの公開インターフェースです。
type UseCase interface {
	Score(ctx context.Context, in ScoreInput) (*Result, error)
}

// NewService は Service を生成します。
func NewService(candidates CandidateSource, jobs JobSource) *Service {
	return &Service{candidates: candidates, jobs: jobs}
}

// ScoreInput はスコア算出時の入力です。
type ScoreInput struct {
	CandidateID string
	JobID       string
}

// Score は候補者と求人を解決してスコアを算出します。
func (s *Service) Score(ctx context.Context, in ScoreInput) (*Result, error) {
	if strings.TrimSpace(in.CandidateID) == "" {
		return nil, fmt.Errorf("candidate_id: %w", ErrInvalidCandidateID)
	}
	if strings.TrimSpace(in.JobID) == "" {
		return nil, fmt.Errorf("job_id: %w", ErrInvalidJobID)
	}

	cand, err := s.candidates.FindByID(ctx, in.CandidateID)
	if err != nil {
		return nil, err
	}

	jb, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	return Compute(cand, jb), nil
}

// Compute はスコア算出本体の純粋関数です。各項について単調であること以外、
// 順位の安定性は保証しません。
func Compute(cand *candidate.Candidate, jb *job.Job) *Result {
	completed := cand.CompletedDocumentTypes()

	requirementMatches := 0
	for name := range jb.RequirementSet() {
		if _, ok := completed[name]; ok {
			requirementMatches++
		}
	}

	skillMatches := 0
	for _, skill := range cand.Skills {
		needle := strings.ToLower(strings.TrimSpace(skill))
		if needle == "" {
			continue
		}
		for _, tag := range jb.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				skillMatches++
				break
			}
		}
	}

	specialtyBonus := 0
	department := strings.ToLower(jb.Department)
	for _, specialty := range cand.Specialties {
		needle := strings.ToLower(strings.TrimSpace(specialty))
		if needle == "" {
			continue
		}
		if strings.Contains(department, needle) {
			specialtyBonus = specialtyBonusValue
			break
		}
	}

	// 70% を基準に上下へ振れる。70 未満のプロファイルでは減点になる。
	completionBonus := int(math.Round(float64(cand.ProfileCompletionPct-completionPivot) / completionDivisor))

	documentPenalty := documentPenaltyWeight * cand.IncompleteDocumentCount()

	base := baseScore +
		requirementWeight*requirementMatches +
		skillWeight*skillMatches +
		specialtyBonus +
		completionBonus -
		documentPenalty

	return &Result{
		CandidateID:        cand.ID,
		JobID:              jb.ID,
		Score:              clamp(base, minScore, maxScore),
		RequirementMatches: requirementMatches,
		SkillMatches:       skillMatches,
		SpecialtyBonus:     specialtyBonus,
		CompletionBonus:    completionBonus,
		DocumentPenalty:    documentPenalty,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
