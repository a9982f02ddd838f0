package handler

import (
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/matching"
	"github.com/valyala/fasthttp"
)

// MatchingHandler は適合度スコア算出の HTTP 実装です。
type MatchingHandler struct {
	svc matching.UseCase
}

// NewMatchingHandler は MatchingHandler を生成します。
func NewMatchingHandler(svc matching.UseCase) *MatchingHandler {
	return &MatchingHandler{svc: svc}
}

type scoreRequest struct {
	CandidateID string `json:"candidate_id"`
	JobID       string `json:"job_id"`
}

type scoreResponse struct {
	CandidateID        string `json:"candidate_id"`
	JobID              string `json:"job_id"`
	Score              int    `json:"score"`
	RequirementMatches int    `json:"requirement_matches"`
	SkillMatches       int    `json:"skill_matches"`
	SpecialtyBonus     int    `json:"specialty_bonus"`
	CompletionBonus    int    `json:"completion_bonus"`
	DocumentPenalty    int    `json:"document_penalty"`
}

// Score は候補者と求人の適合度スコアを算出します。
func (h *MatchingHandler) Score(ctx *fasthttp.RequestCtx) {
	var req scoreRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeBadRequest(ctx, "invalid request body")
		return
	}

	result, err := h.svc.Score(ctx, matching.ScoreInput{
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, scoreResponse{
		CandidateID:        result.CandidateID,
		JobID:              result.JobID,
		Score:              result.Score,
		RequirementMatches: result.RequirementMatches,
		SkillMatches:       result.SkillMatches,
		SpecialtyBonus:     result.SpecialtyBonus,
		CompletionBonus:    result.CompletionBonus,
		DocumentPenalty:    result.DocumentPenalty,
	})
}
