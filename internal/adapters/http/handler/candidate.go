package handler

import (
	"time"

	"github.com/ogurasousui/staffing-readiness-engine/internal/core/candidate"
	"github.com/valyala/fasthttp"
)

// CandidateHandler は候補者プロファイルと準備状態判定の HTTP 実装です。
type CandidateHandler struct {
	svc candidate.UseCase
}

// NewCandidateHandler は CandidateHandler を生成します。
func NewCandidateHandler(svc candidate.UseCase) *CandidateHandler {
	return &CandidateHandler{svc: svc}
}

type candidateDocumentPayload struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

type candidateResponse struct {
	ID                       string                     `json:"id"`
	Name                     string                     `json:"name"`
	Phone                    string                     `json:"phone,omitempty"`
	BasicInfoProvided        bool                       `json:"basic_info_provided"`
	ProfessionalInfoProvided bool                       `json:"professional_info_provided"`
	OccupationCode           *string                    `json:"occupation_code,omitempty"`
	Skills                   []string                   `json:"skills"`
	Specialties              []string                   `json:"specialties"`
	Documents                []candidateDocumentPayload `json:"documents"`
	ProfileCompletionPct     int                        `json:"profile_completion_pct"`
	CreatedAt                time.Time                  `json:"created_at"`
	UpdatedAt                time.Time                  `json:"updated_at"`
}

type listCandidatesResponse struct {
	Candidates    []*candidateResponse `json:"candidates"`
	NextPageToken string               `json:"next_page_token,omitempty"`
}

type readinessResponse struct {
	Complete                 bool     `json:"complete"`
	BasicInfoProvided        bool     `json:"basic_info_provided"`
	ProfessionalInfoProvided bool     `json:"professional_info_provided"`
	RequiredDocuments        []string `json:"required_documents"`
	MissingDocuments         []string `json:"missing_documents"`
}

type upsertDocumentRequest struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Get は候補者を取得します。
func (h *CandidateHandler) Get(ctx *fasthttp.RequestCtx, id string) {
	found, err := h.svc.GetCandidate(ctx, candidate.GetCandidateInput{ID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toCandidateResponse(found))
}

// List は候補者の一覧を取得します。
func (h *CandidateHandler) List(ctx *fasthttp.RequestCtx) {
	var occupationPtr *string
	if code := string(ctx.QueryArgs().Peek("occupation_code")); code != "" {
		occupationPtr = &code
	}

	result, err := h.svc.ListCandidates(ctx, candidate.ListCandidatesInput{
		OccupationCode: occupationPtr,
		PageSize:       ctx.QueryArgs().GetUintOrZero("page_size"),
		PageToken:      string(ctx.QueryArgs().Peek("page_token")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	candidates := make([]*candidateResponse, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		candidates = append(candidates, toCandidateResponse(c))
	}

	writeJSON(ctx, fasthttp.StatusOK, listCandidatesResponse{
		Candidates:    candidates,
		NextPageToken: result.NextPageToken,
	})
}

// UpsertDocument は書類の状態を登録・更新します。同じ種別の書類は
// 置き換えられ、新しい種別は末尾に追加されます。
func (h *CandidateHandler) UpsertDocument(ctx *fasthttp.RequestCtx, id string) {
	var req upsertDocumentRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeBadRequest(ctx, "invalid request body")
		return
	}

	updated, err := h.svc.UpsertDocument(ctx, candidate.UpsertDocumentInput{
		CandidateID: id,
		Type:        req.Type,
		Status:      candidate.DocumentStatus(req.Status),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toCandidateResponse(updated))
}

// Readiness は候補者の提出準備状態を評価します。uploaded_type クエリで
// 保存済み書類に加えて評価対象の書類種別を指定できます。
func (h *CandidateHandler) Readiness(ctx *fasthttp.RequestCtx, id string) {
	var uploadedTypes []string
	for _, value := range ctx.QueryArgs().PeekMulti("uploaded_type") {
		uploadedTypes = append(uploadedTypes, string(value))
	}

	result, err := h.svc.EvaluateReadiness(ctx, candidate.EvaluateReadinessInput{
		CandidateID:   id,
		UploadedTypes: uploadedTypes,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	required := result.RequiredDocuments
	if required == nil {
		required = []string{}
	}
	missing := result.MissingDocuments
	if missing == nil {
		missing = []string{}
	}

	writeJSON(ctx, fasthttp.StatusOK, readinessResponse{
		Complete:                 result.Complete,
		BasicInfoProvided:        result.BasicInfoProvided,
		ProfessionalInfoProvided: result.ProfessionalInfoProvided,
		RequiredDocuments:        required,
		MissingDocuments:         missing,
	})
}

func toCandidateResponse(c *candidate.Candidate) *candidateResponse {
	if c == nil {
		return nil
	}

	documents := make([]candidateDocumentPayload, 0, len(c.Documents))
	for _, doc := range c.Documents {
		documents = append(documents, candidateDocumentPayload{
			Type:   doc.Type,
			Status: string(doc.Status),
		})
	}

	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	specialties := c.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	return &candidateResponse{
		ID:                       c.ID,
		Name:                     c.Name,
		Phone:                    c.Phone,
		BasicInfoProvided:        c.BasicInfoProvided,
		ProfessionalInfoProvided: c.ProfessionalInfoProvided,
		OccupationCode:           c.OccupationCode,
		Skills:                   skills,
		Specialties:              specialties,
		Documents:                documents,
		ProfileCompletionPct:     c.ProfileCompletionPct,
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}
