package handler

import (
	"time"

	"github.com/ogurasousui/staffing-readiness-engine/internal/core/application"
	"github.com/valyala/fasthttp"
)

// ApplicationHandler は応募ライフサイクルの HTTP 実装です。
type ApplicationHandler struct {
	svc application.UseCase
}

// NewApplicationHandler は ApplicationHandler を生成します。
func NewApplicationHandler(svc application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type submitApplicationRequest struct {
	CandidateID string `json:"candidate_id"`
	JobID       string `json:"job_id"`
}

type transitionRequest struct {
	Status string `json:"status"`
}

type applicationResponse struct {
	ID                     string     `json:"id"`
	CandidateID            string     `json:"candidate_id"`
	JobID                  string     `json:"job_id"`
	Status                 string     `json:"status"`
	DocumentState          string     `json:"document_state"`
	MissingDocuments       []string   `json:"missing_documents"`
	MatchScoreAtSubmission int        `json:"match_score_at_submission"`
	SubmittedAt            time.Time  `json:"submitted_at"`
	LastUpdated            *time.Time `json:"last_updated,omitempty"`
}

type listApplicationsResponse struct {
	Applications  []*applicationResponse `json:"applications"`
	NextPageToken string                 `json:"next_page_token,omitempty"`
}

// Submit は応募を提出します。同じ候補者・求人の組の再提出は既存レコードを
// 200 で返し、新規作成時のみ 201 を返します。
func (h *ApplicationHandler) Submit(ctx *fasthttp.RequestCtx) {
	var req submitApplicationRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeBadRequest(ctx, "invalid request body")
		return
	}

	result, err := h.svc.Submit(ctx, application.SubmitInput{
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	status := fasthttp.StatusCreated
	if result.AlreadySubmitted {
		status = fasthttp.StatusOK
	}

	writeJSON(ctx, status, toApplicationResponse(result.Application))
}

// Transition は応募の選考状態を次の段階へ進めます。
func (h *ApplicationHandler) Transition(ctx *fasthttp.RequestCtx, id string) {
	var req transitionRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeBadRequest(ctx, "invalid request body")
		return
	}

	updated, err := h.svc.Transition(ctx, application.TransitionInput{
		ID:         id,
		NextStatus: application.Status(req.Status),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toApplicationResponse(updated))
}

// Withdraw は応募を取り下げます。
func (h *ApplicationHandler) Withdraw(ctx *fasthttp.RequestCtx, id string) {
	updated, err := h.svc.Withdraw(ctx, application.WithdrawInput{ID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toApplicationResponse(updated))
}

// Get は応募を取得します。
func (h *ApplicationHandler) Get(ctx *fasthttp.RequestCtx, id string) {
	found, err := h.svc.GetApplication(ctx, application.GetApplicationInput{ID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toApplicationResponse(found))
}

// List は応募の一覧を取得します。取り下げ済みは include_withdrawn=true の
// 場合のみ含まれます。
func (h *ApplicationHandler) List(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()

	var candidatePtr *string
	if candidateID := string(args.Peek("candidate_id")); candidateID != "" {
		candidatePtr = &candidateID
	}

	var jobPtr *string
	if jobID := string(args.Peek("job_id")); jobID != "" {
		jobPtr = &jobID
	}

	var statusPtr *application.Status
	if status := string(args.Peek("status")); status != "" {
		value := application.Status(status)
		statusPtr = &value
	}

	result, err := h.svc.ListApplications(ctx, application.ListApplicationsInput{
		CandidateID:      candidatePtr,
		JobID:            jobPtr,
		Status:           statusPtr,
		IncludeWithdrawn: args.GetBool("include_withdrawn"),
		PageSize:         args.GetUintOrZero("page_size"),
		PageToken:        string(args.Peek("page_token")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	applications := make([]*applicationResponse, 0, len(result.Applications))
	for _, app := range result.Applications {
		applications = append(applications, toApplicationResponse(app))
	}

	writeJSON(ctx, fasthttp.StatusOK, listApplicationsResponse{
		Applications:  applications,
		NextPageToken: result.NextPageToken,
	})
}

func toApplicationResponse(app *application.Application) *applicationResponse {
	if app == nil {
		return nil
	}

	missing := app.MissingDocuments
	if missing == nil {
		missing = []string{}
	}

	return &applicationResponse{
		ID:                     app.ID,
		CandidateID:            app.CandidateID,
		JobID:                  app.JobID,
		Status:                 string(app.Status),
		DocumentState:          string(app.DocumentState),
		MissingDocuments:       missing,
		MatchScoreAtSubmission: app.MatchScoreAtSubmission,
		SubmittedAt:            app.SubmittedAt,
		LastUpdated:            app.LastUpdated,
	}
}
