package handler

import (
	"time"

	"github.com/ogurasousui/staffing-readiness-engine/internal/core/timecard"
	"github.com/valyala/fasthttp"
)

// TimecardHandler はタイムカードライフサイクルの HTTP 実装です。
type TimecardHandler struct {
	svc timecard.UseCase
}

// NewTimecardHandler は TimecardHandler を生成します。
func NewTimecardHandler(svc timecard.UseCase) *TimecardHandler {
	return &TimecardHandler{svc: svc}
}

type submitTimecardRequest struct {
	ApplicationID string  `json:"application_id"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	BillRate      float64 `json:"bill_rate"`
}

type updateHoursRequest struct {
	RegularHours  *float64 `json:"regular_hours"`
	OvertimeHours *float64 `json:"overtime_hours"`
	BillRate      *float64 `json:"bill_rate"`
}

type timecardResponse struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	Status        string    `json:"status"`
	RegularHours  float64   `json:"regular_hours"`
	OvertimeHours float64   `json:"overtime_hours"`
	BillRate      float64   `json:"bill_rate"`
	TotalAmount   float64   `json:"total_amount"`
	SubmittedAt   time.Time `json:"submitted_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type listTimecardsResponse struct {
	Timecards []*timecardResponse `json:"timecards"`
}

// Submit はタイムカードを提出します。
func (h *TimecardHandler) Submit(ctx *fasthttp.RequestCtx) {
	var req submitTimecardRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeBadRequest(ctx, "invalid request body")
		return
	}

	created, err := h.svc.Submit(ctx, timecard.SubmitInput{
		ApplicationID: req.ApplicationID,
		RegularHours:  req.RegularHours,
		OvertimeHours: req.OvertimeHours,
		BillRate:      req.BillRate,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, toTimecardResponse(created))
}

// UpdateHours は承認前の時間・単価を修正し、請求額を再計算します。
func (h *TimecardHandler) UpdateHours(ctx *fasthttp.RequestCtx, id string) {
	var req updateHoursRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeBadRequest(ctx, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateHours(ctx, timecard.UpdateHoursInput{
		ID:            id,
		RegularHours:  req.RegularHours,
		OvertimeHours: req.OvertimeHours,
		BillRate:      req.BillRate,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toTimecardResponse(updated))
}

// Approve はタイムカードを承認します。
func (h *TimecardHandler) Approve(ctx *fasthttp.RequestCtx, id string) {
	updated, err := h.svc.Approve(ctx, timecard.ApproveInput{ID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toTimecardResponse(updated))
}

// Reject はタイムカードを却下します。
func (h *TimecardHandler) Reject(ctx *fasthttp.RequestCtx, id string) {
	updated, err := h.svc.Reject(ctx, timecard.RejectInput{ID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toTimecardResponse(updated))
}

// Get はタイムカードを取得します。
func (h *TimecardHandler) Get(ctx *fasthttp.RequestCtx, id string) {
	found, err := h.svc.GetTimecard(ctx, timecard.GetTimecardInput{ID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toTimecardResponse(found))
}

// ListByApplication は応募に紐づくタイムカードの一覧を返します。
func (h *TimecardHandler) ListByApplication(ctx *fasthttp.RequestCtx, applicationID string) {
	found, err := h.svc.ListByApplication(ctx, timecard.ListByApplicationInput{
		ApplicationID: applicationID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	timecards := make([]*timecardResponse, 0, len(found))
	for _, tc := range found {
		timecards = append(timecards, toTimecardResponse(tc))
	}

	writeJSON(ctx, fasthttp.StatusOK, listTimecardsResponse{Timecards: timecards})
}

func toTimecardResponse(tc *timecard.Timecard) *timecardResponse {
	if tc == nil {
		return nil
	}

	return &timecardResponse{
		ID:            tc.ID,
		ApplicationID: tc.ApplicationID,
		Status:        string(tc.Status),
		RegularHours:  tc.RegularHours,
		OvertimeHours: tc.OvertimeHours,
		BillRate:      tc.BillRate,
		TotalAmount:   tc.TotalAmount,
		SubmittedAt:   tc.SubmittedAt,
		UpdatedAt:     tc.UpdatedAt,
	}
}
