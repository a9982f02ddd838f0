package handler

import (
	"time"

	"github.com/ogurasousui/staffing-readiness-engine/internal/core/invoice"
	"github.com/valyala/fasthttp"
)

// InvoiceHandler は請求書ライフサイクルの HTTP 実装です。
type InvoiceHandler struct {
	svc invoice.UseCase
}

// NewInvoiceHandler は InvoiceHandler を生成します。
func NewInvoiceHandler(svc invoice.UseCase) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

type createInvoiceRequest struct {
	Amount     float64 `json:"amount"`
	TimecardID *string `json:"timecard_id"`
}

type invoiceResponse struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Amount     float64    `json:"amount"`
	TimecardID *string    `json:"timecard_id,omitempty"`
	IssuedAt   time.Time  `json:"issued_at"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
}

type listInvoicesResponse struct {
	Invoices      []*invoiceResponse `json:"invoices"`
	NextPageToken string             `json:"next_page_token,omitempty"`
}

// Create は請求書を作成します。
func (h *InvoiceHandler) Create(ctx *fasthttp.RequestCtx) {
	var req createInvoiceRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeBadRequest(ctx, "invalid request body")
		return
	}

	created, err := h.svc.CreateInvoice(ctx, invoice.CreateInvoiceInput{
		Amount:     req.Amount,
		TimecardID: req.TimecardID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, toInvoiceResponse(created))
}

// MarkPaid は請求書を支払い済みにします。
func (h *InvoiceHandler) MarkPaid(ctx *fasthttp.RequestCtx, id string) {
	updated, err := h.svc.MarkPaid(ctx, invoice.MarkPaidInput{ID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toInvoiceResponse(updated))
}

// Get は請求書を取得します。
func (h *InvoiceHandler) Get(ctx *fasthttp.RequestCtx, id string) {
	found, err := h.svc.GetInvoice(ctx, invoice.GetInvoiceInput{ID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toInvoiceResponse(found))
}

// List は請求書の一覧を取得します。
func (h *InvoiceHandler) List(ctx *fasthttp.RequestCtx) {
	var statusPtr *invoice.Status
	if status := string(ctx.QueryArgs().Peek("status")); status != "" {
		value := invoice.Status(status)
		statusPtr = &value
	}

	result, err := h.svc.ListInvoices(ctx, invoice.ListInvoicesInput{
		Status:    statusPtr,
		PageSize:  ctx.QueryArgs().GetUintOrZero("page_size"),
		PageToken: string(ctx.QueryArgs().Peek("page_token")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	invoices := make([]*invoiceResponse, 0, len(result.Invoices))
	for _, inv := range result.Invoices {
		invoices = append(invoices, toInvoiceResponse(inv))
	}

	writeJSON(ctx, fasthttp.StatusOK, listInvoicesResponse{
		Invoices:      invoices,
		NextPageToken: result.NextPageToken,
	})
}

func toInvoiceResponse(inv *invoice.Invoice) *invoiceResponse {
	if inv == nil {
		return nil
	}

	return &invoiceResponse{
		ID:         inv.ID,
		Status:     string(inv.Status),
		Amount:     inv.Amount,
		TimecardID: inv.TimecardID,
		IssuedAt:   inv.IssuedAt,
		PaidAt:     inv.PaidAt,
	}
}
