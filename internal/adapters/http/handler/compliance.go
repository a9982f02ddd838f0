package handler

import (
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/compliance"
	"github.com/valyala/fasthttp"
)

// ComplianceHandler はコンプライアンス要件解決の HTTP 実装です。
type ComplianceHandler struct {
	resolver compliance.RequirementResolver
}

// NewComplianceHandler は ComplianceHandler を生成します。
func NewComplianceHandler(resolver compliance.RequirementResolver) *ComplianceHandler {
	return &ComplianceHandler{resolver: resolver}
}

type requiredDocumentsResponse struct {
	OccupationCode    string   `json:"occupation_code"`
	RequiredDocuments []string `json:"required_documents"`
}

type templateItemsResponse struct {
	TemplateID        string   `json:"template_id"`
	RequiredDocuments []string `json:"required_documents"`
}

// RequiredDocuments は職種コードに対する必須書類名の一覧を返します。
// 職種コードが空の場合や該当テンプレートがない場合も空集合を返します。
func (h *ComplianceHandler) RequiredDocuments(ctx *fasthttp.RequestCtx) {
	occupationCode := string(ctx.QueryArgs().Peek("occupation_code"))

	names, err := h.resolver.ResolveRequiredDocuments(ctx, occupationCode)
	if err != nil {
		writeError(ctx, err)
		return
	}

	if names == nil {
		names = []string{}
	}

	writeJSON(ctx, fasthttp.StatusOK, requiredDocumentsResponse{
		OccupationCode:    occupationCode,
		RequiredDocuments: names,
	})
}

// TemplateItems はテンプレートに紐づく有効な書類名の一覧を返します。
func (h *ComplianceHandler) TemplateItems(ctx *fasthttp.RequestCtx, templateID string) {
	names, err := h.resolver.ResolveTemplateItems(ctx, templateID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	if names == nil {
		names = []string{}
	}

	writeJSON(ctx, fasthttp.StatusOK, templateItemsResponse{
		TemplateID:        templateID,
		RequiredDocuments: names,
	})
}
