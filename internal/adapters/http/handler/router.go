package handler

import (
	"strings"

	"github.com/valyala/fasthttp"
)

// Router は REST パスをそれぞれのハンドラに振り分けます。ルーティングは
// /v1 配下の固定セグメントと id セグメントのみなので、外部ルータに頼らず
// パス分割で済ませています。
type Router struct {
	compliance   *ComplianceHandler
	candidates   *CandidateHandler
	jobs         *JobHandler
	matching     *MatchingHandler
	applications *ApplicationHandler
	timecards    *TimecardHandler
	invoices     *InvoiceHandler
}

// NewRouter は Router を生成します。
func NewRouter(
	compliance *ComplianceHandler,
	candidates *CandidateHandler,
	jobs *JobHandler,
	matching *MatchingHandler,
	applications *ApplicationHandler,
	timecards *TimecardHandler,
	invoices *InvoiceHandler,
) *Router {
	return &Router{
		compliance:   compliance,
		candidates:   candidates,
		jobs:         jobs,
		matching:     matching,
		applications: applications,
		timecards:    timecards,
		invoices:     invoices,
	}
}

// Handle は fasthttp のリクエストハンドラです。
func (r *Router) Handle(ctx *fasthttp.RequestCtx) {
	path := strings.Trim(string(ctx.Path()), "/")
	segments := strings.Split(path, "/")
	method := string(ctx.Method())

	if len(segments) < 2 || segments[0] != "v1" {
		writeNotFound(ctx)
		return
	}

	switch segments[1] {
	case "match":
		r.handleMatch(ctx, method, segments[2:])
	case "compliance":
		r.handleCompliance(ctx, method, segments[2:])
	case "candidates":
		r.handleCandidates(ctx, method, segments[2:])
	case "jobs":
		r.handleJobs(ctx, method, segments[2:])
	case "applications":
		r.handleApplications(ctx, method, segments[2:])
	case "timecards":
		r.handleTimecards(ctx, method, segments[2:])
	case "invoices":
		r.handleInvoices(ctx, method, segments[2:])
	default:
		writeNotFound(ctx)
	}
}

func (r *Router) handleMatch(ctx *fasthttp.RequestCtx, method string, rest []string) {
	if len(rest) != 1 || rest[0] != "score" {
		writeNotFound(ctx)
		return
	}
	if method != fasthttp.MethodPost {
		writeMethodNotAllowed(ctx)
		return
	}
	r.matching.Score(ctx)
}

func (r *Router) handleCompliance(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 1 && rest[0] == "required-documents":
		if method != fasthttp.MethodGet {
			writeMethodNotAllowed(ctx)
			return
		}
		r.compliance.RequiredDocuments(ctx)
	case len(rest) == 3 && rest[0] == "templates" && rest[2] == "items":
		if method != fasthttp.MethodGet {
			writeMethodNotAllowed(ctx)
			return
		}
		r.compliance.TemplateItems(ctx, rest[1])
	default:
		writeNotFound(ctx)
	}
}

func (r *Router) handleCandidates(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0:
		if method != fasthttp.MethodGet {
			writeMethodNotAllowed(ctx)
			return
		}
		r.candidates.List(ctx)
	case len(rest) == 1:
		if method != fasthttp.MethodGet {
			writeMethodNotAllowed(ctx)
			return
		}
		r.candidates.Get(ctx, rest[0])
	case len(rest) == 2 && rest[1] == "readiness":
		if method != fasthttp.MethodGet {
			writeMethodNotAllowed(ctx)
			return
		}
		r.candidates.Readiness(ctx, rest[0])
	case len(rest) == 2 && rest[1] == "documents":
		if method != fasthttp.MethodPut {
			writeMethodNotAllowed(ctx)
			return
		}
		r.candidates.UpsertDocument(ctx, rest[0])
	default:
		writeNotFound(ctx)
	}
}

func (r *Router) handleJobs(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0:
		if method != fasthttp.MethodGet {
			writeMethodNotAllowed(ctx)
			return
		}
		r.jobs.List(ctx)
	case len(rest) == 1:
		if method != fasthttp.MethodGet {
			writeMethodNotAllowed(ctx)
			return
		}
		r.jobs.Get(ctx, rest[0])
	default:
		writeNotFound(ctx)
	}
}

func (r *Router) handleApplications(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0:
		switch method {
		case fasthttp.MethodPost:
			r.applications.Submit(ctx)
		case fasthttp.MethodGet:
			r.applications.List(ctx)
		default:
			writeMethodNotAllowed(ctx)
		}
	case len(rest) == 1:
		if method != fasthttp.MethodGet {
			writeMethodNotAllowed(ctx)
			return
		}
		r.applications.Get(ctx, rest[0])
	case len(rest) == 2 && rest[1] == "status":
		if method != fasthttp.MethodPost {
			writeMethodNotAllowed(ctx)
			return
		}
		r.applications.Transition(ctx, rest[0])
	case len(rest) == 2 && rest[1] == "withdraw":
		if method != fasthttp.MethodPost {
			writeMethodNotAllowed(ctx)
			return
		}
		r.applications.Withdraw(ctx, rest[0])
	case len(rest) == 2 && rest[1] == "timecards":
		if method != fasthttp.MethodGet {
			writeMethodNotAllowed(ctx)
			return
		}
		r.timecards.ListByApplication(ctx, rest[0])
	default:
		writeNotFound(ctx)
	}
}

func (r *Router) handleTimecards(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0:
		if method != fasthttp.MethodPost {
			writeMethodNotAllowed(ctx)
			return
		}
		r.timecards.Submit(ctx)
	case len(rest) == 1:
		if method != fasthttp.MethodGet {
			writeMethodNotAllowed(ctx)
			return
		}
		r.timecards.Get(ctx, rest[0])
	case len(rest) == 2 && rest[1] == "hours":
		if method != fasthttp.MethodPatch {
			writeMethodNotAllowed(ctx)
			return
		}
		r.timecards.UpdateHours(ctx, rest[0])
	case len(rest) == 2 && rest[1] == "approve":
		if method != fasthttp.MethodPost {
			writeMethodNotAllowed(ctx)
			return
		}
		r.timecards.Approve(ctx, rest[0])
	case len(rest) == 2 && rest[1] == "reject":
		if method != fasthttp.MethodPost {
			writeMethodNotAllowed(ctx)
			return
		}
		r.timecards.Reject(ctx, rest[0])
	default:
		writeNotFound(ctx)
	}
}

func (r *Router) handleInvoices(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0:
		switch method {
		case fasthttp.MethodPost:
			r.invoices.Create(ctx)
		case fasthttp.MethodGet:
			r.invoices.List(ctx)
		default:
			writeMethodNotAllowed(ctx)
		}
	case len(rest) == 1:
		if method != fasthttp.MethodGet {
			writeMethodNotAllowed(ctx)
			return
		}
		r.invoices.Get(ctx, rest[0])
	case len(rest) == 2 && rest[1] == "pay":
		if method != fasthttp.MethodPost {
			writeMethodNotAllowed(ctx)
			return
		}
		r.invoices.MarkPaid(ctx, rest[0])
	default:
		writeNotFound(ctx)
	}
}
