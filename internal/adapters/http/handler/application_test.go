package handler

import (
	"context"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/application"
	"github.com/valyala/fasthttp"
)

type stubApplicationUseCase struct {
	submitInput application.SubmitInput
	submitOut   *application.SubmitResult
	submitErr   error

	transitionInput application.TransitionInput
	transitionOut   *application.Application
	transitionErr   error

	withdrawInput application.WithdrawInput
	withdrawOut   *application.Application
	withdrawErr   error

	getInput application.GetApplicationInput
	getOut   *application.Application
	getErr   error

	listInput application.ListApplicationsInput
	listOut   *application.ListApplicationsResult
	listErr   error
}

func (s *stubApplicationUseCase) Submit(ctx context.Context, in application.SubmitInput) (*application.SubmitResult, error) {
	s.submitInput = in
	return s.submitOut, s.submitErr
}

func (s *stubApplicationUseCase) Transition(ctx context.Context, in application.TransitionInput) (*application.Application, error) {
	s.transitionInput = in
	return s.transitionOut, s.transitionErr
}

func (s *stubApplicationUseCase) Withdraw(ctx context.Context, in application.WithdrawInput) (*application.Application, error) {
	s.withdrawInput = in
	return s.withdrawOut, s.withdrawErr
}

func (s *stubApplicationUseCase) GetApplication(ctx context.Context, in application.GetApplicationInput) (*application.Application, error) {
	s.getInput = in
	return s.getOut, s.getErr
}

func (s *stubApplicationUseCase) ListApplications(ctx context.Context, in application.ListApplicationsInput) (*application.ListApplicationsResult, error) {
	s.listInput = in
	return s.listOut, s.listErr
}

func newRequestCtx(method, uri, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	return ctx
}

func sampleApplication(status application.Status) *application.Application {
	return &application.Application{
		ID:                     "app-1",
		CandidateID:            "cand-1",
		JobID:                  "job-1",
		Status:                 status,
		DocumentState:          application.DocumentsComplete,
		MissingDocuments:       []string{},
		MatchScoreAtSubmission: 89,
		SubmittedAt:            time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestApplicationHandler_Submit_Created(t *testing.T) {
	t.Parallel()

	stub := &stubApplicationUseCase{
		submitOut: &application.SubmitResult{
			Application: sampleApplication(application.StatusSubmitted),
		},
	}
	handler := NewApplicationHandler(stub)

	ctx := newRequestCtx(fasthttp.MethodPost, "/v1/applications", `{"candidate_id":"cand-1","job_id":"job-1"}`)
	handler.Submit(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusCreated {
		t.Fatalf("expected 201, got %d", ctx.Response.StatusCode())
	}
	if stub.submitInput.CandidateID != "cand-1" || stub.submitInput.JobID != "job-1" {
		t.Fatalf("unexpected submit input: %+v", stub.submitInput)
	}

	var resp applicationResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.MatchScoreAtSubmission != 89 {
		t.Fatalf("expected score 89, got %d", resp.MatchScoreAtSubmission)
	}
}

func TestApplicationHandler_Submit_ReplayReturnsOK(t *testing.T) {
	t.Parallel()

	stub := &stubApplicationUseCase{
		submitOut: &application.SubmitResult{
			Application:      sampleApplication(application.StatusQualified),
			AlreadySubmitted: true,
		},
	}
	handler := NewApplicationHandler(stub)

	ctx := newRequestCtx(fasthttp.MethodPost, "/v1/applications", `{"candidate_id":"cand-1","job_id":"job-1"}`)
	handler.Submit(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", ctx.Response.StatusCode())
	}
}

func TestApplicationHandler_Submit_InvalidBody(t *testing.T) {
	t.Parallel()

	handler := NewApplicationHandler(&stubApplicationUseCase{})

	ctx := newRequestCtx(fasthttp.MethodPost, "/v1/applications", `{"candidate_id":`)
	handler.Submit(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", ctx.Response.StatusCode())
	}
}

func TestApplicationHandler_Transition_InvalidTransition(t *testing.T) {
	t.Parallel()

	stub := &stubApplicationUseCase{transitionErr: application.ErrInvalidTransition}
	handler := NewApplicationHandler(stub)

	ctx := newRequestCtx(fasthttp.MethodPost, "/v1/applications/app-1/status", `{"status":"submitted"}`)
	handler.Transition(ctx, "app-1")

	if ctx.Response.StatusCode() != fasthttp.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", ctx.Response.StatusCode())
	}
	if !strings.Contains(string(ctx.Response.Body()), "invalid status transition") {
		t.Fatalf("expected error message in body, got %s", ctx.Response.Body())
	}
}

func TestApplicationHandler_Withdraw_Finalized(t *testing.T) {
	t.Parallel()

	stub := &stubApplicationUseCase{withdrawErr: application.ErrAlreadyFinalized}
	handler := NewApplicationHandler(stub)

	ctx := newRequestCtx(fasthttp.MethodPost, "/v1/applications/app-1/withdraw", "")
	handler.Withdraw(ctx, "app-1")

	if ctx.Response.StatusCode() != fasthttp.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", ctx.Response.StatusCode())
	}
}

func TestApplicationHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	stub := &stubApplicationUseCase{getErr: application.ErrApplicationNotFound}
	handler := NewApplicationHandler(stub)

	ctx := newRequestCtx(fasthttp.MethodGet, "/v1/applications/missing", "")
	handler.Get(ctx, "missing")

	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", ctx.Response.StatusCode())
	}
}

func TestApplicationHandler_List_PassesFilters(t *testing.T) {
	t.Parallel()

	stub := &stubApplicationUseCase{
		listOut: &application.ListApplicationsResult{
			Applications: []*application.Application{sampleApplication(application.StatusSubmitted)},
		},
	}
	handler := NewApplicationHandler(stub)

	ctx := newRequestCtx(fasthttp.MethodGet, "/v1/applications?candidate_id=cand-1&include_withdrawn=true&page_size=10", "")
	handler.List(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
	if stub.listInput.CandidateID == nil || *stub.listInput.CandidateID != "cand-1" {
		t.Fatalf("expected candidate filter, got %+v", stub.listInput.CandidateID)
	}
	if !stub.listInput.IncludeWithdrawn {
		t.Fatalf("expected include_withdrawn to be set")
	}
	if stub.listInput.PageSize != 10 {
		t.Fatalf("expected page size 10, got %d", stub.listInput.PageSize)
	}
}
