package handler

import (
	"time"

	"github.com/ogurasousui/staffing-readiness-engine/internal/core/job"
	"github.com/valyala/fasthttp"
)

// JobHandler は求人参照の HTTP 実装です。
type JobHandler struct {
	svc job.UseCase
}

// NewJobHandler は JobHandler を生成します。
func NewJobHandler(svc job.UseCase) *JobHandler {
	return &JobHandler{svc: svc}
}

type jobResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Department   string    `json:"department"`
	Requirements []string  `json:"requirements"`
	Tags         []string  `json:"tags"`
	TemplateID   string    `json:"template_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type listJobsResponse struct {
	Jobs          []*jobResponse `json:"jobs"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// Get は求人を取得します。
func (h *JobHandler) Get(ctx *fasthttp.RequestCtx, id string) {
	found, err := h.svc.GetJob(ctx, job.GetJobInput{ID: id})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, toJobResponse(found))
}

// List は求人の一覧を取得します。
func (h *JobHandler) List(ctx *fasthttp.RequestCtx) {
	var departmentPtr *string
	if department := string(ctx.QueryArgs().Peek("department")); department != "" {
		departmentPtr = &department
	}

	result, err := h.svc.ListJobs(ctx, job.ListJobsInput{
		Department: departmentPtr,
		PageSize:   ctx.QueryArgs().GetUintOrZero("page_size"),
		PageToken:  string(ctx.QueryArgs().Peek("page_token")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	jobs := make([]*jobResponse, 0, len(result.Jobs))
	for _, j := range result.Jobs {
		jobs = append(jobs, toJobResponse(j))
	}

	writeJSON(ctx, fasthttp.StatusOK, listJobsResponse{
		Jobs:          jobs,
		NextPageToken: result.NextPageToken,
	})
}

func toJobResponse(j *job.Job) *jobResponse {
	if j == nil {
		return nil
	}

	requirements := j.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	tags := j.Tags
	if tags == nil {
		tags = []string{}
	}

	return &jobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Department:   j.Department,
		Requirements: requirements,
		Tags:         tags,
		TemplateID:   j.TemplateID,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
