package job

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
)

// Service は求人参照のユースケースをまとめます。
type Service struct {
	repo Repository
}

// UseCase は求人ユースケースの公開インターフェースです。
type UseCase interface {
	GetJob(ctx context.Context, in GetJobInput) (*Job, error)
	ListJobs(ctx context.Context, in ListJobsInput) (*ListJobsResult, error)
}

// NewService は Service を生成します。
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetJobInput は求人取得時の入力です。
type GetJobInput struct {
	ID string
}

// ListJobsInput は一覧取得時の入力です。
type ListJobsInput struct {
	Department *string
	PageSize   int
	PageToken  string
}

// ListJobsResult は一覧取得結果を表します。
type ListJobsResult struct {
	Jobs          []*Job
	NextPageToken string
}

// GetJob は求人を取得します。
func (s *Service) GetJob(ctx context.Context, in GetJobInput) (*Job, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.repo.FindByID(ctx, in.ID)
}

// ListJobs は求人の一覧を取得します。
func (s *Service) ListJobs(ctx context.Context, in ListJobsInput) (*ListJobsResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	jobs, nextToken, err := s.repo.List(ctx, ListFilter{
		Department: in.Department,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}

	return &ListJobsResult{Jobs: jobs, NextPageToken: nextToken}, nil
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}
