package candidate

import "context"

// Repository は候補者プロファイル (Profile Store) 永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, c *Candidate) (*Candidate, error)
	Update(ctx context.Context, c *Candidate) (*Candidate, error)
	FindByID(ctx context.Context, id string) (*Candidate, error)
	List(ctx context.Context, filter ListFilter) ([]*Candidate, string, error)
}

// ListFilter は一覧取得用フィルタです。
type ListFilter struct {
	OccupationCode *string
	Limit          int
	Offset         int
}
