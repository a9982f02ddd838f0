package invoice

import "context"

// Repository は請求書永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, inv *Invoice) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) (*Invoice, error)
	FindByID(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, filter ListFilter) ([]*Invoice, string, error)
}

// ListFilter は一覧取得用フィルタです。
type ListFilter struct {
	Status *Status
	Limit  int
	Offset int
}
