package job

import "context"

// Repository は求人カタログ参照の抽象です。求人の作成・編集は管理画面側の
// CRUD が担うため、エンジンからは読み取りのみ行います。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, filter ListFilter) ([]*Job, string, error)
}

// ListFilter は一覧取得用フィルタです。
type ListFilter struct {
	Department *string
	Limit      int
	Offset     int
}
