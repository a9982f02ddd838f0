package compliance

import "context"

// Repository はコンプライアンスカタログ (Catalog Store) 参照の抽象です。
// カタログは管理者側のワークフローで保守されるため常に不完全でありえます。
// FindListItemsByIDs は見つかった項目のみを返し、存在しない id は黙って無視します。
type Repository interface {
	FindTemplateByID(ctx context.Context, id string) (*Template, error)
	FindTemplatesByOccupation(ctx context.Context, occupationCode string) ([]*Template, error)
	FindListItemsByIDs(ctx context.Context, ids []string) ([]*ListItem, error)
}
