package compliance

import "time"

// Template は職種コードと必要書類の対応を定義する管理者作成のテンプレートです。
type Template struct {
	ID              string
	Name            string
	OccupationCodes []string
	ListItemIDs     []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AppliesTo は職種コードがテンプレートの対象職種に含まれるかを判定します。
func (t *Template) AppliesTo(occupationCode string) bool {
	for _, code := range t.OccupationCodes {
		if code == occupationCode {
			return true
		}
	}
	return false
}

// ListItem は個別に有効化・無効化できる書類要件です。
// Name が書類種別のキーとしてシステム全体で使われます。
type ListItem struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
