// Package fixture はローカル開発・デモ用の固定データセットを提供します。
// データは埋め込み JSON から読み込まれ、実行のたびに同じ ID・同じ内容に
// なります。
package fixture

import (
	_ "embed"
	"fmt"

	json "github.com/goccy/go-json"
)

//go:embed data.json
var dataJSON []byte

// ListItem はコンプライアンス書類要件項目のシードです。
type ListItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Template はコンプライアンステンプレートのシードです。ItemIDs の順序が
// そのまま保存順になります。
type Template struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	OccupationCodes []string `json:"occupation_codes"`
	ItemIDs         []string `json:"item_ids"`
}

// Document は候補者書類のシードです。
type Document struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Candidate は候補者プロファイルのシードです。
type Candidate struct {
	ID                       string     `json:"id"`
	Name                     string     `json:"name"`
	Phone                    string     `json:"phone"`
	BasicInfoProvided        bool       `json:"basic_info_provided"`
	ProfessionalInfoProvided bool       `json:"professional_info_provided"`
	OccupationCode           *string    `json:"occupation_code"`
	Skills                   []string   `json:"skills"`
	Specialties              []string   `json:"specialties"`
	ProfileCompletionPct     int        `json:"profile_completion_pct"`
	Documents                []Document `json:"documents"`
}

// Job は求人のシードです。TemplateID が空の場合はテンプレート未リンクです。
type Job struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Requirements []string `json:"requirements"`
	Tags         []string `json:"tags"`
	TemplateID   string   `json:"template_id"`
}

// Dataset はデモデータ一式です。
type Dataset struct {
	ListItems  []ListItem  `json:"list_items"`
	Templates  []Template  `json:"templates"`
	Candidates []Candidate `json:"candidates"`
	Jobs       []Job       `json:"jobs"`
}

// Load は埋め込みデータセットを復元します。
func Load() (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(dataJSON, &ds); err != nil {
		return nil, fmt.Errorf("fixture: parse embedded dataset: %w", err)
	}
	return &ds, nil
}
