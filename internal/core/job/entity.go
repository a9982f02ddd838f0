package job

import "time"

// Job は募集中の求人です。Requirements は応募資格となる書類種別名、
// Tags はスキル照合に使うキーワード、TemplateID は提出時要件を定義する
// コンプライアンステンプレートへの任意リンクです。
type Job struct {
	ID           string
	Title        string
	Department   string
	Requirements []string
	Tags         []string
	TemplateID   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequirementSet は要件名集合を返します。重複は除去されます。
func (j *Job) RequirementSet() map[string]struct{} {
	set := make(map[string]struct{}, len(j.Requirements))
	for _, name := range j.Requirements {
		set[name] = struct{}{}
	}
	return set
}
