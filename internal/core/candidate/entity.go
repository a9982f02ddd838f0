package candidate

import "time"

// DocumentStatus は提出書類の検証状態を表します。
type DocumentStatus string

const (
	DocumentPendingUpload       DocumentStatus = "pending_upload"
	DocumentPendingVerification DocumentStatus = "pending_verification"
	DocumentCompleted           DocumentStatus = "completed"
	DocumentExpired             DocumentStatus = "expired"
)

// Document は候補者がアップロードした書類です。Type が要件名のキーになります。
type Document struct {
	Type   string
	Status DocumentStatus
}

// SatisfiesRequirement は書類が要件を充足するとみなせる状態かを判定します。
// 検証待ちは充足扱い、アップロード待ちと期限切れは未充足扱いです。
func (d Document) SatisfiesRequirement() bool {
	return d.Status == DocumentCompleted || d.Status == DocumentPendingVerification
}

// Candidate は候補者プロファイルです。削除されることはなく、更新のみ行われます。
type Candidate struct {
	ID                       string
	Name                     string
	Phone                    string
	BasicInfoProvided        bool
	ProfessionalInfoProvided bool
	OccupationCode           *string
	Skills                   []string
	Specialties              []string
	Documents                []Document
	ProfileCompletionPct     int
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// DocumentTypes は状態を問わず保有している書類種別の集合を返します。
func (c *Candidate) DocumentTypes() map[string]struct{} {
	types := make(map[string]struct{}, len(c.Documents))
	for _, doc := range c.Documents {
		types[doc.Type] = struct{}{}
	}
	return types
}

// SatisfyingDocumentTypes は要件を充足する状態にある書類種別の集合を返します。
func (c *Candidate) SatisfyingDocumentTypes() map[string]struct{} {
	types := make(map[string]struct{}, len(c.Documents))
	for _, doc := range c.Documents {
		if doc.SatisfiesRequirement() {
			types[doc.Type] = struct{}{}
		}
	}
	return types
}

// CompletedDocumentTypes は検証完了済みの書類種別の集合を返します。
func (c *Candidate) CompletedDocumentTypes() map[string]struct{} {
	types := make(map[string]struct{}, len(c.Documents))
	for _, doc := range c.Documents {
		if doc.Status == DocumentCompleted {
			types[doc.Type] = struct{}{}
		}
	}
	return types
}

// IncompleteDocumentCount は検証完了に至っていない書類の数を返します。
func (c *Candidate) IncompleteDocumentCount() int {
	count := 0
	for _, doc := range c.Documents {
		if doc.Status != DocumentCompleted {
			count++
		}
	}
	return count
}
