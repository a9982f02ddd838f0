package application

import "time"

// Status は応募の進行状態です。前進のみ許され、後退する遷移はありません。
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusQualified Status = "qualified"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// statusRank は前進チェーン上の順序です。終端状態は含みません。
var statusRank = map[Status]int{
	StatusSubmitted: 0,
	StatusQualified: 1,
	StatusInterview: 2,
	StatusOffer:     3,
	StatusAccepted:  4,
}

// IsTerminal は以後の遷移が定義されない状態かを判定します。
func (s Status) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// CanTransitionTo はチェーン上の前進、または非終端状態からの拒否のみを
// 許可します。Withdrawn への遷移は Withdraw 操作経由に限定されるため
// ここでは常に不許可です。
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusRejected {
		return true
	}
	current, ok := statusRank[s]
	if !ok {
		return false
	}
	target, ok := statusRank[next]
	if !ok {
		return false
	}
	return target > current
}

// DocumentState は提出時点での書類充足状態です。
type DocumentState string

const (
	DocumentsComplete DocumentState = "complete"
	DocumentsMissing  DocumentState = "missing"
)

// Application は候補者の求人への応募です。MissingDocuments は提出時点の
// 不変スナップショットで、以後の書類アップロードでは変化しません。
type Application struct {
	ID                     string
	CandidateID            string
	JobID                  string
	Status                 Status
	DocumentState          DocumentState
	MissingDocuments       []string
	MatchScoreAtSubmission int
	SubmittedAt            time.Time
	LastUpdated            *time.Time
}
