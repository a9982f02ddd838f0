package application

import "context"

// Repository は応募永続化の抽象です。FindByCandidateAndJob は取り下げ済みを
// 含む全応募を対象にします (候補者と求人の組につき応募は常に最大 1 件)。
type Repository interface {
	Create(ctx context.Context, app *Application) (*Application, error)
	Update(ctx context.Context, app *Application) (*Application, error)
	FindByID(ctx context.Context, id string) (*Application, error)
	FindByCandidateAndJob(ctx context.Context, candidateID, jobID string) (*Application, error)
	List(ctx context.Context, filter ListFilter) ([]*Application, string, error)
}

// ListFilter は一覧取得用フィルタです。IncludeWithdrawn が偽のとき
// 取り下げ済み応募は既定で除外されます (監査用に保持はされます)。
type ListFilter struct {
	CandidateID      *string
	JobID            *string
	Status           *Status
	IncludeWithdrawn bool
	Limit            int
	Offset           int
}
