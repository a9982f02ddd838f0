package timecard

import "context"

// Repository はタイムカード永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, tc *Timecard) (*Timecard, error)
	Update(ctx context.Context, tc *Timecard) (*Timecard, error)
	FindByID(ctx context.Context, id string) (*Timecard, error)
	ListByApplication(ctx context.Context, applicationID string) ([]*Timecard, error)
}
