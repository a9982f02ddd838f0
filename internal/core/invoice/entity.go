package invoice

import "time"

// Status は請求書の支払い状態です。支払い済みは終端です。
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Invoice は請求書です。TimecardID はトレーサビリティのための任意リンクで、
// Amount はタイムカード側の時間×単価とは独立に管理されます (作成後に
// 手動調整で乖離しうる請求額を表すため、意図的に再計算しません)。
type Invoice struct {
	ID         string
	Status     Status
	Amount     float64
	TimecardID *string
	IssuedAt   time.Time
	PaidAt     *time.Time
}
