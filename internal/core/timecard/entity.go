package timecard

import "time"

// Status はタイムカードの承認状態です。承認・却下は終端で、却下後の
// 再提出経路はありません。
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// IsTerminal は以後の遷移が定義されない状態かを判定します。
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Timecard は配属先での勤務時間の申告です。TotalAmount は常に
// (通常時間+残業時間)×単価 から再計算され、入力と独立に保存されることは
// ありません。
type Timecard struct {
	ID            string
	ApplicationID string
	Status        Status
	RegularHours  float64
	OvertimeHours float64
	BillRate      float64
	TotalAmount   float64
	SubmittedAt   time.Time
	UpdatedAt     time.Time
}

// Recalculate は時間と単価から請求額を再導出します。承認前に時間または
// 単価が変わるたびに呼ばれます。
func (t *Timecard) Recalculate() {
	t.TotalAmount = (t.RegularHours + t.OvertimeHours) * t.BillRate
}
