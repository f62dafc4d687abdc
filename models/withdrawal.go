package models

import "time"

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// Withdrawal is a cash-out request. The amount is debited from the wallet at
// request time; rejecting credits it back, approving leaves it debited (the
// payout itself happens outside the system).
type Withdrawal struct {
	ID          string           `gorm:"primaryKey" json:"withdraw_id"`
	UserID      int64            `gorm:"index" json:"user_id"`
	Amount      int64            `gorm:"not null" json:"amount"`
	Status      WithdrawalStatus `gorm:"default:pending;index" json:"status"`
	Method      string           `json:"method"`
	AdminNote   string           `json:"admin_note"`
	RequestTime time.Time        `gorm:"autoCreateTime" json:"request_time"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
