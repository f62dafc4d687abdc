package models

import "time"

type TransactionType string

const (
	TxBet            TransactionType = "bet"
	TxPrize          TransactionType = "prize"
	TxWithdrawHold   TransactionType = "withdraw_hold"
	TxWithdrawRefund TransactionType = "withdraw_refund"
	TxDeposit        TransactionType = "deposit"
)

// Transaction is one ledger entry. Amount is signed (debits negative) and
// BalanceAfter is the wallet balance the movement left behind.
type Transaction struct {
	ID           string          `gorm:"primaryKey" json:"tx_id"`
	UserID       int64           `gorm:"index" json:"user_id"`
	Type         TransactionType `json:"type"`
	Amount       int64           `json:"amount"`
	BalanceAfter int64           `json:"balance_after"`
	Reference    string          `json:"reference"`
	CreatedAt    time.Time       `json:"created_at"`
}
