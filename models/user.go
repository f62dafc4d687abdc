package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a registered player. Wallet holds whole currency units (ETB);
// it is mutated only through the wallet service and never goes negative.
type User struct {
	ID                int64     `gorm:"primaryKey" json:"user_id"`
	Phone             string    `json:"phone"`
	Username          string    `gorm:"uniqueIndex" json:"username"`
	Name              string    `json:"name"`
	Wallet            int64     `gorm:"not null;default:0" json:"wallet"`
	Score             int       `gorm:"not null;default:0" json:"score"`
	ReferralCode      string    `gorm:"uniqueIndex" json:"referral_code"`
	ReferredBy        string    `json:"referred_by"`
	Role              Role      `gorm:"default:user" json:"role"`
	InvalidBingoCount int       `gorm:"not null;default:0" json:"invalid_bingo_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
