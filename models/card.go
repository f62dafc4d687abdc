package models

import (
	"time"

	"gorm.io/datatypes"
)

// PlayerCard is the 5x5 card owned by one (game, user) pair. Numbers is empty
// until the player picks a seed; once Accepted is set the numbers are frozen.
type PlayerCard struct {
	ID        uint                     `gorm:"primaryKey" json:"card_id"`
	GameID    string                   `gorm:"index:idx_cards_game_user,unique" json:"game_id"`
	UserID    int64                    `gorm:"index:idx_cards_game_user,unique" json:"user_id"`
	Numbers   datatypes.JSONSlice[int] `json:"numbers"`
	Accepted  bool                     `gorm:"not null;default:false" json:"accepted"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}
