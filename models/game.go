package models

import (
	"time"

	"gorm.io/datatypes"
)

type GameStatus string

const (
	GameWaiting  GameStatus = "waiting"
	GameStarted  GameStatus = "started"
	GameFinished GameStatus = "finished"
)

// Game is one bingo round for a fixed bet tier. Players keeps join order and
// never holds duplicates; NumbersCalled keeps call order, each value 1-100
// appearing at most once. WinnerID is set exactly once, together with the
// transition to finished.
type Game struct {
	ID            string                     `gorm:"primaryKey" json:"game_id"`
	BetAmount     int64                      `gorm:"not null;index:idx_games_status_bet" json:"bet_amount"`
	Status        GameStatus                 `gorm:"default:waiting;index:idx_games_status_bet" json:"status"`
	Players       datatypes.JSONSlice[int64] `json:"players"`
	NumbersCalled datatypes.JSONSlice[int]   `json:"numbers_called"`
	WinnerID      *int64                     `json:"winner_id"`
	PrizeAmount   int64                      `gorm:"not null;default:0" json:"prize_amount"`
	StartTime     *time.Time                 `json:"start_time"`
	EndTime       *time.Time                 `json:"end_time"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// HasPlayer reports whether uid is currently admitted to the game.
func (g *Game) HasPlayer(uid int64) bool {
	for _, p := range g.Players {
		if p == uid {
			return true
		}
	}
	return false
}

// RemovePlayer drops uid from the player list, preserving join order.
func (g *Game) RemovePlayer(uid int64) {
	kept := g.Players[:0]
	for _, p := range g.Players {
		if p != uid {
			kept = append(kept, p)
		}
	}
	g.Players = kept
}
