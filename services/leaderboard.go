package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zebiplay/bingo-backend/models"
	"github.com/zebiplay/bingo-backend/utils/logger"
)

const (
	leaderboardKey = "leaderboard:top"
	leaderboardTTL = 30 * time.Second
)

type LeaderboardEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	Wallet   int64  `json:"wallet"`
}

// LeaderboardService serves the top-10 board, cached in redis for a short
// TTL since it is read far more often than scores change.
type LeaderboardService struct {
	db  *gorm.DB
	rdb *redis.Client
	log *zap.SugaredLogger
}

func NewLeaderboardService(db *gorm.DB, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{db: db, rdb: rdb, log: logger.Named("leaderboard")}
}

// Top returns the ten best non-admin players by score, wallet breaking ties.
func (s *LeaderboardService) Top(ctx context.Context) ([]LeaderboardEntry, error) {
	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, leaderboardKey).Result()
		if err == nil {
			var cached []LeaderboardEntry
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.log.Warnf("leaderboard cache read: %v", err)
		}
	}

	var users []models.User
	err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleUser).
		Order("score DESC, wallet DESC").
		Limit(10).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		name := u.Username
		if name == "" {
			name = "Anonymous"
		}
		entries = append(entries, LeaderboardEntry{Username: name, Score: u.Score, Wallet: u.Wallet})
	}

	if s.rdb != nil {
		if b, err := json.Marshal(entries); err == nil {
			if err := s.rdb.Set(ctx, leaderboardKey, b, leaderboardTTL).Err(); err != nil {
				s.log.Warnf("leaderboard cache write: %v", err)
			}
		}
	}
	return entries, nil
}
