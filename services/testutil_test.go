package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zebiplay/bingo-backend/config"
	"github.com/zebiplay/bingo-backend/models"
)

// newTestDB opens a private in-memory database. The pool is capped at one
// connection so every goroutine sees the same sqlite instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		BotUsername:       "test_bot",
		BetOptions:        []int64{10, 50, 100, 200},
		HouseCut:          0.02,
		InitialWallet:     10,
		MinimumWithdrawal: 100,
		MinimumDeposit:    50,
	}
}

func createUser(t *testing.T, db *gorm.DB, id int64, wallet int64) {
	t.Helper()
	user := models.User{
		ID:           id,
		Username:     fmt.Sprintf("user%d", id),
		Wallet:       wallet,
		Role:         models.RoleUser,
		ReferralCode: referralCode(id),
	}
	require.NoError(t, db.Create(&user).Error)
}

func userBalance(t *testing.T, db *gorm.DB, id int64) int64 {
	t.Helper()
	var u models.User
	require.NoError(t, db.First(&u, id).Error)
	return u.Wallet
}
