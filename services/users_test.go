package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zebiplay/bingo-backend/models"
)

func TestRegisterGrantsInitialWallet(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(testConfig(), db)
	ctx := context.Background()

	user, err := svc.Register(ctx, 1001, "+251900000001", "abebe", "")
	require.NoError(t, err)
	assert.Equal(t, int64(10), user.Wallet)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Len(t, user.ReferralCode, 8)

	// Codes are a pure function of the id.
	again := referralCode(1001)
	assert.Equal(t, user.ReferralCode, again)
}

func TestRegisterDuplicateFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(testConfig(), db)
	ctx := context.Background()

	_, err := svc.Register(ctx, 1001, "+251900000001", "abebe", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, 1001, "+251900000002", "kebede", "")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestInviteDataCountsReferrals(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(testConfig(), db)
	ctx := context.Background()

	referrer, err := svc.Register(ctx, 1001, "+251900000001", "abebe", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, 1002, "+251900000002", "kebede", referrer.ReferralCode)
	require.NoError(t, err)
	_, err = svc.Register(ctx, 1003, "+251900000003", "almaz", referrer.ReferralCode)
	require.NoError(t, err)
	_, err = svc.Register(ctx, 1004, "+251900000004", "hirut", "")
	require.NoError(t, err)

	data, err := svc.Invite(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, referrer.ReferralCode, data.ReferralCode)
	assert.Equal(t, "https://t.me/test_bot?start=ref_1001", data.ReferralLink)
	assert.Equal(t, int64(2), data.ReferralCount)
	assert.Equal(t, int64(20), data.BonusThreshold)
	assert.Equal(t, int64(10), data.BonusAmount)

	// Signups without a code count for nobody.
	other, err := svc.Invite(ctx, 1004)
	require.NoError(t, err)
	assert.Zero(t, other.ReferralCount)

	_, err = svc.Invite(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(testConfig(), db)
	ctx := context.Background()
	createUser(t, db, 7, 42)

	user, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.Wallet)

	_, err = svc.Get(ctx, 8)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLeaderboardTop(t *testing.T) {
	db := newTestDB(t)
	board := NewLeaderboardService(db, nil)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{ID: 1, Username: "first", Wallet: 50, Score: 5, Role: models.RoleUser, ReferralCode: "r1"}).Error)
	require.NoError(t, db.Create(&models.User{ID: 2, Username: "second", Wallet: 900, Score: 3, Role: models.RoleUser, ReferralCode: "r2"}).Error)
	require.NoError(t, db.Create(&models.User{ID: 3, Username: "boss", Wallet: 9999, Score: 99, Role: models.RoleAdmin, ReferralCode: "r3"}).Error)

	leaders, err := board.Top(ctx)
	require.NoError(t, err)
	require.Len(t, leaders, 2, "admins stay off the board")
	assert.Equal(t, "first", leaders[0].Username)
	assert.Equal(t, "second", leaders[1].Username)
}
