package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zebiplay/bingo-backend/models"
)

func newWithdrawalService(t *testing.T) (*WithdrawalService, *gameEnv) {
	t.Helper()
	env := newGameEnv(t)
	return NewWithdrawalService(testConfig(), env.db, env.wallet), env
}

func TestWithdrawalBelowMinimum(t *testing.T) {
	svc, env := newWithdrawalService(t)
	createUser(t, env.db, 1, 500)

	_, err := svc.Request(context.Background(), 1, 99, "telebirr")
	assert.ErrorIs(t, err, ErrBelowMinimum)
	assert.Equal(t, int64(500), userBalance(t, env.db, 1))
}

func TestWithdrawalInsufficientFunds(t *testing.T) {
	svc, env := newWithdrawalService(t)
	createUser(t, env.db, 1, 150)

	_, err := svc.Request(context.Background(), 1, 200, "telebirr")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(150), userBalance(t, env.db, 1))

	var count int64
	env.db.Model(&models.Withdrawal{}).Count(&count)
	assert.Zero(t, count, "failed request leaves no pending row")
}

func TestWithdrawalRequestReservesFunds(t *testing.T) {
	svc, env := newWithdrawalService(t)
	ctx := context.Background()
	createUser(t, env.db, 1, 500)

	w, err := svc.Request(ctx, 1, 200, "cbe")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(w.ID, "WD1"))
	assert.Equal(t, models.WithdrawalPending, w.Status)
	assert.Equal(t, int64(300), userBalance(t, env.db, 1), "funds reserved on request")
}

func TestWithdrawalRejectRestoresBalance(t *testing.T) {
	svc, env := newWithdrawalService(t)
	ctx := context.Background()
	createUser(t, env.db, 1, 500)

	w, err := svc.Request(ctx, 1, 200, "telebirr")
	require.NoError(t, err)
	require.Equal(t, int64(300), userBalance(t, env.db, 1))

	decided, err := svc.Decide(ctx, w.ID, false, "account mismatch")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalRejected, decided.Status)
	assert.Equal(t, "account mismatch", decided.AdminNote)
	assert.Equal(t, int64(500), userBalance(t, env.db, 1), "rejection refunds the hold")
}

func TestWithdrawalApproveKeepsDebit(t *testing.T) {
	svc, env := newWithdrawalService(t)
	ctx := context.Background()
	createUser(t, env.db, 1, 500)

	w, err := svc.Request(ctx, 1, 200, "telebirr")
	require.NoError(t, err)

	decided, err := svc.Decide(ctx, w.ID, true, "paid out")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalApproved, decided.Status)
	assert.Equal(t, int64(300), userBalance(t, env.db, 1), "approved funds leave the wallet for good")
}

func TestWithdrawalDecidedAtMostOnce(t *testing.T) {
	svc, env := newWithdrawalService(t)
	ctx := context.Background()
	createUser(t, env.db, 1, 500)

	w, err := svc.Request(ctx, 1, 200, "telebirr")
	require.NoError(t, err)

	_, err = svc.Decide(ctx, w.ID, false, "")
	require.NoError(t, err)

	_, err = svc.Decide(ctx, w.ID, true, "changed my mind")
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	assert.Equal(t, int64(500), userBalance(t, env.db, 1), "second decision must not move funds again")

	_, err = svc.Decide(ctx, "WD9XXXX", true, "")
	assert.ErrorIs(t, err, ErrWithdrawalNotFound)
}

func TestWithdrawalPendingList(t *testing.T) {
	svc, env := newWithdrawalService(t)
	ctx := context.Background()
	createUser(t, env.db, 1, 1000)

	first, err := svc.Request(ctx, 1, 100, "telebirr")
	require.NoError(t, err)
	second, err := svc.Request(ctx, 1, 150, "cbe")
	require.NoError(t, err)

	_, err = svc.Decide(ctx, first.ID, true, "")
	require.NoError(t, err)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}
