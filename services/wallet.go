package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zebiplay/bingo-backend/models"
	"github.com/zebiplay/bingo-backend/utils/logger"
)

// WalletService is the ledger: every balance movement goes through it and
// leaves a transaction row behind. Debits are conditional updates at the
// database (wallet >= amount), so concurrent operations against one account
// serialize there and the balance can never go negative.
type WalletService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db, log: logger.Named("wallet")}
}

// Debit removes amount from the user's wallet, failing with
// ErrInsufficientFunds when the balance does not cover it.
func (s *WalletService) Debit(ctx context.Context, userID, amount int64, kind models.TransactionType, ref string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.DebitTx(tx, userID, amount, kind, ref)
	})
}

// Credit adds amount to the user's wallet.
func (s *WalletService) Credit(ctx context.Context, userID, amount int64, kind models.TransactionType, ref string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.CreditTx(tx, userID, amount, kind, ref)
	})
}

// DebitTx is Debit running inside the caller's transaction, so joins and
// settlements can make the ledger movement part of their own unit of work.
func (s *WalletService) DebitTx(tx *gorm.DB, userID, amount int64, kind models.TransactionType, ref string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	res := tx.Model(&models.User{}).
		Where("id = ? AND wallet >= ?", userID, amount).
		Update("wallet", gorm.Expr("wallet - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var u models.User
		if err := tx.Select("id").First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		return ErrInsufficientFunds
	}

	return s.record(tx, userID, -amount, kind, ref)
}

// CreditTx is Credit running inside the caller's transaction.
func (s *WalletService) CreditTx(tx *gorm.DB, userID, amount int64, kind models.TransactionType, ref string) error {
	if amount < 0 {
		return ErrInvalidAmount
	}

	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("wallet", gorm.Expr("wallet + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return s.record(tx, userID, amount, kind, ref)
}

// Balance returns the user's current wallet balance.
func (s *WalletService) Balance(ctx context.Context, userID int64) (int64, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Select("wallet").First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return u.Wallet, nil
}

// History returns the user's ledger entries, newest first.
func (s *WalletService) History(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

func (s *WalletService) record(tx *gorm.DB, userID, amount int64, kind models.TransactionType, ref string) error {
	var u models.User
	if err := tx.Select("wallet").First(&u, userID).Error; err != nil {
		return err
	}

	entry := models.Transaction{
		ID:           uuid.NewString(),
		UserID:       userID,
		Type:         kind,
		Amount:       amount,
		BalanceAfter: u.Wallet,
		Reference:    ref,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	s.log.Debugf("ledger: user=%d type=%s amount=%d balance=%d", userID, kind, amount, u.Wallet)
	return nil
}
