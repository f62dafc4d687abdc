package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zebiplay/bingo-backend/config"
	"github.com/zebiplay/bingo-backend/models"
	"github.com/zebiplay/bingo-backend/utils/logger"
)

// WithdrawalService runs the pending -> approved/rejected workflow. The
// amount is debited when the request is made, so a pending withdrawal is
// money already out of play; rejecting puts it back.
type WithdrawalService struct {
	cfg    *config.Config
	db     *gorm.DB
	wallet *WalletService
	log    *zap.SugaredLogger
}

func NewWithdrawalService(cfg *config.Config, db *gorm.DB, wallet *WalletService) *WithdrawalService {
	return &WithdrawalService{cfg: cfg, db: db, wallet: wallet, log: logger.Named("withdrawals")}
}

// Request reserves amount from the user's wallet and opens a pending request.
func (s *WithdrawalService) Request(ctx context.Context, userID, amount int64, method string) (*models.Withdrawal, error) {
	if amount < s.cfg.MinimumWithdrawal {
		return nil, ErrBelowMinimum
	}

	w := models.Withdrawal{
		UserID: userID,
		Amount: amount,
		Status: models.WithdrawalPending,
		Method: method,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w.ID = newWithdrawID(tx, userID)
		if err := s.wallet.DebitTx(tx, userID, amount, models.TxWithdrawHold, w.ID); err != nil {
			return err
		}
		return tx.Create(&w).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("withdrawal %s requested: user=%d amount=%d method=%s", w.ID, userID, amount, method)
	return &w, nil
}

// Decide settles a pending request exactly once. Approving leaves the debit
// in place (the cash-out happens outside); rejecting refunds it.
func (s *WithdrawalService) Decide(ctx context.Context, requestID string, approve bool, note string) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&w, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWithdrawalNotFound
			}
			return err
		}

		status := models.WithdrawalApproved
		if !approve {
			status = models.WithdrawalRejected
		}

		// Test-and-set on the pending status: a second decision finds zero
		// rows and fails.
		res := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", requestID, models.WithdrawalPending).
			Updates(map[string]interface{}{"status": status, "admin_note": note})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyDecided
		}

		if !approve {
			if err := s.wallet.CreditTx(tx, w.UserID, w.Amount, models.TxWithdrawRefund, w.ID); err != nil {
				return err
			}
		}

		w.Status = status
		w.AdminNote = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("withdrawal %s %s", w.ID, w.Status)
	return &w, nil
}

// newWithdrawID keeps the legacy WD<user><4 digits> format, retrying on the
// rare collision.
func newWithdrawID(tx *gorm.DB, userID int64) string {
	for {
		id := fmt.Sprintf("WD%d%04d", userID, rand.Intn(9000)+1000)
		var count int64
		tx.Model(&models.Withdrawal{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return id
		}
	}
}

// Pending lists undecided requests, oldest first, for the admin surface.
func (s *WithdrawalService) Pending(ctx context.Context) ([]models.Withdrawal, error) {
	var out []models.Withdrawal
	err := s.db.WithContext(ctx).
		Where("status = ?", models.WithdrawalPending).
		Order("request_time").
		Find(&out).Error
	return out, err
}
