package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zebiplay/bingo-backend/config"
	"github.com/zebiplay/bingo-backend/models"
	"github.com/zebiplay/bingo-backend/utils/logger"
)

// UserService handles registration and profile reads. Identity is the
// Telegram user id supplied by the bot layer; there are no passwords.
type UserService struct {
	cfg *config.Config
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewUserService(cfg *config.Config, db *gorm.DB) *UserService {
	return &UserService{cfg: cfg, db: db, log: logger.Named("users")}
}

// Register creates the user with the signup bonus wallet. Registering an
// existing id fails with ErrUserExists.
func (s *UserService) Register(ctx context.Context, userID int64, phone, username, referredBy string) (*models.User, error) {
	user := models.User{
		ID:           userID,
		Phone:        phone,
		Username:     username,
		Wallet:       s.cfg.InitialWallet,
		ReferralCode: referralCode(userID),
		ReferredBy:   referredBy,
		Role:         models.RoleUser,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.First(&existing, userID).Error
		if err == nil {
			return ErrUserExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("registered user %d (%s)", userID, username)
	return &user, nil
}

// InviteData is the referral view served to the bot's invite screen.
type InviteData struct {
	ReferralCode   string `json:"referral_code"`
	ReferralLink   string `json:"referral_link"`
	ReferralCount  int64  `json:"referral_count"`
	BonusThreshold int64  `json:"bonus_threshold"`
	BonusAmount    int64  `json:"bonus_amount"`
}

const (
	referralBonusThreshold = 20
	referralBonusAmount    = 10
)

// Invite returns the user's referral link and how many signups carried their
// code.
func (s *UserService) Invite(ctx context.Context, userID int64) (*InviteData, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("referred_by = ?", user.ReferralCode).
		Count(&count).Error; err != nil {
		return nil, err
	}

	return &InviteData{
		ReferralCode:   user.ReferralCode,
		ReferralLink:   fmt.Sprintf("https://t.me/%s?start=ref_%d", s.cfg.BotUsername, userID),
		ReferralCount:  count,
		BonusThreshold: referralBonusThreshold,
		BonusAmount:    referralBonusAmount,
	}, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// referralCode derives the 8-char code from the user id (legacy format kept
// so existing codes stay valid).
func referralCode(userID int64) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d", userID)))
	return hex.EncodeToString(sum[:])[:8]
}
