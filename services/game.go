package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/zebiplay/bingo-backend/config"
	"github.com/zebiplay/bingo-backend/models"
	"github.com/zebiplay/bingo-backend/utils/logger"
)

// GameService runs the whole session lifecycle: matchmaking into a waiting
// game, card issuance, the number draw, and settlement. Everything touching
// one game runs under that game's mutex; the bet debit / prize credit are
// part of the same database transaction as the session mutation.
type GameService struct {
	cfg    *config.Config
	db     *gorm.DB
	wallet *WalletService
	feed   *Feed
	games  *keyedMutex
	tiers  *keyedMutex
	log    *zap.SugaredLogger
}

func NewGameService(cfg *config.Config, db *gorm.DB, wallet *WalletService, feed *Feed) *GameService {
	return &GameService{
		cfg:    cfg,
		db:     db,
		wallet: wallet,
		feed:   feed,
		games:  newKeyedMutex(),
		tiers:  newKeyedMutex(),
		log:    logger.Named("game"),
	}
}

type JoinResult struct {
	GameID    string `json:"game_id"`
	BetAmount int64  `json:"bet_amount"`
}

type DrawResult struct {
	Number        int   `json:"number"`
	CalledNumbers []int `json:"called_numbers"`
	Remaining     int   `json:"remaining"`
}

type ClaimResult struct {
	Won    bool   `json:"won"`
	Prize  int64  `json:"prize,omitempty"`
	Kicked bool   `json:"kicked,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type GameSnapshot struct {
	GameID        string            `json:"game_id"`
	Status        models.GameStatus `json:"status"`
	BetAmount     int64             `json:"bet_amount"`
	Players       []int64           `json:"players"`
	NumbersCalled []int             `json:"numbers_called"`
	PrizeAmount   int64             `json:"prize_amount"`
	WinnerID      *int64            `json:"winner_id"`
	StartTime     *time.Time        `json:"start_time"`
	EndTime       *time.Time        `json:"end_time"`
	CardNumbers   []int             `json:"card_numbers"`
}

// JoinOrCreate admits the user to the oldest waiting game of the bet tier,
// creating one when none is open. The bet debit, the membership append and
// the card placeholder commit or roll back together.
func (s *GameService) JoinOrCreate(ctx context.Context, userID, bet int64) (*JoinResult, error) {
	if !s.cfg.ValidBet(bet) {
		return nil, ErrInvalidBet
	}

	unlockTier := s.tiers.Lock(fmt.Sprintf("tier:%d", bet))
	defer unlockTier()

	var candidate models.Game
	err := s.db.WithContext(ctx).
		Where("status = ? AND bet_amount = ?", models.GameWaiting, bet).
		Order("created_at, id").
		First(&candidate).Error
	joining := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The game lock must be held across the whole transaction, commit
	// included, so an accept cannot flip the game to started while this
	// admission is in flight.
	if joining {
		unlockGame := s.games.Lock(candidate.ID)
		defer unlockGame()
	}

	var gameID string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if joining {
			fresh, err := s.loadGame(tx, candidate.ID)
			if err != nil {
				return err
			}
			if fresh.HasPlayer(userID) {
				return ErrAlreadyJoined
			}
			if fresh.Status == models.GameWaiting {
				fresh.Players = append(fresh.Players, userID)
				res := tx.Model(fresh).
					Where("status = ?", models.GameWaiting).
					Update("players", fresh.Players)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					joining = false
				} else {
					game = *fresh
				}
			} else {
				// The candidate started between the lookup and taking its
				// lock. Seat the player in a fresh game instead.
				joining = false
			}
		}
		if !joining {
			game = models.Game{
				ID:        s.newGameID(tx),
				BetAmount: bet,
				Status:    models.GameWaiting,
				Players:   []int64{userID},
			}
			if err := tx.Create(&game).Error; err != nil {
				return err
			}
		}

		if err := s.wallet.DebitTx(tx, userID, bet, models.TxBet, game.ID); err != nil {
			return err
		}

		card := models.PlayerCard{GameID: game.ID, UserID: userID}
		if err := tx.Create(&card).Error; err != nil {
			return err
		}

		gameID = game.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("user %d joined game %s (bet=%d)", userID, gameID, bet)
	s.announce(gameID)
	return &JoinResult{GameID: gameID, BetAmount: bet}, nil
}

// ChooseSeed populates the player's card from the chosen seed. Allowed only
// while the game is waiting and before the card is accepted.
func (s *GameService) ChooseSeed(ctx context.Context, gameID string, userID int64, seed int) ([]int, error) {
	numbers, err := GenerateCard(seed)
	if err != nil {
		return nil, err
	}

	unlock := s.games.Lock(gameID)
	defer unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := s.loadGame(tx, gameID)
		if err != nil {
			return err
		}
		if !game.HasPlayer(userID) {
			return ErrNotInGame
		}
		if game.Status != models.GameWaiting {
			return ErrAlreadyStarted
		}

		card, err := s.loadCard(tx, gameID, userID)
		if err != nil {
			return err
		}
		if card.Accepted {
			return ErrCardLocked
		}

		return tx.Model(card).Update("numbers", datatypes.JSONSlice[int](numbers)).Error
	})
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// AcceptCard freezes the player's card. Once two players have accepted, the
// game transitions waiting -> started, the prize pool locks to
// bet x playerCount and draws may begin. Accepting again returns the same
// numbers; accepting after the start is rejected.
func (s *GameService) AcceptCard(ctx context.Context, gameID string, userID int64) ([]int, error) {
	unlock := s.games.Lock(gameID)
	defer unlock()

	var numbers []int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := s.loadGame(tx, gameID)
		if err != nil {
			return err
		}
		if !game.HasPlayer(userID) {
			return ErrNotInGame
		}
		if game.Status != models.GameWaiting {
			return ErrAlreadyStarted
		}

		card, err := s.loadCard(tx, gameID, userID)
		if err != nil {
			return err
		}
		if len(card.Numbers) != cardCells {
			return ErrCardNotFound
		}
		numbers = card.Numbers
		if card.Accepted {
			return nil
		}

		if err := tx.Model(card).Update("accepted", true).Error; err != nil {
			return err
		}

		var accepted int64
		if err := tx.Model(&models.PlayerCard{}).
			Where("game_id = ? AND accepted = ?", gameID, true).
			Count(&accepted).Error; err != nil {
			return err
		}
		if accepted < 2 {
			return nil
		}

		now := time.Now()
		return tx.Model(game).Updates(map[string]interface{}{
			"status":       models.GameStarted,
			"start_time":   &now,
			"prize_amount": game.BetAmount * int64(len(game.Players)),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.announce(gameID)
	return numbers, nil
}

// Status returns the caller's view of the game. Once the game has left the
// waiting state only admitted players may look at it.
func (s *GameService) Status(ctx context.Context, gameID string, userID int64) (*GameSnapshot, error) {
	db := s.db.WithContext(ctx)
	game, err := s.loadGame(db, gameID)
	if err != nil {
		return nil, err
	}
	if !game.HasPlayer(userID) && game.Status != models.GameWaiting {
		return nil, ErrNotInGame
	}

	snap := snapshotOf(game)
	var card models.PlayerCard
	if err := db.Where("game_id = ? AND user_id = ?", gameID, userID).First(&card).Error; err == nil {
		snap.CardNumbers = card.Numbers
	}
	return snap, nil
}

// DrawNext reveals one not-yet-called number for a started game. Draws for
// one game are serialized by its mutex, so no number repeats and none is
// lost; other games draw concurrently.
func (s *GameService) DrawNext(ctx context.Context, gameID string) (*DrawResult, error) {
	unlock := s.games.Lock(gameID)
	defer unlock()

	var result *DrawResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := s.loadGame(tx, gameID)
		if err != nil {
			return err
		}
		if game.Status != models.GameStarted {
			return ErrNotStarted
		}
		if len(game.NumbersCalled) >= maxNumber {
			return ErrExhausted
		}

		called := make(map[int]bool, len(game.NumbersCalled))
		for _, n := range game.NumbersCalled {
			called[n] = true
		}
		remaining := make([]int, 0, maxNumber-len(called))
		for n := 1; n <= maxNumber; n++ {
			if !called[n] {
				remaining = append(remaining, n)
			}
		}
		number := remaining[rand.Intn(len(remaining))]

		game.NumbersCalled = append(game.NumbersCalled, number)
		if err := tx.Model(game).Update("numbers_called", game.NumbersCalled).Error; err != nil {
			return err
		}

		result = &DrawResult{
			Number:        number,
			CalledNumbers: game.NumbersCalled,
			Remaining:     maxNumber - len(game.NumbersCalled),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.announce(gameID)
	return result, nil
}

// ClaimWin settles the game for the first valid claimant: winner set, prize
// credited and game finished in one transaction. An invalid claim removes
// the claimant from the game and bumps their invalid-claim counter; the game
// stays open and no funds move.
func (s *GameService) ClaimWin(ctx context.Context, gameID string, userID int64) (*ClaimResult, error) {
	unlock := s.games.Lock(gameID)
	defer unlock()

	var result *ClaimResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := s.loadGame(tx, gameID)
		if err != nil {
			return err
		}
		if game.WinnerID != nil || game.Status == models.GameFinished {
			return ErrAlreadyFinished
		}
		if game.Status != models.GameStarted {
			return ErrNotStarted
		}
		if !game.HasPlayer(userID) {
			return ErrNotInGame
		}

		card, err := s.loadCard(tx, gameID, userID)
		if err != nil {
			return err
		}
		if !card.Accepted || len(card.Numbers) != cardCells {
			return ErrCardNotFound
		}

		if !EvaluateWin(card.Numbers, game.NumbersCalled) {
			game.RemovePlayer(userID)
			if err := tx.Model(game).Update("players", game.Players).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("invalid_bingo_count", gorm.Expr("invalid_bingo_count + 1")).Error; err != nil {
				return err
			}
			result = &ClaimResult{Won: false, Kicked: true, Reason: "invalid bingo"}
			return nil
		}

		// floor(bet x players x (1 - houseCut)); the truncated remainder
		// stays with the house on top of the cut itself.
		prize := int64(float64(game.BetAmount*int64(len(game.Players))) * (1 - s.cfg.HouseCut))
		now := time.Now()

		res := tx.Model(&models.Game{}).
			Where("id = ? AND winner_id IS NULL AND status = ?", gameID, models.GameStarted).
			Updates(map[string]interface{}{
				"winner_id":    userID,
				"prize_amount": prize,
				"status":       models.GameFinished,
				"end_time":     &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyFinished
		}

		if err := s.wallet.CreditTx(tx, userID, prize, models.TxPrize, gameID); err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("score", gorm.Expr("score + 1")).Error; err != nil {
			return err
		}

		result = &ClaimResult{Won: true, Prize: prize}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Won {
		s.log.Infof("game %s won by user %d, prize=%d", gameID, userID, result.Prize)
	} else {
		s.log.Warnf("game %s: invalid bingo by user %d, kicked", gameID, userID)
	}
	s.announce(gameID)
	return result, nil
}

func (s *GameService) loadGame(tx *gorm.DB, gameID string) (*models.Game, error) {
	var game models.Game
	if err := tx.First(&game, "id = ?", gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (s *GameService) loadCard(tx *gorm.DB, gameID string, userID int64) (*models.PlayerCard, error) {
	var card models.PlayerCard
	err := tx.Where("game_id = ? AND user_id = ?", gameID, userID).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (s *GameService) newGameID(tx *gorm.DB) string {
	for {
		id := fmt.Sprintf("G%05d", rand.Intn(90000)+10000)
		var count int64
		tx.Model(&models.Game{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return id
		}
	}
}

// announce pushes a fresh snapshot to the game's feed subscribers.
func (s *GameService) announce(gameID string) {
	if s.feed == nil {
		return
	}
	game, err := s.loadGame(s.db, gameID)
	if err != nil {
		s.log.Errorf("announce: %v", err)
		return
	}
	s.feed.Broadcast(gameID, snapshotOf(game))
}

func snapshotOf(game *models.Game) *GameSnapshot {
	return &GameSnapshot{
		GameID:        game.ID,
		Status:        game.Status,
		BetAmount:     game.BetAmount,
		Players:       append([]int64(nil), game.Players...),
		NumbersCalled: append([]int(nil), game.NumbersCalled...),
		PrizeAmount:   game.PrizeAmount,
		WinnerID:      game.WinnerID,
		StartTime:     game.StartTime,
		EndTime:       game.EndTime,
	}
}
