package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/zebiplay/bingo-backend/services"
	"github.com/zebiplay/bingo-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict this in production to the web-app origin
		return true
	},
}

type GameController struct {
	games *services.GameService
	feed  *services.Feed
}

func NewGameController(games *services.GameService, feed *services.Feed) *GameController {
	return &GameController{games: games, feed: feed}
}

type joinRequest struct {
	UserID    int64 `json:"user_id" binding:"required"`
	BetAmount int64 `json:"bet_amount" binding:"required"`
}

// Join puts the user into a waiting game of the requested tier.
func (ctl *GameController) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": err.Error()})
		return
	}

	res, err := ctl.games.JoinOrCreate(c.Request.Context(), req.UserID, req.BetAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "joined",
		"game_id":    res.GameID,
		"bet_amount": res.BetAmount,
	})
}

type seedRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	Seed   int   `json:"seed" binding:"required"`
}

// ChooseSeed generates the caller's card numbers from their chosen seed.
func (ctl *GameController) ChooseSeed(c *gin.Context) {
	var req seedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": err.Error()})
		return
	}

	numbers, err := ctl.games.ChooseSeed(c.Request.Context(), c.Param("id"), req.UserID, req.Seed)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "card_numbers": numbers})
}

type acceptRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// AcceptCard freezes the caller's card; the game starts once two cards are in.
func (ctl *GameController) AcceptCard(c *gin.Context) {
	var req acceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": err.Error()})
		return
	}

	numbers, err := ctl.games.AcceptCard(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "accepted", "card_numbers": numbers})
}

// Status returns the caller's view of the game.
func (ctl *GameController) Status(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid user_id is required"})
		return
	}

	snap, err := ctl.games.Status(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// CallNumber draws the next number for a started game.
func (ctl *GameController) CallNumber(c *gin.Context) {
	res, err := ctl.games.DrawNext(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

type bingoRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// Bingo settles a win claim: pays the first valid claimant, kicks a false one.
func (ctl *GameController) Bingo(c *gin.Context) {
	var req bingoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": err.Error()})
		return
	}

	res, err := ctl.games.ClaimWin(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	if res.Won {
		c.JSON(http.StatusOK, gin.H{"status": "success", "won": true, "prize": res.Prize})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "failed", "won": false, "kicked": res.Kicked, "reason": res.Reason})
}

// Watch upgrades to a WebSocket and streams game snapshots.
func (ctl *GameController) Watch(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid user_id is required"})
		return
	}
	gameID := c.Param("id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("ws upgrade: %v", err)
		return
	}

	ctl.feed.Subscribe(services.NewFeedClient(ctl.feed, gameID, userID, conn))
}
