package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zebiplay/bingo-backend/services"
)

type LeaderboardController struct {
	board *services.LeaderboardService
}

func NewLeaderboardController(board *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{board: board}
}

// Top returns the ten best players.
func (ctl *LeaderboardController) Top(c *gin.Context) {
	leaders, err := ctl.board.Top(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaders": leaders})
}
