package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zebiplay/bingo-backend/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type registerRequest struct {
	UserID     int64  `json:"user_id" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Username   string `json:"username" binding:"required"`
	ReferredBy string `json:"referral_code"`
}

// Register creates a new user (invoked by the Telegram bot after onboarding).
func (ctl *UserController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": err.Error()})
		return
	}

	user, err := ctl.users.Register(c.Request.Context(), req.UserID, req.Phone, req.Username, req.ReferredBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   "success",
		"wallet":   user.Wallet,
		"username": user.Username,
		"role":     user.Role,
	})
}

// UserData returns the wallet view of a user, or registered:false for an
// unknown id so the bot can route to onboarding.
func (ctl *UserController) UserData(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid user_id is required"})
		return
	}

	user, err := ctl.users.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"registered": false})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registered":          true,
		"wallet":              user.Wallet,
		"username":            user.Username,
		"role":                user.Role,
		"invalid_bingo_count": user.InvalidBingoCount,
	})
}

// InviteData returns the user's referral link and progress toward the
// referral bonus.
func (ctl *UserController) InviteData(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid user_id is required"})
		return
	}

	data, err := ctl.users.Invite(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
