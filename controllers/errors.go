package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zebiplay/bingo-backend/services"
	"github.com/zebiplay/bingo-backend/utils/logger"
)

// respondError maps service errors onto HTTP status codes. Anything outside
// the known taxonomy is a storage error: logged and returned as a 500 the
// caller may retry.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidBet),
		errors.Is(err, services.ErrInvalidSeed),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrBelowMinimum),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrAlreadyJoined),
		errors.Is(err, services.ErrAlreadyStarted),
		errors.Is(err, services.ErrNotStarted),
		errors.Is(err, services.ErrAlreadyFinished),
		errors.Is(err, services.ErrAlreadyDecided),
		errors.Is(err, services.ErrCardLocked),
		errors.Is(err, services.ErrExhausted):
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": err.Error()})
	case errors.Is(err, services.ErrNotInGame),
		errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"status": "failed", "reason": err.Error()})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, services.ErrCardNotFound),
		errors.Is(err, services.ErrWithdrawalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "failed", "reason": err.Error()})
	case errors.Is(err, services.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"status": "failed", "reason": err.Error()})
	default:
		logger.Errorf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "failed", "reason": "Database error"})
	}
}
