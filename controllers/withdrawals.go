package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zebiplay/bingo-backend/services"
)

type WithdrawalController struct {
	withdrawals *services.WithdrawalService
}

func NewWithdrawalController(withdrawals *services.WithdrawalService) *WithdrawalController {
	return &WithdrawalController{withdrawals: withdrawals}
}

type withdrawalRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
	Method string `json:"method"`
}

// Request opens a pending withdrawal, reserving the funds immediately.
func (ctl *WithdrawalController) Request(c *gin.Context) {
	var req withdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": err.Error()})
		return
	}
	if req.Method == "" {
		req.Method = "telebirr"
	}

	w, err := ctl.withdrawals.Request(c.Request.Context(), req.UserID, req.Amount, req.Method)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":      "requested",
		"withdraw_id": w.ID,
		"amount":      w.Amount,
	})
}

// Pending lists undecided requests for the admin surface.
func (ctl *WithdrawalController) Pending(c *gin.Context) {
	list, err := ctl.withdrawals.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"withdrawals": list})
}

type decideRequest struct {
	Action    string `json:"action" binding:"required,oneof=approve reject"`
	AdminNote string `json:"admin_note"`
}

// Decide approves or rejects a pending withdrawal exactly once.
func (ctl *WithdrawalController) Decide(c *gin.Context) {
	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": err.Error()})
		return
	}

	w, err := ctl.withdrawals.Decide(c.Request.Context(), c.Param("id"), req.Action == "approve", req.AdminNote)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": w.Status})
}
