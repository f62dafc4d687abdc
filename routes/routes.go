package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zebiplay/bingo-backend/controllers"
	"github.com/zebiplay/bingo-backend/middleware"
)

type Controllers struct {
	Users       *controllers.UserController
	Games       *controllers.GameController
	Withdrawals *controllers.WithdrawalController
	Leaderboard *controllers.LeaderboardController
}

// SetupRoutes wires the REST and WebSocket surface.
func SetupRoutes(r *gin.Engine, db *gorm.DB, jwtSecret string, ctl Controllers) {
	api := r.Group("/api")

	// ----------------------
	// User routes
	// ----------------------
	api.POST("/register", ctl.Users.Register)
	api.GET("/user_data", ctl.Users.UserData)
	api.GET("/invite_data", ctl.Users.InviteData)

	// ----------------------
	// Game routes
	// ----------------------
	api.POST("/games", ctl.Games.Join)
	api.POST("/games/:id/seed", ctl.Games.ChooseSeed)
	api.POST("/games/:id/accept", ctl.Games.AcceptCard)
	api.GET("/games/:id/status", ctl.Games.Status)
	api.POST("/games/:id/call", ctl.Games.CallNumber)
	api.POST("/games/:id/bingo", ctl.Games.Bingo)

	// ----------------------
	// Wallet routes
	// ----------------------
	api.POST("/withdrawals", ctl.Withdrawals.Request)
	api.GET("/leaderboard", ctl.Leaderboard.Top)

	// ----------------------
	// Admin routes
	// ----------------------
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(jwtSecret), middleware.AdminOnly(db))
	admin.GET("/withdrawals", ctl.Withdrawals.Pending)
	admin.POST("/withdrawals/:id", ctl.Withdrawals.Decide)

	// ----------------------
	// Live game feed
	// ----------------------
	r.GET("/ws/games/:id", ctl.Games.Watch)
}
