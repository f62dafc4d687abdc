package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/zebiplay/bingo-backend/config"
	"github.com/zebiplay/bingo-backend/controllers"
	"github.com/zebiplay/bingo-backend/routes"
	"github.com/zebiplay/bingo-backend/services"
)

func main() {
	cfg := config.Load()

	db := config.SetupDatabase(cfg)
	rdb := config.SetupRedis(cfg)

	// Services
	feed := services.NewFeed()
	wallet := services.NewWalletService(db)
	games := services.NewGameService(cfg, db, wallet, feed)
	users := services.NewUserService(cfg, db)
	withdrawals := services.NewWithdrawalService(cfg, db, wallet)
	leaderboard := services.NewLeaderboardService(db, rdb)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, cfg.JWTSecret, routes.Controllers{
		Users:       controllers.NewUserController(users),
		Games:       controllers.NewGameController(games, feed),
		Withdrawals: controllers.NewWithdrawalController(withdrawals),
		Leaderboard: controllers.NewLeaderboardController(leaderboard),
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	log.Printf("🚀 Bingo backend starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
