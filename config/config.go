package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, loaded once at startup.
type Config struct {
	Port              string
	DatabaseURL       string
	RedisAddr         string
	RedisPass         string
	RedisDB           int
	JWTSecret         string
	BotUsername       string // Telegram bot serving the referral deep link
	AllowedOrigins    []string
	BetOptions        []int64 // valid bet tiers
	HouseCut          float64 // fraction of the pot kept at settlement
	InitialWallet     int64   // signup bonus
	MinimumWithdrawal int64
	MinimumDeposit    int64
}

// Load reads .env (if present) and the environment into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "4000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASS"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		JWTSecret:         getEnv("JWT_SECRET", "change-me"),
		BotUsername:       getEnv("BOT_USERNAME", "zebiplay_bingo_bot"),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		BetOptions:        []int64{10, 50, 100, 200},
		HouseCut:          getEnvFloat("HOUSE_CUT", 0.02),
		InitialWallet:     int64(getEnvInt("INITIAL_WALLET", 10)),
		MinimumWithdrawal: int64(getEnvInt("MINIMUM_WITHDRAWAL", 100)),
		MinimumDeposit:    int64(getEnvInt("MINIMUM_DEPOSIT", 50)),
	}

	if raw := os.Getenv("BET_OPTIONS"); raw != "" {
		var opts []int64
		for _, s := range strings.Split(raw, ",") {
			v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				log.Fatalf("[FATAL] invalid BET_OPTIONS entry %q", s)
			}
			opts = append(opts, v)
		}
		cfg.BetOptions = opts
	}

	return cfg
}

// ValidBet reports whether amount is one of the configured bet tiers.
func (c *Config) ValidBet(amount int64) bool {
	for _, b := range c.BetOptions {
		if b == amount {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
