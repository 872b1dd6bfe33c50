package bot

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken    string
	VKToken          string
	RedisURL         string
	RedisQuestionsDB int
	RedisSessionsDB  int
	PostgresDSN      string
	MatchThreshold   float64
	StoreTimeout     time.Duration
	AdminTelegramID  int64
	LeaderboardSize  int
}

func LoadConfig() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	c := &Config{}
	c.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	c.VKToken = os.Getenv("VK_BOT_TOKEN")
	c.RedisURL = getenvOr("REDIS_URL", "redis://localhost:6379")
	c.RedisQuestionsDB = parseIntOr(os.Getenv("REDIS_QUESTIONS_DB"), 0)
	c.RedisSessionsDB = parseIntOr(os.Getenv("REDIS_SESSIONS_DB"), 1)
	c.PostgresDSN = os.Getenv("POSTGRES_DSN")
	c.MatchThreshold = parseFloatOr(os.Getenv("ANSWER_RATIO_BORDER"), 0.9)
	c.StoreTimeout = parseDurationOr(os.Getenv("STORE_TIMEOUT"), 5*time.Second)
	c.AdminTelegramID = parseInt64Or(os.Getenv("ADMIN_TELEGRAM_ID"), 0)
	c.LeaderboardSize = parseIntOr(os.Getenv("LEADERBOARD_SIZE"), 10)
	return c
}

func getenvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntOr(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseInt64Or(s string, def int64) int64 {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	return def
}

func parseFloatOr(s string, def float64) float64 {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return def
}

func parseDurationOr(s string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(s); err == nil {
		return v
	}
	return def
}
