package bot

import (
	"testing"
	"time"
)

func TestLoadConfigWithEnvVars(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	t.Setenv("VK_BOT_TOKEN", "vk-token")
	t.Setenv("REDIS_URL", "redis://:secret@redis.local:6380")
	t.Setenv("REDIS_QUESTIONS_DB", "3")
	t.Setenv("REDIS_SESSIONS_DB", "4")
	t.Setenv("POSTGRES_DSN", "postgres://quiz")
	t.Setenv("ANSWER_RATIO_BORDER", "0.75")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("ADMIN_TELEGRAM_ID", "12345")
	t.Setenv("LEADERBOARD_SIZE", "5")

	cfg := LoadConfig()

	if cfg.TelegramToken != "tg-token" {
		t.Fatalf("TelegramToken = %q", cfg.TelegramToken)
	}
	if cfg.VKToken != "vk-token" {
		t.Fatalf("VKToken = %q", cfg.VKToken)
	}
	if cfg.RedisURL != "redis://:secret@redis.local:6380" {
		t.Fatalf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.RedisQuestionsDB != 3 || cfg.RedisSessionsDB != 4 {
		t.Fatalf("redis DBs = %d/%d", cfg.RedisQuestionsDB, cfg.RedisSessionsDB)
	}
	if cfg.PostgresDSN != "postgres://quiz" {
		t.Fatalf("PostgresDSN = %q", cfg.PostgresDSN)
	}
	if cfg.MatchThreshold != 0.75 {
		t.Fatalf("MatchThreshold = %v", cfg.MatchThreshold)
	}
	if cfg.StoreTimeout != 2*time.Second {
		t.Fatalf("StoreTimeout = %v", cfg.StoreTimeout)
	}
	if cfg.AdminTelegramID != 12345 {
		t.Fatalf("AdminTelegramID = %d", cfg.AdminTelegramID)
	}
	if cfg.LeaderboardSize != 5 {
		t.Fatalf("LeaderboardSize = %d", cfg.LeaderboardSize)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"TELEGRAM_BOT_TOKEN", "VK_BOT_TOKEN", "REDIS_URL", "REDIS_QUESTIONS_DB",
		"REDIS_SESSIONS_DB", "POSTGRES_DSN", "ANSWER_RATIO_BORDER",
		"STORE_TIMEOUT", "ADMIN_TELEGRAM_ID", "LEADERBOARD_SIZE",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.RedisURL != "redis://localhost:6379" {
		t.Fatalf("RedisURL default = %q", cfg.RedisURL)
	}
	if cfg.RedisQuestionsDB != 0 || cfg.RedisSessionsDB != 1 {
		t.Fatalf("redis DB defaults = %d/%d", cfg.RedisQuestionsDB, cfg.RedisSessionsDB)
	}
	if cfg.MatchThreshold != 0.9 {
		t.Fatalf("MatchThreshold default = %v", cfg.MatchThreshold)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Fatalf("StoreTimeout default = %v", cfg.StoreTimeout)
	}
	if cfg.AdminTelegramID != 0 {
		t.Fatalf("AdminTelegramID default = %d", cfg.AdminTelegramID)
	}
	if cfg.LeaderboardSize != 10 {
		t.Fatalf("LeaderboardSize default = %d", cfg.LeaderboardSize)
	}
}
