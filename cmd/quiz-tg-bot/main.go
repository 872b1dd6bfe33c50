package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ilyashirko/quiz-bot/internal/bot"
	"github.com/ilyashirko/quiz-bot/internal/leaderboard"
	"github.com/ilyashirko/quiz-bot/internal/quiz"
	"github.com/ilyashirko/quiz-bot/internal/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := bot.LoadConfig()
	if cfg.TelegramToken == "" {
		logger.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	tg, err := bot.NewTelegramAPI(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("telegram api init failed", zap.Error(err))
	}
	if cfg.AdminTelegramID != 0 {
		logger = logger.WithOptions(bot.AdminAlertHook(tg, cfg.AdminTelegramID))
	}

	questionsClient, err := storage.NewGoRedisClient(cfg.RedisURL, cfg.RedisQuestionsDB)
	if err != nil {
		logger.Fatal("redis questions client init failed", zap.Error(err))
	}
	defer questionsClient.Close()

	sessionsClient, err := storage.NewGoRedisClient(cfg.RedisURL, cfg.RedisSessionsDB)
	if err != nil {
		logger.Fatal("redis sessions client init failed", zap.Error(err))
	}
	defer sessionsClient.Close()

	engine := quiz.NewEngine(
		storage.NewQuestionStore(questionsClient),
		storage.NewSessionStore(sessionsClient),
		cfg.MatchThreshold,
		logger,
	)

	var leaders bot.LeaderboardStore
	if cfg.PostgresDSN != "" {
		pg, err := leaderboard.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("leaderboard init failed", zap.Error(err))
		}
		defer pg.Close()
		leaders = pg
	}

	responder := bot.NewQuizResponder(engine, leaders, cfg.LeaderboardSize, logger)
	app := bot.NewTelegramBot(cfg, tg, responder, logger)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("shutdown signal received")
		app.Stop()
	}()

	logger.Info("telegram quiz bot started")
	if err := app.StartPolling(); err != nil {
		logger.Fatal("polling failed", zap.Error(err))
	}
	logger.Info("telegram quiz bot stopped")
}
