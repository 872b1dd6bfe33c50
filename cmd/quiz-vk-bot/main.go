package main

import (
	"context"
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
	if cfg.VKToken == "" {
		logger.Fatal("VK_BOT_TOKEN is required")
	}

	// errors page the same admin chat the telegram bot uses
	if cfg.AdminTelegramID != 0 && cfg.TelegramToken != "" {
		tg, err := bot.NewTelegramAPI(cfg.TelegramToken)
		if err != nil {
			logger.Fatal("telegram api init failed", zap.Error(err))
		}
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
	app := bot.NewVKBot(cfg, responder, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("shutdown signal received")
		cancel()
	}()

	logger.Info("vk quiz bot started")
	if err := app.Run(ctx); err != nil {
		logger.Fatal("long poll failed", zap.Error(err))
	}
	logger.Info("vk quiz bot stopped")
}
