package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ilyashirko/quiz-bot/internal/bot"
	"github.com/ilyashirko/quiz-bot/internal/loader"
	"github.com/ilyashirko/quiz-bot/internal/storage"
)

func main() {
	dir := flag.String("d", "", "directory with KOI8-R question files")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *dir == "" {
		logger.Fatal("-d <dir> is required")
	}

	cfg := bot.LoadConfig()
	client, err := storage.NewGoRedisClient(cfg.RedisURL, cfg.RedisQuestionsDB)
	if err != nil {
		logger.Fatal("redis client init failed", zap.Error(err))
	}
	defer client.Close()

	pairs, err := loader.ParseDir(*dir)
	if err != nil {
		logger.Fatal("parse corpus", zap.Error(err))
	}
	logger.Info("corpus parsed", zap.Int("pairs", len(pairs)))

	ctx := context.Background()
	questions := storage.NewQuestionStore(client)
	loaded := 0
	for _, qa := range pairs {
		ctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
		err := questions.Add(ctx, qa)
		cancel()
		if err != nil {
			logger.Fatal("load question", zap.String("question", qa.Question), zap.Error(err))
		}
		loaded++
	}
	logger.Info("corpus loaded", zap.Int("questions", loaded))
}
