package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quiz-forge/internal/adapter"
	"quiz-forge/internal/adapter/classifier"
	"quiz-forge/internal/adapter/llm"
	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/database"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/repository"
	"quiz-forge/internal/service"

	"go.uber.org/zap"
)

// batch_generate saves one generated quiz per prompt line for a single user:
//
//	batch_generate -user <identity id> -file prompts.txt [-concurrency 2]
func main() {
	userID := flag.String("user", "", "identity ID that will own the generated quizzes")
	file := flag.String("file", "", "file with one prompt per line")
	concurrency := flag.Int("concurrency", 2, "prompts generated in parallel")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	l := logger.Get()

	if *userID == "" || *file == "" {
		l.Fatal("Both -user and -file are required")
	}
	prompts, err := readPrompts(*file)
	if err != nil {
		l.Fatal("Failed to read prompts", zap.String("file", *file), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			l.Warn("Redis unavailable, classifying without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	completion, err := llm.NewFromConfig(cfg.LLM)
	if err != nil {
		l.Fatal("Failed to create LLM client", zap.Error(err))
	}
	generator := service.NewQuizGenerator(completion, classifier.New(cfg, completion, cacheAdapter), cfg.LLM.Model, cfg.LLM.MaxTokens)

	categoryRepo := repository.NewCategoryRepository(db)
	quizService := service.NewQuizService(
		generator,
		service.NewCategoryReconciler(categoryRepo),
		categoryRepo,
		repository.NewQuizRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewTransactionManagerAdapter(db),
	)

	results, err := service.NewBatchService(quizService, *concurrency).GenerateAndSave(ctx, *userID, prompts)
	if err != nil {
		l.Fatal("Batch process failed", zap.Error(err))
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		l.Info("Quiz saved", zap.String("prompt", r.Prompt), zap.String("quiz", r.Saved.QuizSlug), zap.String("category", r.Saved.CategorySlug))
	}
	l.Info("Batch process completed", zap.Int("total", len(results)), zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(2)
	}
}

func readPrompts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var prompts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		prompts = append(prompts, scanner.Text())
	}
	return prompts, scanner.Err()
}
