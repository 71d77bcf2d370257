package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"quiz-forge/internal/adapter/classifier"
	"quiz-forge/internal/config"
	"quiz-forge/internal/database"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/repository"
	"quiz-forge/internal/service"

	"go.uber.org/zap"
)

// seed_categories creates the built-in category set for one user so later
// generations reconcile into it.
func main() {
	userID := flag.String("user", "", "identity ID that will own the categories")
	flag.Parse()

	ctx := context.Background()
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
	log := logger.Get()

	if *userID == "" {
		log.Fatal("-user is required")
	}

	log.Info("Starting category seeding process...")
	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	seeder := service.NewCategorySeeder(repository.NewCategoryRepository(db), repository.NewTransactionManagerAdapter(db))
	created, err := seeder.Seed(ctx, *userID, classifier.CanonicalCategories())
	if err != nil {
		log.Fatal("Category seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Category seeding process completed.", zap.Int("created", created))
}
