package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/fjod/go_store/internal/cart"
	"github.com/fjod/go_store/internal/catalog"
	"github.com/fjod/go_store/internal/checkout"
	"github.com/fjod/go_store/internal/journal"
	"github.com/fjod/go_store/internal/menu"
	"github.com/fjod/go_store/internal/receipt"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Use environment variables with sensible defaults
	catalogPath := getEnv("CATALOG_PATH", "products.txt")
	receiptsDir := getEnv("RECEIPTS_DIR", "Receipts")
	dbPath := getEnv("DB_PATH", "store.db")

	cat, stats, err := catalog.LoadFile(catalogPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load catalog")
	}
	logger.Info().
		Int("loaded", stats.Loaded).
		Int("skipped", stats.Skipped).
		Msg("catalog loaded")

	repo, err := journal.NewRepository(dbPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not open sales journal")
	}
	defer repo.Close()

	if err := repo.RunMigrations(); err != nil {
		logger.Fatal().Err(err).Msg("could not run sales journal migrations")
	}

	session := cart.NewSession(cat)
	engine := checkout.NewEngine(receipt.NewFileStore(receiptsDir), repo, logger)

	m := menu.New(os.Stdin, os.Stdout, session, engine, repo, logger)
	if err := m.Run(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("input error")
	}
}
