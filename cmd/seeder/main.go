// Command seeder populates an empty database from a JSON seed document.
// It applies pending migrations first, then fills departments, admins,
// employees, and suggestions; tables that already hold rows are skipped.
//
// The document path comes from the seed.path config key (SEED_PATH env).
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vidahq/suggestions-backend/internal/adapter/postgres"
	adminrepo "github.com/vidahq/suggestions-backend/internal/adapter/postgres/admin"
	departmentrepo "github.com/vidahq/suggestions-backend/internal/adapter/postgres/department"
	employeerepo "github.com/vidahq/suggestions-backend/internal/adapter/postgres/employee"
	suggestionrepo "github.com/vidahq/suggestions-backend/internal/adapter/postgres/suggestion"
	"github.com/vidahq/suggestions-backend/internal/app"
	"github.com/vidahq/suggestions-backend/internal/config"
	"github.com/vidahq/suggestions-backend/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := app.Migrate(ctx, logger, cfg.Database.DSN); err != nil {
		logger.Error("apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	doc, err := seed.LoadFile(cfg.Seed.Path)
	if err != nil {
		logger.Error("load seed document", slog.String("error", err.Error()))
		os.Exit(1)
	}

	seeder := seed.New(
		logger,
		departmentrepo.New(pool),
		adminrepo.New(pool),
		employeerepo.New(pool),
		suggestionrepo.New(pool),
	)

	if err := seeder.Run(ctx, doc); err != nil {
		logger.Error("seed database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding complete")
}
