// Package app wires configuration, logging, storage, services, and the HTTP
// server into a running application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vidahq/suggestions-backend/internal/adapter/postgres"
	auditrepo "github.com/vidahq/suggestions-backend/internal/adapter/postgres/audit"
	employeerepo "github.com/vidahq/suggestions-backend/internal/adapter/postgres/employee"
	suggestionrepo "github.com/vidahq/suggestions-backend/internal/adapter/postgres/suggestion"
	"github.com/vidahq/suggestions-backend/internal/audit"
	"github.com/vidahq/suggestions-backend/internal/config"
	employeesvc "github.com/vidahq/suggestions-backend/internal/service/employee"
	suggestionsvc "github.com/vidahq/suggestions-backend/internal/service/suggestion"
	"github.com/vidahq/suggestions-backend/internal/transport/rest"
)

// Run is the application entry point: it loads configuration, connects to
// the database, applies pending migrations, and serves HTTP until the
// context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := Migrate(ctx, logger, cfg.Database.DSN); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	suggestions := suggestionrepo.New(pool)
	employees := employeerepo.New(pool)
	auditLogs := auditrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	recorder := audit.NewRecorder(auditLogs, logger)

	suggestionService := suggestionsvc.NewService(logger, suggestions, employees, tx, recorder)
	employeeService := employeesvc.NewService(logger, employees, suggestions, tx, recorder)

	router := rest.NewRouter(
		logger,
		cfg.CORS,
		rest.NewSuggestionHandler(suggestionService, logger),
		rest.NewEmployeeHandler(employeeService, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
