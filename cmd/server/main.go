// Command server runs the suggestions HTTP API.
//
// Configuration comes from a YAML file (CONFIG_PATH, default ./config.yaml)
// overridden by environment variables; a .env file is loaded if present.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vidahq/suggestions-backend/internal/app"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
