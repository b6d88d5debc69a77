package rest

import (
	"log/slog"
	"net/http"

	"github.com/vidahq/suggestions-backend/internal/config"
	"github.com/vidahq/suggestions-backend/internal/transport/middleware"
)

// NewRouter wires all endpoints behind the shared middleware chain.
func NewRouter(
	logger *slog.Logger,
	cfg config.CORSConfig,
	suggestions *SuggestionHandler,
	employees *EmployeeHandler,
	health *HealthHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /live", health.Live)

	mux.HandleFunc("POST /suggestions", suggestions.Create)
	mux.HandleFunc("POST /suggestions/bulk", suggestions.Bulk)
	mux.HandleFunc("POST /suggestions/{id}", suggestions.Update)
	mux.HandleFunc("GET /suggestions", suggestions.List)
	mux.HandleFunc("GET /suggestions/{id}", suggestions.Get)
	mux.HandleFunc("DELETE /suggestions/{id}", suggestions.Delete)

	mux.HandleFunc("GET /employees", employees.List)
	mux.HandleFunc("GET /employees/{id}", employees.Get)
	mux.HandleFunc("DELETE /employees/{id}", employees.Delete)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(cfg),
		middleware.Actor,
		middleware.Logger(logger),
	)

	return chain(mux)
}
