//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/vidahq/suggestions-backend/internal/adapter/postgres"
	auditrepo "github.com/vidahq/suggestions-backend/internal/adapter/postgres/audit"
	employeerepo "github.com/vidahq/suggestions-backend/internal/adapter/postgres/employee"
	suggestionrepo "github.com/vidahq/suggestions-backend/internal/adapter/postgres/suggestion"
	"github.com/vidahq/suggestions-backend/internal/adapter/postgres/testhelper"
	"github.com/vidahq/suggestions-backend/internal/audit"
	"github.com/vidahq/suggestions-backend/internal/config"
	employeesvc "github.com/vidahq/suggestions-backend/internal/service/employee"
	suggestionsvc "github.com/vidahq/suggestions-backend/internal/service/suggestion"
	"github.com/vidahq/suggestions-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	suggestions := suggestionrepo.New(pool)
	employees := employeerepo.New(pool)
	auditLog := auditrepo.New(pool)

	recorder := audit.NewRecorder(auditLog, logger)

	suggestionService := suggestionsvc.NewService(logger, suggestions, employees, txm, recorder)
	employeeService := employeesvc.NewService(logger, employees, suggestions, txm, recorder)

	corsCfg := config.CORSConfig{
		AllowedOrigins:   "*",
		AllowedMethods:   "GET,POST,DELETE,OPTIONS",
		AllowedHeaders:   "Content-Type,X-Admin-Id,X-Request-Id",
		AllowCredentials: true,
		MaxAge:           86400,
	}

	router := rest.NewRouter(
		logger,
		corsCfg,
		rest.NewSuggestionHandler(suggestionService, logger),
		rest.NewEmployeeHandler(employeeService, logger),
		rest.NewHealthHandler(pool, "e2e-test"),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers
// ---------------------------------------------------------------------------

// doJSON sends a request with an optional JSON body and decodes the JSON
// response. adminID == 0 leaves the request unattributed.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, adminID int64) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if adminID != 0 {
		req.Header.Set("X-Admin-Id", strconv.FormatInt(adminID, 10))
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var result map[string]any
	require.NoError(t, json.Unmarshal(raw, &result), "response body: %s", raw)
	return resp.StatusCode, result
}

// envelopeData extracts the "data" payload from a response envelope.
func envelopeData(t *testing.T, result map[string]any) map[string]any {
	t.Helper()
	data, ok := result["data"].(map[string]any)
	require.True(t, ok, "expected data object in envelope, got: %v", result)
	return data
}

// envelopeItems extracts the "data" array from a paged response envelope.
func envelopeItems(t *testing.T, result map[string]any) []any {
	t.Helper()
	items, ok := result["data"].([]any)
	require.True(t, ok, "expected data array in envelope, got: %v", result)
	return items
}
