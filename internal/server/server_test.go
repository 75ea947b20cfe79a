package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agritrack/internal/config"
	"agritrack/internal/database"
	"agritrack/internal/logging"
	"agritrack/internal/repositories"
	"agritrack/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, rateLimit int) *fiber.App {
	t.Helper()
	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := database.OpenGORM(database.DriverSQLite, dsn, logging.Discard())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := &config.Config{
		FrontendURL:     "http://localhost:5173",
		RateLimitMax:    rateLimit,
		RateLimitWindow: time.Minute,
	}
	store := repositories.NewGORMStore(db, 5*time.Second)
	return server.New(cfg, server.NewServices(store, "test-secret", time.Hour), logging.Discard())
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	app := newApp(t, 100)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	body := decode(t, resp)
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := newApp(t, 100)

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "agritrack_http_requests_total")
}

func TestUnknownRouteIsJSON(t *testing.T) {
	app := newApp(t, 100)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Route not found", decode(t, resp)["error"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newApp(t, 100)

	for _, path := range []string{"/api/farms", "/api/expenses?farm_id=x", "/api/dashboard/metrics?farm_id=x", "/api/reports/export"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "Access token required", decode(t, resp)["error"], path)
	}
}

func TestRateLimit(t *testing.T) {
	app := newApp(t, 2)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/farms", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/farms", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too many requests, please try again later", decode(t, resp)["error"])

	// health is outside the limited group
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	app := newApp(t, 100)

	req := httptest.NewRequest(http.MethodOptions, "/api/farms", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPost)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))
}
