package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardiopulse/internal/config"
	"cardiopulse/internal/services"
)

func TestHealthEndpointDegraded(t *testing.T) {
	logger := slog.Default()
	data := services.NewDatasetService(config.Default(), logger)
	h := NewHealthHandler(services.NewHealthService("1.2.3", "", "", data, logger), logger)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
}

func TestVersionEndpoint(t *testing.T) {
	logger := slog.Default()
	data := services.NewDatasetService(config.Default(), logger)
	h := NewHealthHandler(services.NewHealthService("1.2.3", "2026-01-01", "abc", data, logger), logger)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1.2.3", body["version"])
	assert.Equal(t, "abc", body["build_id"])
	assert.NotEmpty(t, body["go_version"])
}
