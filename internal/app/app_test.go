package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardiopulse/internal/infrastructure"
)

const testHeader = "Facility ID,Hospital Name,Region,Detailed Region,Procedure,Year of Hospital Discharge,Number of Cases,Number of Deaths,Observed Mortality Rate,Expected Mortality Rate,Risk-Adjusted Mortality Rate,Lower Limit of Confidence Interval,Upper Limit of Confidence Interval,Comparison Results"

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	infrastructure.ResetLoggerForTesting()

	content := testHeader + "\n" +
		"1,Alpha,West,,All PCI,2013-2015,100,2,2.0,2.5,2.1,1.0,3.0,Rate not different than Statewide Rate\n" +
		"2,Beta,East,,All PCI,2016,200,5,4.0,3.0,3.8,2.5,5.5,Rate higher than Statewide Rate\n"
	path := filepath.Join(t.TempDir(), "cardiac.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("CARDIOPULSE_DATASET_FILE", path)
	t.Setenv("CARDIOPULSE_LOGGING_OUTPUT", "stdout")

	frontend := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<html><body>dashboard</body></html>")},
	}

	app, err := NewApplication(context.Background(), frontend)
	require.NoError(t, err)
	return app
}

func TestNewApplication(t *testing.T) {
	app := newTestApplication(t)

	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.Server)
	assert.Equal(t, 2, app.DatasetService.RecordCount())
}

func TestRouterEndpoints(t *testing.T) {
	app := newTestApplication(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"health", "/api/health", http.StatusOK},
		{"version", "/api/version", http.StatusOK},
		{"options", "/api/dashboard/options", http.StatusOK},
		{"records", "/api/dashboard/records", http.StatusOK},
		{"kpis", "/api/dashboard/kpis?region=East", http.StatusOK},
		{"charts", "/api/dashboard/charts", http.StatusOK},
		{"anomalies", "/api/dashboard/anomalies", http.StatusOK},
		{"metrics scrape", "/metrics", http.StatusOK},
		{"frontend", "/", http.StatusOK},
		{"bad year", "/api/dashboard/records?year_from=abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHealthReportsLoadedDataset(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	dataset := body["dataset"].(map[string]interface{})
	assert.Equal(t, "loaded", dataset["status"])
	assert.Equal(t, float64(2), dataset["records"])
}

func TestSecurityHeadersApplied(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
