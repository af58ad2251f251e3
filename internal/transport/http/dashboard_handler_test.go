package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardiopulse/internal/config"
	apierrors "cardiopulse/internal/errors"
	"cardiopulse/internal/services"
)

const testHeader = "Facility ID,Hospital Name,Region,Detailed Region,Procedure,Year of Hospital Discharge,Number of Cases,Number of Deaths,Observed Mortality Rate,Expected Mortality Rate,Risk-Adjusted Mortality Rate,Lower Limit of Confidence Interval,Upper Limit of Confidence Interval,Comparison Results"

func newTestHandler(t *testing.T, rows ...string) *DashboardHandler {
	t.Helper()

	content := testHeader + "\n"
	for _, row := range rows {
		content += row + "\n"
	}
	path := filepath.Join(t.TempDir(), "cardiac.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := config.Default()
	cfg.Dataset.File = path

	logger := slog.Default()
	data := services.NewDatasetService(cfg, logger)
	require.NoError(t, data.Load(context.Background()))
	dash := services.NewDashboardService(data, cfg.Dataset.TopHospitals, logger)

	return NewDashboardHandler(dash, data, logger, apierrors.NewErrorHandler(logger, false))
}

func doRequest(t *testing.T, h *DashboardHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var testRows = []string{
	`1,Alpha,West,,All PCI,2013-2015,100,2,2.0,2.5,2.1,1.0,3.0,Rate not different than Statewide Rate`,
	`2,Beta,East,,All PCI,2016,200,5,4.0,3.0,3.8,2.5,5.5,Rate higher than Statewide Rate`,
	`3,Gamma,East,,Valve or Valve/CABG,2016,50,1,2.2,2.4,2.3,1.1,3.4,Rate lower than Statewide Rate`,
}

func TestGetOptions(t *testing.T) {
	h := newTestHandler(t, testRows...)

	rec := doRequest(t, h, "/options")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["regions"], 2)
	assert.Len(t, data["procedures"], 2)
	assert.Len(t, data["hospitals"], 3)
}

func TestGetRecordsFiltered(t *testing.T) {
	h := newTestHandler(t, testRows...)

	rec := doRequest(t, h, "/records?region=East")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["data"], 2)
}

func TestGetRecordsBadYear(t *testing.T) {
	h := newTestHandler(t, testRows...)

	rec := doRequest(t, h, "/records?year_from=soon")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestGetRecordsInvertedRange(t *testing.T) {
	h := newTestHandler(t, testRows...)

	rec := doRequest(t, h, "/records?year_from=2016&year_to=2013")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetKPIs(t *testing.T) {
	h := newTestHandler(t, testRows...)

	rec := doRequest(t, h, "/kpis")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(350), data["total_cases"])
	assert.Equal(t, float64(3), data["record_count"])
}

func TestGetKPIsEmptyView(t *testing.T) {
	h := newTestHandler(t, testRows...)

	rec := doRequest(t, h, "/kpis?hospital=Nonexistent")
	require.Equal(t, http.StatusOK, rec.Code, "an empty view is a valid result, not an error")

	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["total_cases"])
	assert.Nil(t, data["avg_observed_mortality_rate"])
}

func TestGetCharts(t *testing.T) {
	h := newTestHandler(t, testRows...)

	rec := doRequest(t, h, "/charts?n=2")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["volume_trend"])
	assert.NotEmpty(t, data["mortality_trend"])
	assert.NotEmpty(t, data["hospital_ranking"])
}

func TestGetChartsBadTopN(t *testing.T) {
	h := newTestHandler(t, testRows...)

	rec := doRequest(t, h, "/charts?n=-3")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCSV(t *testing.T) {
	h := newTestHandler(t, testRows...)

	rec := doRequest(t, h, "/export?procedure=All+PCI")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestGetAnomalies(t *testing.T) {
	h := newTestHandler(t,
		`1,Alpha,West,,All PCI,bad-year,100,2,2.0,2.5,2.1,1.0,3.0,Rate not different than Statewide Rate`,
	)

	rec := doRequest(t, h, "/anomalies")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, float64(1), body["count"])
}

func TestSnapshotNotLoaded(t *testing.T) {
	logger := slog.Default()
	data := services.NewDatasetService(config.Default(), logger)
	dash := services.NewDashboardService(data, 10, logger)
	h := NewDashboardHandler(dash, data, logger, apierrors.NewErrorHandler(logger, false))

	rec := doRequest(t, h, "/records")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}
