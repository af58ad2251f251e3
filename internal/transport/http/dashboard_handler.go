package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "cardiopulse/internal/errors"
	"cardiopulse/internal/services"
	"cardiopulse/pkg/contracts/domain"
)

// DashboardHandler serves the dashboard read API.
type DashboardHandler struct {
	service      DashboardServiceInterface
	anomalies    AnomalyProvider
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, anomalies AnomalyProvider, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		anomalies:    anomalies,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/options", h.GetOptions)
	r.Get("/records", h.GetRecords)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/charts", h.GetCharts)
	r.Get("/export", h.ExportCSV)
	r.Get("/anomalies", h.GetAnomalies)

	return r
}

// GetOptions handles GET /api/dashboard/options.
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Options(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   options,
	})
}

// GetRecords handles GET /api/dashboard/records.
func (h *DashboardHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.parseSpec(w, r)
	if !ok {
		return
	}

	records, err := h.service.Records(r.Context(), spec)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   records,
		"count":  len(records),
	})
}

// GetKPIs handles GET /api/dashboard/kpis.
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.parseSpec(w, r)
	if !ok {
		return
	}

	kpis, err := h.service.KPIs(r.Context(), spec)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   kpis,
		"count":  kpis.RecordCount,
	})
}

// GetCharts handles GET /api/dashboard/charts.
func (h *DashboardHandler) GetCharts(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.parseSpec(w, r)
	if !ok {
		return
	}

	topN, err := h.service.ParseTopN(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("n", err.Error()))
		return
	}

	charts, err := h.service.Charts(r.Context(), spec, topN)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   charts,
	})
}

// ExportCSV handles GET /api/dashboard/export. The document is built in
// memory first so a failed export still yields a problem response
// instead of a truncated attachment.
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.parseSpec(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	count, err := h.service.Export(r.Context(), &buf, spec)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "export generated",
		slog.Int("records", count),
		slog.Int("bytes", buf.Len()))

	filename := fmt.Sprintf("cardiac_outcomes_%s.csv", time.Now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "export write aborted", slog.String("error", err.Error()))
	}
}

// GetAnomalies handles GET /api/dashboard/anomalies.
func (h *DashboardHandler) GetAnomalies(w http.ResponseWriter, r *http.Request) {
	anomalies, err := h.anomalies.Anomalies()
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   anomalies,
		"count":  len(anomalies),
	})
}

// parseSpec parses and validates the filter query, responding with a
// validation problem on failure.
func (h *DashboardHandler) parseSpec(w http.ResponseWriter, r *http.Request) (domain.FilterSpec, bool) {
	spec, err := h.service.ParseFilterSpec(r.URL.Query())
	if err != nil {
		h.logger.WarnContext(r.Context(), "invalid filter query",
			slog.String("query", r.URL.RawQuery),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("query", err.Error()))
		return domain.FilterSpec{}, false
	}
	return spec, true
}

func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "dashboard request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))

	if errors.Is(err, services.ErrSnapshotNotLoaded) {
		h.errorHandler.HandleError(w, r, apierrors.DatasetLoadError(err))
		return
	}
	h.errorHandler.HandleError(w, r, err)
}
