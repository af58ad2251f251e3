package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"cardiopulse/internal/services"
)

// HealthHandler serves liveness and version endpoints.
type HealthHandler struct {
	service *services.HealthService
	logger  *slog.Logger
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(service *services.HealthService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("component", "health_handler")),
	}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", h.GetHealth)
	r.Get("/version", h.GetVersion)

	return r
}

// GetHealth handles GET /api/health. A degraded service still answers
// 200 so orchestrators keep the process alive while the dataset loads.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := h.service.Health(r.Context())
	render.JSON(w, r, status)
}

// GetVersion handles GET /api/version.
func (h *HealthHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Version(r.Context()))
}
