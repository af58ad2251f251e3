package app

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"cardiopulse/internal/config"
	apierrors "cardiopulse/internal/errors"
	"cardiopulse/internal/infrastructure"
	custommw "cardiopulse/internal/middleware"
	"cardiopulse/internal/services"
	handlers "cardiopulse/internal/transport/http"
)

const (
	// Version is the service version reported by /api/version.
	Version = "1.0.0"
	AppName = "CardioPulse - Cardiac Care Performance Dashboard"
)

var (
	// BuildTime is set at compile time via -ldflags.
	BuildTime = time.Now().Format(time.RFC3339)
	// BuildID identifies this build.
	BuildID = generateBuildID()
)

func generateBuildID() string {
	h := sha256.New()
	h.Write([]byte(Version))
	h.Write([]byte(time.Now().Format("2006-01-02")))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// Application is the main application container.
type Application struct {
	Config  *config.Config
	Router  *chi.Mux
	Server  *http.Server
	Logger  *slog.Logger
	Metrics *infrastructure.MetricsProviders

	DatasetService   *services.DatasetService
	DashboardService *services.DashboardService
	HealthService    *services.HealthService

	frontendFS fs.FS
}

// NewApplication builds the application with all dependencies wired. The
// dataset snapshot is loaded here; a startup without data is a startup
// failure.
func NewApplication(ctx context.Context, frontendFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	metrics, err := infrastructure.InitializeMetrics(Version, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize metrics: %w", err)
	}

	datasetSvc := services.NewDatasetService(cfg, logger)
	if err := datasetSvc.Load(ctx); err != nil {
		return nil, err
	}

	app := &Application{
		Config:           cfg,
		Logger:           logger,
		Metrics:          metrics,
		DatasetService:   datasetSvc,
		DashboardService: services.NewDashboardService(datasetSvc, cfg.Dataset.TopHospitals, logger),
		HealthService:    services.NewHealthService(Version, BuildTime, BuildID, datasetSvc, logger),
		frontendFS:       frontendFS,
	}

	if err := app.setupRouter(); err != nil {
		return nil, err
	}

	app.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.Router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	logger.Info("application initialized",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.String("build_id", BuildID),
		slog.Int("port", cfg.Server.Port),
		slog.Int("records", datasetSvc.RecordCount()))

	return app, nil
}

func (app *Application) setupRouter() error {
	r := chi.NewRouter()
	cfg := app.Config

	requestMetrics, err := infrastructure.NewRequestMetrics(app.Metrics.Meter)
	if err != nil {
		return fmt.Errorf("create request metrics: %w", err)
	}

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.HTTPMetrics(requestMetrics))
	r.Use(custommw.StructuredLogger(app.Logger))
	r.Use(custommw.Recoverer(app.Logger))
	r.Use(custommw.SecurityHeaders)
	if cfg.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: cfg.Security.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
	}
	r.Use(custommw.Compress(5))

	errorHandler := apierrors.NewErrorHandler(app.Logger, false)
	dashboardHandler := handlers.NewDashboardHandler(app.DashboardService, app.DatasetService, app.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(app.HealthService, app.Logger)

	r.Route("/api", func(r chi.Router) {
		if cfg.Security.RateLimit.Enabled {
			limiter := custommw.NewRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst, app.Logger)
			r.Use(limiter.Handler)
		}
		r.Use(custommw.Timeout(cfg.Server.RequestTimeout, app.Logger))

		r.Mount("/dashboard", dashboardHandler.Routes())
		r.Get("/health", healthHandler.GetHealth)
		r.Get("/version", healthHandler.GetVersion)
	})

	// Prometheus scrape endpoint stays outside the rate-limited group.
	r.Method(http.MethodGet, "/metrics", app.Metrics.PrometheusHTTP)

	if app.frontendFS != nil {
		r.NotFound(app.serveFrontend)
	}

	app.Router = r
	return nil
}

// serveFrontend serves the embedded static dashboard, falling back to
// index.html so the page loads at any non-API path.
func (app *Application) serveFrontend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	fileServer := http.FileServer(http.FS(app.frontendFS))
	path := r.URL.Path
	if path == "/" {
		fileServer.ServeHTTP(w, r)
		return
	}

	if _, err := fs.Stat(app.frontendFS, path[1:]); err != nil {
		r.URL.Path = "/"
	}
	fileServer.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown completes. It
// stops on SIGINT/SIGTERM or when the server fails.
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.Info("http server listening", slog.String("addr", app.Server.Addr))
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.Logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		if err := app.Metrics.Shutdown(shutdownCtx); err != nil {
			app.Logger.Warn("metrics shutdown failed", slog.String("error", err.Error()))
		}
		if err := infrastructure.CloseLogFile(); err != nil {
			app.Logger.Warn("log file close failed", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	app.Logger.Info("shutdown complete")
	return nil
}
