// Package app assembles the dashboard backend: configuration, logger,
// metrics, the pipeline service and the HTTP router, plus server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reclamos/internal/config"
	apperrors "reclamos/internal/errors"
	"reclamos/internal/infrastructure"
	"reclamos/internal/services"
	handlers "reclamos/internal/transport/http"
)

// Version identifies the running build.
const Version = "1.0.0"

// Application represents the main application container
type Application struct {
	Config  *config.Config
	Router  *chi.Mux
	Server  *http.Server
	Service *services.DashboardService
	Metrics *infrastructure.Metrics
	Logger  *slog.Logger
}

// NewApplication creates a new application instance with its dependencies
// wired.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	metrics := infrastructure.NewMetrics()

	service, err := services.NewDashboardService(cfg, metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard service: %w", err)
	}

	app := &Application{
		Config:  cfg,
		Service: service,
		Metrics: metrics,
		Logger:  logger,
	}
	app.Router = app.buildRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

func (a *Application) buildRouter() *chi.Mux {
	errorHandler := apperrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)

	dashboardHandler := handlers.NewDashboardHandler(
		a.Service, a.Config.Upload.MaxBytes, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(Version)

	r := chi.NewRouter()
	r.Use(handlers.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(a.Config.Server.WriteTimeout))
	r.Use(handlers.RateLimit(a.Config.Server.RateLimitRPS, a.Config.Server.RateLimitBurst))
	r.Use(handlers.RecordMetrics(a.Metrics))

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/healthz", healthHandler.Healthz)
		r.Mount("/datasets", dashboardHandler.Routes())
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
		a.Metrics.Registry, promhttp.HandlerOpts{}))

	return r
}

// Run starts the HTTP server and blocks until shutdown completes.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.Logger.Info("server stopped")
	return nil
}

// Shutdown stops the server immediately with the given context. Exposed for
// tests and embedding callers.
func (a *Application) Shutdown(ctx context.Context) error {
	return a.Server.Shutdown(ctx)
}
