package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/metrics"
	"github.com/brightsmile/sdrengine/internal/middleware"
)

// RouterConfig holds the handlers and cross-cutting dependencies the HTTP
// router composes. Optional fields may be nil and their routes are skipped.
type RouterConfig struct {
	Prospects   *ProspectHandler
	Webhooks    *WebhookHandler
	Maintenance *MaintenanceHandler
	Health      *HealthHandler
	LogLevel    http.Handler
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// NewRouter builds the chi router with the full middleware chain and all
// registered routes.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	// Global middleware, order matters.
	r.Use(middleware.Correlation)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.RequestMetrics(cfg.Metrics))
	}
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.Compress(5))

	if cfg.Prospects != nil {
		cfg.Prospects.RegisterRoutes(r)
	}
	if cfg.Webhooks != nil {
		cfg.Webhooks.RegisterRoutes(r)
	}
	if cfg.Maintenance != nil {
		cfg.Maintenance.RegisterRoutes(r)
	}
	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(r)
	}

	if cfg.LogLevel != nil {
		r.Get("/api/log-level", cfg.LogLevel.ServeHTTP)
		r.Put("/api/log-level", cfg.LogLevel.ServeHTTP)
	}
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	return r
}
