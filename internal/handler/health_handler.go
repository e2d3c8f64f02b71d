package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the health and probe endpoints. The database is the
// only hard dependency; the outreach channels are checked by their own
// circuit breakers and do not gate readiness.
type HealthHandler struct {
	db     HealthChecker
	logger *zap.Logger
}

// NewHealthHandler creates a HealthHandler. db may be nil when the service
// runs in memory-only mode.
func NewHealthHandler(db HealthChecker, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		panic("logger is required")
	}
	return &HealthHandler{db: db, logger: logger}
}

// RegisterRoutes registers health routes on the router.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Get("/ready", h.HandleReadiness)
	r.Get("/live", h.HandleLiveness)
}

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// pingDB checks the database with a bounded timeout. It returns nil when no
// database is configured.
func (h *HealthHandler) pingDB(ctx context.Context, timeout time.Duration) error {
	if h.db == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return h.db.Ping(ctx)
}

// HandleHealth reports overall service health including the database.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	status := http.StatusOK

	if h.db != nil {
		if err := h.pingDB(r.Context(), 5*time.Second); err != nil {
			h.logger.Error("database health check failed", zap.Error(err))
			resp = HealthResponse{Status: "unhealthy", Database: err.Error()}
			status = http.StatusServiceUnavailable
		} else {
			resp.Database = "healthy"
		}
	}

	writeJSON(w, status, resp)
}

// HandleReadiness is the readiness probe. It fails only if the database is
// configured and unreachable.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	if err := h.pingDB(r.Context(), 2*time.Second); err != nil {
		h.logger.Error("readiness check failed", zap.Error(err))
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// HandleLiveness is the liveness probe.
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
