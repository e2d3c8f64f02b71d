package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MaintenanceHandler exposes the periodic sweeps as on-demand endpoints so
// operators can trigger them outside the timer.
type MaintenanceHandler struct {
	manager CampaignManager
	logger  *zap.Logger
}

// NewMaintenanceHandler creates a MaintenanceHandler.
func NewMaintenanceHandler(manager CampaignManager, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		manager: manager,
		logger:  logger,
	}
}

// RegisterRoutes registers maintenance routes on the router.
func (h *MaintenanceHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/maintenance/no-shows", h.HandleNoShows)
	r.Post("/api/maintenance/power-hour", h.HandlePowerHour)
}

// SweepResponse reports how many prospects a sweep touched.
type SweepResponse struct {
	Processed int `json:"processed"`
}

// PowerHourRequest optionally overrides the activation batch size.
type PowerHourRequest struct {
	Count int `json:"count"`
}

// HandleNoShows runs the no-show sweep immediately.
func (h *MaintenanceHandler) HandleNoShows(w http.ResponseWriter, r *http.Request) {
	n := h.manager.CheckNoShows(r.Context())
	h.logger.Info("no-show sweep triggered", zap.Int("processed", n))
	writeJSON(w, http.StatusOK, SweepResponse{Processed: n})
}

// HandlePowerHour pulls a batch of holding prospects into the power hour
// campaign. An empty or invalid body uses the default batch size.
func (h *MaintenanceHandler) HandlePowerHour(w http.ResponseWriter, r *http.Request) {
	var req PowerHourRequest
	if r.Body != nil {
		// Body is optional; decode errors fall through to the default count.
		json.NewDecoder(r.Body).Decode(&req)
	}

	n := h.manager.ActivatePowerHour(r.Context(), req.Count)
	h.logger.Info("power hour triggered",
		zap.Int("requested", req.Count),
		zap.Int("activated", n),
	)
	writeJSON(w, http.StatusOK, SweepResponse{Processed: n})
}
