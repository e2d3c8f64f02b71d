// Package handler provides the HTTP surface of the SDR engine: prospect
// intake, inbound webhooks, maintenance sweeps, and operational endpoints.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/domain"
	apperrors "github.com/brightsmile/sdrengine/internal/errors"
	"github.com/brightsmile/sdrengine/internal/sdr"
)

// CampaignManager is the slice of the campaign engine the HTTP layer needs.
type CampaignManager interface {
	AddProspect(ctx context.Context, p domain.Prospect, start domain.CampaignType) bool
	ProcessResponse(ctx context.Context, prospectID, message string) *sdr.ResponseResult
	Record(prospectID string) (domain.ProspectRecord, *domain.Appointment, bool)
	ProspectIDByPhone(phone string) (string, bool)
	CheckNoShows(ctx context.Context) int
	ActivatePowerHour(ctx context.Context, count int) int
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an application error as a JSON response.
func writeError(w http.ResponseWriter, logger *zap.Logger, err *apperrors.Error) {
	if err.HTTPStatus() >= 500 {
		logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, err.HTTPStatus(), err.ToResponse())
}
