package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/audit"
	"github.com/brightsmile/sdrengine/internal/domain"
	apperrors "github.com/brightsmile/sdrengine/internal/errors"
	"github.com/brightsmile/sdrengine/internal/sdr"
	"github.com/brightsmile/sdrengine/internal/validation"
)

// ProspectHandler handles prospect intake and lookup.
type ProspectHandler struct {
	manager CampaignManager
	audit   *audit.Logger
	logger  *zap.Logger
}

// NewProspectHandler creates a ProspectHandler. The audit logger may be nil.
func NewProspectHandler(manager CampaignManager, auditLog *audit.Logger, logger *zap.Logger) *ProspectHandler {
	return &ProspectHandler{
		manager: manager,
		audit:   auditLog,
		logger:  logger,
	}
}

// RegisterRoutes registers prospect routes on the router.
func (h *ProspectHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/prospects", h.HandleIntake)
	r.Get("/api/prospects/{id}", h.HandleGet)
}

// IntakeRequest is the intake payload for a new prospect.
type IntakeRequest struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	LeadSource string `json:"lead_source"`
	Campaign   string `json:"campaign"`
}

// IntakeResponse is returned on successful enrollment.
type IntakeResponse struct {
	ID       string `json:"id"`
	Campaign string `json:"campaign"`
	Status   string `json:"status"`
}

// ProspectResponse is the full view of a prospect's orchestration state.
type ProspectResponse struct {
	Prospect        domain.Prospect         `json:"prospect"`
	CurrentCampaign domain.CampaignType     `json:"current_campaign"`
	Stage           int                     `json:"stage"`
	History         []domain.CampaignEntry  `json:"history"`
	Tags            []string                `json:"tags"`
	Appointment     *domain.AppointmentView `json:"appointment,omitempty"`
	EnrolledAt      string                  `json:"enrolled_at"`
	UpdatedAt       string                  `json:"updated_at"`
}

// HandleIntake enrolls a new prospect and fires the first campaign event.
func (h *ProspectHandler) HandleIntake(w http.ResponseWriter, r *http.Request) {
	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.ValidationFailed("invalid JSON body"))
		return
	}

	v := validation.NewProspectValidator()
	v.ValidateID(req.ID)
	v.ValidateName(req.FirstName, req.LastName)
	v.ValidateContact(req.Phone, req.Email)
	if req.Campaign != "" {
		allowed := make([]string, 0, len(domain.AllCampaignTypes))
		for _, c := range domain.AllCampaignTypes {
			allowed = append(allowed, string(c))
		}
		v.ValidateCampaign(req.Campaign, allowed)
	}
	if !v.IsValid() {
		writeError(w, h.logger, apperrors.ValidationFailed(v.Errors().Error()))
		return
	}

	start := sdr.DefaultStartCampaign
	if req.Campaign != "" {
		start = domain.CampaignType(req.Campaign)
	}

	prospect := domain.Prospect{
		ID:         req.ID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      validation.SanitizePhoneNumber(req.Phone),
		LeadSource: req.LeadSource,
	}

	if !h.manager.AddProspect(r.Context(), prospect, start) {
		writeError(w, h.logger, apperrors.ValidationFailed("unknown campaign"))
		return
	}

	if h.audit != nil {
		h.audit.ProspectEnrolled(prospect.ID, string(start), prospect.LeadSource)
	}

	writeJSON(w, http.StatusCreated, IntakeResponse{
		ID:       prospect.ID,
		Campaign: string(start),
		Status:   "enrolled",
	})
}

// HandleGet returns a prospect's record and appointment.
func (h *ProspectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, appt, ok := h.manager.Record(id)
	if !ok {
		writeError(w, h.logger, apperrors.NotFound("prospect"))
		return
	}

	resp := ProspectResponse{
		Prospect:        rec.Prospect,
		CurrentCampaign: rec.CurrentCampaign,
		Stage:           rec.Stage,
		History:         rec.History,
		Tags:            rec.Tags,
		EnrolledAt:      rec.EnrolledAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       rec.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if appt != nil {
		resp.Appointment = appt.View()
	}

	writeJSON(w, http.StatusOK, resp)
}
