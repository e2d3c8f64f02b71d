package handler

import (
	"context"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/audit"
	"github.com/brightsmile/sdrengine/internal/domain"
	"github.com/brightsmile/sdrengine/internal/metrics"
	"github.com/brightsmile/sdrengine/internal/retell"
	"github.com/brightsmile/sdrengine/internal/sanitize"
	"github.com/brightsmile/sdrengine/internal/sdr"
	"github.com/brightsmile/sdrengine/internal/twilio"
)

// Drafter drafts a reply for a message no campaign handler matched; nil
// disables the AI fallback.
type Drafter interface {
	SuggestReply(ctx context.Context, rec *domain.ProspectRecord, message string) (string, error)
}

// WebhookHandler handles inbound provider webhooks.
type WebhookHandler struct {
	manager   CampaignManager
	authToken string
	publicURL string
	retell    *retell.Client
	drafter   Drafter
	metrics   *metrics.Metrics
	audit     *audit.Logger
	logger    *zap.Logger
}

// WebhookHandlerConfig holds WebhookHandler dependencies.
type WebhookHandlerConfig struct {
	Manager CampaignManager
	// TwilioAuthToken signs inbound SMS webhooks; empty skips validation.
	TwilioAuthToken string
	// PublicURL is the externally visible base URL used in signature checks.
	PublicURL string
	Retell    *retell.Client
	Drafter   Drafter
	Metrics   *metrics.Metrics
	Audit     *audit.Logger
	Logger    *zap.Logger
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(cfg WebhookHandlerConfig) *WebhookHandler {
	return &WebhookHandler{
		manager:   cfg.Manager,
		authToken: cfg.TwilioAuthToken,
		publicURL: cfg.PublicURL,
		retell:    cfg.Retell,
		drafter:   cfg.Drafter,
		metrics:   cfg.Metrics,
		audit:     cfg.Audit,
		logger:    cfg.Logger,
	}
}

// RegisterRoutes registers webhook routes on the router.
func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook/twilio/sms", h.HandleTwilioSMS)
	r.Post("/webhook/retell", h.HandleRetell)
}

// twimlResponse is the TwiML envelope Twilio expects back from an SMS webhook.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message,omitempty"`
}

// HandleTwilioSMS processes an inbound SMS. The sender's number resolves to a
// prospect, the message runs through the campaign handlers, and the reply is
// returned as TwiML so Twilio sends it back on the same thread.
func (h *WebhookHandler) HandleTwilioSMS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.countWebhook("twilio", "bad_request")
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	if h.authToken != "" {
		requestURL := h.publicURL + r.URL.RequestURI()
		sig := r.Header.Get(twilio.SignatureHeader)
		if !twilio.ValidateSignature(h.authToken, requestURL, r.PostForm, sig) {
			h.countWebhook("twilio", "invalid_signature")
			h.auditRejection("twilio", r.RemoteAddr, "invalid signature")
			h.logger.Warn("twilio webhook signature rejected",
				zap.String("remote_addr", r.RemoteAddr),
			)
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}
	}

	from := r.PostForm.Get("From")
	body := r.PostForm.Get("Body")
	if from == "" || body == "" {
		h.countWebhook("twilio", "bad_request")
		http.Error(w, "From and Body are required", http.StatusBadRequest)
		return
	}

	prospectID, ok := h.manager.ProspectIDByPhone(from)
	if !ok {
		// Unknown senders get no reply; acknowledging would invite spam.
		h.countWebhook("twilio", "unknown_sender")
		h.logger.Info("sms from unknown number",
			zap.String("from", sanitize.Phone(from)),
		)
		h.writeTwiML(w, "")
		return
	}

	result := h.manager.ProcessResponse(r.Context(), prospectID, body)
	if result == nil {
		h.countWebhook("twilio", "unknown_prospect")
		h.writeTwiML(w, "")
		return
	}
	h.auditResult("twilio", prospectID, result)

	reply := result.Reply
	if !result.Matched && h.drafter != nil {
		reply = h.draftReply(r.Context(), prospectID, body, reply)
	}

	h.countWebhook("twilio", "processed")
	h.writeTwiML(w, reply)
}

// draftReply asks the AI drafter for a better answer than the canned
// fallback. On any failure the canned reply stands.
func (h *WebhookHandler) draftReply(ctx context.Context, prospectID, message, fallback string) string {
	rec, _, ok := h.manager.Record(prospectID)
	if !ok {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	reply, err := h.drafter.SuggestReply(ctx, &rec, message)
	if err != nil || reply == "" {
		h.logger.Warn("ai reply draft failed, using canned fallback",
			zap.String("prospect_id", prospectID),
			zap.Error(err),
		)
		return fallback
	}
	return reply
}

func (h *WebhookHandler) writeTwiML(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	xml.NewEncoder(w).Encode(twimlResponse{Message: message})
}

// HandleRetell processes a Retell call lifecycle webhook. Analyzed calls with
// a transcript run through the campaign handlers like an SMS reply would, so
// a prospect who agreed to a time on the phone still gets booked.
func (h *WebhookHandler) HandleRetell(w http.ResponseWriter, r *http.Request) {
	if h.retell == nil {
		http.Error(w, "voice webhooks not configured", http.StatusNotFound)
		return
	}

	if !h.retell.ValidateWebhook(r) {
		h.countWebhook("retell", "invalid_signature")
		h.auditRejection("retell", r.RemoteAddr, "invalid signature")
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	payload, err := h.retell.ParseWebhook(r)
	if err != nil {
		h.countWebhook("retell", "bad_request")
		h.logger.Warn("retell webhook parse failed", zap.Error(err))
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if payload.Event != retell.EventCallAnalyzed || payload.Call.Transcript == "" {
		h.countWebhook("retell", "ignored")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	prospectID, ok := h.manager.ProspectIDByPhone(payload.Call.ToNumber)
	if !ok {
		h.countWebhook("retell", "unknown_prospect")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	result := h.manager.ProcessResponse(r.Context(), prospectID, payload.Call.Transcript)
	h.countWebhook("retell", "processed")
	if result != nil {
		h.auditResult("retell", prospectID, result)
	}

	h.logger.Info("retell call processed",
		zap.String("prospect_id", prospectID),
		zap.String("call_id", payload.Call.CallID),
		zap.Bool("matched", result != nil && result.Matched),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *WebhookHandler) countWebhook(source, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordWebhook(source, outcome)
	}
}

func (h *WebhookHandler) auditRejection(source, remoteAddr, reason string) {
	if h.audit != nil {
		h.audit.WebhookRejected(source, remoteAddr, reason)
	}
}

// auditResult records the compliance-relevant outcomes of an inbound
// message: opt-outs and bookings.
func (h *WebhookHandler) auditResult(source, prospectID string, result *sdr.ResponseResult) {
	if h.audit == nil {
		return
	}
	if result.Action == domain.ActionMarkInvalid {
		h.audit.ProspectOptedOut(prospectID, source)
	}
	if result.Appointment != nil {
		h.audit.AppointmentBooked(prospectID, result.Appointment.ID.String(), source)
	}
}
