package retell

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// SignatureHeader is the HTTP header carrying the Retell webhook signature.
const SignatureHeader = "X-Retell-Signature"

// Webhook event types.
const (
	EventCallStarted  = "call_started"
	EventCallEnded    = "call_ended"
	EventCallAnalyzed = "call_analyzed"
)

// WebhookPayload is the inbound webhook envelope.
type WebhookPayload struct {
	Event string      `json:"event"`
	Call  WebhookCall `json:"call"`
}

// WebhookCall carries the call details inside a webhook payload.
type WebhookCall struct {
	CallID         string       `json:"call_id"`
	ToNumber       string       `json:"to_number"`
	FromNumber     string       `json:"from_number"`
	CallStatus     string       `json:"call_status"`
	Transcript     string       `json:"transcript"`
	StartTimestamp int64        `json:"start_timestamp"`
	EndTimestamp   int64        `json:"end_timestamp"`
	Analysis       CallAnalysis `json:"call_analysis"`
}

// CallAnalysis is Retell's post-call analysis summary.
type CallAnalysis struct {
	CallSummary    string `json:"call_summary"`
	UserSentiment  string `json:"user_sentiment"`
	CallSuccessful bool   `json:"call_successful"`
}

// ValidateWebhook verifies the webhook signature (HMAC-SHA256 of the raw
// body, hex encoded). The request body is restored for later parsing.
func (c *Client) ValidateWebhook(r *http.Request) bool {
	if c.config.WebhookSecret == "" {
		c.logger.Warn("webhook secret not configured, skipping signature validation")
		return true
	}

	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		c.logger.Warn("webhook missing signature header",
			zap.String("remote_addr", r.RemoteAddr),
		)
		return false
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		c.logger.Error("failed to read webhook body for validation", zap.Error(err))
		return false
	}
	// Restore the body so ParseWebhook can read it
	r.Body = io.NopCloser(bytes.NewReader(body))

	mac := hmac.New(sha256.New, []byte(c.config.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		c.logger.Warn("webhook signature mismatch",
			zap.String("remote_addr", r.RemoteAddr),
		)
		return false
	}

	return true
}

// ParseWebhook decodes a webhook request into its payload.
func (c *Client) ParseWebhook(r *http.Request) (*WebhookPayload, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	defer r.Body.Close()

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	if payload.Call.CallID == "" {
		return nil, fmt.Errorf("missing call_id in webhook")
	}

	c.logger.Debug("parsed retell webhook",
		zap.String("event", payload.Event),
		zap.String("call_id", payload.Call.CallID),
	)

	return &payload, nil
}
