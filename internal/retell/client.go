// Package retell provides a client for the Retell AI voice platform: placing
// outbound agent calls, dropping voicemails, and validating inbound webhooks.
// See: https://docs.retellai.com/api-references
package retell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/circuitbreaker"
	"github.com/brightsmile/sdrengine/internal/sanitize"
)

const (
	// DefaultBaseURL is the default Retell API endpoint.
	DefaultBaseURL = "https://api.retellai.com"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Config holds Retell client configuration.
type Config struct {
	APIKey        string
	AgentID       string
	FromNumber    string
	WebhookSecret string
	BaseURL       string
	Timeout       time.Duration
}

// Client is the Retell AI API client. Implements dispatch.VoiceAgent.
type Client struct {
	config         *Config
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	logger         *zap.Logger
}

// New creates a new Retell client.
func New(cfg *Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		circuitBreaker: circuitbreaker.New("retell-api", nil, logger),
		logger:         logger,
	}
}

// createCallRequest is the payload for the create-phone-call endpoint.
type createCallRequest struct {
	FromNumber     string            `json:"from_number"`
	ToNumber       string            `json:"to_number"`
	AgentID        string            `json:"override_agent_id,omitempty"`
	DynamicVars    map[string]string `json:"retell_llm_dynamic_variables,omitempty"`
	VoicemailOnly  bool              `json:"voicemail_detection_only,omitempty"`
}

// createCallResponse is the subset of the response we care about.
type createCallResponse struct {
	CallID     string `json:"call_id"`
	CallStatus string `json:"call_status"`
}

// PlaceCall starts an outbound AI agent call. The prompt is passed to the
// agent as a dynamic variable so the configured agent can use it as context.
func (c *Client) PlaceCall(ctx context.Context, to, prompt string) error {
	return c.createCall(ctx, to, prompt, false)
}

// DropVoicemail places a call that only leaves a voicemail message.
func (c *Client) DropVoicemail(ctx context.Context, to, message string) error {
	return c.createCall(ctx, to, message, true)
}

func (c *Client) createCall(ctx context.Context, to, prompt string, voicemailOnly bool) error {
	return c.circuitBreaker.Execute(ctx, func(ctx context.Context) error {
		reqBody := createCallRequest{
			FromNumber:    c.config.FromNumber,
			ToNumber:      to,
			AgentID:       c.config.AgentID,
			VoicemailOnly: voicemailOnly,
			DynamicVars: map[string]string{
				"call_context": prompt,
			},
		}

		payload, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		endpoint := strings.TrimSuffix(c.config.BaseURL, "/") + "/v2/create-phone-call"
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
		req.Header.Set("Content-Type", "application/json")

		c.logger.Debug("retell create call",
			zap.String("to", sanitize.Phone(to)),
			zap.Bool("voicemail_only", voicemailOnly),
		)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= 400 {
			return fmt.Errorf("retell API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		}

		var call createCallResponse
		if err := json.Unmarshal(respBody, &call); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}

		c.logger.Debug("retell call created",
			zap.String("call_id", call.CallID),
			zap.String("status", call.CallStatus),
		)
		return nil
	})
}
