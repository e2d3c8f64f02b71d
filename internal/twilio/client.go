// Package twilio provides a client for the Twilio Messages API and request
// signature validation for inbound SMS webhooks.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/circuitbreaker"
	"github.com/brightsmile/sdrengine/internal/sanitize"
)

const (
	// DefaultBaseURL is the default Twilio API endpoint.
	DefaultBaseURL = "https://api.twilio.com/2010-04-01"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is the Twilio Messages API client.
type Client struct {
	accountSID     string
	authToken      string
	fromNumber     string
	baseURL        string
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	logger         *zap.Logger
}

// Config holds configuration for the Twilio client.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string
	Timeout    time.Duration
}

// New creates a new Twilio client.
func New(cfg *Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		fromNumber: cfg.FromNumber,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		circuitBreaker: circuitbreaker.New("twilio-api", nil, logger),
		logger:         logger,
	}
}

// APIError represents an error response from the Twilio API.
type APIError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twilio API error %d: %s", e.Code, e.Message)
}

// messageResponse is the subset of the Messages API response we care about.
type messageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// SendSMS sends a text message through the Twilio Messages API.
// Implements dispatch.SMSSender.
func (c *Client) SendSMS(ctx context.Context, to, body string) error {
	return c.circuitBreaker.Execute(ctx, func(ctx context.Context) error {
		return c.sendMessage(ctx, to, body)
	})
}

func (c *Client) sendMessage(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.fromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("twilio send sms",
		zap.String("to", sanitize.Phone(to)),
		zap.Int("body_len", len(body)),
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
		var apiErr APIError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			return &apiErr
		}
		return fmt.Errorf("twilio API returned status %d", resp.StatusCode)
	}

	var msg messageResponse
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("twilio message accepted",
		zap.String("sid", msg.SID),
		zap.String("status", msg.Status),
	)
	return nil
}
