// Package ai drafts replies for prospect messages that no campaign handler
// matched, using the Anthropic API.
package ai

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
	"github.com/brightsmile/sdrengine/internal/config"
	"github.com/brightsmile/sdrengine/internal/domain"
	"github.com/brightsmile/sdrengine/internal/ratelimit"
)

const apiURL = "https://api.anthropic.com/v1/messages"

// Responder generates fallback replies via the Anthropic API. Drafts pass
// through a rate limiter so unmatched message bursts stay within budget.
type Responder struct {
	apiKey         string
	model          string
	officeName     string
	baseURL        string
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *ratelimit.DraftLimiter
	logger         *zap.Logger
}

// NewResponder creates a Responder. A nil limiter means drafting is
// unthrottled.
func NewResponder(cfg *config.AnthropicConfig, officeName string, limiter *ratelimit.DraftLimiter, logger *zap.Logger) *Responder {
	return &Responder{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		officeName: officeName,
		baseURL:    apiURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		circuitBreaker: circuitbreaker.New("anthropic-api", nil, logger),
		limiter:        limiter,
		logger:         logger,
	}
}

// apiRequest represents a request to the Anthropic Messages API.
type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiResponse represents a response from the Anthropic Messages API.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// SuggestReply drafts a short SMS reply for a prospect message that matched
// no keyword handler. Callers fall back to the canned reply on error.
func (r *Responder) SuggestReply(ctx context.Context, rec *domain.ProspectRecord, message string) (string, error) {
	if r.limiter != nil {
		if err := r.limiter.Acquire(); err != nil {
			return "", fmt.Errorf("draft budget exhausted: %w", err)
		}
		defer r.limiter.Release()
	}

	prompt := r.buildPrompt(rec, message)

	var result string
	err := r.circuitBreaker.Execute(ctx, func(ctx context.Context) error {
		var execErr error
		result, execErr = r.send(ctx, prompt)
		return execErr
	})
	if err != nil {
		return "", fmt.Errorf("failed to draft reply: %w", err)
	}

	return strings.TrimSpace(result), nil
}

func (r *Responder) send(ctx context.Context, prompt string) (string, error) {
	reqBody := apiRequest{
		Model:     r.model,
		MaxTokens: 512,
		System: fmt.Sprintf(
			"You are an SDR assistant for %s, a dental office. Write a single short, friendly SMS reply. Never invent appointment details or pricing. If unsure, suggest the prospect call the office.",
			r.officeName,
		),
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", r.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiError
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("anthropic API error: %s - %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("anthropic API error: status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}

	r.logger.Debug("reply drafted",
		zap.Int("input_tokens", apiResp.Usage.InputTokens),
		zap.Int("output_tokens", apiResp.Usage.OutputTokens),
	)

	return apiResp.Content[0].Text, nil
}

func (r *Responder) buildPrompt(rec *domain.ProspectRecord, message string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A prospect replied to an outreach message and none of our canned handlers matched.\n\n")
	if rec != nil {
		if rec.Prospect.FirstName != "" {
			fmt.Fprintf(&b, "Prospect first name: %s\n", rec.Prospect.FirstName)
		}
		fmt.Fprintf(&b, "Current campaign: %s\n", rec.CurrentCampaign)
	}
	fmt.Fprintf(&b, "\nTheir message:\n%s\n\nWrite the reply text only, no preamble:", message)

	return b.String()
}
