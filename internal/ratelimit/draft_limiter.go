// Package ratelimit provides rate limiting for AI cost control.
package ratelimit

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/clock"
)

// DraftLimiter caps how often the engine asks the AI to draft a reply, so
// a burst of unmatched inbound messages cannot run up the API bill. Every
// matched message is answered from the campaign rules and never touches
// this limiter.
type DraftLimiter struct {
	mu sync.RWMutex

	maxPerMinute  int
	maxPerHour    int
	maxPerDay     int
	maxConcurrent int

	minuteBucket  *tokenBucket
	hourBucket    *tokenBucket
	dayBucket     *tokenBucket
	currentActive int

	totalRequests int64
	totalRejected int64

	clk    clock.Clock
	logger *zap.Logger
}

// DraftLimiterConfig holds configuration for the draft limiter.
type DraftLimiterConfig struct {
	MaxPerMinute  int
	MaxPerHour    int
	MaxPerDay     int
	MaxConcurrent int
	Clock         clock.Clock
}

// DefaultDraftLimiterConfig returns the default cost-control limits.
func DefaultDraftLimiterConfig() *DraftLimiterConfig {
	return &DraftLimiterConfig{
		MaxPerMinute:  10,
		MaxPerHour:    100,
		MaxPerDay:     500,
		MaxConcurrent: 5,
	}
}

// NewDraftLimiter creates a draft rate limiter.
func NewDraftLimiter(cfg *DraftLimiterConfig, logger *zap.Logger) *DraftLimiter {
	if cfg == nil {
		cfg = DefaultDraftLimiterConfig()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	now := clk.Now()
	return &DraftLimiter{
		maxPerMinute:  cfg.MaxPerMinute,
		maxPerHour:    cfg.MaxPerHour,
		maxPerDay:     cfg.MaxPerDay,
		maxConcurrent: cfg.MaxConcurrent,
		minuteBucket:  newTokenBucket(cfg.MaxPerMinute, time.Minute, now),
		hourBucket:    newTokenBucket(cfg.MaxPerHour, time.Hour, now),
		dayBucket:     newTokenBucket(cfg.MaxPerDay, 24*time.Hour, now),
		clk:           clk,
		logger:        logger,
	}
}

// ErrLimitExceeded is returned when any draft budget is exhausted.
var ErrLimitExceeded = errors.New("draft rate limit exceeded")

// Acquire claims a draft slot. The caller must Release after the AI call
// finishes, success or not.
func (dl *DraftLimiter) Acquire() error {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	dl.totalRequests++
	now := dl.clk.Now()

	if dl.currentActive >= dl.maxConcurrent {
		dl.reject("concurrent limit")
		return ErrLimitExceeded
	}
	if !dl.minuteBucket.tryAcquire(now) {
		dl.reject("minute limit")
		return ErrLimitExceeded
	}
	if !dl.hourBucket.tryAcquire(now) {
		dl.minuteBucket.release()
		dl.reject("hour limit")
		return ErrLimitExceeded
	}
	if !dl.dayBucket.tryAcquire(now) {
		dl.minuteBucket.release()
		dl.hourBucket.release()
		dl.reject("day limit")
		return ErrLimitExceeded
	}

	dl.currentActive++
	return nil
}

// Release returns a concurrency slot after a draft completes.
func (dl *DraftLimiter) Release() {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if dl.currentActive > 0 {
		dl.currentActive--
	}
}

func (dl *DraftLimiter) reject(reason string) {
	dl.totalRejected++
	dl.logger.Warn("draft rate limit exceeded",
		zap.String("reason", reason),
		zap.Int64("total_rejected", dl.totalRejected),
	)
}

// Stats returns current limiter statistics.
func (dl *DraftLimiter) Stats() DraftLimiterStats {
	dl.mu.RLock()
	defer dl.mu.RUnlock()

	return DraftLimiterStats{
		CurrentActive:   dl.currentActive,
		MaxConcurrent:   dl.maxConcurrent,
		MinuteRemaining: dl.minuteBucket.remaining(),
		HourRemaining:   dl.hourBucket.remaining(),
		DayRemaining:    dl.dayBucket.remaining(),
		TotalRequests:   dl.totalRequests,
		TotalRejected:   dl.totalRejected,
	}
}

// DraftLimiterStats holds limiter statistics.
type DraftLimiterStats struct {
	CurrentActive   int   `json:"current_active"`
	MaxConcurrent   int   `json:"max_concurrent"`
	MinuteRemaining int   `json:"minute_remaining"`
	HourRemaining   int   `json:"hour_remaining"`
	DayRemaining    int   `json:"day_remaining"`
	TotalRequests   int64 `json:"total_requests"`
	TotalRejected   int64 `json:"total_rejected"`
}

// tokenBucket is a fixed-window token bucket.
type tokenBucket struct {
	max       int
	period    time.Duration
	tokens    int
	lastReset time.Time
}

func newTokenBucket(maxTokens int, period time.Duration, now time.Time) *tokenBucket {
	return &tokenBucket{
		max:       maxTokens,
		period:    period,
		tokens:    maxTokens,
		lastReset: now,
	}
}

func (b *tokenBucket) tryAcquire(now time.Time) bool {
	b.refill(now)
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

func (b *tokenBucket) release() {
	if b.tokens < b.max {
		b.tokens++
	}
}

func (b *tokenBucket) remaining() int {
	return b.tokens
}

func (b *tokenBucket) refill(now time.Time) {
	if now.Sub(b.lastReset) >= b.period {
		b.tokens = b.max
		b.lastReset = now
	}
}
