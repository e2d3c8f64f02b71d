// Package circuitbreaker protects outbound channel clients (SMS, voice, AI)
// from cascading failures when a provider degrades.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/clock"
)

// State represents the circuit breaker state.
type State int

const (
	StateClosed   State = iota // normal operation
	StateOpen                  // provider considered down, calls fail fast
	StateHalfOpen              // probing whether the provider recovered
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Errors returned by the circuit breaker.
var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)

// Config holds circuit breaker configuration.
type Config struct {
	// FailureThreshold is the number of consecutive failures before opening the circuit.
	FailureThreshold int
	// SuccessThreshold is the number of consecutive successes needed in half-open to close.
	SuccessThreshold int
	// OpenTimeout is how long the circuit stays open before testing recovery.
	OpenTimeout time.Duration
	// HalfOpenMaxRequests is the maximum number of requests allowed in half-open state.
	HalfOpenMaxRequests int
	// Clock supplies time; nil uses the real clock.
	Clock clock.Clock
}

// DefaultConfig returns sensible defaults for a provider client.
func DefaultConfig() *Config {
	return &Config{
		FailureThreshold:    5,
		SuccessThreshold:    3,
		OpenTimeout:         30 * time.Second,
		HalfOpenMaxRequests: 3,
	}
}

// CircuitBreaker gates calls to a single provider.
type CircuitBreaker struct {
	name   string
	cfg    *Config
	clk    clock.Clock
	logger *zap.Logger

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	probes    int
	openedAt  time.Time
}

// New creates a circuit breaker named after its provider.
func New(name string, cfg *Config, logger *zap.Logger) *CircuitBreaker {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CircuitBreaker{name: name, cfg: cfg, clk: clk, logger: logger, state: StateClosed}
}

// Execute runs fn under the circuit breaker's protection. When the circuit
// is open it returns ErrCircuitOpen without calling fn.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.allow(); err != nil {
		return err
	}
	err := fn(ctx)
	cb.observe(err)
	return err
}

// allow decides whether the next call may proceed, advancing open to
// half-open once the open timeout has elapsed.
func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.clk.Since(cb.openedAt) < cb.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		cb.transition(StateHalfOpen)
		cb.probes = 1
	case StateHalfOpen:
		if cb.probes >= cb.cfg.HalfOpenMaxRequests {
			return ErrTooManyRequests
		}
		cb.probes++
	}
	return nil
}

func (cb *CircuitBreaker) observe(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.successes++
		cb.failures = 0
		if cb.state == StateHalfOpen && cb.successes >= cb.cfg.SuccessThreshold {
			cb.transition(StateClosed)
			cb.logger.Info("circuit breaker closed", zap.String("name", cb.name))
		}
		return
	}
	if !CountsAsFailure(err) {
		return
	}

	cb.failures++
	cb.successes = 0

	// Any failure during a probe reopens immediately. In closed state the
	// threshold must be crossed first.
	if cb.state == StateHalfOpen || (cb.state == StateClosed && cb.failures >= cb.cfg.FailureThreshold) {
		cb.transition(StateOpen)
		cb.openedAt = cb.clk.Now()
		cb.logger.Warn("circuit breaker opened",
			zap.String("name", cb.name),
			zap.Error(err),
		)
	}
}

// transition resets per-state counters; callers hold the mutex.
func (cb *CircuitBreaker) transition(next State) {
	cb.state = next
	cb.failures = 0
	cb.successes = 0
	cb.probes = 0
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// IsOpen returns true if the circuit is open.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// CountsAsFailure reports whether an error should count against the circuit.
// Client-side cancellation does not indicate a provider problem.
func CountsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrTooManyRequests) {
		return false
	}
	return true
}
