// Package shutdown coordinates graceful shutdown of the HTTP server, the
// sweep loop, and channel clients.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Phase orders shutdown work. Hooks in the same phase run concurrently;
// phases run strictly in declaration order.
type Phase int

const (
	// PhaseDrain stops accepting new work and drains in-flight requests.
	PhaseDrain Phase = iota
	// PhaseWorkers stops background loops (the no-show sweeper).
	PhaseWorkers
	// PhaseCleanup closes connections and flushes buffers.
	PhaseCleanup

	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseDrain:
		return "drain"
	case PhaseWorkers:
		return "workers"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

type hook struct {
	name string
	fn   func(ctx context.Context) error
}

// Coordinator runs registered shutdown hooks in phases under one total
// timeout. Shutdown is idempotent; the first call runs the hooks and every
// call observes the same result.
type Coordinator struct {
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	hooks [phaseCount][]hook

	once     sync.Once
	initiate chan struct{}
	done     chan struct{}
	err      error
}

// NewCoordinator creates a shutdown coordinator with the given total timeout.
func NewCoordinator(timeout time.Duration, logger *zap.Logger) *Coordinator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Coordinator{
		timeout:  timeout,
		logger:   logger,
		initiate: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// RegisterFunc adds a named shutdown hook to a phase.
func (c *Coordinator) RegisterFunc(phase Phase, name string, fn func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks[phase] = append(c.hooks[phase], hook{name: name, fn: fn})
}

// ShutdownCh returns a channel closed when shutdown is initiated. Background
// loops select on it to learn they should exit.
func (c *Coordinator) ShutdownCh() <-chan struct{} {
	return c.initiate
}

// Shutdown runs all hooks and returns the combined hook errors, or the
// caller's context error if it expires first.
func (c *Coordinator) Shutdown(ctx context.Context) error {
	c.once.Do(func() {
		close(c.initiate)
		go c.run()
	})

	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Coordinator) run() {
	defer close(c.done)

	// Fresh context so the hooks get the full timeout even when the
	// caller's context is already near its deadline.
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	c.logger.Info("starting graceful shutdown", zap.Duration("timeout", c.timeout))

	var errs []error
	for phase := Phase(0); phase < phaseCount; phase++ {
		c.mu.Lock()
		hooks := c.hooks[phase]
		c.mu.Unlock()
		if len(hooks) == 0 {
			continue
		}

		c.logger.Info("shutdown phase",
			zap.String("phase", phase.String()),
			zap.Int("hooks", len(hooks)),
		)
		errs = append(errs, c.runPhase(ctx, hooks)...)

		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("phase %s: %w", phase, ctx.Err()))
			break
		}
	}

	c.err = errors.Join(errs...)
	if c.err != nil {
		c.logger.Error("graceful shutdown finished with errors", zap.Error(c.err))
		return
	}
	c.logger.Info("graceful shutdown complete")
}

func (c *Coordinator) runPhase(ctx context.Context, hooks []hook) []error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, h := range hooks {
		wg.Add(1)
		go func(h hook) {
			defer wg.Done()
			start := time.Now()
			if err := h.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
				mu.Unlock()
				return
			}
			c.logger.Debug("shutdown hook complete",
				zap.String("hook", h.name),
				zap.Duration("duration", time.Since(start)),
			)
		}(h)
	}
	wg.Wait()
	return errs
}
