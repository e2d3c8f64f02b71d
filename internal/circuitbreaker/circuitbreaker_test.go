package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/clock"
)

var errProvider = errors.New("provider unavailable")

func newTestBreaker(mock *clock.Mock) *CircuitBreaker {
	cfg := &Config{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		OpenTimeout:         30 * time.Second,
		HalfOpenMaxRequests: 2,
		Clock:               mock,
	}
	return New("test", cfg, zap.NewNop())
}

func fail(context.Context) error { return errProvider }
func succeed(context.Context) error { return nil }

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	mock := clock.NewMock(time.Now())
	cb := newTestBreaker(mock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := cb.Execute(ctx, fail); !errors.Is(err, errProvider) {
			t.Fatalf("attempt %d: expected provider error, got %v", i, err)
		}
	}

	if cb.State() != StateOpen {
		t.Fatalf("expected open state, got %s", cb.State())
	}

	if err := cb.Execute(ctx, succeed); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen while open, got %v", err)
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	mock := clock.NewMock(time.Now())
	cb := newTestBreaker(mock)
	ctx := context.Background()

	cb.Execute(ctx, fail)
	cb.Execute(ctx, fail)
	cb.Execute(ctx, succeed)
	cb.Execute(ctx, fail)
	cb.Execute(ctx, fail)

	if cb.State() != StateClosed {
		t.Errorf("expected closed state after interleaved success, got %s", cb.State())
	}
}

func TestHalfOpenRecovery(t *testing.T) {
	mock := clock.NewMock(time.Now())
	cb := newTestBreaker(mock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cb.Execute(ctx, fail)
	}
	if !cb.IsOpen() {
		t.Fatal("expected open circuit")
	}

	mock.Advance(31 * time.Second)

	// First probe transitions to half-open
	if err := cb.Execute(ctx, succeed); err != nil {
		t.Fatalf("expected probe to pass, got %v", err)
	}
	if err := cb.Execute(ctx, succeed); err != nil {
		t.Fatalf("expected second probe to pass, got %v", err)
	}

	if cb.State() != StateClosed {
		t.Errorf("expected closed after recovery, got %s", cb.State())
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	mock := clock.NewMock(time.Now())
	cb := newTestBreaker(mock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cb.Execute(ctx, fail)
	}
	mock.Advance(31 * time.Second)

	if err := cb.Execute(ctx, fail); !errors.Is(err, errProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}

	if cb.State() != StateOpen {
		t.Errorf("expected circuit reopened, got %s", cb.State())
	}
}

func TestHalfOpenLimitsProbes(t *testing.T) {
	mock := clock.NewMock(time.Now())
	cb := newTestBreaker(mock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cb.Execute(ctx, fail)
	}
	mock.Advance(31 * time.Second)

	// HalfOpenMaxRequests is 2; SuccessThreshold is 2, so two slow successes
	// would close it. Use a blocking-style check instead: issue probes that
	// neither succeed nor fail before the limit is consulted.
	probes := 0
	slow := func(context.Context) error {
		probes++
		return errProvider
	}

	cb.Execute(ctx, slow)
	if probes != 1 {
		t.Fatalf("expected one probe, got %d", probes)
	}
	// Failure during half-open reopened the circuit immediately.
	if err := cb.Execute(ctx, slow); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCancellationDoesNotTrip(t *testing.T) {
	mock := clock.NewMock(time.Now())
	cb := newTestBreaker(mock)
	ctx := context.Background()

	cancelled := func(context.Context) error { return context.Canceled }
	for i := 0; i < 5; i++ {
		cb.Execute(ctx, cancelled)
	}

	if cb.State() != StateClosed {
		t.Errorf("expected closed state despite cancellations, got %s", cb.State())
	}
}

func TestCountsAsFailure(t *testing.T) {
	if CountsAsFailure(nil) {
		t.Error("nil should not count")
	}
	if CountsAsFailure(context.Canceled) {
		t.Error("cancellation should not count")
	}
	if CountsAsFailure(ErrCircuitOpen) {
		t.Error("breaker errors should not count")
	}
	if !CountsAsFailure(errProvider) {
		t.Error("provider errors should count")
	}
}
