package shutdown

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestShutdownRunsPhasesInOrder(t *testing.T) {
	c := NewCoordinator(5*time.Second, zap.NewNop())

	var mu sync.Mutex
	var order []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	c.RegisterFunc(PhaseCleanup, "db", record("db"))
	c.RegisterFunc(PhaseDrain, "http", record("http"))
	c.RegisterFunc(PhaseWorkers, "sweeper", record("sweeper"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	want := []string{"http", "sweeper", "db"}
	if len(order) != len(want) {
		t.Fatalf("expected %d shutdowns, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("phase order: got %v, want %v", order, want)
			break
		}
	}
}

func TestShutdownConcurrentWithinPhase(t *testing.T) {
	c := NewCoordinator(5*time.Second, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)
	// Both services block until the other has started, proving concurrency.
	barrier := func(context.Context) error {
		wg.Done()
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-time.After(2 * time.Second):
			return errors.New("peer never started")
		}
	}

	c.RegisterFunc(PhaseDrain, "a", barrier)
	c.RegisterFunc(PhaseDrain, "b", barrier)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}

func TestShutdownContinuesAfterServiceError(t *testing.T) {
	c := NewCoordinator(5*time.Second, zap.NewNop())

	cleanupRan := false
	c.RegisterFunc(PhaseDrain, "failing", func(context.Context) error {
		return errors.New("drain failed")
	})
	c.RegisterFunc(PhaseCleanup, "db", func(context.Context) error {
		cleanupRan = true
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := c.Shutdown(ctx)
	if err == nil {
		t.Fatal("expected the drain failure to surface")
	}
	if !strings.Contains(err.Error(), "failing") {
		t.Errorf("expected error to name the failing hook, got %v", err)
	}

	if !cleanupRan {
		t.Error("expected cleanup phase to run despite drain failure")
	}
}

func TestShutdownIdempotent(t *testing.T) {
	c := NewCoordinator(5*time.Second, zap.NewNop())

	calls := 0
	c.RegisterFunc(PhaseDrain, "once", func(context.Context) error {
		calls++
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c.Shutdown(ctx)
	c.Shutdown(ctx)

	if calls != 1 {
		t.Errorf("expected one shutdown call, got %d", calls)
	}
}

func TestShutdownChClosesOnInitiate(t *testing.T) {
	c := NewCoordinator(time.Second, zap.NewNop())

	select {
	case <-c.ShutdownCh():
		t.Fatal("shutdown channel closed before Shutdown called")
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	c.Shutdown(ctx)

	select {
	case <-c.ShutdownCh():
	default:
		t.Error("expected shutdown channel to be closed")
	}
}
