package ratelimit

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/clock"
)

func TestDraftLimiterAcquireRelease(t *testing.T) {
	dl := NewDraftLimiter(&DraftLimiterConfig{
		MaxPerMinute:  5,
		MaxPerHour:    100,
		MaxPerDay:     500,
		MaxConcurrent: 2,
	}, zap.NewNop())

	if err := dl.Acquire(); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	if err := dl.Acquire(); err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	if err := dl.Acquire(); err != ErrLimitExceeded {
		t.Errorf("third Acquire = %v, want ErrLimitExceeded (concurrent cap)", err)
	}

	dl.Release()
	if err := dl.Acquire(); err != nil {
		t.Errorf("Acquire after Release: %v", err)
	}
}

func TestDraftLimiterMinuteBudget(t *testing.T) {
	mock := clock.NewMock(time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC))
	dl := NewDraftLimiter(&DraftLimiterConfig{
		MaxPerMinute:  2,
		MaxPerHour:    100,
		MaxPerDay:     500,
		MaxConcurrent: 10,
		Clock:         mock,
	}, zap.NewNop())

	for i := 0; i < 2; i++ {
		if err := dl.Acquire(); err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
		dl.Release()
	}

	if err := dl.Acquire(); err != ErrLimitExceeded {
		t.Fatalf("Acquire over budget = %v, want ErrLimitExceeded", err)
	}

	// The window refills once a minute has passed.
	mock.Advance(61 * time.Second)
	if err := dl.Acquire(); err != nil {
		t.Errorf("Acquire after refill: %v", err)
	}
}

func TestDraftLimiterStats(t *testing.T) {
	dl := NewDraftLimiter(nil, zap.NewNop())

	if err := dl.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	stats := dl.Stats()
	if stats.CurrentActive != 1 {
		t.Errorf("CurrentActive = %d, want 1", stats.CurrentActive)
	}
	if stats.TotalRequests != 1 {
		t.Errorf("TotalRequests = %d, want 1", stats.TotalRequests)
	}
	if stats.MinuteRemaining != DefaultDraftLimiterConfig().MaxPerMinute-1 {
		t.Errorf("MinuteRemaining = %d", stats.MinuteRemaining)
	}
}
