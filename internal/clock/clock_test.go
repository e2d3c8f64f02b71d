package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	c := New()

	before := time.Now()
	got := c.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("Now() = %v, want between %v and %v", got, before, after)
	}
}

func TestRealClock_NowUTC(t *testing.T) {
	c := New()

	got := c.NowUTC()

	if got.Location() != time.UTC {
		t.Errorf("NowUTC() location = %v, want UTC", got.Location())
	}
}

func TestRealClock_Since(t *testing.T) {
	c := New()
	past := time.Now().Add(-time.Second)

	got := c.Since(past)

	if got < time.Second {
		t.Errorf("Since() = %v, want >= 1s", got)
	}
}

func TestMock_Now(t *testing.T) {
	fixed := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	m := NewMock(fixed)

	got := m.Now()

	if !got.Equal(fixed) {
		t.Errorf("Now() = %v, want %v", got, fixed)
	}
}

func TestMock_NowUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	fixed := time.Date(2025, 3, 3, 10, 0, 0, 0, loc)
	m := NewMock(fixed)

	got := m.NowUTC()

	if got.Location() != time.UTC {
		t.Errorf("NowUTC() location = %v, want UTC", got.Location())
	}
}

func TestMock_Set(t *testing.T) {
	initial := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	newTime := time.Date(2025, 6, 20, 18, 30, 0, 0, time.UTC)
	m := NewMock(initial)

	m.Set(newTime)
	got := m.Now()

	if !got.Equal(newTime) {
		t.Errorf("Now() after Set() = %v, want %v", got, newTime)
	}
}

func TestMock_Advance(t *testing.T) {
	initial := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	m := NewMock(initial)

	m.Advance(24 * time.Hour)
	got := m.Now()

	expected := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	if !got.Equal(expected) {
		t.Errorf("Now() after Advance(24h) = %v, want %v", got, expected)
	}
}

func TestMock_Since(t *testing.T) {
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	past := time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC)
	m := NewMock(now)

	got := m.Since(past)

	if got != time.Hour {
		t.Errorf("Since() = %v, want 1h", got)
	}
}

func TestTomorrow(t *testing.T) {
	m := NewMock(time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC))

	got := Tomorrow(m)

	expected := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	if !got.Equal(expected) {
		t.Errorf("Tomorrow() = %v, want %v", got, expected)
	}
	if got.Weekday() != time.Tuesday {
		t.Errorf("Tomorrow() weekday = %v, want Tuesday", got.Weekday())
	}
}

func TestMock_Concurrent(t *testing.T) {
	m := NewMock(time.Now())

	done := make(chan struct{})

	go func() {
		for i := 0; i < 1000; i++ {
			_ = m.Now()
		}
		done <- struct{}{}
	}()

	go func() {
		for i := 0; i < 1000; i++ {
			m.Advance(time.Millisecond)
		}
		done <- struct{}{}
	}()

	<-done
	<-done
}
