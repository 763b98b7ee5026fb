package backoff

import (
	"context"
	"testing"
	"time"
)

func TestDelayForDoublesPerAttempt(t *testing.T) {
	p := Policy{MaxRetries: 3, Delay: time.Second}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
	}

	for _, c := range cases {
		if got := p.DelayFor(c.attempt); got != c.want {
			t.Fatalf("unexpected delay for attempt %d: got %v want %v", c.attempt, got, c.want)
		}
	}
}

func TestDelayForClampsLowAttempts(t *testing.T) {
	p := Policy{Delay: time.Second}

	if got := p.DelayFor(0); got != time.Second {
		t.Fatalf("expected attempt 0 to be treated as 1, got %v", got)
	}

	if got := p.DelayFor(-5); got != time.Second {
		t.Fatalf("expected negative attempt to be treated as 1, got %v", got)
	}
}

func TestWaitReturnsAfterDelay(t *testing.T) {
	p := Policy{Delay: time.Millisecond}

	start := time.Now()
	if err := p.Wait(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 2*time.Millisecond {
		t.Fatalf("expected wait of at least 2ms, got %v", elapsed)
	}
}

func TestWaitStopsOnCancelledContext(t *testing.T) {
	p := Policy{Delay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Wait(ctx, 1); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
