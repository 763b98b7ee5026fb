package backoff

import (
	"context"
	"time"
)

// Policy describes a bounded exponential backoff schedule. Retries are
// counted from 1, so the first retry waits exactly Delay, the second
// waits twice that, and so on.
type Policy struct {
	MaxRetries int
	Delay      time.Duration
}

// DelayFor returns the wait before the given retry attempt.
func (p Policy) DelayFor(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	return p.Delay << (attempt - 1)
}

// Wait sleeps for DelayFor(attempt) or until ctx is done.
func (p Policy) Wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(p.DelayFor(attempt))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
