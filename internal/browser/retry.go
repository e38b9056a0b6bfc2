package browser

import (
	"fmt"
	"time"
)

// Backoff is an explicit retry policy: the delay before attempt n+1 is
// n * BaseDelay * Multiplier, so waits grow linearly with the attempt
// number.
type Backoff struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64

	// sleep is swapped out by tests
	sleep func(time.Duration)
}

// DefaultBackoff is the policy the page objects retry flaky
// interactions with
func DefaultBackoff() Backoff {
	return Backoff{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		Multiplier:  1.0,
	}
}

// Delay returns the wait before re-running after the given 1-based
// attempt number
func (b Backoff) Delay(attempt int) time.Duration {
	return time.Duration(float64(attempt) * b.Multiplier * float64(b.BaseDelay))
}

// Retry invokes op until it succeeds or the policy's attempts are
// exhausted, returning the last captured error on exhaustion.
func Retry[T any](op func() (T, error), policy Backoff) (T, error) {
	var zero T

	if policy.MaxAttempts < 1 {
		return zero, fmt.Errorf("backoff policy needs at least one attempt, got %d", policy.MaxAttempts)
	}
	sleep := policy.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt < policy.MaxAttempts {
			sleep(policy.Delay(attempt))
		}
	}

	return zero, fmt.Errorf("operation failed after %d attempts: %w", policy.MaxAttempts, lastErr)
}

// RetryVoid is Retry for operations without a result value
func RetryVoid(op func() error, policy Backoff) error {
	_, err := Retry(func() (struct{}, error) {
		return struct{}{}, op()
	}, policy)
	return err
}
