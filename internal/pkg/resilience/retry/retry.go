// Package retry wraps the retry-go package behind a small interface with
// functional options, applying exponential backoff between attempts.
//
// Usage:
//
//	r := retry.New(retry.WithAttempts(5))
//	err := r.Execute(ctx, func() error { return fetchSomething() })
//
// Errors wrapped with Unrecoverable abort the loop immediately, which is how
// callers exclude conditions like "block not found" from being retried.
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes operations with automatic retry logic on failure.
type Retry interface {
	// Execute runs operation, retrying on error according to the configured
	// attempts and delays. Cancellation of ctx stops the loop and returns
	// the context error. The operation should be idempotent.
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts    uint          // total attempts, including the first
	delay       time.Duration // base delay before the first retry
	maxDelay    time.Duration // cap for the backoff growth
	lastErrOnly bool          // report only the final attempt's error
}

// Option configures the retry mechanism.
type Option func(*config)

type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New returns a Retry configured with the provided options. Defaults:
// 3 attempts, 1s base delay, 5s max delay, last error only.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{cfg: cfg}
}

// Execute implements the Retry interface.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	return retry.Do(operation,
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	)
}

// Unrecoverable marks err as terminal: Execute returns it without further
// attempts. Unwrap-compatible, so errors.Is still matches the original error.
func Unrecoverable(err error) error {
	return retry.Unrecoverable(err)
}

// WithAttempts sets the total number of attempts, including the initial one.
// Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay before the first retry. Subsequent delays
// grow exponentially. Default: 1 second.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential backoff delay. Default: 5 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly controls whether only the final attempt's error is
// returned (true, the default) or all attempt errors combined (false).
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}
