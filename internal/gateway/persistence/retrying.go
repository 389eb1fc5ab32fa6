package persistence

import (
	"context"
	"errors"
	"time"

	"furniture-delivery/internal/apperr"
	"furniture-delivery/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig describes Retrier behaviour.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig waits 2s then 4s between three attempts.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 3, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second}
}

// Retrier runs single database calls with bounded retry and exponential backoff.
type Retrier struct {
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	wait    func(context.Context, time.Duration) bool
}

// NewRetrier creates a Retrier. retries may be nil.
func NewRetrier(logger logx.Logger, retries counter, cfg RetryConfig) *Retrier {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Retrier{logger: logger, retries: retries, cfg: cfg, wait: sleepWithContext}
}

// Single returns a copy of r that makes exactly one attempt.
func (r *Retrier) Single() *Retrier {
	cp := *r
	cp.cfg.MaxAttempts = 1
	return &cp
}

// Do runs fn until it succeeds, fails permanently or runs out of attempts.
// Attempts are strictly sequential. Exhausted transient failures come back as a
// *apperr.StoreError wrapping the last driver error.
func (r *Retrier) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	var (
		lastErr error
		made    int
	)
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		made = attempt
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = Classify(err)
		if !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == r.cfg.MaxAttempts || ctx.Err() != nil {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("store retry",
			logx.String("op", op),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !r.wait(ctx, delay) {
			break
		}
	}
	var se *apperr.StoreError
	if errors.As(lastErr, &se) && se.Kind == apperr.KindTransient {
		se.Op = op
		se.Attempts = made
		return se
	}
	return &apperr.StoreError{Kind: apperr.KindTransient, Op: op, Attempts: made, Err: lastErr}
}

// DoValue is Do for calls that produce a value.
func DoValue[T any](ctx context.Context, r *Retrier, op string, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := r.Do(ctx, op, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// backoff computes the delay after the given attempt: base, 2*base, 4*base, ...
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if max > 0 && d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
