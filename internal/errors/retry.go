package errors

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"toolgauge/internal/logging"
)

// RetryConfig configures bounded retry with exponential backoff.
type RetryConfig struct {
	MaxAttempts  int           // total number of calls, including the first (default: 3)
	BaseDelay    time.Duration // delay before the second attempt (default: 1s)
	MaxDelay     time.Duration // cap on the backoff delay (default: 30s)
	JitterFactor float64       // randomization, 0.25 = ±25% (default: 0.25)
}

// DefaultRetryConfig returns sensible defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		BaseDelay:    1 * time.Second,
		MaxDelay:     30 * time.Second,
		JitterFactor: 0.25,
	}
}

func (c RetryConfig) normalized() RetryConfig {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 1 * time.Second
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	return c
}

// RetryWithResult executes fn until it succeeds, returns a non-transient
// error, or the attempt budget is exhausted. fn is called at most
// config.MaxAttempts times.
func RetryWithResult[T any](ctx context.Context, config RetryConfig, logger logging.Logger, fn func(ctx context.Context) (T, error)) (T, error) {
	logger = logging.OrNop(logger)
	config = config.normalized()

	var zero T
	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("retry aborted: %w", ctx.Err())
		default:
		}

		result, err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				logger.Info("succeeded on attempt %d/%d", attempt, config.MaxAttempts)
			}
			return result, nil
		}
		lastErr = err

		if !IsTransient(err) {
			logger.Debug("attempt %d failed with non-transient error: %v", attempt, err)
			return zero, err
		}
		if attempt == config.MaxAttempts {
			break
		}

		delay := backoffDelay(attempt, config, err)
		logger.Debug("attempt %d/%d failed (%v), retrying in %v", attempt, config.MaxAttempts, err, delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, fmt.Errorf("retry aborted during backoff: %w", ctx.Err())
		}
	}

	logger.Warn("retry budget (%d attempts) exhausted: %v", config.MaxAttempts, lastErr)
	return zero, fmt.Errorf("max attempts (%d) exceeded: %w", config.MaxAttempts, lastErr)
}

// backoffDelay computes the delay after the given 1-based attempt, honoring
// a server-provided Retry-After hint over the exponential schedule.
func backoffDelay(attempt int, config RetryConfig, lastErr error) time.Duration {
	var transient *TransientError
	if errors.As(lastErr, &transient) && transient.RetryAfter > 0 {
		hint := time.Duration(transient.RetryAfter) * time.Second
		if hint > config.MaxDelay {
			hint = config.MaxDelay
		}
		return hint
	}

	delay := time.Duration(float64(config.BaseDelay) * math.Pow(2, float64(attempt-1)))
	if delay > config.MaxDelay {
		delay = config.MaxDelay
	}
	if config.JitterFactor > 0 {
		jitter := (rand.Float64()*2 - 1) * config.JitterFactor * float64(delay)
		delay += time.Duration(jitter)
		if delay < 0 {
			delay = 0
		}
	}
	return delay
}
