package llm

import (
	"context"
	"time"

	tgerrors "toolgauge/internal/errors"
	"toolgauge/internal/logging"
)

// retryClient wraps a Client with bounded exponential-backoff retry for
// transient failures (rate limits, timeouts, upstream 5xx).
type retryClient struct {
	underlying  Client
	retryConfig tgerrors.RetryConfig
	callTimeout time.Duration
	logger      logging.Logger
}

// NewRetryClient wraps client with retry logic. Every individual call gets
// its own deadline of callTimeout; an expired deadline is retried like a
// rate limit.
func NewRetryClient(client Client, retryConfig tgerrors.RetryConfig, callTimeout time.Duration, logger logging.Logger) Client {
	if callTimeout <= 0 {
		callTimeout = 60 * time.Second
	}
	return &retryClient{
		underlying:  client,
		retryConfig: retryConfig,
		callTimeout: callTimeout,
		logger:      logging.OrNop(logger),
	}
}

func (c *retryClient) Model() string { return c.underlying.Model() }

func (c *retryClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	resp, err := tgerrors.RetryWithResult(ctx, c.retryConfig, c.logger, func(ctx context.Context) (*CompletionResponse, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
		return c.underlying.Complete(callCtx, req)
	})
	if err != nil {
		c.logger.Warn("completion failed after %v: %v", time.Since(start), err)
		return nil, err
	}
	return resp, nil
}
