package db

import (
	"context"

	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	"github.com/AlibekovAA/messenger/backend/internal/common/resilience"
)

// Runner executes repository operations behind a circuit breaker. Run also
// retries transient Postgres failures; Once does not.
type Runner struct {
	breaker *resilience.CircuitBreaker
	retry   RetryConfig
	log     *logger.Logger
}

func NewRunner(log *logger.Logger, breaker *resilience.CircuitBreaker, retry RetryConfig) *Runner {
	return &Runner{breaker: breaker, retry: retry, log: log}
}

func (r *Runner) Run(ctx context.Context, op func(ctx context.Context) error) error {
	return r.Once(ctx, func(ctx context.Context) error {
		return RetryWithBackoff(ctx, r.log, r.retry, func() error { return op(ctx) })
	})
}

func (r *Runner) Once(ctx context.Context, op func(ctx context.Context) error) error {
	if r.breaker == nil {
		return op(ctx)
	}
	return r.breaker.Call(ctx, op)
}
