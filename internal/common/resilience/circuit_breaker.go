package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AlibekovAA/messenger/backend/internal/common/clock"
	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	"github.com/AlibekovAA/messenger/backend/internal/observability/metrics"
)

type CircuitBreaker struct {
	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	threshold   int
	timeout     time.Duration
	resetAfter  time.Duration
	name        string
	log         *logger.Logger
	clock       clock.Clock
}

type CircuitBreakerConfig struct {
	Threshold  int
	Timeout    time.Duration
	ResetAfter time.Duration
	Name       string
	Logger     *logger.Logger
	Clock      clock.Clock
}

func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	clk := config.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	log := config.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &CircuitBreaker{
		threshold:  config.Threshold,
		timeout:    config.Timeout,
		resetAfter: config.ResetAfter,
		name:       config.Name,
		log:        log,
		clock:      clk,
	}
}

// IsOpen reports whether calls are currently rejected. An open breaker closes
// again once resetAfter has passed since the last failure.
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.failures < cb.threshold {
		cb.setState(0)
		return false
	}

	if cb.clock.Now().Sub(cb.lastFailure) > cb.resetAfter {
		cb.failures = 0
		cb.lastFailure = time.Time{}
		cb.setState(0)
		cb.log.Infof("circuit breaker [%s]: half-open, allowing calls", cb.name)
		return false
	}

	cb.setState(1)
	return true
}

func (cb *CircuitBreaker) setState(state float64) {
	if cb.name != "" {
		metrics.CircuitBreakerState.WithLabelValues(cb.name).Set(state)
	}
}

func (cb *CircuitBreaker) recordFailure(err error) {
	cb.mu.Lock()
	cb.failures++
	cb.lastFailure = cb.clock.Now()
	failures := cb.failures
	cb.mu.Unlock()

	if cb.name != "" {
		metrics.CircuitBreakerFailures.WithLabelValues(cb.name).Inc()
	}
	cb.log.Warnf("circuit breaker [%s]: failure %d/%d recorded: %v", cb.name, failures, cb.threshold, err)
}

func (cb *CircuitBreaker) reset() {
	cb.mu.Lock()
	cb.failures = 0
	cb.lastFailure = time.Time{}
	cb.mu.Unlock()
}

// Call runs fn unless the breaker is open, in which case it fails fast with
// ErrStorageUnavailable. Only infrastructure failures count towards opening
// it: domain outcomes such as not-found or duplicate keys and cancellations
// by the caller are passed through untouched.
func (cb *CircuitBreaker) Call(ctx context.Context, fn func(context.Context) error) error {
	if cb.IsOpen() {
		cb.log.Warnf("circuit breaker [%s]: circuit is open, rejecting request", cb.name)
		return commonerrors.ErrStorageUnavailable
	}

	callCtx := ctx
	if cb.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, cb.timeout)
		defer cancel()
	}

	err := fn(callCtx)
	switch {
	case err == nil:
		cb.reset()
	case countsAsFailure(ctx, err):
		cb.recordFailure(err)
	}
	return err
}

func countsAsFailure(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return false
	}
	if de, ok := commonerrors.AsDomainError(err); ok {
		return de.Category() == commonerrors.CategoryInternal || de.Category() == commonerrors.CategoryExternal
	}
	return true
}
