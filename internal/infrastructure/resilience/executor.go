// Package resilience wraps stage-boundary calls to external tools with a
// bounded retry policy and a per-operation circuit breaker. Retries apply
// only at the invocation boundary; the pipeline itself is never replayed.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Classification tells the executor how to treat one failure.
type Classification struct {
	Retryable     bool
	RecordFailure bool
}

// Classifier inspects an error from the wrapped call.
type Classifier func(err error) Classification

type Executor struct {
	policy Policy
	logger *slog.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

func NewExecutor(policy Policy, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		policy:   policy.normalize(),
		logger:   logger,
		breakers: make(map[string]*gobreaker.CircuitBreaker[any]),
	}
}

// Do runs fn under the retry policy, fronted by the operation's breaker.
func (e *Executor) Do(ctx context.Context, operation string, fn func(context.Context) error, classify Classifier) error {
	if fn == nil {
		return fmt.Errorf("resilience: nil operation callback")
	}
	if classify == nil {
		classify = func(error) Classification {
			return Classification{Retryable: false, RecordFailure: true}
		}
	}

	if !e.policy.BreakerEnabled {
		return e.retry(ctx, operation, fn, classify)
	}
	breaker := e.breaker(operation, classify)
	_, err := breaker.Execute(func() (any, error) {
		return nil, e.retry(ctx, operation, fn, classify)
	})
	return err
}

func (e *Executor) retry(ctx context.Context, operation string, fn func(context.Context) error, classify Classifier) error {
	backoff := e.policy.InitialBackoff

	var err error
	for attempt := 1; attempt <= e.policy.MaxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !classify(err).Retryable || attempt == e.policy.MaxAttempts {
			return err
		}

		e.logger.Warn("retry_attempt",
			"operation", operation,
			"attempt", attempt,
			"max_attempts", e.policy.MaxAttempts,
			"backoff_ms", backoff.Milliseconds(),
			"error", err,
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
		backoff = min(time.Duration(float64(backoff)*e.policy.Multiplier), e.policy.MaxBackoff)
	}
	return err
}

func (e *Executor) breaker(operation string, classify Classifier) *gobreaker.CircuitBreaker[any] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if b, ok := e.breakers[operation]; ok {
		return b
	}

	b := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        operation,
		MaxRequests: e.policy.BreakerHalfOpenMax,
		Timeout:     e.policy.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < e.policy.BreakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= e.policy.BreakerFailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !classify(err).RecordFailure
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			e.logger.Warn("circuit_breaker_state_change",
				"operation", name, "from", from.String(), "to", to.String())
		},
	})
	e.breakers[operation] = b
	return b
}

// IsCircuitOpen reports whether err came from an open or saturated breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
