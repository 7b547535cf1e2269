// Package resilience guards calls to the backing store with a timeout and a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/returns_management_app/internal/apperrors"
	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("store circuit breaker is open")

// BreakerConfig holds configuration for the store breaker
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32        // requests allowed while half-open
	Interval         time.Duration // period after which closed-state counts reset
	OpenTimeout      time.Duration // time spent open before probing again
	FailureThreshold uint32        // consecutive failures that trip the breaker
	CallTimeout      time.Duration // deadline for each store call, 0 disables it
}

// DefaultBreakerConfig returns defaults suited to a single Postgres instance.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		OpenTimeout:      30 * time.Second,
		FailureThreshold: 5,
		CallTimeout:      5 * time.Second,
	}
}

// StoreGuard runs store calls through a per-call timeout and a circuit breaker.
// Only infrastructure failures count against the breaker: not-found, conflict and
// validation outcomes are ordinary answers from a healthy store.
type StoreGuard struct {
	cb          *gobreaker.CircuitBreaker
	name        string
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewStoreGuard creates a guard. onStateChange may be nil.
func NewStoreGuard(cfg BreakerConfig, logger *slog.Logger, onStateChange func(name, to string)) *StoreGuard {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Store circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			if onStateChange != nil {
				onStateChange(name, to.String())
			}
		},
		IsSuccessful: isHealthyOutcome,
	}

	return &StoreGuard{
		cb:          gobreaker.NewCircuitBreaker(settings),
		name:        cfg.Name,
		callTimeout: cfg.CallTimeout,
		logger:      logger,
	}
}

// Do runs fn under the guard. A nil guard just calls fn.
func (g *StoreGuard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if g == nil {
		return fn(ctx)
	}

	_, err := g.cb.Execute(func() (interface{}, error) {
		callCtx := ctx
		if g.callTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, g.callTimeout)
			defer cancel()
		}
		return nil, fn(callCtx)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		g.logger.Warn("Store call rejected by circuit breaker", slog.String("name", g.name))
		return apperrors.NewAppError(503, fmt.Sprintf("store unavailable: %s", g.name), ErrCircuitOpen)
	}
	return err
}

// State returns the current breaker state
func (g *StoreGuard) State() gobreaker.State {
	return g.cb.State()
}

func isHealthyOutcome(err error) bool {
	if err == nil {
		return true
	}
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, context.Canceled)
}
