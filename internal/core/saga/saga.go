// Package saga runs a sequence of store mutations where each step knows how to undo itself.
// The store offers no transactions across the rows a return touches, so a failed step
// triggers the compensations of every step that already ran, newest first.
package saga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/returns_management_app/internal/apperrors"
)

// Step is one action plus the action that reverses it. Compensate may be nil for steps
// with nothing to undo.
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// CompensationError records one failed rollback step.
type CompensationError struct {
	Step string
	Err  error
}

func (e CompensationError) Error() string {
	return fmt.Sprintf("compensate %s: %v", e.Step, e.Err)
}

// Error is returned when a step fails. Cause is the failure that stopped the saga.
// CompensationErrs lists every rollback that also failed.
type Error struct {
	Saga             string
	Step             string
	Cause            error
	CompensationErrs []CompensationError
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("saga %s: step %s: %v", e.Saga, e.Step, e.Cause)
	if len(e.CompensationErrs) == 0 {
		return msg + " (rolled back)"
	}
	parts := make([]string, len(e.CompensationErrs))
	for i, ce := range e.CompensationErrs {
		parts[i] = ce.Error()
	}
	return msg + "; rollback incomplete: " + strings.Join(parts, "; ")
}

// Unwrap exposes the cause and, when rollback was incomplete, ErrCompensationFailed.
func (e *Error) Unwrap() []error {
	errs := []error{e.Cause}
	if len(e.CompensationErrs) > 0 {
		errs = append(errs, apperrors.ErrCompensationFailed)
		for _, ce := range e.CompensationErrs {
			errs = append(errs, ce.Err)
		}
	}
	return errs
}

// RolledBack reports whether every completed step was undone.
func (e *Error) RolledBack() bool {
	return len(e.CompensationErrs) == 0
}

// Saga is an ordered list of steps. It is not safe for concurrent use.
type Saga struct {
	name   string
	logger *slog.Logger
	steps  []Step
}

// New creates an empty saga. A nil logger falls back to slog.Default.
func New(name string, logger *slog.Logger) *Saga {
	if logger == nil {
		logger = slog.Default()
	}
	return &Saga{name: name, logger: logger}
}

// Add appends a step and returns the saga for chaining.
func (s *Saga) Add(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Len returns the number of steps.
func (s *Saga) Len() int {
	return len(s.steps)
}

// Run executes the steps in order. On the first failure it compensates the completed steps
// in reverse order, carrying on past compensation failures, and returns an *Error.
// Compensations run on a context detached from ctx's cancellation so a cancelled request
// still gets rolled back.
func (s *Saga) Run(ctx context.Context) error {
	for i, step := range s.steps {
		if err := step.Action(ctx); err != nil {
			s.logger.Warn("Saga step failed, compensating",
				slog.String("saga", s.name),
				slog.String("step", step.Name),
				slog.Int("completed_steps", i),
				slog.String("error", err.Error()))

			sagaErr := &Error{Saga: s.name, Step: step.Name, Cause: err}
			sagaErr.CompensationErrs = s.compensate(context.WithoutCancel(ctx), s.steps[:i])
			return sagaErr
		}
	}
	return nil
}

func (s *Saga) compensate(ctx context.Context, done []Step) []CompensationError {
	var failures []CompensationError
	for i := len(done) - 1; i >= 0; i-- {
		step := done[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.logger.Error("Saga compensation failed",
				slog.String("saga", s.name),
				slog.String("step", step.Name),
				slog.String("error", err.Error()))
			failures = append(failures, CompensationError{Step: step.Name, Err: err})
			continue
		}
		s.logger.Info("Saga step compensated", slog.String("saga", s.name), slog.String("step", step.Name))
	}
	return failures
}

// AsError extracts a saga *Error from err.
func AsError(err error) (*Error, bool) {
	var sagaErr *Error
	if errors.As(err, &sagaErr) {
		return sagaErr, true
	}
	return nil, false
}
