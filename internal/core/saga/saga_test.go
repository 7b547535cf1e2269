package saga_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/returns_management_app/internal/apperrors"
	"github.com/SscSPs/returns_management_app/internal/core/saga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) step(name string, actionErr, compErr error) saga.Step {
	return saga.Step{
		Name: name,
		Action: func(ctx context.Context) error {
			r.calls = append(r.calls, "do:"+name)
			return actionErr
		},
		Compensate: func(ctx context.Context) error {
			r.calls = append(r.calls, "undo:"+name)
			return compErr
		},
	}
}

func TestSaga_RunAllSteps(t *testing.T) {
	rec := &recorder{}
	s := saga.New("test", nil).
		Add(rec.step("a", nil, nil)).
		Add(rec.step("b", nil, nil))

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []string{"do:a", "do:b"}, rec.calls)
	assert.Equal(t, 2, s.Len())
}

func TestSaga_CompensatesInReverseOrder(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("write failed")
	s := saga.New("test", nil).
		Add(rec.step("a", nil, nil)).
		Add(rec.step("b", nil, nil)).
		Add(rec.step("c", boom, nil)).
		Add(rec.step("d", nil, nil))

	err := s.Run(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"do:a", "do:b", "do:c", "undo:b", "undo:a"}, rec.calls)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, apperrors.ErrCompensationFailed))

	sagaErr, ok := saga.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "c", sagaErr.Step)
	assert.True(t, sagaErr.RolledBack())
}

func TestSaga_CompensationFailureIsSurfaced(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("write failed")
	undoFailed := errors.New("restore failed")
	s := saga.New("test", nil).
		Add(rec.step("a", nil, nil)).
		Add(rec.step("b", nil, undoFailed)).
		Add(rec.step("c", boom, nil))

	err := s.Run(context.Background())
	require.Error(t, err)

	// a is still compensated after b's rollback fails
	assert.Equal(t, []string{"do:a", "do:b", "do:c", "undo:b", "undo:a"}, rec.calls)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, apperrors.ErrCompensationFailed)
	assert.ErrorIs(t, err, undoFailed)

	sagaErr, ok := saga.AsError(err)
	require.True(t, ok)
	assert.False(t, sagaErr.RolledBack())
	require.Len(t, sagaErr.CompensationErrs, 1)
	assert.Equal(t, "b", sagaErr.CompensationErrs[0].Step)
	assert.Contains(t, err.Error(), "rollback incomplete")
}

func TestSaga_NilCompensateIsSkipped(t *testing.T) {
	var calls []string
	s := saga.New("test", nil).
		Add(saga.Step{Name: "read", Action: func(ctx context.Context) error {
			calls = append(calls, "read")
			return nil
		}}).
		Add(saga.Step{Name: "fail", Action: func(ctx context.Context) error {
			return errors.New("nope")
		}})

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"read"}, calls)
}

func TestSaga_CompensatesWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var undoCtxErr error
	s := saga.New("test", nil).
		Add(saga.Step{
			Name:   "a",
			Action: func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error {
				undoCtxErr = ctx.Err()
				return nil
			},
		}).
		Add(saga.Step{Name: "b", Action: func(ctx context.Context) error {
			cancel()
			return ctx.Err()
		}})

	err := s.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, undoCtxErr)
}
