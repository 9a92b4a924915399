package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func serializationFailure() error {
	return fmt.Errorf("failed to commit transaction: %w",
		&pgconn.PgError{Code: sqlStateSerializationFailure, Message: "could not serialize access"})
}

func TestRetryOnSerializationFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - retried until the conflict clears", func(t *testing.T) {
		calls := 0
		err := retryOnSerializationFailure(ctx, 3, func() error {
			calls++
			if calls < 3 {
				return serializationFailure()
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Failed - attempts exhausted", func(t *testing.T) {
		calls := 0
		err := retryOnSerializationFailure(ctx, 3, func() error {
			calls++
			return serializationFailure()
		})

		assert.ErrorIs(t, err, apperrors.ErrConcurrentUpdate)
		assert.Equal(t, apperrors.CodeConflict, apperrors.Code(err))
		assert.Equal(t, 3, calls)
	})

	t.Run("Failed - other errors are not retried", func(t *testing.T) {
		calls := 0
		staleErr := apperrors.NewStaleReference("checklist", uuid.New())
		err := retryOnSerializationFailure(ctx, 3, func() error {
			calls++
			return staleErr
		})

		assert.ErrorIs(t, err, apperrors.ErrStaleReference)
		assert.Equal(t, 1, calls)
	})

	t.Run("Failed - cancelled context stops retrying", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		calls := 0
		err := retryOnSerializationFailure(cancelled, 3, func() error {
			calls++
			return serializationFailure()
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, isSerializationFailure(serializationFailure()))
	assert.True(t, isSerializationFailure(&pgconn.PgError{Code: sqlStateDeadlockDetected}))
	assert.False(t, isSerializationFailure(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isSerializationFailure(errors.New("boom")))
	assert.False(t, isSerializationFailure(nil))
}
