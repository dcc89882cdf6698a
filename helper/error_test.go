package helper

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	t.Run("Wraps original error with trace", func(t *testing.T) {
		err := NewError("scan", sql.ErrConnDone)

		require.Error(t, err)
		assert.Contains(t, err.Error(), sql.ErrConnDone.Error(), "Expected message of original error")
		assert.Contains(t, err.Error(), "scan", "Expected trace in message")
		assert.ErrorIs(t, err, sql.ErrConnDone, "Expected original error to be reachable with errors.Is")
	})

	t.Run("Nested errors extend the trace", func(t *testing.T) {
		err := NewError("save test entity", NewError("scan", sql.ErrConnDone))

		var e Error
		require.True(t, errors.As(err, &e), "Expected error to be a helper.Error")
		assert.Equal(t, []string{"save test entity", "scan"}, e.Trace)
		assert.Equal(t, sql.ErrConnDone, e.Original)
	})

	t.Run("Trace of the inner error is not modified", func(t *testing.T) {
		inner := NewError("scan", sql.ErrConnDone)
		_ = NewError("outer", inner)

		var e Error
		require.True(t, errors.As(inner, &e))
		assert.Equal(t, []string{"scan"}, e.Trace)
	})

	t.Run("Error wrapped by another error keeps the outer message", func(t *testing.T) {
		wrapped := fmt.Errorf("load: %w", NewError("scan", sql.ErrConnDone))

		err := NewError("save test entity", wrapped)

		var e Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, []string{"save test entity"}, e.Trace)
		assert.Same(t, wrapped, e.Original, "Expected the wrapping error to be kept as original")
		assert.Contains(t, err.Error(), "load: ", "Expected the outer context in the message")
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}
