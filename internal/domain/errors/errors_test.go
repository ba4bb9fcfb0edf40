package errors

import (
	"testing"

	"coderr/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_IsMatchesDerivedCopies(t *testing.T) {
	derived := ErrForbidden.WithDetails("caller is not the owner")
	wrapped := errors.Wrap(derived, "failed to update offer")

	assert.True(t, errors.Is(wrapped, ErrForbidden))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, "", ErrForbidden.Details(), "sentinel must not be mutated")
}

func TestBaseError_WithFieldAccumulates(t *testing.T) {
	err := ErrValidationFailed.
		WithField("price", "must not be negative").
		WithField("price", "must have at most 2 decimal places").
		WithField("title", "this field is required")

	assert.Len(t, err.Fields()["price"], 2)
	assert.Equal(t, []string{"this field is required"}, err.Fields()["title"])
	assert.Nil(t, ErrValidationFailed.Fields())
}

func TestFieldCollector(t *testing.T) {
	collector := Validation()
	require.NoError(t, collector.Err())

	collector.Check(true, "rating", "ignored")
	collector.Check(false, "rating", "must be between 1 and 5")

	err := collector.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, FieldErrors{"rating": {"must be between 1 and 5"}}, FieldsOf(errors.Wrap(err, "context")))
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to create offer")

	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Equal(t, 500, err.HTTPCode())
	assert.True(t, errors.Is(err, cause))
}
