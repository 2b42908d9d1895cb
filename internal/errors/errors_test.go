package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrCodeUnavailable, "redis get")

	assert.Equal(t, "redis get: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := Unauthorized("token rejected")
	assert.Equal(t, "token rejected", bare.Error())
	assert.NoError(t, bare.Unwrap())
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		err  error
		pred func(error) bool
	}{
		{Unauthorized("nope"), IsUnauthorized},
		{Forbidden("nope"), IsForbidden},
		{Validation("nope"), IsValidation},
		{NotFound("nope"), IsNotFound},
		{Unavailable("nope"), IsUnavailable},
		{Internal("nope"), IsInternal},
	}
	for _, tt := range tests {
		appErr := &AppError{}
		require.True(t, errors.As(tt.err, &appErr))
		assert.True(t, tt.pred(tt.err), "predicate for %s", appErr.Code)
		assert.False(t, tt.pred(errors.New("plain")), "plain errors never match")
	}
}

func TestCodePredicates_SeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("load preferences: %w", Unavailable("redis down"))
	assert.True(t, IsUnavailable(err))
	assert.False(t, IsUnauthorized(err))
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "must be a valid address")
	assert.Equal(t, "email", err.Field)
	assert.True(t, IsValidation(err))
}
