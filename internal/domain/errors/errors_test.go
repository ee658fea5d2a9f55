package errors

import (
	"net/http"
	"testing"

	"smarthr/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_CopiesStillMatch(t *testing.T) {
	locked := ErrAccountLocked.WithPublicDetails(map[string]int{"minutes_remaining": 3}).
		WithMessage("Account locked. Try again in 3 minutes.")

	wrapped := errors.Wrap(locked, "login")
	assert.True(t, errors.Is(wrapped, ErrAccountLocked))
	assert.False(t, errors.Is(wrapped, ErrInvalidCredentials))

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
	assert.True(t, appErr.PublicDetails())
	assert.Equal(t, "Account locked. Try again in 3 minutes.", appErr.Message())

	// The predefined value is untouched.
	assert.Nil(t, ErrAccountLocked.Details())
	assert.Equal(t, "Account temporarily locked", ErrAccountLocked.Message())
}

func TestDatabaseExecuteError_Unwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError("insert account", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "insert account")
	assert.Nil(t, NewDatabaseExecuteError("noop", nil))

	appErr, ok := AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}
