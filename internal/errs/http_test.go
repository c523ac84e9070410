package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrors(t *testing.T) {
	code := "ORDER_NOT_FOUND"

	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found with code", NewNotFoundError("gone", true, &code), http.StatusNotFound, "ORDER_NOT_FOUND"},
		{"conflict", NewConflictError("dup", true, nil), http.StatusConflict, "CONFLICT"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestHTTPError_Chain(t *testing.T) {
	cause := errors.New("driver said no")
	err := NewConflictError("dup", true, nil).WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, errors.Is(err, &HTTPError{}))

	renamed := err.WithMessage("A currency with this Name already exists")
	assert.Equal(t, "A currency with this Name already exists", renamed.Error())
	assert.Equal(t, "dup", err.Message)
}

func TestHTTPError_Field(t *testing.T) {
	err := NewBadRequestError("Validation failed", true, nil, []FieldError{
		{Field: "amount", Error: "amount must be greater than zero"},
	})

	msg, ok := err.Field("amount")
	require.True(t, ok)
	assert.Equal(t, "amount must be greater than zero", msg)

	_, ok = err.Field("description")
	assert.False(t, ok)
}

func TestValidationError(t *testing.T) {
	err := ValidationError(errors.New("invalid JSON"))

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed: invalid JSON", err.Message)
}
