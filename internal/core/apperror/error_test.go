package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorChainUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("posting outbound: %w", NewUnknownCode("XX-01"))

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeUnknownCode, appErr.Code)
	assert.Equal(t, "XX-01", appErr.Details["code"])
	assert.True(t, IsUnknownCode(wrapped))
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("bad input"), http.StatusBadRequest},
		{"not found", NewNotFound("inbound", "abc"), http.StatusNotFound},
		{"unknown code", NewUnknownCode("XX-01"), http.StatusUnprocessableEntity},
		{"insufficient stock", NewInsufficientStock("BRG-1", 5, 2), http.StatusUnprocessableEntity},
		{"unauthorized", NewUnauthorized("missing token"), http.StatusUnauthorized},
		{"conflict", NewConflict("already received"), http.StatusConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.err))
		})
	}
}

func TestInsufficientStockDetails(t *testing.T) {
	err := NewInsufficientStock("BRG-1", 10, 4)

	assert.Equal(t, "BRG-1", err.Details["code"])
	assert.Equal(t, 10, err.Details["requested"])
	assert.Equal(t, 4, err.Details["remaining"])
	assert.True(t, IsInsufficientStock(err))
	assert.False(t, IsUnknownCode(err))
}

func TestWithDetailInitializesMap(t *testing.T) {
	err := NewValidation("lines are required").WithDetail("field", "lines")

	assert.Equal(t, "lines", err.Details["field"])
}
