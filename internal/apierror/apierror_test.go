package apierror_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/ereal-labs/ereal/internal/apierror"
	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	details := "account 0xabc holds 3, needs 5"
	apiErr := apierror.NewAPIError(apierror.ErrInsufficientBalance, "insufficient balance", details)

	assert.Equal(t, apierror.ErrInsufficientBalance, apiErr.Code)
	assert.Equal(t, "insufficient balance", apiErr.Message)
	assert.Equal(t, details, apiErr.Details)
	assert.Equal(t, "INSUFFICIENT_BALANCE: insufficient balance", apiErr.Error())
}

func TestCodeOf(t *testing.T) {
	err := apierror.NewAPIError(apierror.ErrPaused, "ledger is paused", nil)
	assert.Equal(t, apierror.ErrPaused, apierror.CodeOf(err))
	assert.Equal(t, apierror.ErrInternalServer, apierror.CodeOf(errors.New("plain error")))
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "Unauthorized",
			err:      apierror.NewAPIError(apierror.ErrUnauthorized, "caller lacks MINTER role", nil),
			expected: http.StatusForbidden,
		},
		{
			name:     "Compliance violation",
			err:      apierror.NewAPIError(apierror.ErrComplianceViolation, "recipient is blacklisted", nil),
			expected: http.StatusForbidden,
		},
		{
			name:     "NotFound",
			err:      apierror.NewAPIError(apierror.ErrNotFound, "boleto not found", nil),
			expected: http.StatusNotFound,
		},
		{
			name:     "DuplicateID",
			err:      apierror.NewAPIError(apierror.ErrDuplicateID, "boleto already registered", nil),
			expected: http.StatusConflict,
		},
		{
			name:     "InvalidState",
			err:      apierror.NewAPIError(apierror.ErrInvalidState, "boleto is not pending", nil),
			expected: http.StatusConflict,
		},
		{
			name:     "Paused",
			err:      apierror.NewAPIError(apierror.ErrPaused, "ledger is paused", nil),
			expected: http.StatusLocked,
		},
		{
			name:     "InsufficientBalance",
			err:      apierror.NewAPIError(apierror.ErrInsufficientBalance, "insufficient balance", nil),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "ArithmeticUnderflow",
			err:      apierror.NewAPIError(apierror.ErrArithmeticUnderflow, "fee exceeds amount", nil),
			expected: http.StatusBadRequest,
		},
		{
			name:     "InternalServerError",
			err:      apierror.NewAPIError(apierror.ErrInternalServer, "unexpected", nil),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Non-APIError",
			err:      errors.New("some random error"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := apierror.MapErrorToHTTPStatus(tt.err)
			assert.Equal(t, tt.expected, status)
		})
	}
}
