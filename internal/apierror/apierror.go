package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrUnauthorized         ErrorCode = "UNAUTHORIZED"
	ErrPaused               ErrorCode = "PAUSED"
	ErrComplianceViolation  ErrorCode = "COMPLIANCE_VIOLATION"
	ErrInsufficientBalance  ErrorCode = "INSUFFICIENT_BALANCE"
	ErrArithmeticUnderflow  ErrorCode = "ARITHMETIC_UNDERFLOW"
	ErrDuplicateID          ErrorCode = "DUPLICATE_ID"
	ErrNotFound             ErrorCode = "NOT_FOUND"
	ErrInvalidState         ErrorCode = "INVALID_STATE"
	ErrBadRequest           ErrorCode = "BAD_REQUEST"
	ErrInternalServer       ErrorCode = "INTERNAL_SERVER_ERROR"
)

type APIError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code ErrorCode, message string, details interface{}) APIError {
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// CodeOf extracts the error code from an error, or ErrInternalServer when the
// error is not an APIError.
func CodeOf(err error) ErrorCode {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ErrInternalServer
}

func MapErrorToHTTPStatus(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case ErrUnauthorized, ErrComplianceViolation:
			return http.StatusForbidden
		case ErrNotFound:
			return http.StatusNotFound
		case ErrDuplicateID, ErrInvalidState:
			return http.StatusConflict
		case ErrPaused:
			return http.StatusLocked
		case ErrInsufficientBalance:
			return http.StatusUnprocessableEntity
		case ErrArithmeticUnderflow, ErrBadRequest:
			return http.StatusBadRequest
		case ErrInternalServer:
			return http.StatusInternalServerError
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
