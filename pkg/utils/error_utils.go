package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the JSON error body returned by every endpoint.
// Message is the user-facing text; Details carries the underlying error text
// for the endpoints that expose it.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"codigo,omitempty"`
	Message    string `json:"mensaje"`
	Details    string `json:"error,omitempty"`

	cause error
}

// NewAPIError creates a new APIError instance
func NewAPIError(statusCode int, code string, message string, details string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Details:    details,
	}
}

// WithCause attaches the originating error so 5xx responses can be reported.
func (e *APIError) WithCause(err error) *APIError {
	e.cause = err
	return e
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// RespondWithError sends a standardized JSON error response and aborts the chain.
func RespondWithError(c *gin.Context, err *APIError) {
	if err.StatusCode >= http.StatusInternalServerError && err.cause != nil {
		CaptureError(err.cause, map[string]interface{}{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		})
	}
	c.AbortWithStatusJSON(err.StatusCode, err)
}

// Common Error Constants
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
)

// RespondValidationFailed returns a 400 with the given user-facing message.
func RespondValidationFailed(c *gin.Context, message string) {
	RespondWithError(c, NewAPIError(http.StatusBadRequest, ErrCodeValidationFailed, message, ""))
}
