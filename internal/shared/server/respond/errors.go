package respond

import (
	"github.com/gin-gonic/gin"

	"github.com/Harshmohod/land-verification/internal/shared/telemetry"
)

// Error codes shared across handlers.
const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeDuplicateUser      = "duplicate_user"
	CodeTokenExpired       = "token_expired"
	CodeTokenInvalid       = "token_invalid"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeInvalidTransition  = "invalid_transition"
	CodeInvalidArgument    = "invalid_argument"
	CodeInternal           = "internal_error"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
