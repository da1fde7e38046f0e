package respond

import (
	"github.com/gin-gonic/gin"

	"farmhub-backend/internal/shared/telemetry"
)

// Error codes shared by handlers.
const (
	CodeInvalidInput  = "InvalidInput"
	CodeNotFound      = "not_found"
	CodeRateLimited   = "rate_limited"
	CodeUnavailable   = "ml_unavailable"
	CodeUpstreamError = "upstream_error"
	CodeInternal      = "internal"
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

// FieldIssue points a validation failure at one request field.
type FieldIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
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
		"client_ip":  c.ClientIP(),
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// InvalidInput sends a 400 with the InvalidInput code and the offending fields.
func InvalidInput(c *gin.Context, message string, issues ...FieldIssue) {
	var details interface{}
	if len(issues) > 0 {
		details = issues
	}
	Error(c, 400, CodeInvalidInput, message, details)
}
