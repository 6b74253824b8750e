package handlers

import (
	"net/http"

	"github.com/geocoder89/eventnudges/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// APIError is the body of every non-2xx response. Error carries the
// underlying error text when there is one worth showing.
type APIError struct {
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
	Details   any    `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if id, ok := middlewares.RequestIDFromContext(ctx); ok {
		return id
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, cause error, details any) {
	body := APIError{
		Message:   message,
		Code:      code,
		RequestID: requestIDFrom(ctx),
		Details:   details,
	}
	if cause != nil {
		body.Error = cause.Error()
		_ = ctx.Error(cause)
	}

	ctx.AbortWithStatusJSON(status, body)
}

func RespondBadRequest(ctx *gin.Context, message string, cause error, details any) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, cause, details)
}

func RespondInvalidData(ctx *gin.Context, cause error) {
	RespondBadRequest(ctx, "Invalid data", cause, nil)
}

func RespondInvalidQuery(ctx *gin.Context) {
	RespondBadRequest(ctx, "Invalid query parameters", nil, nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil, nil)
}

func RespondInternal(ctx *gin.Context, cause error) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", "Server error", cause, nil)
}
