package middlewares

import "github.com/gin-gonic/gin"

// abortWithError writes the same flat error body the handlers use, for
// requests rejected before they reach a handler.
func abortWithError(ctx *gin.Context, status int, code, message, detail string) {
	reqID, _ := RequestIDFromContext(ctx)

	ctx.AbortWithStatusJSON(status, gin.H{
		"message":   message,
		"error":     detail,
		"code":      code,
		"requestId": reqID,
	})
}
