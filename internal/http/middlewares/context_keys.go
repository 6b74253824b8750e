package middlewares

import "github.com/gin-gonic/gin"

type ctxKey string

const (
	CtxRequestID  ctxKey = "request_id"
	CtxUploadPath ctxKey = "upload_path"
)

// RequestIDFromContext returns the id set by RequestID, if any.
func RequestIDFromContext(ctx *gin.Context) (string, bool) {
	v, ok := ctx.Get(CtxRequestID)
	if !ok {
		return "", false
	}

	s, ok := v.(string)
	return s, ok && s != ""
}

// UploadPathFromContext returns where SingleUpload stored the request's
// file. Empty when no file was sent.
func UploadPathFromContext(ctx *gin.Context) string {
	v, ok := ctx.Get(CtxUploadPath)
	if !ok {
		return ""
	}

	s, _ := v.(string)
	return s
}
