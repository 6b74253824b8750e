package middlewares

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/geocoder89/eventnudges/internal/observability"
	"github.com/gin-gonic/gin"
)

// FileStore is the part of uploads.DiskStore the middleware needs.
type FileStore interface {
	NewPath(original string) string
	Remove(path string) error
}

// SingleUpload accepts at most one file, under field, on multipart requests.
// The file is written before the handler runs and its path is exposed via
// UploadPathFromContext. If the handler answers with an error status the
// file is removed again.
func SingleUpload(store FileStore, field string, prom *observability.Prom) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
			ctx.Next()
			return
		}

		form, err := ctx.MultipartForm()
		if err != nil {
			prom.ObserveUpload("rejected")
			abortWithError(ctx, http.StatusBadRequest, "invalid_upload", "Invalid data", err.Error())
			return
		}

		var fh *multipart.FileHeader
		for name, files := range form.File {
			if name != field || len(files) > 1 {
				prom.ObserveUpload("rejected")
				abortWithError(ctx, http.StatusBadRequest, "invalid_upload", "Unexpected file field", name)
				return
			}
			fh = files[0]
		}

		if fh == nil {
			ctx.Next()
			return
		}

		dst := store.NewPath(fh.Filename)

		if err := ctx.SaveUploadedFile(fh, dst); err != nil {
			prom.ObserveUpload("failed")
			slog.ErrorContext(ctx.Request.Context(), "upload save failed", "path", dst, "err", err)
			abortWithError(ctx, http.StatusInternalServerError, "internal_error", "Server error", "could not store upload")
			return
		}

		prom.ObserveUpload("stored")
		ctx.Set(CtxUploadPath, dst)

		ctx.Next()

		if ctx.Writer.Status() >= http.StatusBadRequest {
			if err := store.Remove(dst); err != nil {
				slog.WarnContext(ctx.Request.Context(), "upload cleanup failed", "path", dst, "err", err)
			}
			prom.ObserveUpload("discarded")
		}
	}
}
