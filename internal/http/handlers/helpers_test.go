package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/eventnudges/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test
func init() {
	gin.SetMode(gin.TestMode)
}

// small helper which returns a gin engine with one handler mounted
func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.RequestID())
	r.Handle(method, path, h)

	return r
}

// withUpload pretends SingleUpload already stored a file at path.
func withUpload(path string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middlewares.CtxUploadPath, path)
		ctx.Next()
	}
}

func multipartFields(t *testing.T, fields [][2]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	return body, w.FormDataContentType()
}

func serve(r *gin.Engine, method, url, contentType string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req = httptest.NewRequest(method, url, nil)
	if body != nil {
		req = httptest.NewRequest(method, url, body)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}
