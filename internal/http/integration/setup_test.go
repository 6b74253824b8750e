package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/eventnudges/internal/config"
	apphttp "github.com/geocoder89/eventnudges/internal/http"
	"github.com/geocoder89/eventnudges/internal/observability"
	"github.com/geocoder89/eventnudges/internal/repo/memory"
	"github.com/geocoder89/eventnudges/internal/uploads"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const api = "/api/v3/app"

func testConfig() config.Config {
	return config.Config{
		Env:          "test",
		Store:        config.StoreMemory,
		CacheBackend: config.CacheNone,
		ServiceName:  "eventnudges-test",
	}
}

// setupTestRouter wires the real router over the in-memory store and a
// throwaway upload directory.
func setupTestRouter(t *testing.T) (*gin.Engine, *uploads.DiskStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Basic logger that discards outputs during tests
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	store, err := uploads.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("upload store: %v", err)
	}

	reg := prometheus.NewRegistry()
	eventsRepo := memory.NewEventsRepo()

	deps := apphttp.Deps{
		Events:   eventsRepo,
		Nudges:   memory.NewNudgesRepo(),
		Uploads:  store,
		Ping:     eventsRepo.Ping,
		Prom:     observability.NewProm(reg),
		Gatherer: reg,
	}

	return apphttp.NewRouter(logger, deps, testConfig()), store
}

func do(t *testing.T, router *gin.Engine, method, url, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, url, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func doJSON(t *testing.T, router *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()

	return do(t, router, method, url, "application/json", bytes.NewBufferString(body))
}

type filePart struct {
	field, name string
	content     []byte
}

func multipartBody(t *testing.T, fields [][2]string, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}

	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	return body, w.FormDataContentType()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to unmarshal body %q: %v", w.Body.String(), err)
	}

	return out
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, want, w.Body.String())
	}
}

func createdID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	mustStatus(t, w, http.StatusCreated)

	resp := decode[struct {
		ID string `json:"id"`
	}](t, w)
	if len(resp.ID) != 24 {
		t.Fatalf("expected a 24 hex id, got %q", resp.ID)
	}

	return resp.ID
}
