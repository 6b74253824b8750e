package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/geocoder89/eventnudges/internal/http/handlers"
)

func TestWelcome(t *testing.T) {
	h := handlers.NewHealthHandler(nil)
	r := setupRouter(http.MethodGet, "/", h.Welcome)

	w := serve(r, http.MethodGet, "/", "", nil)

	if w.Code != http.StatusOK || w.Body.String() != "Welcome to the Events API!" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name           string
		ping           func(ctx context.Context) error
		wantStatusCode int
	}{
		{name: "no_ping", wantStatusCode: http.StatusOK},
		{name: "ping_ok", ping: func(ctx context.Context) error { return nil }, wantStatusCode: http.StatusOK},
		{name: "ping_fails", ping: func(ctx context.Context) error { return errors.New("down") }, wantStatusCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewHealthHandler(tt.ping)
			r := setupRouter(http.MethodGet, "/readyz", h.Readyz)

			w := serve(r, http.MethodGet, "/readyz", "", nil)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantStatusCode)
			}
		})
	}
}
