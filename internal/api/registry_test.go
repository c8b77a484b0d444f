package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingEndpoint struct{}

func (e *pingEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&pingEndpoint{})

	if len(r.Endpoints()) != 1 {
		t.Fatalf("Endpoints() = %d, want 1", len(r.Endpoints()))
	}

	mux := http.NewServeMux()
	r.RegisterRoutes(mux)

	t.Run("registered route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
			t.Errorf("GET /ping = %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("method mismatch", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST /ping = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}
