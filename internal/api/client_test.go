package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/extract" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		f, fh, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer f.Close()

		if fh.Filename != "scan.png" {
			t.Errorf("filename = %q, want scan.png", fh.Filename)
		}
		if ct := fh.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("part content type = %q, want image/png", ct)
		}
		data, _ := io.ReadAll(f)
		if string(data) != "payload" {
			t.Errorf("part body = %q, want payload", data)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	body, err := c.Upload(context.Background(), "/extract", FormFile{
		Field:       "file",
		Filename:    "scan.png",
		ContentType: "image/png",
		Body:        strings.NewReader("payload"),
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %s", body)
	}
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"detail string", http.StatusBadRequest, `{"detail":"Unsupported file type"}`, "Unsupported file type"},
		{"no detail", http.StatusInternalServerError, `{"error":"x"}`, ""},
		{"detail not a string", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"}]}`, ""},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
		{"empty body", http.StatusServiceUnavailable, ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL).Get(context.Background(), "/", nil)

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %T: %v", err, err)
			}
			if statusErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, tt.status)
			}
			if statusErr.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", statusErr.Detail, tt.wantDetail)
			}
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url).Get(context.Background(), "/", nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if transportErr.Error() == "" {
		t.Error("transport error should carry a message")
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	if c.Timeout() != 50*time.Millisecond {
		t.Errorf("Timeout() = %v", c.Timeout())
	}

	err := c.Get(context.Background(), "/", nil)
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"running","message":"active"}`))
	}))
	defer srv.Close()

	var resp struct {
		Status string `json:"status"`
	}
	if err := NewClient(srv.URL).Get(context.Background(), "/", &resp); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.Status != "running" {
		t.Errorf("Status = %q, want running", resp.Status)
	}
}
