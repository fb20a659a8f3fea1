package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// The missing and malformed token paths never touch the database or
// cache, so a bare config is sufficient.

func newAuthHandler() http.Handler {
	cfg := AuthConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return Auth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuth_MissingToken(t *testing.T) {
	handler := newAuthHandler()

	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "UNAUTHORIZED") {
		t.Errorf("body missing error code: %s", rec.Body.String())
	}
}

func TestAuth_NonBearerScheme(t *testing.T) {
	handler := newAuthHandler()

	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_MalformedToken(t *testing.T) {
	handler := newAuthHandler()

	tests := []string{
		"Bearer not-a-token",
		"Bearer ptk_short_short",
		"Bearer ptk_ABCDEF_0123456789ABCDEF0123456789ABCDEF",
	}

	for _, header := range tests {
		req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}
