package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/platekeep/platekeep/internal/metrics"
)

func TestMetrics_Exposition(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncUserRegistered()
	recorder.IncRecipeCreated()
	recorder.IncRecipeCreated()

	h := NewMetricsHandler(recorder)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected content type %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"platekeep_users_registered_total 1\n",
		"platekeep_recipes_created_total 2\n",
		"platekeep_tokens_issued_total 0\n",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q in:\n%s", want, body)
		}
	}
}

func TestMetrics_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
