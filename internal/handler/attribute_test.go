package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTagCreate_InvalidJSON(t *testing.T) {
	h := NewTagHandler(nil, discardLogger())

	req := authedRequest(http.MethodPost, "/recipe/tags", "not json")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeErrorResponse(t, rec); resp.Code != "INVALID_JSON" {
		t.Errorf("expected INVALID_JSON, got %q", resp.Code)
	}
}

func TestTagList_Unauthenticated(t *testing.T) {
	h := NewTagHandler(nil, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/recipe/tags", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestIngredientCreate_InvalidJSON(t *testing.T) {
	h := NewIngredientHandler(nil, discardLogger())

	req := authedRequest(http.MethodPost, "/recipe/ingredients", "][")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestIngredientList_Unauthenticated(t *testing.T) {
	h := NewIngredientHandler(nil, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/recipe/ingredients", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
