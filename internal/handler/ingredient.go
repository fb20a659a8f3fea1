package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/platekeep/platekeep/internal/auth"
	"github.com/platekeep/platekeep/internal/handler/dto"
	"github.com/platekeep/platekeep/internal/service"
)

// IngredientHandler manages ingredient endpoints.
type IngredientHandler struct {
	svc    *service.IngredientService
	logger *slog.Logger
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(svc *service.IngredientService, logger *slog.Logger) *IngredientHandler {
	return &IngredientHandler{svc: svc, logger: logger}
}

// List returns the caller's ingredients, name-descending. The
// assigned_only flag restricts results to ingredients used by at
// least one recipe.
//
// GET /recipe/ingredients?assigned_only=1
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	assignedOnly := dto.ParseBoolFlag(r.URL.Query().Get("assigned_only"))

	ingredients, err := h.svc.ListIngredients(r.Context(), userID, assignedOnly)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToIngredientListResponse(ingredients))
}

// Create adds an ingredient owned by the caller.
//
// POST /recipe/ingredients
func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	var req dto.CreateAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	ingredient, err := h.svc.CreateIngredient(r.Context(), userID, req.Name)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToIngredientResponse(ingredient))
}

// handleServiceError maps service errors to HTTP responses.
func (h *IngredientHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyName):
		writeError(w, http.StatusBadRequest, "EMPTY_NAME", "Name must not be empty")
	case errors.Is(err, service.ErrNameTooLong):
		writeError(w, http.StatusBadRequest, "NAME_TOO_LONG", "Name must be at most 255 characters")
	default:
		h.logger.LogAttrs(r.Context(), slog.LevelError, "ingredient handler error",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
