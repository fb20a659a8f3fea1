package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/platekeep/platekeep/internal/auth"
	"github.com/platekeep/platekeep/internal/handler/dto"
	"github.com/platekeep/platekeep/internal/service"
)

// RecipeHandler manages recipe endpoints.
type RecipeHandler struct {
	svc    *service.RecipeService
	logger *slog.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(svc *service.RecipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, logger: logger}
}

// List returns the caller's recipes, newest first. The tags and
// ingredients parameters take comma-separated ID lists; a recipe must
// match at least one ID from each present list.
//
// GET /recipe/recipes?tags=1,2&ingredients=3
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	tagIDs, err := dto.ParseIDList(r.URL.Query().Get("tags"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID_LIST", "tags must be a comma-separated list of IDs")
		return
	}
	ingredientIDs, err := dto.ParseIDList(r.URL.Query().Get("ingredients"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID_LIST", "ingredients must be a comma-separated list of IDs")
		return
	}

	recipes, err := h.svc.ListRecipes(r.Context(), userID, tagIDs, ingredientIDs)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeListResponse(recipes))
}

// Create adds a recipe owned by the caller.
//
// POST /recipe/recipes
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	var req dto.CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	recipe, err := h.svc.CreateRecipe(r.Context(), service.CreateRecipeInput{
		OwnerID:       userID,
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToRecipeResponse(recipe))
}

// Get returns one of the caller's recipes.
//
// GET /recipe/recipes/{id}
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	id, ok := parseRecipeID(w, r)
	if !ok {
		return
	}

	recipe, err := h.svc.GetRecipe(r.Context(), userID, id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeResponse(recipe))
}

// Replace fully updates one of the caller's recipes. Omitted scalar
// fields reset to their zero values and omitted relation lists clear
// the associations.
//
// PUT /recipe/recipes/{id}
func (h *RecipeHandler) Replace(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	id, ok := parseRecipeID(w, r)
	if !ok {
		return
	}

	var req dto.CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	tags := req.Tags
	if tags == nil {
		tags = []int64{}
	}
	ingredients := req.Ingredients
	if ingredients == nil {
		ingredients = []int64{}
	}

	recipe, err := h.svc.UpdateRecipe(r.Context(), service.UpdateRecipeInput{
		OwnerID:       userID,
		ID:            id,
		Title:         &req.Title,
		TimeMinutes:   &req.TimeMinutes,
		Price:         &req.Price,
		Link:          &req.Link,
		TagIDs:        &tags,
		IngredientIDs: &ingredients,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeResponse(recipe))
}

// Update partially updates one of the caller's recipes. Omitted fields
// keep their current values; a present relation list replaces the
// associations.
//
// PATCH /recipe/recipes/{id}
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	id, ok := parseRecipeID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	recipe, err := h.svc.UpdateRecipe(r.Context(), service.UpdateRecipeInput{
		OwnerID:       userID,
		ID:            id,
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeResponse(recipe))
}

// Delete removes one of the caller's recipes.
//
// DELETE /recipe/recipes/{id}
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	id, ok := parseRecipeID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteRecipe(r.Context(), userID, id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage attaches an image to one of the caller's recipes. The
// image is sent as a multipart form field named "image".
//
// POST /recipe/recipes/{id}/upload-image
func (h *RecipeHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	id, ok := parseRecipeID(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_IMAGE", "An image file is required")
		return
	}
	defer file.Close()

	recipe, err := h.svc.AttachImage(r.Context(), userID, id, file, header.Filename)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeResponse(recipe))
}

// parseRecipeID extracts the recipe ID from the URL. Non-numeric IDs
// get the same response as missing recipes.
func parseRecipeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusNotFound, "RECIPE_NOT_FOUND", "Recipe not found")
		return 0, false
	}
	return id, true
}

// handleServiceError maps service errors to HTTP responses.
func (h *RecipeHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, "RECIPE_NOT_FOUND", "Recipe not found")
	case errors.Is(err, service.ErrEmptyTitle):
		writeError(w, http.StatusBadRequest, "EMPTY_TITLE", "Title must not be empty")
	case errors.Is(err, service.ErrTitleTooLong):
		writeError(w, http.StatusBadRequest, "TITLE_TOO_LONG", "Title must be at most 255 characters")
	case errors.Is(err, service.ErrInvalidTime):
		writeError(w, http.StatusBadRequest, "INVALID_TIME", "time_minutes must be a positive integer")
	case errors.Is(err, service.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, "INVALID_PRICE", "price must be a decimal with at most 5 digits and 2 decimal places")
	case errors.Is(err, service.ErrLinkTooLong):
		writeError(w, http.StatusBadRequest, "LINK_TOO_LONG", "Link must be at most 255 characters")
	case errors.Is(err, service.ErrTagNotFound):
		writeError(w, http.StatusBadRequest, "TAG_NOT_FOUND", "One or more tags do not exist")
	case errors.Is(err, service.ErrIngredientNotFound):
		writeError(w, http.StatusBadRequest, "INGREDIENT_NOT_FOUND", "One or more ingredients do not exist")
	case errors.Is(err, service.ErrInvalidImage):
		writeError(w, http.StatusBadRequest, "INVALID_IMAGE", "Uploaded file is not a valid image")
	default:
		h.logger.LogAttrs(r.Context(), slog.LevelError, "recipe handler error",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
