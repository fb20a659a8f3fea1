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

// TagHandler manages tag endpoints.
type TagHandler struct {
	svc    *service.TagService
	logger *slog.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(svc *service.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{svc: svc, logger: logger}
}

// List returns the caller's tags, name-descending. The assigned_only
// flag restricts results to tags used by at least one recipe.
//
// GET /recipe/tags?assigned_only=1
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	assignedOnly := dto.ParseBoolFlag(r.URL.Query().Get("assigned_only"))

	tags, err := h.svc.ListTags(r.Context(), userID, assignedOnly)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTagListResponse(tags))
}

// Create adds a tag owned by the caller.
//
// POST /recipe/tags
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	tag, err := h.svc.CreateTag(r.Context(), userID, req.Name)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTagResponse(tag))
}

// handleServiceError maps service errors to HTTP responses.
func (h *TagHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyName):
		writeError(w, http.StatusBadRequest, "EMPTY_NAME", "Name must not be empty")
	case errors.Is(err, service.ErrNameTooLong):
		writeError(w, http.StatusBadRequest, "NAME_TOO_LONG", "Name must be at most 255 characters")
	default:
		h.logger.LogAttrs(r.Context(), slog.LevelError, "tag handler error",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
