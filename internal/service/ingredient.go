package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/platekeep/platekeep/internal/metrics"
	"github.com/platekeep/platekeep/internal/model"
	"github.com/platekeep/platekeep/internal/repository"
)

// ErrIngredientNotFound indicates a missing or foreign-owned ingredient.
var ErrIngredientNotFound = errors.New("ingredient not found")

// IngredientService handles ingredient business logic.
type IngredientService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(repo *repository.Repository, recorder metrics.Recorder) *IngredientService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &IngredientService{repo: repo, metrics: recorder}
}

// ListIngredients returns the caller's ingredients, optionally
// restricted to ingredients used by at least one recipe.
func (s *IngredientService) ListIngredients(ctx context.Context, ownerID string, assignedOnly bool) ([]*model.Ingredient, error) {
	return s.repo.ListIngredients(ctx, repository.AttributeFilter{
		OwnerID:      ownerID,
		AssignedOnly: assignedOnly,
	})
}

// CreateIngredient creates an ingredient owned by the caller.
func (s *IngredientService) CreateIngredient(ctx context.Context, ownerID, name string) (*model.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > model.MaxNameLength {
		return nil, ErrNameTooLong
	}

	ingredient := &model.Ingredient{
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateIngredient(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}

	return ingredient, nil
}
