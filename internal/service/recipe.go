package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/platekeep/platekeep/internal/metrics"
	"github.com/platekeep/platekeep/internal/model"
	"github.com/platekeep/platekeep/internal/repository"
	"github.com/platekeep/platekeep/internal/storage"
)

// Recipe errors.
var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrEmptyTitle     = errors.New("title must not be empty")
	ErrTitleTooLong   = errors.New("title too long")
	ErrInvalidTime    = errors.New("time_minutes must be positive")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrLinkTooLong    = errors.New("link too long")
	ErrInvalidImage   = errors.New("invalid image")
)

// RecipeService handles recipe business logic.
type RecipeService struct {
	repo    *repository.Repository
	store   *storage.MediaStore
	metrics metrics.Recorder
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(repo *repository.Repository, store *storage.MediaStore, recorder metrics.Recorder) *RecipeService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RecipeService{repo: repo, store: store, metrics: recorder}
}

// CreateRecipeInput defines input for creating a recipe.
type CreateRecipeInput struct {
	OwnerID       string
	Title         string
	TimeMinutes   int
	Price         string
	Link          string
	TagIDs        []int64
	IngredientIDs []int64
}

// CreateRecipe validates and persists a new recipe. Referenced tag and
// ingredient IDs must belong to the caller.
func (s *RecipeService) CreateRecipe(ctx context.Context, input CreateRecipeInput) (*model.Recipe, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateRecipeFields(title, input.TimeMinutes, input.Price, input.Link); err != nil {
		return nil, err
	}

	if err := s.checkOwnedTags(ctx, input.OwnerID, input.TagIDs); err != nil {
		return nil, err
	}
	if err := s.checkOwnedIngredients(ctx, input.OwnerID, input.IngredientIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recipe := &model.Recipe{
		Title:         title,
		TimeMinutes:   input.TimeMinutes,
		Price:         input.Price,
		Link:          input.Link,
		OwnerID:       input.OwnerID,
		TagIDs:        input.TagIDs,
		IngredientIDs: input.IngredientIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.metrics.IncRecipeCreated()

	return s.repo.GetRecipeByID(ctx, input.OwnerID, recipe.ID)
}

// ListRecipes returns the caller's recipes, newest first, optionally
// filtered by tag and ingredient IDs.
func (s *RecipeService) ListRecipes(ctx context.Context, ownerID string, tagIDs, ingredientIDs []int64) ([]*model.Recipe, error) {
	return s.repo.ListRecipes(ctx, repository.RecipeFilter{
		OwnerID:       ownerID,
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
}

// GetRecipe returns one of the caller's recipes.
func (s *RecipeService) GetRecipe(ctx context.Context, ownerID string, id int64) (*model.Recipe, error) {
	recipe, err := s.repo.GetRecipeByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// UpdateRecipeInput defines input for updating a recipe. Nil fields
// are left unchanged; a non-nil ID slice replaces the associations,
// including replacement with the empty set.
type UpdateRecipeInput struct {
	OwnerID       string
	ID            int64
	Title         *string
	TimeMinutes   *int
	Price         *string
	Link          *string
	TagIDs        *[]int64
	IngredientIDs *[]int64
}

// UpdateRecipe applies changes to one of the caller's recipes.
func (s *RecipeService) UpdateRecipe(ctx context.Context, input UpdateRecipeInput) (*model.Recipe, error) {
	recipe, err := s.repo.GetRecipeByID(ctx, input.OwnerID, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		recipe.Title = strings.TrimSpace(*input.Title)
	}
	if input.TimeMinutes != nil {
		recipe.TimeMinutes = *input.TimeMinutes
	}
	if input.Price != nil {
		recipe.Price = *input.Price
	}
	if input.Link != nil {
		recipe.Link = *input.Link
	}

	if err := validateRecipeFields(recipe.Title, recipe.TimeMinutes, recipe.Price, recipe.Link); err != nil {
		return nil, err
	}

	replaceTags := input.TagIDs != nil
	if replaceTags {
		if err := s.checkOwnedTags(ctx, input.OwnerID, *input.TagIDs); err != nil {
			return nil, err
		}
		recipe.TagIDs = *input.TagIDs
	}

	replaceIngredients := input.IngredientIDs != nil
	if replaceIngredients {
		if err := s.checkOwnedIngredients(ctx, input.OwnerID, *input.IngredientIDs); err != nil {
			return nil, err
		}
		recipe.IngredientIDs = *input.IngredientIDs
	}

	recipe.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateRecipe(ctx, recipe, replaceTags, replaceIngredients); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	s.metrics.IncRecipeUpdated()

	return s.repo.GetRecipeByID(ctx, input.OwnerID, input.ID)
}

// DeleteRecipe removes one of the caller's recipes and its stored image.
func (s *RecipeService) DeleteRecipe(ctx context.Context, ownerID string, id int64) error {
	recipe, err := s.repo.GetRecipeByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	if err := s.repo.DeleteRecipe(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	s.metrics.IncRecipeDeleted()

	if recipe.ImagePath != nil && s.store != nil {
		_ = s.store.Remove(*recipe.ImagePath)
	}

	return nil
}

// AttachImage validates and stores an uploaded image for one of the
// caller's recipes, replacing any previous image file.
func (s *RecipeService) AttachImage(ctx context.Context, ownerID string, id int64, r io.Reader, filename string) (*model.Recipe, error) {
	recipe, err := s.repo.GetRecipeByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	path, err := s.store.SaveRecipeImage(r, filename)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return nil, ErrInvalidImage
		}
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	if err := s.repo.SetRecipeImage(ctx, ownerID, id, path); err != nil {
		_ = s.store.Remove(path)
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if recipe.ImagePath != nil {
		_ = s.store.Remove(*recipe.ImagePath)
	}

	s.metrics.IncImageUploaded()

	return s.repo.GetRecipeByID(ctx, ownerID, id)
}

// checkOwnedTags verifies every ID refers to a tag owned by the caller.
func (s *RecipeService) checkOwnedTags(ctx context.Context, ownerID string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tags, err := s.repo.GetTagsByIDs(ctx, ownerID, ids)
	if err != nil {
		return err
	}
	found := make(map[int64]bool, len(tags))
	for _, tag := range tags {
		found[tag.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return ErrTagNotFound
		}
	}
	return nil
}

// checkOwnedIngredients verifies every ID refers to an ingredient owned
// by the caller.
func (s *RecipeService) checkOwnedIngredients(ctx context.Context, ownerID string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	ingredients, err := s.repo.GetIngredientsByIDs(ctx, ownerID, ids)
	if err != nil {
		return err
	}
	found := make(map[int64]bool, len(ingredients))
	for _, ingredient := range ingredients {
		found[ingredient.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return ErrIngredientNotFound
		}
	}
	return nil
}

// validateRecipeFields checks scalar recipe fields.
func validateRecipeFields(title string, timeMinutes int, price, link string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > model.MaxTitleLength {
		return ErrTitleTooLong
	}
	if timeMinutes < 1 {
		return ErrInvalidTime
	}
	if !model.ValidPrice(price) {
		return ErrInvalidPrice
	}
	if len(link) > model.MaxLinkLength {
		return ErrLinkTooLong
	}
	return nil
}
