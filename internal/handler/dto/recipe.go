package dto

import (
	"time"

	"github.com/platekeep/platekeep/internal/model"
)

// CreateRecipeRequest represents the request body for creating a
// recipe. It also serves full replacement on PUT: omitted relation
// lists clear the associations.
type CreateRecipeRequest struct {
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       string  `json:"price"`
	Link        string  `json:"link,omitempty"`
	Tags        []int64 `json:"tags,omitempty"`
	Ingredients []int64 `json:"ingredients,omitempty"`
}

// UpdateRecipeRequest represents the request body for partial recipe
// updates. Omitted fields are left unchanged; a present (even empty)
// relation list replaces the associations.
type UpdateRecipeRequest struct {
	Title       *string  `json:"title,omitempty"`
	TimeMinutes *int     `json:"time_minutes,omitempty"`
	Price       *string  `json:"price,omitempty"`
	Link        *string  `json:"link,omitempty"`
	Tags        *[]int64 `json:"tags,omitempty"`
	Ingredients *[]int64 `json:"ingredients,omitempty"`
}

// RecipeResponse represents a recipe in API responses.
type RecipeResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	TimeMinutes int       `json:"time_minutes"`
	Price       string    `json:"price"`
	Link        string    `json:"link,omitempty"`
	Image       *string   `json:"image"`
	Tags        []int64   `json:"tags"`
	Ingredients []int64   `json:"ingredients"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToRecipeResponse converts a Recipe model to RecipeResponse DTO.
func ToRecipeResponse(recipe *model.Recipe) *RecipeResponse {
	return &RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       recipe.ImagePath,
		Tags:        recipe.TagIDs,
		Ingredients: recipe.IngredientIDs,
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
}

// ToRecipeListResponse converts a slice of Recipe models to response DTOs.
func ToRecipeListResponse(recipes []*model.Recipe) []RecipeResponse {
	responses := make([]RecipeResponse, len(recipes))
	for i, recipe := range recipes {
		responses[i] = *ToRecipeResponse(recipe)
	}
	return responses
}
