package dto

import "github.com/platekeep/platekeep/internal/model"

// CreateAttributeRequest represents the request body for creating a
// tag or ingredient.
type CreateAttributeRequest struct {
	Name string `json:"name"`
}

// TagResponse represents a tag in API responses.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// IngredientResponse represents an ingredient in API responses.
type IngredientResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ToTagResponse converts a Tag model to TagResponse DTO.
func ToTagResponse(tag *model.Tag) *TagResponse {
	return &TagResponse{ID: tag.ID, Name: tag.Name}
}

// ToTagListResponse converts a slice of Tag models to response DTOs.
func ToTagListResponse(tags []*model.Tag) []TagResponse {
	responses := make([]TagResponse, len(tags))
	for i, tag := range tags {
		responses[i] = *ToTagResponse(tag)
	}
	return responses
}

// ToIngredientResponse converts an Ingredient model to IngredientResponse DTO.
func ToIngredientResponse(ingredient *model.Ingredient) *IngredientResponse {
	return &IngredientResponse{ID: ingredient.ID, Name: ingredient.Name}
}

// ToIngredientListResponse converts a slice of Ingredient models to response DTOs.
func ToIngredientListResponse(ingredients []*model.Ingredient) []IngredientResponse {
	responses := make([]IngredientResponse, len(ingredients))
	for i, ingredient := range ingredients {
		responses[i] = *ToIngredientResponse(ingredient)
	}
	return responses
}
