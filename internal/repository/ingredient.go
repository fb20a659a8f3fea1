package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/platekeep/platekeep/internal/model"
)

// ErrIngredientNotFound indicates a missing or foreign-owned ingredient.
var ErrIngredientNotFound = errors.New("ingredient not found")

// CreateIngredient inserts an ingredient and fills in its generated ID.
func (r *Repository) CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error {
	query := `
		INSERT INTO ingredients (name, owner_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		ingredient.Name,
		ingredient.OwnerID,
		ingredient.CreatedAt,
	).Scan(&ingredient.ID)

	if err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}

	return nil
}

// ListIngredients returns the owner's ingredients ordered by name descending.
// With AssignedOnly set, only ingredients used by at least one recipe are
// returned, each at most once.
func (r *Repository) ListIngredients(ctx context.Context, filter AttributeFilter) ([]*model.Ingredient, error) {
	query := `
		SELECT i.id, i.name, i.owner_id, i.created_at
		FROM ingredients i
		WHERE i.owner_id = $1
		ORDER BY i.name DESC
	`
	if filter.AssignedOnly {
		query = `
			SELECT DISTINCT i.id, i.name, i.owner_id, i.created_at
			FROM ingredients i
			INNER JOIN recipe_ingredients ri ON ri.ingredient_id = i.id
			WHERE i.owner_id = $1
			ORDER BY i.name DESC
		`
	}

	rows, err := r.pool.Query(ctx, query, filter.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := make([]*model.Ingredient, 0)
	for rows.Next() {
		var ingredient model.Ingredient
		if err := rows.Scan(&ingredient.ID, &ingredient.Name, &ingredient.OwnerID, &ingredient.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, &ingredient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingredients: %w", err)
	}

	return ingredients, nil
}

// GetIngredientsByIDs fetches the owner's ingredients matching the given IDs.
// The result may be shorter than ids when some IDs are missing or belong
// to another owner.
func (r *Repository) GetIngredientsByIDs(ctx context.Context, ownerID string, ids []int64) ([]*model.Ingredient, error) {
	if len(ids) == 0 {
		return []*model.Ingredient{}, nil
	}

	query := `
		SELECT id, name, owner_id, created_at
		FROM ingredients
		WHERE owner_id = $1 AND id = ANY($2)
	`

	rows, err := r.pool.Query(ctx, query, ownerID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients by IDs: %w", err)
	}
	defer rows.Close()

	ingredients := make([]*model.Ingredient, 0, len(ids))
	for rows.Next() {
		var ingredient model.Ingredient
		if err := rows.Scan(&ingredient.ID, &ingredient.Name, &ingredient.OwnerID, &ingredient.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, &ingredient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingredients: %w", err)
	}

	return ingredients, nil
}
