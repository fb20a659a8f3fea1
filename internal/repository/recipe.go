package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"github.com/platekeep/platekeep/internal/model"
)

// ErrRecipeNotFound indicates a missing or foreign-owned recipe.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeFilter narrows recipe listings. TagIDs and IngredientIDs each
// match recipes having ANY of the given IDs; both set means both must
// match.
type RecipeFilter struct {
	OwnerID       string
	TagIDs        []int64
	IngredientIDs []int64
}

// CreateRecipe inserts a recipe and its tag/ingredient associations in
// one transaction, filling in the generated ID.
func (r *Repository) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO recipes (title, time_minutes, price, link, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		recipe.Title,
		recipe.TimeMinutes,
		recipe.Price,
		recipe.Link,
		recipe.OwnerID,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	).Scan(&recipe.ID)
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	if err := insertRecipeTags(ctx, tx, recipe.ID, recipe.TagIDs); err != nil {
		return err
	}
	if err := insertRecipeIngredients(ctx, tx, recipe.ID, recipe.IngredientIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}

	return nil
}

// GetRecipeByID retrieves an owner's recipe with its association IDs.
// Foreign-owned recipes are indistinguishable from missing ones.
func (r *Repository) GetRecipeByID(ctx context.Context, ownerID string, id int64) (*model.Recipe, error) {
	query := `
		SELECT id, title, time_minutes, price::text, link, image_path, owner_id, created_at, updated_at
		FROM recipes
		WHERE id = $1 AND owner_id = $2
	`

	var recipe model.Recipe
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&recipe.ID,
		&recipe.Title,
		&recipe.TimeMinutes,
		&recipe.Price,
		&recipe.Link,
		&recipe.ImagePath,
		&recipe.OwnerID,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if err := r.loadRecipeAssociations(ctx, []*model.Recipe{&recipe}); err != nil {
		return nil, err
	}

	return &recipe, nil
}

// ListRecipes returns the owner's recipes ordered by ID descending,
// newest first, with association IDs populated.
func (r *Repository) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error) {
	query := `
		SELECT r.id, r.title, r.time_minutes, r.price::text, r.link, r.image_path, r.owner_id, r.created_at, r.updated_at
		FROM recipes r
		WHERE r.owner_id = $1
	`
	args := []any{filter.OwnerID}

	if len(filter.TagIDs) > 0 {
		args = append(args, pq.Array(filter.TagIDs))
		query += fmt.Sprintf(`
		AND EXISTS (
			SELECT 1 FROM recipe_tags rt
			WHERE rt.recipe_id = r.id AND rt.tag_id = ANY($%d)
		)`, len(args))
	}

	if len(filter.IngredientIDs) > 0 {
		args = append(args, pq.Array(filter.IngredientIDs))
		query += fmt.Sprintf(`
		AND EXISTS (
			SELECT 1 FROM recipe_ingredients ri
			WHERE ri.recipe_id = r.id AND ri.ingredient_id = ANY($%d)
		)`, len(args))
	}

	query += `
		ORDER BY r.id DESC
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]*model.Recipe, 0)
	for rows.Next() {
		var recipe model.Recipe
		if err := rows.Scan(
			&recipe.ID,
			&recipe.Title,
			&recipe.TimeMinutes,
			&recipe.Price,
			&recipe.Link,
			&recipe.ImagePath,
			&recipe.OwnerID,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, &recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}

	if err := r.loadRecipeAssociations(ctx, recipes); err != nil {
		return nil, err
	}

	return recipes, nil
}

// UpdateRecipe persists field changes and, when replaceTags or
// replaceIngredients is set, swaps the corresponding associations for
// the recipe's current ID lists. Unset flags leave associations alone.
func (r *Repository) UpdateRecipe(ctx context.Context, recipe *model.Recipe, replaceTags, replaceIngredients bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE recipes
		SET title = $3, time_minutes = $4, price = $5::numeric, link = $6, updated_at = $7
		WHERE id = $1 AND owner_id = $2
	`

	result, err := tx.Exec(ctx, query,
		recipe.ID,
		recipe.OwnerID,
		recipe.Title,
		recipe.TimeMinutes,
		recipe.Price,
		recipe.Link,
		recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	if replaceTags {
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipe.ID); err != nil {
			return fmt.Errorf("failed to clear recipe tags: %w", err)
		}
		if err := insertRecipeTags(ctx, tx, recipe.ID, recipe.TagIDs); err != nil {
			return err
		}
	}

	if replaceIngredients {
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
			return fmt.Errorf("failed to clear recipe ingredients: %w", err)
		}
		if err := insertRecipeIngredients(ctx, tx, recipe.ID, recipe.IngredientIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recipe update: %w", err)
	}

	return nil
}

// DeleteRecipe removes an owner's recipe. Join rows cascade.
func (r *Repository) DeleteRecipe(ctx context.Context, ownerID string, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// SetRecipeImage stores the relative media path of an uploaded image.
func (r *Repository) SetRecipeImage(ctx context.Context, ownerID string, id int64, path string) error {
	query := `
		UPDATE recipes
		SET image_path = $3, updated_at = now()
		WHERE id = $1 AND owner_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, ownerID, path)
	if err != nil {
		return fmt.Errorf("failed to set recipe image: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// loadRecipeAssociations fills TagIDs and IngredientIDs for the given
// recipes with two batch queries.
func (r *Repository) loadRecipeAssociations(ctx context.Context, recipes []*model.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[int64]*model.Recipe, len(recipes))
	ids := make([]int64, 0, len(recipes))
	for _, recipe := range recipes {
		recipe.TagIDs = []int64{}
		recipe.IngredientIDs = []int64{}
		byID[recipe.ID] = recipe
		ids = append(ids, recipe.ID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT recipe_id, tag_id
		FROM recipe_tags
		WHERE recipe_id = ANY($1)
		ORDER BY tag_id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load recipe tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID, tagID int64
		if err := rows.Scan(&recipeID, &tagID); err != nil {
			return fmt.Errorf("failed to scan recipe tag: %w", err)
		}
		if recipe, ok := byID[recipeID]; ok {
			recipe.TagIDs = append(recipe.TagIDs, tagID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate recipe tags: %w", err)
	}
	rows.Close()

	rows, err = r.pool.Query(ctx, `
		SELECT recipe_id, ingredient_id
		FROM recipe_ingredients
		WHERE recipe_id = ANY($1)
		ORDER BY ingredient_id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID, ingredientID int64
		if err := rows.Scan(&recipeID, &ingredientID); err != nil {
			return fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		if recipe, ok := byID[recipeID]; ok {
			recipe.IngredientIDs = append(recipe.IngredientIDs, ingredientID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate recipe ingredients: %w", err)
	}

	return nil
}

func insertRecipeTags(ctx context.Context, tx pgx.Tx, recipeID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			recipeID, tagID,
		); err != nil {
			return fmt.Errorf("failed to attach tag %d: %w", tagID, err)
		}
	}
	return nil
}

func insertRecipeIngredients(ctx context.Context, tx pgx.Tx, recipeID int64, ingredientIDs []int64) error {
	for _, ingredientID := range ingredientIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			recipeID, ingredientID,
		); err != nil {
			return fmt.Errorf("failed to attach ingredient %d: %w", ingredientID, err)
		}
	}
	return nil
}
