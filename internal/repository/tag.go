package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/platekeep/platekeep/internal/model"
)

// ErrTagNotFound indicates a missing or foreign-owned tag.
var ErrTagNotFound = errors.New("tag not found")

// AttributeFilter narrows tag and ingredient listings.
type AttributeFilter struct {
	OwnerID      string
	AssignedOnly bool
}

// CreateTag inserts a tag and fills in its generated ID.
func (r *Repository) CreateTag(ctx context.Context, tag *model.Tag) error {
	query := `
		INSERT INTO tags (name, owner_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		tag.Name,
		tag.OwnerID,
		tag.CreatedAt,
	).Scan(&tag.ID)

	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// ListTags returns the owner's tags ordered by name descending.
// With AssignedOnly set, only tags attached to at least one recipe are
// returned, each at most once.
func (r *Repository) ListTags(ctx context.Context, filter AttributeFilter) ([]*model.Tag, error) {
	query := `
		SELECT t.id, t.name, t.owner_id, t.created_at
		FROM tags t
		WHERE t.owner_id = $1
		ORDER BY t.name DESC
	`
	if filter.AssignedOnly {
		query = `
			SELECT DISTINCT t.id, t.name, t.owner_id, t.created_at
			FROM tags t
			INNER JOIN recipe_tags rt ON rt.tag_id = t.id
			WHERE t.owner_id = $1
			ORDER BY t.name DESC
		`
	}

	rows, err := r.pool.Query(ctx, query, filter.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*model.Tag, 0)
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.OwnerID, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tags, nil
}

// GetTagsByIDs fetches the owner's tags matching the given IDs.
// The result may be shorter than ids when some IDs are missing or
// belong to another owner.
func (r *Repository) GetTagsByIDs(ctx context.Context, ownerID string, ids []int64) ([]*model.Tag, error) {
	if len(ids) == 0 {
		return []*model.Tag{}, nil
	}

	query := `
		SELECT id, name, owner_id, created_at
		FROM tags
		WHERE owner_id = $1 AND id = ANY($2)
	`

	rows, err := r.pool.Query(ctx, query, ownerID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get tags by IDs: %w", err)
	}
	defer rows.Close()

	tags := make([]*model.Tag, 0, len(ids))
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.OwnerID, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tags, nil
}
