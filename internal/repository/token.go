package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/platekeep/platekeep/internal/model"
)

// ErrTokenNotFound indicates no matching auth token row.
var ErrTokenNotFound = errors.New("auth token not found")

// CreateAuthToken inserts a new bearer token record.
func (r *Repository) CreateAuthToken(ctx context.Context, token *model.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (id, user_id, token_hash, token_prefix, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.TokenPrefix,
		token.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create auth token: %w", err)
	}

	return nil
}

// GetAuthTokensByPrefix returns all live tokens sharing a prefix.
// Prefixes are short so collisions are possible; callers verify the
// secret against each candidate's hash.
func (r *Repository) GetAuthTokensByPrefix(ctx context.Context, prefix string) ([]*model.AuthToken, error) {
	query := `
		SELECT id, user_id, token_hash, token_prefix, revoked_at, last_used_at, created_at
		FROM auth_tokens
		WHERE token_prefix = $1 AND revoked_at IS NULL
	`

	rows, err := r.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to query auth tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*model.AuthToken
	for rows.Next() {
		var token model.AuthToken
		if err := rows.Scan(
			&token.ID,
			&token.UserID,
			&token.TokenHash,
			&token.TokenPrefix,
			&token.RevokedAt,
			&token.LastUsedAt,
			&token.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan auth token: %w", err)
		}
		tokens = append(tokens, &token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auth tokens: %w", err)
	}

	return tokens, nil
}

// UpdateAuthTokenLastUsed records when a token last authenticated a request.
func (r *Repository) UpdateAuthTokenLastUsed(ctx context.Context, id string, usedAt time.Time) error {
	query := `UPDATE auth_tokens SET last_used_at = $2 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, usedAt)
	if err != nil {
		return fmt.Errorf("failed to update token last used: %w", err)
	}

	return nil
}

// RevokeAuthToken marks a token as revoked. Revocation is idempotent.
func (r *Repository) RevokeAuthToken(ctx context.Context, id string) error {
	query := `
		UPDATE auth_tokens
		SET revoked_at = $2
		WHERE id = $1 AND revoked_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to revoke auth token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTokenNotFound
	}

	return nil
}
