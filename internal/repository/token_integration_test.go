//go:build integration

package repository

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/platekeep/platekeep/internal/model"
	"github.com/platekeep/platekeep/internal/testutil"
)

func newTestToken(userID, prefix string) *model.AuthToken {
	return &model.AuthToken{
		ID:          ulid.Make().String(),
		UserID:      userID,
		TokenHash:   "$argon2id$v=19$m=65536,t=3,p=4$placeholder$placeholder",
		TokenPrefix: prefix,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestIntegrationTokenRepository_PrefixLookup(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("token"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// Two tokens share a prefix, one has a different prefix.
	first := newTestToken(user.ID, "aaaaaa")
	second := newTestToken(user.ID, "aaaaaa")
	other := newTestToken(user.ID, "bbbbbb")

	for _, token := range []*model.AuthToken{first, second, other} {
		if err := repo.CreateAuthToken(ctx, token); err != nil {
			t.Fatalf("CreateAuthToken failed: %v", err)
		}
	}

	tokens, err := repo.GetAuthTokensByPrefix(ctx, "aaaaaa")
	if err != nil {
		t.Fatalf("GetAuthTokensByPrefix failed: %v", err)
	}
	if len(tokens) != 2 {
		t.Errorf("Expected 2 tokens, got %d", len(tokens))
	}
}

func TestIntegrationTokenRepository_PrefixLookup_ExcludesRevoked(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("revoke"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	token := newTestToken(user.ID, "cccccc")
	if err := repo.CreateAuthToken(ctx, token); err != nil {
		t.Fatalf("CreateAuthToken failed: %v", err)
	}

	if err := repo.RevokeAuthToken(ctx, token.ID); err != nil {
		t.Fatalf("RevokeAuthToken failed: %v", err)
	}

	tokens, err := repo.GetAuthTokensByPrefix(ctx, "cccccc")
	if err != nil {
		t.Fatalf("GetAuthTokensByPrefix failed: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("Expected no live tokens after revocation, got %d", len(tokens))
	}
}

func TestIntegrationTokenRepository_LastUsed(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("lastused"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	token := newTestToken(user.ID, "dddddd")
	if err := repo.CreateAuthToken(ctx, token); err != nil {
		t.Fatalf("CreateAuthToken failed: %v", err)
	}

	usedAt := time.Now().UTC().Truncate(time.Millisecond)
	if err := repo.UpdateAuthTokenLastUsed(ctx, token.ID, usedAt); err != nil {
		t.Fatalf("UpdateAuthTokenLastUsed failed: %v", err)
	}

	tokens, err := repo.GetAuthTokensByPrefix(ctx, "dddddd")
	if err != nil {
		t.Fatalf("GetAuthTokensByPrefix failed: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("Expected 1 token, got %d", len(tokens))
	}
	if tokens[0].LastUsedAt == nil {
		t.Fatal("Expected LastUsedAt to be set")
	}
	if !tokens[0].LastUsedAt.Equal(usedAt) {
		t.Errorf("LastUsedAt mismatch: got %v, want %v", tokens[0].LastUsedAt, usedAt)
	}
}

func TestIntegrationTokenRepository_CascadeOnUserDelete(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("cascade"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	token := newTestToken(user.ID, "eeeeee")
	if err := repo.CreateAuthToken(ctx, token); err != nil {
		t.Fatalf("CreateAuthToken failed: %v", err)
	}

	if err := repo.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	tokens, err := repo.GetAuthTokensByPrefix(ctx, "eeeeee")
	if err != nil {
		t.Fatalf("GetAuthTokensByPrefix failed: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("Expected tokens to cascade on user delete, got %d", len(tokens))
	}
}
