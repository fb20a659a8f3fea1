package auth

import (
	"context"

	"github.com/platekeep/platekeep/internal/model"
)

type contextKey string

const authContextKey contextKey = "auth_context"

// ContextWithAuth returns a child context carrying the authenticated caller.
func ContextWithAuth(ctx context.Context, ac *model.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}

// AuthFromContext extracts the authenticated caller, if any.
func AuthFromContext(ctx context.Context) (*model.AuthContext, bool) {
	ac, ok := ctx.Value(authContextKey).(*model.AuthContext)
	return ac, ok && ac != nil
}

// UserIDFromContext is a convenience accessor for the caller's user ID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	ac, ok := AuthFromContext(ctx)
	if !ok {
		return "", false
	}
	return ac.UserID, true
}
