package model

import "time"

// AuthToken represents an issued bearer credential. Only the argon2id hash
// of the plaintext token is stored; the prefix allows candidate lookup
// during authentication.
type AuthToken struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	TokenHash   string     `json:"-"` // Never serialize
	TokenPrefix string     `json:"token_prefix"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsRevoked returns true if the token has been revoked.
func (t *AuthToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// AuthContext holds the identity resolved by the auth middleware.
// It is injected into the request context after token verification.
type AuthContext struct {
	UserID  string
	TokenID string
	IsStaff bool
}
