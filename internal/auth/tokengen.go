package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
)

// Token format: ptk_<prefix>_<secret>
// where prefix is 6 hex chars (indexed for lookup) and secret is 32 hex chars.
const (
	tokenPrefixBytes = 3
	tokenSecretBytes = 16
)

// ErrMalformedToken indicates a bearer token that does not match the
// expected format. Callers treat it the same as a failed verification.
var ErrMalformedToken = errors.New("malformed token")

var tokenPattern = regexp.MustCompile(`^ptk_([a-f0-9]{6})_([a-f0-9]{32})$`)

// GeneratedToken holds a freshly minted bearer token. Plaintext is shown
// to the client exactly once; only Hash and Prefix are persisted.
type GeneratedToken struct {
	Plaintext string
	Hash      string
	Prefix    string
}

// GenerateToken creates a new random bearer token and its Argon2id hash.
func GenerateToken() (*GeneratedToken, error) {
	prefixRaw := make([]byte, tokenPrefixBytes)
	if _, err := rand.Read(prefixRaw); err != nil {
		return nil, fmt.Errorf("generate token prefix: %w", err)
	}
	secretRaw := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(secretRaw); err != nil {
		return nil, fmt.Errorf("generate token secret: %w", err)
	}

	prefix := hex.EncodeToString(prefixRaw)
	secret := hex.EncodeToString(secretRaw)
	plaintext := fmt.Sprintf("ptk_%s_%s", prefix, secret)

	hash, err := HashSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("hash token secret: %w", err)
	}

	return &GeneratedToken{
		Plaintext: plaintext,
		Hash:      hash,
		Prefix:    prefix,
	}, nil
}

// ParseToken splits a presented bearer token into its prefix and secret.
func ParseToken(token string) (prefix, secret string, err error) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return "", "", ErrMalformedToken
	}
	return m[1], m[2], nil
}
