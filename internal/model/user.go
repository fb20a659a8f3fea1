// Package model defines domain entities for the application.
package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 5

// MaxNameLength caps user display names and attribute names.
const MaxNameLength = 255

// Email validation errors.
var (
	ErrEmailEmpty   = errors.New("email must not be empty")
	ErrEmailInvalid = errors.New("email is not a valid address")
)

// emailPattern is a pragmatic address check: one @, non-empty local part,
// dotted domain. Full RFC 5322 parsing is not attempted.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents an account that owns tags, ingredients, and recipes.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never serialize
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail lowercases the domain part of an address and leaves the
// local part untouched. Normalizing an already-normalized address returns
// the same value.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// ValidateEmail checks that the address is non-empty and well-formed.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailEmpty
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}
