// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/platekeep/platekeep/internal/auth"
	"github.com/platekeep/platekeep/internal/cache"
	"github.com/platekeep/platekeep/internal/metrics"
	"github.com/platekeep/platekeep/internal/model"
	"github.com/platekeep/platekeep/internal/repository"
)

// Service errors.
var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrNameTooLong        = errors.New("name too long")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// dummyHash keeps credential checks doing argon2 work even when the
// email does not match any account, so both failure paths take
// comparable time.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=4$c29tZXNhbHRzb21lc2E$m8VvzCDGa1MCSGPDUk9gMSJVtrkXlZQsFqnE4GmVmgY"

// UserService handles account and credential business logic.
type UserService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, cache *cache.Cache, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		cache:   cache,
		metrics: recorder,
	}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates a new active account with a hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := model.ValidateEmail(input.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < model.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(input.Name) > model.MaxNameLength {
		return nil, ErrNameTooLong
	}

	hash, err := auth.HashSecret(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        model.NormalizeEmail(input.Email),
		Name:         input.Name,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// IssueToken verifies credentials and mints a new bearer token.
// Every failure mode maps to ErrInvalidCredentials; callers must not
// be able to distinguish a wrong password from an unknown or inactive
// account.
func (s *UserService) IssueToken(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_, _ = auth.VerifySecret(password, dummyHash)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := auth.VerifySecret(password, user.PasswordHash)
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrInvalidCredentials
	}

	generated, err := auth.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := &model.AuthToken{
		ID:          ulid.Make().String(),
		UserID:      user.ID,
		TokenHash:   generated.Hash,
		TokenPrefix: generated.Prefix,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateAuthToken(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	s.metrics.IncTokenIssued()

	return generated.Plaintext, nil
}

// RevokeToken invalidates a bearer token and drops its cached auth
// context. Revoking an already revoked token succeeds.
func (s *UserService) RevokeToken(ctx context.Context, tokenID, cacheKey string) error {
	if err := s.repo.RevokeAuthToken(ctx, tokenID); err != nil && !errors.Is(err, repository.ErrTokenNotFound) {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if cacheKey != "" {
		_ = s.cache.DeleteAuthContext(ctx, cacheKey)
	}
	return nil
}

// GetProfile returns the account for an authenticated user.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput defines input for partial profile updates.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID   string
	Email    *string
	Name     *string
	Password *string
}

// UpdateProfile applies partial changes to an account. A new password
// is re-hashed; a new email is validated and normalized.
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != nil {
		if err := model.ValidateEmail(*input.Email); err != nil {
			return nil, ErrInvalidEmail
		}
		user.Email = model.NormalizeEmail(*input.Email)
	}

	if input.Name != nil {
		if len(*input.Name) > model.MaxNameLength {
			return nil, ErrNameTooLong
		}
		user.Name = *input.Name
	}

	if input.Password != nil {
		if len(*input.Password) < model.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := auth.HashSecret(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}
