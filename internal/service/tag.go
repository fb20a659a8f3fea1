package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/platekeep/platekeep/internal/metrics"
	"github.com/platekeep/platekeep/internal/model"
	"github.com/platekeep/platekeep/internal/repository"
)

// Attribute errors, shared by tags and ingredients.
var (
	ErrEmptyName   = errors.New("name must not be empty")
	ErrTagNotFound = errors.New("tag not found")
)

// TagService handles tag business logic.
type TagService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewTagService creates a new TagService.
func NewTagService(repo *repository.Repository, recorder metrics.Recorder) *TagService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TagService{repo: repo, metrics: recorder}
}

// ListTags returns the caller's tags, optionally restricted to tags
// assigned to at least one recipe.
func (s *TagService) ListTags(ctx context.Context, ownerID string, assignedOnly bool) ([]*model.Tag, error) {
	return s.repo.ListTags(ctx, repository.AttributeFilter{
		OwnerID:      ownerID,
		AssignedOnly: assignedOnly,
	})
}

// CreateTag creates a tag owned by the caller.
func (s *TagService) CreateTag(ctx context.Context, ownerID, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > model.MaxNameLength {
		return nil, ErrNameTooLong
	}

	tag := &model.Tag{
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return tag, nil
}
