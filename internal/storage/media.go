// Package storage persists uploaded media files on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ErrInvalidImage indicates the uploaded payload is not a decodable image.
var ErrInvalidImage = errors.New("invalid image")

// recipeImageDir is the media subdirectory for recipe images.
const recipeImageDir = "uploads/recipe"

// MediaStore writes uploaded files under a root directory.
type MediaStore struct {
	root string
}

// NewMediaStore creates a MediaStore rooted at the given directory.
func NewMediaStore(root string) *MediaStore {
	return &MediaStore{root: root}
}

// Root returns the media root directory.
func (s *MediaStore) Root() string {
	return s.root
}

// SaveRecipeImage validates and stores an uploaded recipe image.
// The stored file gets a random name with the original extension, and
// the returned path is relative to the media root, slash-separated.
func (s *MediaStore) SaveRecipeImage(r io.Reader, filename string) (string, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return "", ErrInvalidImage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, err := imaging.FormatFromFilename(filename); err != nil {
		ext = ".jpg"
	}

	name := uuid.New().String() + ext
	dir := filepath.Join(s.root, filepath.FromSlash(recipeImageDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	return recipeImageDir + "/" + name, nil
}

// Remove deletes a stored media file by its relative path. Missing
// files are not an error.
func (s *MediaStore) Remove(relPath string) error {
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}
