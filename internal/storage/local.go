package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes images to {root}/ProfileImages and hands out
// /ProfileImages/{key} paths for the HTTP server to serve statically.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Dir returns the directory images are written to.
func (s *LocalStore) Dir() string {
	return filepath.Join(s.root, ImageFolder)
}

func (s *LocalStore) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	name := filepath.Base(key)
	if err := os.WriteFile(filepath.Join(s.Dir(), name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path.Join("/", ImageFolder, name), nil
}

func (s *LocalStore) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prefix := "/" + ImageFolder + "/"
	if !strings.HasPrefix(p, prefix) {
		return ErrInvalidPath
	}
	name := filepath.Base(strings.TrimPrefix(p, prefix))
	err := os.Remove(filepath.Join(s.Dir(), name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
