// Package storage persists profile image bytes outside the database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ImageFolder is the folder/prefix every profile image is stored under.
const ImageFolder = "ProfileImages"

// ErrInvalidPath is returned when asked to delete a path the store did not issue.
var ErrInvalidPath = errors.New("path does not belong to this store")

// ImageStore saves and removes image blobs. Save returns the reference path
// that is recorded on the profile.
type ImageStore interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, path string) error
}

// ImageKey builds the blob key {userId}_{randomId}{ext}. The extension comes
// from the uploaded filename, or is sniffed from the bytes when the filename
// has none.
func ImageKey(userID uint, filename string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = mimetype.Detect(data).Extension()
	}
	return fmt.Sprintf("%d_%s%s", userID, uuid.NewString(), ext)
}
