package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Storage persists uploaded files. Keys are slash separated, e.g. "cv/<uuid>.pdf".
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) error
	// Delete removes the object. A missing object is not an error.
	Delete(ctx context.Context, key string) error
	// URL is the public path persisted on records and served to clients.
	URL(key string) string
	// KeyFromURL reverses URL. ok is false for paths this storage did not produce.
	KeyFromURL(url string) (key string, ok bool)
}

// Folders used for uploads.
const (
	FolderCV      = "cv"
	FolderProfile = "profile"
)

// NewKey generates a unique key inside folder with the given extension.
func NewKey(folder, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	return fmt.Sprintf("%s/%s.%s", folder, uuid.NewString(), ext)
}

// validKey guards against path traversal in keys derived from stored URLs.
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
