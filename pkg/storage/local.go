package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes files under a directory served as static content.
type LocalStorage struct {
	basePath  string // filesystem root, e.g. ./Public/uploads
	urlPrefix string // public prefix, e.g. /uploads
}

// NewLocalStorage creates basePath if needed.
func NewLocalStorage(basePath, urlPrefix string) (*LocalStorage, error) {
	if basePath == "" {
		basePath = "./Public/uploads"
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath:  basePath,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}, nil
}

// Save stores a file locally. The file is written to a temporary name first
// so a failed write never leaves a truncated file at the final path.
func (s *LocalStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if !validKey(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// Delete removes a file from local storage
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (s *LocalStorage) URL(key string) string {
	return s.urlPrefix + "/" + key
}

func (s *LocalStorage) KeyFromURL(url string) (string, bool) {
	key, found := strings.CutPrefix(url, s.urlPrefix+"/")
	if !found || !validKey(key) {
		return "", false
	}
	return key, true
}

// Dir is the filesystem root, used to mount the static route.
func (s *LocalStorage) Dir() string {
	return s.basePath
}

// URLPrefix is the public route prefix files are served under.
func (s *LocalStorage) URLPrefix() string {
	return s.urlPrefix
}
