package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements file storage on the local filesystem. Files are
// served back through the /static/ route, so the returned URL is
// baseURL + "/static/" + key.
type LocalStorage struct {
	baseURL   string // Server URL (e.g., "http://localhost:8080")
	uploadDir string // Local directory for uploads (e.g., "./uploads")
}

// NewLocalStorage creates a local storage backend rooted at uploadDir.
func NewLocalStorage(baseURL, uploadDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalStorage{
		baseURL:   strings.TrimRight(baseURL, "/"),
		uploadDir: uploadDir,
	}, nil
}

func (l *LocalStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	fullPath, err := l.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return l.publicURL(key), nil
}

func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := l.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (l *LocalStorage) Exists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := l.resolve(key)
	if err != nil {
		return false, 0, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

// GetLocalPath returns the filesystem path for a key. Used by the static
// file server setup.
func (l *LocalStorage) GetLocalPath(key string) string {
	return filepath.Join(l.uploadDir, filepath.FromSlash(key))
}

// Root returns the upload directory the /static/ route serves from.
func (l *LocalStorage) Root() string {
	return l.uploadDir
}

// resolve maps a key onto the upload directory and rejects keys that would
// escape it.
func (l *LocalStorage) resolve(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(l.uploadDir, cleaned), nil
}

func (l *LocalStorage) publicURL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return l.baseURL + "/static/" + strings.Join(parts, "/")
}
