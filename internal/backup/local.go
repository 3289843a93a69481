package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes backup files to the local filesystem.
type LocalStore struct {
	baseDir string
	prefix  string
}

// NewLocalStore creates a new local filesystem store.
func NewLocalStore(baseDir, prefix string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create backup directory %s: %w", baseDir, err)
	}
	return &LocalStore{
		baseDir: baseDir,
		prefix:  prefix,
	}, nil
}

// WriteFile writes the file atomically using a temp file + rename.
func (s *LocalStore) WriteFile(ctx context.Context, name string, data []byte) error {
	path := filepath.Join(s.baseDir, s.prefix+name)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("write temp file %s: %w", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("rename %s to %s: %w", tempPath, path, err)
	}

	return nil
}

// URI returns the canonical file URI for the given name.
func (s *LocalStore) URI(name string) string {
	return "file://" + filepath.Join(s.baseDir, s.prefix+name)
}

// Close is a no-op for local storage.
func (s *LocalStore) Close() error {
	return nil
}
