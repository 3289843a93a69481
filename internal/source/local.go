package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalSource reads input files from a local directory.
type LocalSource struct {
	dir string
}

// NewLocalSource creates a local directory source.
func NewLocalSource(dir string) (*LocalSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat source directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path %s is not a directory", dir)
	}
	return &LocalSource{dir: dir}, nil
}

// Open returns a reader for the named file, decompressing if needed.
func (s *LocalSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	return decompressReader(name, f)
}

// Location returns the absolute path of the named file.
func (s *LocalSource) Location(name string) string {
	return filepath.Join(s.dir, name)
}

// Close is a no-op for local directories.
func (s *LocalSource) Close() error {
	return nil
}
