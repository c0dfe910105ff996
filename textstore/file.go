package textstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists each named text blob as a file inside a directory.
// Writes replace the whole file; there is no partial-append guarantee,
// matching the contract callers assume.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store rooted
// there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create text store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Read returns the file content, "" when the file does not exist yet.
func (s *FileStore) Read(ctx context.Context, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

// Write replaces the file content.
func (s *FileStore) Write(ctx context.Context, name, content string) error {
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
