// Package file keeps the serialized registry in a single file on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type Storage struct {
	path string
}

func New(path string) *Storage {
	return &Storage{path: path}
}

// Load returns the file contents, or nil if the file does not exist yet.
func (s *Storage) Load(_ context.Context) ([]byte, error) {
	const op = "adapter.storage.file.Storage.Load"

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: failed to read file: %w", op, err)
	}

	return data, nil
}

// Save replaces the file contents. The new contents are written to a temporary
// file in the same directory and renamed over the old file.
func (s *Storage) Save(_ context.Context, data []byte) error {
	const op = "adapter.storage.file.Storage.Save"

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: failed to create directory: %w", op, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: failed to create temp file: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: failed to write temp file: %w", op, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: failed to sync temp file: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: failed to close temp file: %w", op, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%s: failed to replace file: %w", op, err)
	}

	return nil
}
