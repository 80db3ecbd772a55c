package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBlob stores the document in a local file.
type FileBlob struct {
	path string
}

func NewFileBlob(path string) *FileBlob {
	return &FileBlob{path: filepath.Clean(path)}
}

func (b *FileBlob) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}
	return data, nil
}

// Save replaces the file contents. The data is written to a temp file in the
// same directory and renamed over the target.
func (b *FileBlob) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("replace %s: %w", b.path, err)
	}
	return nil
}

func (b *FileBlob) Location() string {
	return b.path
}

var _ Blob = (*FileBlob)(nil)
