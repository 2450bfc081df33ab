package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps the slot in a single JSON file, the closest stand-in for
// the browser's localStorage entry.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create slot directory: %w", err)
	}
	return &FileBackend{path: path}, nil
}

func (b *FileBackend) Read() ([]byte, bool, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Write replaces the file through a rename so a crash mid-write cannot leave
// a half-written slot behind.
func (b *FileBackend) Write(data []byte) error {
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}

func (b *FileBackend) Close() error { return nil }
