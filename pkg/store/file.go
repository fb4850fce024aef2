package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/griddeck/griddeck/pkg/observability"
)

// layoutFileName is the record file name inside the backend directory.
const layoutFileName = "layout.json"

// FileBackend persists the layout as a single JSON file. It is the default
// backend for CLI use.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file backend rooted at dir.
// If dir is empty, defaults to ~/.config/griddeck/.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "griddeck")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return &FileBackend{path: filepath.Join(dir, layoutFileName)}, nil
}

// Path returns the record file path.
func (b *FileBackend) Path() string { return b.path }

// Load reads the record file.
func (b *FileBackend) Load(ctx context.Context) ([]byte, error) {
	start := time.Now()
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		err = ErrNoRecord
	}
	observability.Persistence().OnLoad(b.Name(), len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Store writes the record file. A full filesystem surfaces as
// ErrQuotaExceeded so the store can degrade gracefully.
func (b *FileBackend) Store(ctx context.Context, data []byte) error {
	start := time.Now()
	err := os.WriteFile(b.path, data, 0o644)
	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
		err = fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	observability.Persistence().OnWrite(b.Name(), len(data), time.Since(start), err)
	return err
}

// Name identifies the backend in logs and hooks.
func (b *FileBackend) Name() string { return "file" }

// Close does nothing for the file backend.
func (b *FileBackend) Close() error { return nil }

// Ensure FileBackend implements Backend.
var _ Backend = (*FileBackend)(nil)
