package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const documentFilePerms = 0o600

// FileDocuments keeps each document in its own file on local disk.
type FileDocuments struct {
	paths map[string]string
}

// NewFileDocuments maps document names to file paths.
func NewFileDocuments(paths map[string]string) *FileDocuments {
	cp := make(map[string]string, len(paths))
	for name, path := range paths {
		cp[name] = path
	}
	return &FileDocuments{paths: cp}
}

func (f *FileDocuments) path(name string) (string, error) {
	p, ok := f.paths[name]
	if !ok {
		return "", fmt.Errorf("unknown document %q", name)
	}
	return p, nil
}

// Read returns the file contents, or ErrDocumentNotFound when the file is absent.
func (f *FileDocuments) Read(_ context.Context, name string) ([]byte, error) {
	p, err := f.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

// Write replaces the file through a temp file and rename.
func (f *FileDocuments) Write(_ context.Context, name string, data []byte) error {
	p, err := f.path(name)
	if err != nil {
		return err
	}
	_, statErr := os.Stat(p)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(p, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	// atomic.WriteFile only carries over the mode of an existing file.
	if isNew {
		if err := os.Chmod(p, documentFilePerms); err != nil {
			return fmt.Errorf("chmod %s: %w", p, err)
		}
	}
	return nil
}

// Ping checks that every document directory exists.
func (f *FileDocuments) Ping(_ context.Context) error {
	for _, p := range f.paths {
		dir := filepath.Dir(p)
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("document dir %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("document dir %s is not a directory", dir)
		}
	}
	return nil
}
