package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileKV stores each key as <dir>/<key>.json.
type FileKV struct {
	dir string
}

// NewFileKV creates dir if needed and returns a FileKV rooted there.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// Dir returns the directory the store is rooted in.
func (f *FileKV) Dir() string {
	return f.dir
}

// Path returns the file that holds key.
func (f *FileKV) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Load reads the value of key. A missing file is ErrNotFound.
func (f *FileKV) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save replaces the value of key.
// The value is written to a temp file and renamed over the old one, so a
// crash mid-write never leaves a truncated file behind.
func (f *FileKV) Save(key string, value []byte) error {
	path := f.Path(key)
	tmpFile := path + ".tmp"

	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := file.Write(value); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

// Close is a no-op.
func (f *FileKV) Close() error {
	return nil
}
