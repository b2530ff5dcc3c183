// internal/storage/filestore.go
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Ensure FileStore implements BlobStore.
var _ BlobStore = (*FileStore)(nil)

// FileStore keeps each blob in a plain file; the key is the file path.
// Writes go through a temp file plus rename so a crash mid-write leaves
// the previous blob intact.
type FileStore struct{}

// NewFileStore creates a file-backed blob store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Read returns the file's content, mapping a missing file to ErrNotExist.
func (fs *FileStore) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read blob '%s': %w", key, ErrNotExist)
		}
		return nil, fmt.Errorf("read blob '%s': %w", key, err)
	}
	return data, nil
}

// Write atomically replaces the file's content, creating parent
// directories as needed.
func (fs *FileStore) Write(key string, data []byte) error {
	dir := filepath.Dir(key)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("write blob '%s': %w", key, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(key)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write blob '%s': %w", key, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write blob '%s': %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write blob '%s': %w", key, err)
	}

	if err := os.Rename(tmpPath, key); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write blob '%s': %w", key, err)
	}
	return nil
}
