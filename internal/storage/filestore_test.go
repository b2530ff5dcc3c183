package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	fs := NewFileStore()

	want := []byte(`[["line1","line2"],["only line"]]`)
	if err := fs.Write(path, want); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got, err := fs.Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Read = %s, want %s", got, want)
	}
}

func TestFileStoreMissingBlob(t *testing.T) {
	fs := NewFileStore()
	_, err := fs.Read(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestFileStoreCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "history.json")
	fs := NewFileStore()

	if err := fs.Write(path, []byte("[]")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("blob not written: %v", err)
	}
}

func TestFileStoreOverwriteReplacesWhole(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	fs := NewFileStore()

	if err := fs.Write(path, []byte("a long first payload")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := fs.Write(path, []byte("[]")); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got, err := fs.Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("Read = %q, want %q", got, "[]")
	}

	// No temp droppings left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}
