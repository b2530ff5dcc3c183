// Package storage abstracts the byte-oriented blob persistence the
// scratch history relies on. The history only ever needs to read and
// replace one whole blob at a time.
package storage

import "errors"

// ErrNotExist is returned by Read when the blob has never been written.
var ErrNotExist = errors.New("blob does not exist")

// BlobStore reads and atomically replaces opaque blobs by key.
type BlobStore interface {
	// Read returns the blob's full content, or ErrNotExist.
	Read(key string) ([]byte, error)

	// Write replaces the blob's content. The replacement is atomic:
	// a reader never observes a partially written blob.
	Write(key string, data []byte) error
}
