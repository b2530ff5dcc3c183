// internal/scratch/store.go
package scratch

import (
	"errors"

	"github.com/ferrisbury/slate/internal/logger"
	"github.com/ferrisbury/slate/internal/storage"
)

// DefaultMaxEntries bounds the history when no capacity is configured.
const DefaultMaxEntries = 16

// cursorUnset marks the navigation cursor as absent.
const cursorUnset = -1

// Store is a bounded most-recently-saved-first list of snapshots with a
// cyclic navigation cursor. Index 0 is the most recent save; the last
// index the oldest. The list is materialized lazily from the blob store
// and persisted synchronously on every successful save. Navigation only
// moves the in-memory cursor; it never touches the persisted list.
type Store struct {
	blob       storage.BlobStore
	key        string
	maxEntries int

	entries []Snapshot
	cursor  int
	loaded  bool
}

// NewStore creates a snapshot store persisting under key in blob.
// maxEntries <= 0 selects DefaultMaxEntries.
func NewStore(blob storage.BlobStore, key string, maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{
		blob:       blob,
		key:        key,
		maxEntries: maxEntries,
		cursor:     cursorUnset,
	}
}

// Len returns the number of stored snapshots, loading the list if needed.
// A load failure counts as an empty history here.
func (s *Store) Len() int {
	s.ensureLoaded()
	return len(s.entries)
}

// Cursor returns the 0-based navigation position, or -1 when unset.
func (s *Store) Cursor() int {
	return s.cursor
}

// At returns the snapshot at index i.
func (s *Store) At(i int) (Snapshot, bool) {
	if i < 0 || i >= len(s.entries) {
		return nil, false
	}
	return s.entries[i], true
}

// Load reads and parses the persisted history, replacing the in-memory
// list. A missing or unreadable blob degrades to an empty history with
// a warning; malformed content is an error for this call only and the
// next operation will retry the load.
func (s *Store) Load() Outcome {
	data, err := s.blob.Read(s.key)
	if err != nil {
		s.entries = []Snapshot{}
		s.loaded = true
		if errors.Is(err, storage.ErrNotExist) {
			logger.Debugf("Store: no history blob at '%s', starting empty", s.key)
			return Warning("no saved scratch history")
		}
		logger.Warnf("Store: history blob unreadable: %v", err)
		return Warning("scratch history unreadable, starting empty")
	}

	entries, err := decodeHistory(data)
	if err != nil {
		// Do not silently discard potentially salvageable data.
		s.loaded = false
		return Failure("scratch history is malformed", err)
	}

	s.entries = entries
	s.loaded = true
	logger.Debugf("Store: loaded %d snapshot(s) from '%s'", len(entries), s.key)
	return Ok()
}

// ensureLoaded materializes the list once per process lifetime.
func (s *Store) ensureLoaded() Outcome {
	if s.loaded {
		return Ok()
	}
	return s.Load()
}

// isEmptyContent implements the semantic-emptiness rule: no lines, or a
// single empty line. Anything with a non-empty line or two or more
// lines is content worth keeping.
func isEmptyContent(lines []string) bool {
	if len(lines) == 0 {
		return true
	}
	return len(lines) == 1 && lines[0] == ""
}

// Save inserts the given content as the newest snapshot. It skips
// semantically empty content and content identical to the newest stored
// snapshot. A successful insert evicts from the tail past capacity,
// unconditionally clears the navigation cursor, and persists the whole
// list; a persistence failure is reported but the in-memory list keeps
// the new entry.
func (s *Store) Save(lines []string) Outcome {
	if isEmptyContent(lines) {
		return Skipped("empty, not saved")
	}

	if out := s.ensureLoaded(); out.Kind == KindError {
		return out
	}

	if len(s.entries) > 0 && s.entries[0].Equal(lines) {
		return Skipped("already saved")
	}

	snap := Snapshot(nil)
	snap = append(snap, lines...)

	next := make([]Snapshot, 0, len(s.entries)+1)
	next = append(next, snap)
	next = append(next, s.entries...)
	if len(next) > s.maxEntries {
		next = next[:s.maxEntries]
	}
	s.entries = next

	// The ordering changed, so any navigation position is stale even if
	// persistence fails below.
	s.cursor = cursorUnset

	data, err := encodeHistory(s.entries)
	if err == nil {
		err = s.blob.Write(s.key, data)
	}
	if err != nil {
		logger.Errorf("Store: failed to persist scratch history: %v", err)
		return Failure("saved in memory, but persisting failed", err)
	}

	logger.Debugf("Store: saved snapshot, %d stored", len(s.entries))
	return Okf("saved (%d stored)", len(s.entries))
}

// Prev moves the cursor toward older entries, wrapping from the oldest
// back to the most recent. With the cursor unset it starts at the most
// recent save. Returns the snapshot now under the cursor and its index.
func (s *Store) Prev() (Snapshot, int, Outcome) {
	if out := s.ensureLoaded(); out.Kind == KindError {
		return nil, cursorUnset, out
	}
	n := len(s.entries)
	if n == 0 {
		return nil, cursorUnset, Skipped("scratch history is empty")
	}

	var next int
	switch {
	case n == 1:
		next = 0
	case s.cursor == cursorUnset:
		next = 0
	case s.cursor == n-1:
		next = 0
	default:
		next = s.cursor + 1
	}

	s.cursor = next
	return s.entries[next], next, Ok()
}

// Next moves the cursor toward newer entries, wrapping from the most
// recent back to the oldest. With the cursor unset it starts at the
// oldest save, so the first Next shows the oldest snapshot.
func (s *Store) Next() (Snapshot, int, Outcome) {
	if out := s.ensureLoaded(); out.Kind == KindError {
		return nil, cursorUnset, out
	}
	n := len(s.entries)
	if n == 0 {
		return nil, cursorUnset, Skipped("scratch history is empty")
	}

	var next int
	switch {
	case n == 1:
		next = 0
	case s.cursor == cursorUnset:
		next = n - 1
	case s.cursor == 0:
		next = n - 1
	default:
		next = s.cursor - 1
	}

	s.cursor = next
	return s.entries[next], next, Ok()
}

// Wipe clears the history in memory and persists the empty list.
func (s *Store) Wipe() Outcome {
	s.entries = []Snapshot{}
	s.cursor = cursorUnset
	s.loaded = true

	data, err := encodeHistory(s.entries)
	if err == nil {
		err = s.blob.Write(s.key, data)
	}
	if err != nil {
		logger.Errorf("Store: failed to persist wiped history: %v", err)
		return Failure("wiped in memory, but persisting failed", err)
	}
	return Okf("scratch history wiped")
}
