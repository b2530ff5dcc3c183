// internal/scratch/snapshot.go
package scratch

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the exact line content of the scratch surface at save
// time, including empty lines. Snapshots are immutable once stored.
type Snapshot []string

// Lines returns an independent copy of the snapshot's lines.
func (s Snapshot) Lines() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Equal reports line-for-line equality with the given content.
func (s Snapshot) Equal(lines []string) bool {
	if len(s) != len(lines) {
		return false
	}
	for i := range s {
		if s[i] != lines[i] {
			return false
		}
	}
	return true
}

// encodeHistory serializes snapshots as a JSON list of line lists,
// e.g. [["line1","line2"],["only line"]]. An empty history is [].
func encodeHistory(entries []Snapshot) ([]byte, error) {
	if entries == nil {
		entries = []Snapshot{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode scratch history: %w", err)
	}
	return data, nil
}

// decodeHistory parses the persisted blob. A zero-length blob counts as
// the empty-history case; anything else must be a JSON list of line lists.
func decodeHistory(data []byte) ([]Snapshot, error) {
	if len(data) == 0 {
		return []Snapshot{}, nil
	}
	var entries []Snapshot
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode scratch history: %w", err)
	}
	if entries == nil {
		entries = []Snapshot{}
	}
	return entries, nil
}
