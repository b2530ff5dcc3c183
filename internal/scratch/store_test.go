package scratch

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ferrisbury/slate/internal/storage"
)

// fakeBlob is an in-memory BlobStore with failure injection.
type fakeBlob struct {
	data     map[string][]byte
	readErr  error
	writeErr error
	writes   int
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{data: make(map[string][]byte)}
}

func (f *fakeBlob) Read(key string) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	d, ok := f.data[key]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return d, nil
}

func (f *fakeBlob) Write(key string, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.data[key] = cp
	f.writes++
	return nil
}

const testKey = "scratch_history.json"

func newTestStore(blob *fakeBlob, max int) *Store {
	return NewStore(blob, testKey, max)
}

func TestSaveInsertsAtHead(t *testing.T) {
	s := newTestStore(newFakeBlob(), 16)

	if out := s.Save([]string{"A"}); !out.IsOk() {
		t.Fatalf("Save(A) = %v", out)
	}
	if out := s.Save([]string{"B"}); !out.IsOk() {
		t.Fatalf("Save(B) = %v", out)
	}

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	newest, _ := s.At(0)
	older, _ := s.At(1)
	if !newest.Equal([]string{"B"}) || !older.Equal([]string{"A"}) {
		t.Errorf("order = [%v %v], want [B A]", newest, older)
	}
}

func TestSaveEmptyContent(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"no lines", nil},
		{"single empty line", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := newFakeBlob()
			s := newTestStore(blob, 16)

			out := s.Save(tt.lines)
			if out.Kind != KindSkipped || out.Reason != "empty, not saved" {
				t.Errorf("Save = %v, want skipped 'empty, not saved'", out)
			}
			if s.Len() != 0 {
				t.Errorf("Len() = %d, want 0", s.Len())
			}
			if blob.writes != 0 {
				t.Errorf("blob written %d times for empty content", blob.writes)
			}
		})
	}
}

func TestSaveAcceptsBlankMultiline(t *testing.T) {
	// Two lines are non-empty content even when both are blank.
	s := newTestStore(newFakeBlob(), 16)
	if out := s.Save([]string{"", ""}); !out.IsOk() {
		t.Fatalf("Save = %v, want ok", out)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSaveDuplicateSuppression(t *testing.T) {
	s := newTestStore(newFakeBlob(), 16)
	s.Save([]string{"X", "Y"})

	out := s.Save([]string{"X", "Y"})
	if out.Kind != KindSkipped || out.Reason != "already saved" {
		t.Errorf("Save = %v, want skipped 'already saved'", out)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSaveOlderDuplicateIsNotSuppressed(t *testing.T) {
	// Only the newest snapshot is compared; re-saving an archived one
	// creates a deliberate duplicate entry.
	s := newTestStore(newFakeBlob(), 16)
	s.Save([]string{"A"})
	s.Save([]string{"B"})

	if out := s.Save([]string{"A"}); !out.IsOk() {
		t.Fatalf("Save = %v, want ok", out)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestCapacityEviction(t *testing.T) {
	s := newTestStore(newFakeBlob(), 3)
	for i := 1; i <= 5; i++ {
		out := s.Save([]string{fmt.Sprintf("line %d", i)})
		if !out.IsOk() {
			t.Fatalf("Save #%d = %v", i, out)
		}
		if s.Len() > 3 {
			t.Fatalf("Len() = %d after save #%d, capacity exceeded", s.Len(), i)
		}
	}

	// Oldest entries evicted first: 5 newest, then 4, then 3.
	for i, want := range []string{"line 5", "line 4", "line 3"} {
		snap, ok := s.At(i)
		if !ok || !snap.Equal([]string{want}) {
			t.Errorf("At(%d) = %v, want [%s]", i, snap, want)
		}
	}
}

func TestSavePersistsFullList(t *testing.T) {
	blob := newFakeBlob()
	s := newTestStore(blob, 16)
	s.Save([]string{"line1", "line2"})
	s.Save([]string{"only line"})

	var got [][]string
	if err := json.Unmarshal(blob.data[testKey], &got); err != nil {
		t.Fatalf("persisted blob is not valid JSON: %v", err)
	}
	want := [][]string{{"only line"}, {"line1", "line2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("persisted = %v, want %v", got, want)
	}
}

func TestSavePersistFailureKeepsMemory(t *testing.T) {
	blob := newFakeBlob()
	s := newTestStore(blob, 16)
	s.Save([]string{"kept"})

	// Navigate so the cursor is set, then fail the next persist.
	s.Prev()
	blob.writeErr = errors.New("disk full")

	out := s.Save([]string{"new"})
	if out.Kind != KindError {
		t.Fatalf("Save = %v, want error", out)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (in-memory list keeps the entry)", s.Len())
	}
	if s.Cursor() != cursorUnset {
		t.Errorf("cursor = %d, want unset even when persistence failed", s.Cursor())
	}
}

func TestLazyLoadFromBlob(t *testing.T) {
	blob := newFakeBlob()
	blob.data[testKey] = []byte(`[["B"],["A"]]`)
	s := newTestStore(blob, 16)

	snap, idx, out := s.Prev()
	if !out.IsOk() || idx != 0 || !snap.Equal([]string{"B"}) {
		t.Fatalf("Prev() = %v, %d, %v; want B at 0", snap, idx, out)
	}
}

func TestLoadMissingBlobWarnsAndStartsEmpty(t *testing.T) {
	s := newTestStore(newFakeBlob(), 16)

	out := s.Load()
	if out.Kind != KindWarning {
		t.Fatalf("Load = %v, want warning", out)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestLoadUnreadableBlobWarnsAndStartsEmpty(t *testing.T) {
	blob := newFakeBlob()
	blob.readErr = errors.New("permission denied")
	s := newTestStore(blob, 16)

	out := s.Load()
	if out.Kind != KindWarning {
		t.Fatalf("Load = %v, want warning", out)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestLoadMalformedBlobIsFatalForThisCallOnly(t *testing.T) {
	blob := newFakeBlob()
	blob.data[testKey] = []byte(`{"not": "a list"}`)
	s := newTestStore(blob, 16)

	out := s.Load()
	if out.Kind != KindError {
		t.Fatalf("Load = %v, want error", out)
	}

	// Operations propagate the parse failure rather than proceeding.
	if out := s.Save([]string{"x"}); out.Kind != KindError {
		t.Errorf("Save after malformed load = %v, want error", out)
	}

	// Once the blob is repaired the next call retries the load.
	blob.data[testKey] = []byte(`[["A"]]`)
	if out := s.Save([]string{"x"}); !out.IsOk() {
		t.Errorf("Save after repair = %v, want ok", out)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestLoadAcceptsEmptyListBlob(t *testing.T) {
	blob := newFakeBlob()
	blob.data[testKey] = []byte(`[]`)
	s := newTestStore(blob, 16)

	if out := s.Load(); !out.IsOk() {
		t.Fatalf("Load = %v, want ok", out)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestPrevCycleVisitsAllIndices(t *testing.T) {
	s := newTestStore(newFakeBlob(), 16)
	const n = 4
	for i := 0; i < n; i++ {
		s.Save([]string{fmt.Sprintf("s%d", i)})
	}

	// N calls visit 0..N-1, the (N+1)-th wraps back to 0.
	for want := 0; want < n; want++ {
		_, idx, out := s.Prev()
		if !out.IsOk() || idx != want {
			t.Fatalf("Prev #%d = index %d (%v), want %d", want+1, idx, out, want)
		}
	}
	_, idx, _ := s.Prev()
	if idx != 0 {
		t.Errorf("Prev after full cycle = index %d, want 0 (wrap)", idx)
	}
}

func TestNextCycleVisitsAllIndices(t *testing.T) {
	s := newTestStore(newFakeBlob(), 16)
	const n = 4
	for i := 0; i < n; i++ {
		s.Save([]string{fmt.Sprintf("s%d", i)})
	}

	// First Next starts at the oldest, then walks toward the newest.
	for want := n - 1; want >= 0; want-- {
		_, idx, out := s.Next()
		if !out.IsOk() || idx != want {
			t.Fatalf("Next = index %d (%v), want %d", idx, out, want)
		}
	}
	_, idx, _ := s.Next()
	if idx != n-1 {
		t.Errorf("Next after full cycle = index %d, want %d (wrap)", idx, n-1)
	}
}

func TestSingleEntryNavigationStaysAtZero(t *testing.T) {
	s := newTestStore(newFakeBlob(), 16)
	s.Save([]string{"only"})

	for i := 0; i < 3; i++ {
		if _, idx, _ := s.Prev(); idx != 0 {
			t.Fatalf("Prev = index %d, want 0", idx)
		}
		if _, idx, _ := s.Next(); idx != 0 {
			t.Fatalf("Next = index %d, want 0", idx)
		}
	}
}

func TestNavigateEmptyStore(t *testing.T) {
	s := newTestStore(newFakeBlob(), 16)

	_, idx, out := s.Prev()
	if out.Kind != KindSkipped || idx != cursorUnset {
		t.Errorf("Prev = %d, %v; want unset cursor and skip notice", idx, out)
	}
	if s.Cursor() != cursorUnset {
		t.Errorf("cursor = %d, want unset", s.Cursor())
	}

	_, idx, out = s.Next()
	if out.Kind != KindSkipped || idx != cursorUnset {
		t.Errorf("Next = %d, %v; want unset cursor and skip notice", idx, out)
	}
}

func TestCursorResetOnSave(t *testing.T) {
	s := newTestStore(newFakeBlob(), 16)
	s.Save([]string{"A"})
	s.Save([]string{"B"})
	s.Save([]string{"C"})

	s.Prev()
	s.Prev() // cursor at 1

	if out := s.Save([]string{"D"}); !out.IsOk() {
		t.Fatalf("Save = %v", out)
	}

	snap, idx, _ := s.Prev()
	if idx != 0 || !snap.Equal([]string{"D"}) {
		t.Errorf("Prev after save = %v at %d, want D at 0", snap, idx)
	}
}

func TestNavigationDoesNotPersist(t *testing.T) {
	blob := newFakeBlob()
	s := newTestStore(blob, 16)
	s.Save([]string{"A"})
	writesAfterSave := blob.writes

	s.Prev()
	s.Next()
	s.Prev()

	if blob.writes != writesAfterSave {
		t.Errorf("navigation wrote the blob %d extra times", blob.writes-writesAfterSave)
	}
}

func TestScenarioTwoEntryPrevWalk(t *testing.T) {
	// Store = [["B"],["A"]] with B newest.
	blob := newFakeBlob()
	blob.data[testKey] = []byte(`[["B"],["A"]]`)
	s := newTestStore(blob, 16)

	steps := []struct {
		wantLine string
		wantIdx  int
	}{
		{"B", 0},
		{"A", 1},
		{"B", 0}, // wraps
	}
	for i, step := range steps {
		snap, idx, out := s.Prev()
		if !out.IsOk() {
			t.Fatalf("step %d: Prev = %v", i, out)
		}
		if idx != step.wantIdx || !snap.Equal([]string{step.wantLine}) {
			t.Errorf("step %d: got %v at %d, want [%s] at %d", i, snap, idx, step.wantLine, step.wantIdx)
		}
	}
}

func TestCapacityTrimsExistingLongerHistory(t *testing.T) {
	// A previously persisted history longer than the configured capacity
	// is only trimmed on the next save, never eagerly.
	blob := newFakeBlob()
	blob.data[testKey] = []byte(`[["e"],["d"],["c"],["b"],["a"]]`)
	s := newTestStore(blob, 3)

	s.Load()
	if s.Len() != 5 {
		t.Fatalf("Len() = %d before save, want 5", s.Len())
	}

	s.Save([]string{"f"})
	if s.Len() != 3 {
		t.Fatalf("Len() = %d after save, want 3", s.Len())
	}
	newest, _ := s.At(0)
	if !newest.Equal([]string{"f"}) {
		t.Errorf("At(0) = %v, want [f]", newest)
	}
}

func TestWipe(t *testing.T) {
	blob := newFakeBlob()
	s := newTestStore(blob, 16)
	s.Save([]string{"A"})
	s.Prev()

	if out := s.Wipe(); !out.IsOk() {
		t.Fatalf("Wipe = %v", out)
	}
	if s.Len() != 0 || s.Cursor() != cursorUnset {
		t.Errorf("after wipe: len=%d cursor=%d", s.Len(), s.Cursor())
	}
	if string(blob.data[testKey]) != "[]" {
		t.Errorf("persisted = %s, want []", blob.data[testKey])
	}
}

func TestStoreWithFileStore(t *testing.T) {
	// End to end against the real file-backed blob store.
	path := filepath.Join(t.TempDir(), "history.json")
	fs := storage.NewFileStore()

	s := NewStore(fs, path, 16)
	s.Save([]string{"hello", "world"})
	s.Save([]string{"again"})

	// A second store simulates the next process lifetime.
	s2 := NewStore(fs, path, 16)
	snap, idx, out := s2.Prev()
	if !out.IsOk() || idx != 0 || !snap.Equal([]string{"again"}) {
		t.Fatalf("Prev = %v at %d (%v)", snap, idx, out)
	}
	snap, idx, _ = s2.Prev()
	if idx != 1 || !snap.Equal([]string{"hello", "world"}) {
		t.Fatalf("Prev = %v at %d", snap, idx)
	}
}

func TestSnapshotImmutableAfterSave(t *testing.T) {
	s := newTestStore(newFakeBlob(), 16)
	lines := []string{"original"}
	s.Save(lines)
	lines[0] = "mutated"

	snap, _ := s.At(0)
	if !snap.Equal([]string{"original"}) {
		t.Errorf("stored snapshot shares storage with caller: %v", snap)
	}
}
