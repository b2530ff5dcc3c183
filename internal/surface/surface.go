// internal/surface/surface.go
package surface

import (
	"errors"

	"github.com/ferrisbury/slate/internal/buffer"
	"github.com/ferrisbury/slate/internal/types"
)

// ID identifies a surface within a host. The zero value means "no surface".
type ID uint64

// None is the zero ID.
const None ID = 0

// ErrUnknownSurface is returned for operations against an ID the host
// does not (or no longer does) know about.
var ErrUnknownSurface = errors.New("unknown surface")

// Surface is an editable text region: a named line buffer with its own
// cursor. Scratch surfaces are never file-backed or persisted by the host.
type Surface struct {
	id      ID
	name    string
	scratch bool

	Buf     buffer.Buffer
	Cursor  types.Position
	ViewTop int // first visible line when drawing
}

// ID returns the surface's identifier.
func (s *Surface) ID() ID { return s.id }

// Name returns the display name.
func (s *Surface) Name() string { return s.name }

// IsScratch reports whether the surface is a scratch region.
func (s *Surface) IsScratch() bool { return s.scratch }

// Host is the contract the scratch subsystem requires from its hosting
// editor: create a scratch region, query and switch the active region,
// read and replace full line content, and get notified when a region it
// owns is destroyed by any means.
type Host interface {
	// CreateScratch creates a non-file-backed editable region with the
	// given display name and returns its handle. It does not activate it.
	CreateScratch(name string) (ID, error)

	// Active returns the handle of the currently active region, or None.
	Active() ID

	// Activate makes the given region the active one.
	Activate(id ID) error

	// Valid reports whether the handle refers to a live region.
	Valid(id ID) bool

	// Lines returns the full ordered line content of a region.
	Lines(id ID) ([]string, error)

	// SetLines replaces the full line content of a region.
	SetLines(id ID, lines []string) error

	// OnDestroy registers a callback invoked when the region is
	// destroyed or unloaded by any means.
	OnDestroy(id ID, fn func())
}
