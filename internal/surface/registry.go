// internal/surface/registry.go
package surface

import (
	"fmt"

	"github.com/ferrisbury/slate/internal/buffer"
	"github.com/ferrisbury/slate/internal/event"
	"github.com/ferrisbury/slate/internal/logger"
)

// Ensure Registry implements the Host contract.
var _ Host = (*Registry)(nil)

// Registry is the in-memory Host implementation used by the application.
// It owns every surface, tracks activation recency, and fires destroy
// hooks when a surface is closed.
type Registry struct {
	surfaces map[ID]*Surface
	order    []ID // activation recency, most recent first
	active   ID
	hooks    map[ID][]func()
	nextID   ID

	events *event.Manager // optional, may be nil
}

// NewRegistry creates a registry holding a single active unnamed surface.
func NewRegistry(events *event.Manager) *Registry {
	r := &Registry{
		surfaces: make(map[ID]*Surface),
		hooks:    make(map[ID][]func()),
		nextID:   1,
		events:   events,
	}
	id := r.add("[No Name]", false)
	r.active = id
	r.touch(id)
	return r
}

func (r *Registry) add(name string, scratch bool) ID {
	id := r.nextID
	r.nextID++
	r.surfaces[id] = &Surface{
		id:      id,
		name:    name,
		scratch: scratch,
		Buf:     buffer.NewSliceBuffer(),
	}
	return id
}

// touch moves id to the front of the recency order.
func (r *Registry) touch(id ID) {
	out := make([]ID, 0, len(r.order)+1)
	out = append(out, id)
	for _, o := range r.order {
		if o != id {
			out = append(out, o)
		}
	}
	r.order = out
}

// CreateScratch creates a scratch surface without activating it.
func (r *Registry) CreateScratch(name string) (ID, error) {
	if name == "" {
		return None, fmt.Errorf("scratch surface needs a display name")
	}
	id := r.add(name, true)
	logger.Debugf("Registry: created scratch surface %d (%s)", id, name)
	return id, nil
}

// Active returns the currently active surface handle.
func (r *Registry) Active() ID {
	return r.active
}

// Activate switches the active surface.
func (r *Registry) Activate(id ID) error {
	s, ok := r.surfaces[id]
	if !ok {
		return fmt.Errorf("activate surface %d: %w", id, ErrUnknownSurface)
	}
	r.active = id
	r.touch(id)
	if r.events != nil {
		r.events.Dispatch(event.TypeSurfaceActivated, event.SurfaceActivatedData{
			ID:   uint64(id),
			Name: s.name,
		})
	}
	return nil
}

// Valid reports whether the handle refers to a live surface.
func (r *Registry) Valid(id ID) bool {
	_, ok := r.surfaces[id]
	return ok
}

// Get returns the surface for an ID.
func (r *Registry) Get(id ID) (*Surface, bool) {
	s, ok := r.surfaces[id]
	return s, ok
}

// ActiveSurface returns the active surface, or nil when none exists.
func (r *Registry) ActiveSurface() *Surface {
	s, ok := r.surfaces[r.active]
	if !ok {
		return nil
	}
	return s
}

// Lines returns the full line content of a surface.
func (r *Registry) Lines(id ID) ([]string, error) {
	s, ok := r.surfaces[id]
	if !ok {
		return nil, fmt.Errorf("read surface %d: %w", id, ErrUnknownSurface)
	}
	return s.Buf.Lines(), nil
}

// SetLines replaces the full line content of a surface and clamps its cursor.
func (r *Registry) SetLines(id ID, lines []string) error {
	s, ok := r.surfaces[id]
	if !ok {
		return fmt.Errorf("write surface %d: %w", id, ErrUnknownSurface)
	}
	s.Buf.SetLines(lines)
	if s.Cursor.Line >= s.Buf.LineCount() {
		s.Cursor.Line = s.Buf.LineCount() - 1
		s.Cursor.Col = 0
	}
	return nil
}

// OnDestroy registers a callback fired when the surface is closed.
// Registrations against unknown handles are dropped.
func (r *Registry) OnDestroy(id ID, fn func()) {
	if _, ok := r.surfaces[id]; !ok || fn == nil {
		return
	}
	r.hooks[id] = append(r.hooks[id], fn)
}

// Close destroys a surface, fires its destroy hooks, and activates the
// most recently used remaining surface. Closing the last surface leaves
// a fresh unnamed one so the host is never without an active region.
func (r *Registry) Close(id ID) error {
	s, ok := r.surfaces[id]
	if !ok {
		return fmt.Errorf("close surface %d: %w", id, ErrUnknownSurface)
	}

	hooks := r.hooks[id]
	delete(r.hooks, id)
	delete(r.surfaces, id)

	out := r.order[:0]
	for _, o := range r.order {
		if o != id {
			out = append(out, o)
		}
	}
	r.order = out

	for _, fn := range hooks {
		fn()
	}
	if r.events != nil {
		r.events.Dispatch(event.TypeSurfaceClosed, event.SurfaceClosedData{
			ID:   uint64(id),
			Name: s.name,
		})
	}

	if r.active == id {
		if len(r.order) > 0 {
			return r.Activate(r.order[0])
		}
		fresh := r.add("[No Name]", false)
		return r.Activate(fresh)
	}
	return nil
}
