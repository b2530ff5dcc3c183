// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Surface lifecycle events
	TypeSurfaceActivated // Fired when a different surface becomes active
	TypeSurfaceClosed    // Fired after a surface is destroyed

	// Scratch history events
	TypeSnapshotSaved    // Fired after a snapshot is inserted into the history
	TypeHistoryNavigated // Fired when prev/next moves the navigation cursor

	// Application lifecycle events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// SurfaceActivatedData identifies the newly active surface.
type SurfaceActivatedData struct {
	ID   uint64
	Name string
}

// SurfaceClosedData identifies a destroyed surface.
type SurfaceClosedData struct {
	ID   uint64
	Name string
}

// SnapshotSavedData describes the history after a successful save.
type SnapshotSavedData struct {
	Entries int // total snapshots now stored
}

// HistoryNavigatedData describes the cursor after prev/next.
type HistoryNavigatedData struct {
	Index   int // 0-based position, 0 = most recent
	Entries int
}

// AppReadyData could carry initial state later.
type AppReadyData struct{}

// AppQuitData could carry an exit reason later.
type AppQuitData struct{}
