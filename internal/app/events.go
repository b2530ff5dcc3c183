package app

import (
	"github.com/ferrisbury/slate/internal/event"
	"github.com/ferrisbury/slate/internal/surface"
)

// --- Event Handlers (App reacts to events) ---

func (a *App) handleSurfaceActivated(e event.Event) bool {
	if data, ok := e.Data.(event.SurfaceActivatedData); ok {
		s, exists := a.registry.Get(surface.ID(data.ID))
		scratch := exists && s.IsScratch()
		a.statusBar.SetSurfaceInfo(data.Name, scratch)
		// Changing surfaces hides any stale navigation indicator.
		a.statusBar.SetHistoryInfo(-1, 0)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleSurfaceClosed(e event.Event) bool {
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

func (a *App) handleSnapshotSaved(e event.Event) bool {
	// Saving clears the navigation cursor, so the indicator resets too.
	a.statusBar.SetHistoryInfo(-1, 0)
	a.requestRedraw()
	return false
}

func (a *App) handleHistoryNavigated(e event.Event) bool {
	if data, ok := e.Data.(event.HistoryNavigatedData); ok {
		a.statusBar.SetHistoryInfo(data.Index, data.Entries)
	}
	a.requestRedraw()
	return false
}
