// internal/app/editor_api.go
package app

import (
	"github.com/ferrisbury/slate/internal/config"
	"github.com/ferrisbury/slate/internal/event"
	"github.com/ferrisbury/slate/internal/plugin"
	"github.com/ferrisbury/slate/internal/storage"
	"github.com/ferrisbury/slate/internal/surface"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App
}

// newEditorAPI creates a new API adapter instance.
func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Surface Access ---

func (api *appEditorAPI) Host() surface.Host {
	return api.app.registry
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Configuration & Persistence ---

func (api *appEditorAPI) ScratchConfig() config.ScratchConfig {
	return api.app.cfg.Scratch
}

func (api *appEditorAPI) HistoryFilePath() string {
	return api.app.cfg.HistoryFilePath()
}

func (api *appEditorAPI) HistoryBlob() storage.BlobStore {
	return api.app.blob
}
