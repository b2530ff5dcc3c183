// internal/plugin/plugin.go
package plugin

import (
	"github.com/ferrisbury/slate/internal/config"
	"github.com/ferrisbury/slate/internal/event"
	"github.com/ferrisbury/slate/internal/storage"
	"github.com/ferrisbury/slate/internal/surface"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes arguments (from user input) and returns an error.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the
// editor core. This acts as a controlled interface, preventing plugins
// from accessing everything.
type EditorAPI interface {
	// --- Surface Access ---
	// Host exposes the surface host: active surface, activation,
	// line content, scratch creation, destroy hooks.
	Host() surface.Host

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration & Persistence ---
	ScratchConfig() config.ScratchConfig
	HistoryFilePath() string
	HistoryBlob() storage.BlobStore
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// It receives the EditorAPI to interact with the core.
	// Used for setup, subscribing to events, registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
