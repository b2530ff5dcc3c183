// internal/app/app.go
package app

import (
	"fmt"

	"github.com/ferrisbury/slate/internal/config"
	"github.com/ferrisbury/slate/internal/event"
	"github.com/ferrisbury/slate/internal/input"
	"github.com/ferrisbury/slate/internal/logger"
	"github.com/ferrisbury/slate/internal/modehandler"
	"github.com/ferrisbury/slate/internal/plugin"
	"github.com/ferrisbury/slate/internal/statusbar"
	"github.com/ferrisbury/slate/internal/storage"
	"github.com/ferrisbury/slate/internal/surface"
	"github.com/ferrisbury/slate/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	registry      *surface.Registry
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	editorAPI     plugin.EditorAPI
	blob          storage.BlobStore

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(cfg *config.Config) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	registry := surface.NewRegistry(eventManager)
	inputProcessor := input.NewInputProcessor()
	statusBar := statusbar.New(statusbar.DefaultConfig())
	pluginManager := plugin.NewManager()
	quitChan := make(chan struct{})

	modeHandler := modehandler.New(modehandler.Config{
		Registry:       registry,
		InputProcessor: inputProcessor,
		EventManager:   eventManager,
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
	})

	appInstance := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		registry:      registry,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: pluginManager,
		modeHandler:   modeHandler,
		blob:          storage.NewFileStore(),
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}

	editorAPI := newEditorAPI(appInstance)
	appInstance.editorAPI = editorAPI

	if err := registerPlugins(pluginManager); err != nil {
		logger.Warnf("App: plugin registration problem: %v", err)
	}
	registerAppCommands(appInstance)

	// App-level event wiring.
	eventManager.Subscribe(event.TypeSurfaceActivated, appInstance.handleSurfaceActivated)
	eventManager.Subscribe(event.TypeSurfaceClosed, appInstance.handleSurfaceClosed)
	eventManager.Subscribe(event.TypeSnapshotSaved, appInstance.handleSnapshotSaved)
	eventManager.Subscribe(event.TypeHistoryNavigated, appInstance.handleHistoryNavigated)

	// Initialize plugins (triggers RegisterCommand via API).
	pluginManager.InitializePlugins(editorAPI)

	return appInstance, nil
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Slate - :swap :save :prev :next | ESC Quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop handles TUI events, delegating key events to ModeHandler.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false

		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true

		case *tcell.EventKey:
			needsRedraw = a.modeHandler.HandleKeyEvent(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// draw clears the screen and redraws all components.
func (a *App) draw() {
	a.updateStatusBarContent()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	statusHeight := a.cfg.Editor.StatusBarHeight

	a.tuiManager.Clear()
	active := a.registry.ActiveSurface()
	tui.DrawSurface(a.tuiManager, active, statusHeight)
	a.statusBar.Draw(screen, width, height)
	tui.DrawCursor(a.tuiManager, active, statusHeight)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar.
func (a *App) updateStatusBarContent() {
	if s := a.registry.ActiveSurface(); s != nil {
		a.statusBar.SetSurfaceInfo(s.Name(), s.IsScratch())
		a.statusBar.SetCursorInfo(s.Cursor)
	}
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentModeString())

	if a.modeHandler.GetCurrentMode() == modehandler.ModeCommand {
		a.statusBar.SetTemporaryMessage(":%s", a.modeHandler.GetCommandBuffer())
	}
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // A redraw is already pending.
	}
}
