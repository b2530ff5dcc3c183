// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"

	"github.com/ferrisbury/slate/internal/event"
	"github.com/ferrisbury/slate/internal/input"
	"github.com/ferrisbury/slate/internal/logger"
	"github.com/ferrisbury/slate/internal/plugin"
	"github.com/ferrisbury/slate/internal/statusbar"
	"github.com/ferrisbury/slate/internal/surface"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	registry       *surface.Registry
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}

	currentMode InputMode
	cmdBuffer   string
	commands    map[string]plugin.CommandFunc
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Registry       *surface.Registry
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{}
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Registry == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		registry:       cfg.Registry,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// RegisterCommand adds a named command to the dispatch table.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: registered command ':%s'", name)
	return nil
}

// GetCurrentMode returns the active input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCurrentModeString names the active mode for the status bar.
func (mh *ModeHandler) GetCurrentModeString() string {
	switch mh.currentMode {
	case ModeCommand:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

// GetCommandBuffer returns the partially typed command.
func (mh *ModeHandler) GetCommandBuffer() string {
	return mh.cmdBuffer
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	default:
		return mh.handleActionNormal(actionEvent)
	}
}

// handleActionNormal edits the active surface and handles mode switches.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	s := mh.registry.ActiveSurface()
	if s == nil {
		return false
	}

	switch actionEvent.Action {
	case input.ActionQuit:
		close(mh.quitSignal)
		return false

	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = ""
		mh.statusBar.SetTemporaryMessage(":")
		return true

	case input.ActionSwapScratch:
		if cmdFunc, exists := mh.commands["swap"]; exists {
			if err := cmdFunc(nil); err != nil {
				mh.statusBar.SetTemporaryMessage("Error executing command 'swap': %v", err)
			}
		}
		return true

	case input.ActionInsertRune:
		pos, err := s.Buf.InsertRune(s.Cursor, actionEvent.Rune)
		if err == nil {
			s.Cursor = pos
		}
		return true

	case input.ActionInsertNewLine:
		pos, err := s.Buf.InsertNewline(s.Cursor)
		if err == nil {
			s.Cursor = pos
		}
		return true

	case input.ActionDeleteCharBackward:
		pos, err := s.Buf.DeleteRuneBackward(s.Cursor)
		if err == nil {
			s.Cursor = pos
		}
		return true

	case input.ActionMoveUp:
		if s.Cursor.Line > 0 {
			s.Cursor.Line--
			mh.clampCol(s)
		}
		return true

	case input.ActionMoveDown:
		if s.Cursor.Line < s.Buf.LineCount()-1 {
			s.Cursor.Line++
			mh.clampCol(s)
		}
		return true

	case input.ActionMoveLeft:
		if s.Cursor.Col > 0 {
			s.Cursor.Col--
		}
		return true

	case input.ActionMoveRight:
		if line, err := s.Buf.Line(s.Cursor.Line); err == nil {
			if s.Cursor.Col < len([]rune(line)) {
				s.Cursor.Col++
			}
		}
		return true

	case input.ActionMoveHome:
		s.Cursor.Col = 0
		return true

	case input.ActionMoveEnd:
		if line, err := s.Buf.Line(s.Cursor.Line); err == nil {
			s.Cursor.Col = len([]rune(line))
		}
		return true
	}

	return false
}

// clampCol keeps the cursor column within the current line.
func (mh *ModeHandler) clampCol(s *surface.Surface) {
	line, err := s.Buf.Line(s.Cursor.Line)
	if err != nil {
		s.Cursor.Col = 0
		return
	}
	if n := len([]rune(line)); s.Cursor.Col > n {
		s.Cursor.Col = n
	}
}
