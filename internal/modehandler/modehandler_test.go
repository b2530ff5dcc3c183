package modehandler

import (
	"testing"

	"github.com/ferrisbury/slate/internal/event"
	"github.com/ferrisbury/slate/internal/input"
	"github.com/ferrisbury/slate/internal/statusbar"
	"github.com/ferrisbury/slate/internal/surface"
	"github.com/gdamore/tcell/v2"
)

func newTestHandler(t *testing.T) (*ModeHandler, *surface.Registry, chan struct{}) {
	t.Helper()
	quit := make(chan struct{})
	reg := surface.NewRegistry(nil)
	mh := New(Config{
		Registry:       reg,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   event.NewManager(),
		StatusBar:      statusbar.New(statusbar.DefaultConfig()),
		QuitSignal:     quit,
	})
	return mh, reg, quit
}

func typeString(mh *ModeHandler, s string) {
	for _, r := range s {
		mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func pressEnter(mh *ModeHandler) {
	mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
}

func TestTypingInsertsIntoActiveSurface(t *testing.T) {
	mh, reg, _ := newTestHandler(t)

	typeString(mh, "hi")
	pressEnter(mh)
	typeString(mh, "there")

	lines, err := reg.Lines(reg.Active())
	if err != nil {
		t.Fatalf("Lines error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "hi" || lines[1] != "there" {
		t.Errorf("lines = %v, want [hi there]", lines)
	}
}

func TestBackspaceDeletes(t *testing.T) {
	mh, reg, _ := newTestHandler(t)

	typeString(mh, "ab")
	mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))

	lines, _ := reg.Lines(reg.Active())
	if lines[0] != "a" {
		t.Errorf("line = %q, want %q", lines[0], "a")
	}
}

func TestCommandModeExecutesRegisteredCommand(t *testing.T) {
	mh, _, _ := newTestHandler(t)

	invoked := false
	if err := mh.RegisterCommand("ping", func(args []string) error {
		invoked = true
		return nil
	}); err != nil {
		t.Fatalf("RegisterCommand error: %v", err)
	}

	typeString(mh, ":")
	if mh.GetCurrentMode() != ModeCommand {
		t.Fatal("':' did not enter command mode")
	}
	typeString(mh, "ping")
	pressEnter(mh)

	if !invoked {
		t.Error("registered command was not invoked")
	}
	if mh.GetCurrentMode() != ModeNormal {
		t.Error("mode did not return to normal after execution")
	}
}

func TestUnknownCommandInvokesNothing(t *testing.T) {
	mh, reg, _ := newTestHandler(t)

	invoked := false
	mh.RegisterCommand("real", func(args []string) error {
		invoked = true
		return nil
	})

	typeString(mh, ":bogus")
	pressEnter(mh)

	if invoked {
		t.Error("unknown command name invoked a registered command")
	}
	if mh.GetCurrentMode() != ModeNormal {
		t.Error("mode did not return to normal")
	}

	// The rejected command must not have touched the buffer either.
	lines, _ := reg.Lines(reg.Active())
	if len(lines) != 1 || lines[0] != "" {
		t.Errorf("buffer modified by unknown command: %v", lines)
	}
}

func TestEscapeCancelsCommandMode(t *testing.T) {
	mh, _, _ := newTestHandler(t)

	invoked := false
	mh.RegisterCommand("x", func(args []string) error {
		invoked = true
		return nil
	})

	typeString(mh, ":x")
	mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	if mh.GetCurrentMode() != ModeNormal {
		t.Error("Escape did not cancel command mode")
	}
	if invoked {
		t.Error("canceled command was invoked")
	}
	if mh.GetCommandBuffer() != "" {
		t.Errorf("command buffer = %q after cancel", mh.GetCommandBuffer())
	}
}

func TestRegisterCommandRejectsDuplicates(t *testing.T) {
	mh, _, _ := newTestHandler(t)
	noop := func(args []string) error { return nil }

	if err := mh.RegisterCommand("dup", noop); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := mh.RegisterCommand("dup", noop); err == nil {
		t.Error("duplicate registration succeeded")
	}
	if err := mh.RegisterCommand("", noop); err == nil {
		t.Error("empty name registration succeeded")
	}
}

func TestQuickSwapKeyRunsSwapCommand(t *testing.T) {
	mh, _, _ := newTestHandler(t)

	invoked := false
	mh.RegisterCommand("swap", func(args []string) error {
		invoked = true
		return nil
	})

	mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlCarat, 0, tcell.ModCtrl))
	if !invoked {
		t.Error("Ctrl+^ did not run the swap command")
	}
}

func TestEscapeInNormalModeQuits(t *testing.T) {
	mh, _, quit := newTestHandler(t)

	mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	select {
	case <-quit:
	default:
		t.Error("quit signal not closed")
	}
}
