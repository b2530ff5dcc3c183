package scratchpad

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/ferrisbury/slate/internal/config"
	"github.com/ferrisbury/slate/internal/event"
	"github.com/ferrisbury/slate/internal/logger"
	"github.com/ferrisbury/slate/internal/plugin"
	"github.com/ferrisbury/slate/internal/scratch"
	"github.com/pmezard/go-difflib/difflib"
)

// Ensure Scratchpad implements plugin.Plugin
var _ plugin.Plugin = (*Scratchpad)(nil)

// Scratchpad owns the swap controller and the snapshot store, and
// exposes them to the user as the swap/save/prev/next command set plus
// a few conveniences (yank, diff, wipe).
type Scratchpad struct {
	api   plugin.EditorAPI
	ctrl  *scratch.Controller
	store *scratch.Store

	// writeClipboard is swappable so tests don't touch the real clipboard.
	writeClipboard func(string) error
}

// New creates a new instance of the Scratchpad plugin.
func New() *Scratchpad {
	return &Scratchpad{
		writeClipboard: clipboard.WriteAll,
	}
}

// Name returns the unique name of the plugin.
func (p *Scratchpad) Name() string {
	return "scratchpad"
}

// Initialize builds the controller and store from the editor's
// configuration and registers the user-facing commands.
func (p *Scratchpad) Initialize(api plugin.EditorAPI) error {
	p.api = api

	cfg := api.ScratchConfig()
	p.ctrl = scratch.NewController(api.Host(), config.ScratchSurfaceName)
	p.store = scratch.NewStore(api.HistoryBlob(), api.HistoryFilePath(), cfg.MaxSnapshots)

	commands := map[string]plugin.CommandFunc{
		"swap": p.cmdSwap,
		"save": p.cmdSave,
		"prev": p.cmdPrev,
		"next": p.cmdNext,
		"yank": p.cmdYank,
		"diff": p.cmdDiff,
		"wipe": p.cmdWipe,
	}
	for name, fn := range commands {
		if err := api.RegisterCommand(name, fn); err != nil {
			return fmt.Errorf("failed to register '%s' command: %w", name, err)
		}
	}

	logger.Infof("scratchpad initialized. Capacity: %d, History: %s", cfg.MaxSnapshots, api.HistoryFilePath())
	return nil
}

// Shutdown performs cleanup (nothing held open).
func (p *Scratchpad) Shutdown() error {
	return nil
}

// report surfaces an operation outcome on the status bar and in the log.
func (p *Scratchpad) report(op string, out scratch.Outcome) {
	switch out.Kind {
	case scratch.KindOk:
		if out.Reason != "" {
			p.api.SetStatusMessage("%s", out.Reason)
		}
	case scratch.KindSkipped, scratch.KindWarning:
		p.api.SetStatusMessage("%s", out.Reason)
	case scratch.KindError:
		logger.Errorf("scratchpad: %s failed: %v", op, out.Err)
		p.api.SetStatusMessage("%s", out.Reason)
	}
}

// cmdSwap toggles between the scratch surface and the previous surface.
func (p *Scratchpad) cmdSwap(args []string) error {
	p.report("swap", p.ctrl.Swap())
	return nil
}

// cmdSave snapshots the scratch surface's content into the history.
func (p *Scratchpad) cmdSave(args []string) error {
	if !p.ctrl.InScratch() {
		logger.Debugf("scratchpad: save ignored outside scratch surface")
		return nil
	}

	lines, err := p.api.Host().Lines(p.ctrl.ScratchID())
	if err != nil {
		return fmt.Errorf("cannot read scratch content: %w", err)
	}

	out := p.store.Save(lines)
	p.report("save", out)
	if out.IsOk() {
		p.api.DispatchEvent(event.TypeSnapshotSaved, event.SnapshotSavedData{
			Entries: p.store.Len(),
		})
	}
	return nil
}

// navigate applies a snapshot picked by move to the scratch surface.
func (p *Scratchpad) navigate(op string, move func() (scratch.Snapshot, int, scratch.Outcome)) error {
	if !p.ctrl.InScratch() {
		logger.Debugf("scratchpad: %s ignored outside scratch surface", op)
		return nil
	}

	snap, idx, out := move()
	if !out.IsOk() {
		p.report(op, out)
		return nil
	}

	if err := p.api.Host().SetLines(p.ctrl.ScratchID(), snap.Lines()); err != nil {
		return fmt.Errorf("cannot replace scratch content: %w", err)
	}

	p.api.SetStatusMessage("history [%d/%d]", idx+1, p.store.Len())
	p.api.DispatchEvent(event.TypeHistoryNavigated, event.HistoryNavigatedData{
		Index:   idx,
		Entries: p.store.Len(),
	})
	return nil
}

// cmdPrev shows the next-older snapshot, wrapping at the oldest.
func (p *Scratchpad) cmdPrev(args []string) error {
	return p.navigate("prev", p.store.Prev)
}

// cmdNext shows the next-newer snapshot, wrapping at the newest.
func (p *Scratchpad) cmdNext(args []string) error {
	return p.navigate("next", p.store.Next)
}

// cmdYank copies the scratch surface's content to the system clipboard.
func (p *Scratchpad) cmdYank(args []string) error {
	if !p.ctrl.InScratch() {
		p.api.SetStatusMessage("yank: not in scratch surface")
		return nil
	}

	lines, err := p.api.Host().Lines(p.ctrl.ScratchID())
	if err != nil {
		return fmt.Errorf("cannot read scratch content: %w", err)
	}
	if err := p.writeClipboard(strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	p.api.SetStatusMessage("yanked %d line(s)", len(lines))
	return nil
}

// cmdDiff compares the live scratch content against the snapshot under
// the navigation cursor and reports the difference.
func (p *Scratchpad) cmdDiff(args []string) error {
	if !p.ctrl.InScratch() {
		p.api.SetStatusMessage("diff: not in scratch surface")
		return nil
	}
	idx := p.store.Cursor()
	snap, ok := p.store.At(idx)
	if !ok {
		p.api.SetStatusMessage("diff: no snapshot selected (use prev/next first)")
		return nil
	}

	lines, err := p.api.Host().Lines(p.ctrl.ScratchID())
	if err != nil {
		return fmt.Errorf("cannot read scratch content: %w", err)
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(snap.Lines(), "\n")),
		B:        difflib.SplitLines(strings.Join(lines, "\n")),
		FromFile: fmt.Sprintf("snapshot %d", idx+1),
		ToFile:   "scratch",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("diff failed: %w", err)
	}
	if text == "" {
		p.api.SetStatusMessage("diff: identical to snapshot %d", idx+1)
		return nil
	}

	changed := 0
	for _, l := range strings.Split(text, "\n") {
		if len(l) > 0 && (l[0] == '+' || l[0] == '-') && !strings.HasPrefix(l, "+++") && !strings.HasPrefix(l, "---") {
			changed++
		}
	}
	logger.Infof("scratchpad diff vs snapshot %d:\n%s", idx+1, text)
	p.api.SetStatusMessage("diff: %d line(s) differ from snapshot %d (see log)", changed, idx+1)
	return nil
}

// cmdWipe clears the whole snapshot history.
func (p *Scratchpad) cmdWipe(args []string) error {
	p.report("wipe", p.store.Wipe())
	return nil
}
