// internal/tui/drawing.go
package tui

import (
	"github.com/ferrisbury/slate/internal/surface"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// visualColumn computes the on-screen column of a rune index within a
// line, accounting for wide grapheme clusters.
func visualColumn(line string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	visualWidth := 0
	currentRuneIndex := 0

	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if currentRuneIndex >= runeIndex {
			break
		}
		visualWidth += gr.Width()
		currentRuneIndex += len(gr.Runes())
	}
	return visualWidth
}

// DrawSurface renders the surface's visible lines into the view area
// above the status bar, scrolling to keep the cursor on screen.
func DrawSurface(t *TUI, s *surface.Surface, statusHeight int) {
	screen := t.GetScreen()
	width, height := t.Size()
	viewHeight := height - statusHeight
	if viewHeight <= 0 || width <= 0 || s == nil {
		return
	}

	// Keep the cursor line inside the view.
	if s.Cursor.Line < s.ViewTop {
		s.ViewTop = s.Cursor.Line
	}
	if s.Cursor.Line >= s.ViewTop+viewHeight {
		s.ViewTop = s.Cursor.Line - viewHeight + 1
	}

	lines := s.Buf.Lines()
	style := tcell.StyleDefault

	for row := 0; row < viewHeight; row++ {
		lineIdx := s.ViewTop + row
		if lineIdx >= len(lines) {
			break
		}

		gr := uniseg.NewGraphemes(lines[lineIdx])
		x := 0
		for gr.Next() {
			clusterWidth := gr.Width()
			if x+clusterWidth > width {
				break
			}
			runes := gr.Runes()
			if len(runes) > 0 {
				var combining []rune
				if len(runes) > 1 {
					combining = runes[1:]
				}
				screen.SetContent(x, row, runes[0], combining, style)
			}
			x += clusterWidth
		}
	}
}

// DrawCursor positions the terminal cursor at the surface's cursor.
func DrawCursor(t *TUI, s *surface.Surface, statusHeight int) {
	screen := t.GetScreen()
	_, height := t.Size()
	if s == nil {
		screen.HideCursor()
		return
	}

	row := s.Cursor.Line - s.ViewTop
	if row < 0 || row >= height-statusHeight {
		screen.HideCursor()
		return
	}

	line, err := s.Buf.Line(s.Cursor.Line)
	if err != nil {
		screen.HideCursor()
		return
	}
	screen.ShowCursor(visualColumn(line, s.Cursor.Col), row)
}
