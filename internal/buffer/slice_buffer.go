// internal/buffer/slice_buffer.go
package buffer

import (
	"fmt"

	"github.com/ferrisbury/slate/internal/types"
)

// SliceBuffer stores content as a slice of lines. Lines never contain
// newline characters; an empty buffer is a single empty line.
type SliceBuffer struct {
	lines    []string
	modified bool
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines:    []string{""},
		modified: false,
	}
}

// Lines returns a copy of the buffer's lines.
func (sb *SliceBuffer) Lines() []string {
	out := make([]string, len(sb.lines))
	copy(out, sb.lines)
	return out
}

// LineCount returns the number of lines.
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns a single line by index.
func (sb *SliceBuffer) Line(index int) (string, error) {
	if index < 0 || index >= len(sb.lines) {
		return "", fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// SetLines replaces the full content. A nil or empty slice becomes a
// single empty line. Replacing content marks the buffer modified.
func (sb *SliceBuffer) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	next := make([]string, len(lines))
	copy(next, lines)
	sb.lines = next
	sb.modified = true
}

// clampPos clamps a position to valid line/column bounds.
func (sb *SliceBuffer) clampPos(pos types.Position) types.Position {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}
	runes := []rune(sb.lines[pos.Line])
	if pos.Col < 0 {
		pos.Col = 0
	}
	if pos.Col > len(runes) {
		pos.Col = len(runes)
	}
	return pos
}

// InsertRune inserts a single rune at pos and returns the position after it.
func (sb *SliceBuffer) InsertRune(pos types.Position, r rune) (types.Position, error) {
	pos = sb.clampPos(pos)
	runes := []rune(sb.lines[pos.Line])

	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:pos.Col]...)
	out = append(out, r)
	out = append(out, runes[pos.Col:]...)
	sb.lines[pos.Line] = string(out)
	sb.modified = true

	return types.Position{Line: pos.Line, Col: pos.Col + 1}, nil
}

// InsertNewline splits the line at pos and returns the start of the new line.
func (sb *SliceBuffer) InsertNewline(pos types.Position) (types.Position, error) {
	pos = sb.clampPos(pos)
	runes := []rune(sb.lines[pos.Line])

	head := string(runes[:pos.Col])
	tail := string(runes[pos.Col:])

	sb.lines[pos.Line] = head
	rest := make([]string, 0, len(sb.lines)+1)
	rest = append(rest, sb.lines[:pos.Line+1]...)
	rest = append(rest, tail)
	rest = append(rest, sb.lines[pos.Line+1:]...)
	sb.lines = rest
	sb.modified = true

	return types.Position{Line: pos.Line + 1, Col: 0}, nil
}

// DeleteRuneBackward removes the rune before pos, joining lines when the
// cursor sits at a line start. Returns the resulting cursor position.
func (sb *SliceBuffer) DeleteRuneBackward(pos types.Position) (types.Position, error) {
	pos = sb.clampPos(pos)

	if pos.Col > 0 {
		runes := []rune(sb.lines[pos.Line])
		out := make([]rune, 0, len(runes)-1)
		out = append(out, runes[:pos.Col-1]...)
		out = append(out, runes[pos.Col:]...)
		sb.lines[pos.Line] = string(out)
		sb.modified = true
		return types.Position{Line: pos.Line, Col: pos.Col - 1}, nil
	}

	if pos.Line == 0 {
		// Nothing before the start of the buffer.
		return pos, nil
	}

	prevRunes := []rune(sb.lines[pos.Line-1])
	joined := sb.lines[pos.Line-1] + sb.lines[pos.Line]
	rest := make([]string, 0, len(sb.lines)-1)
	rest = append(rest, sb.lines[:pos.Line-1]...)
	rest = append(rest, joined)
	rest = append(rest, sb.lines[pos.Line+1:]...)
	sb.lines = rest
	sb.modified = true

	return types.Position{Line: pos.Line - 1, Col: len(prevRunes)}, nil
}

// IsModified returns true if the buffer changed since the flag was cleared.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

// ClearModified resets the modification flag.
func (sb *SliceBuffer) ClearModified() {
	sb.modified = false
}
