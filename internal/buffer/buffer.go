// internal/buffer/buffer.go
package buffer

import "github.com/ferrisbury/slate/internal/types"

// Buffer defines the interface for line-oriented text buffer operations.
type Buffer interface {
	Lines() []string
	Line(index int) (string, error)
	LineCount() int
	SetLines(lines []string)
	InsertRune(pos types.Position, r rune) (types.Position, error)
	InsertNewline(pos types.Position) (types.Position, error)
	DeleteRuneBackward(pos types.Position) (types.Position, error)
	IsModified() bool
	ClearModified()
}
