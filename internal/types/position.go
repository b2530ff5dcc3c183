// internal/types/position.go
package types

// Position represents a cursor or text position within a surface.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
// Using rune index keeps cursor math correct for multi-byte text.
type Position struct {
	Line int
	Col  int // Rune index
}
