package buffer

import "fmt"

// Position is a (line, column) coordinate in a buffer. Columns are rune
// indices; a column equal to the line's rune length addresses the
// position just past the last character.
type Position struct {
	Line int
	Col  int
}

// Pos is shorthand for constructing a Position.
func Pos(line, col int) Position {
	return Position{Line: line, Col: col}
}

// Compare returns -1 if p is before other in document order, 0 if equal,
// and 1 if after.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Col < other.Col:
		return -1
	case p.Col > other.Col:
		return 1
	default:
		return 0
	}
}

// Before reports whether p precedes other in document order.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After reports whether p follows other in document order.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// String returns the position in [line, col] display form.
func (p Position) String() string {
	return fmt.Sprintf("[%d, %d]", p.Line, p.Col)
}
