package cursor

import (
	"fmt"

	"github.com/dshills/textforge/internal/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Pos is a convenience constructor for Position.
func Pos(line, col int) Position {
	return buffer.Pos(line, col)
}

// Selection represents a range of selected text in document order.
// Start and End are endpoints captured by the editor; a Selection whose
// endpoints are equal represents no selection. Selection is an immutable
// value type.
type Selection struct {
	Start Position
	End   Position
}

// NewSelection creates a selection between two positions, normalized to
// document order.
func NewSelection(start, end Position) Selection {
	return Selection{Start: start, End: end}.Normalize()
}

// Normalize returns the selection with endpoints in document order,
// swapping them if needed.
func (s Selection) Normalize() Selection {
	if s.End.Before(s.Start) {
		return Selection{Start: s.End, End: s.Start}
	}
	return s
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// IsMultiLine returns true if the selection spans more than one line.
func (s Selection) IsMultiLine() bool {
	return s.Start.Line != s.End.Line
}

// Contains reports whether the position lies within [Start, End).
func (s Selection) Contains(p Position) bool {
	return !p.Before(s.Start) && p.Before(s.End)
}

// String returns the selection in display form.
func (s Selection) String() string {
	return fmt.Sprintf("%v-%v", s.Start, s.End)
}
