package cursor

import (
	"testing"

	"github.com/dshills/textforge/internal/engine/buffer"
)

func TestNewSelectionNormalizes(t *testing.T) {
	tests := []struct {
		name       string
		start, end Position
		wantStart  Position
		wantEnd    Position
	}{
		{"forward", buffer.Pos(0, 2), buffer.Pos(1, 4), buffer.Pos(0, 2), buffer.Pos(1, 4)},
		{"reversedLines", buffer.Pos(2, 0), buffer.Pos(1, 5), buffer.Pos(1, 5), buffer.Pos(2, 0)},
		{"reversedCols", buffer.Pos(0, 7), buffer.Pos(0, 3), buffer.Pos(0, 3), buffer.Pos(0, 7)},
		{"equal", buffer.Pos(1, 1), buffer.Pos(1, 1), buffer.Pos(1, 1), buffer.Pos(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(tt.start, tt.end)
			if s.Start != tt.wantStart || s.End != tt.wantEnd {
				t.Errorf("expected %v-%v, got %v-%v", tt.wantStart, tt.wantEnd, s.Start, s.End)
			}
			if s.End.Before(s.Start) {
				t.Error("normalized selection has end before start")
			}
		})
	}
}

func TestSelectionIsEmpty(t *testing.T) {
	if !(Selection{Start: buffer.Pos(1, 3), End: buffer.Pos(1, 3)}).IsEmpty() {
		t.Error("equal endpoints should be empty")
	}
	if (Selection{Start: buffer.Pos(1, 3), End: buffer.Pos(1, 4)}).IsEmpty() {
		t.Error("distinct endpoints should not be empty")
	}
}

func TestSelectionIsMultiLine(t *testing.T) {
	if (Selection{Start: buffer.Pos(0, 0), End: buffer.Pos(0, 5)}).IsMultiLine() {
		t.Error("same-line selection reported multi-line")
	}
	if !(Selection{Start: buffer.Pos(0, 5), End: buffer.Pos(2, 0)}).IsMultiLine() {
		t.Error("cross-line selection not reported multi-line")
	}
}

func TestSelectionContains(t *testing.T) {
	s := NewSelection(buffer.Pos(1, 2), buffer.Pos(3, 4))

	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"start", buffer.Pos(1, 2), true},
		{"interior", buffer.Pos(2, 0), true},
		{"end", buffer.Pos(3, 4), false}, // half-open
		{"before", buffer.Pos(1, 1), false},
		{"after", buffer.Pos(3, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Contains(tt.pos); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{"equal", buffer.Pos(1, 1), buffer.Pos(1, 1), 0},
		{"earlierLine", buffer.Pos(0, 9), buffer.Pos(1, 0), -1},
		{"laterLine", buffer.Pos(2, 0), buffer.Pos(1, 9), 1},
		{"earlierCol", buffer.Pos(1, 2), buffer.Pos(1, 3), -1},
		{"laterCol", buffer.Pos(1, 4), buffer.Pos(1, 3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
		})
	}
}
