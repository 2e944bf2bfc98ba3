package search

import (
	"testing"

	"github.com/dshills/textforge/internal/engine/cursor"
)

func TestFindFrom(t *testing.T) {
	lines := []string{
		"the quick brown fox",
		"jumps over the lazy dog",
		"the end",
	}
	s := New("the", true)

	tests := []struct {
		name      string
		from      cursor.Position
		wantSel   cursor.Selection
		wantFound bool
	}{
		{"from origin", cursor.Pos(0, 0), cursor.NewSelection(cursor.Pos(0, 0), cursor.Pos(0, 3)), true},
		{"after first match", cursor.Pos(0, 3), cursor.NewSelection(cursor.Pos(1, 11), cursor.Pos(1, 14)), true},
		{"mid buffer", cursor.Pos(1, 14), cursor.NewSelection(cursor.Pos(2, 0), cursor.Pos(2, 3)), true},
		{"past last match", cursor.Pos(2, 3), cursor.Selection{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, found := s.FindFrom(lines, tt.from)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if found && sel != tt.wantSel {
				t.Errorf("sel = %v..%v, want %v..%v", sel.Start, sel.End, tt.wantSel.Start, tt.wantSel.End)
			}
		})
	}
}

func TestFindFromEmptyTerm(t *testing.T) {
	s := New("", true)
	if _, found := s.FindFrom([]string{"abc"}, cursor.Pos(0, 0)); found {
		t.Error("empty term should never match")
	}
}

func TestFindCaseInsensitive(t *testing.T) {
	lines := []string{"Hello World, hello world"}

	sensitive := New("hello", true)
	sel, found := sensitive.FindFrom(lines, cursor.Pos(0, 0))
	if !found || sel.Start != cursor.Pos(0, 13) {
		t.Errorf("case-sensitive: found=%v start=%v, want start [0, 13]", found, sel.Start)
	}

	insensitive := New("hello", false)
	sel, found = insensitive.FindFrom(lines, cursor.Pos(0, 0))
	if !found || sel.Start != cursor.Pos(0, 0) {
		t.Errorf("case-insensitive: found=%v start=%v, want start [0, 0]", found, sel.Start)
	}
	if sel.End != cursor.Pos(0, 5) {
		t.Errorf("case-insensitive end = %v, want [0, 5]", sel.End)
	}
}

func TestFindUnicodeColumns(t *testing.T) {
	lines := []string{"héllo wörld wörld"}
	s := New("wörld", true)

	sel, found := s.FindFrom(lines, cursor.Pos(0, 0))
	if !found {
		t.Fatal("expected match")
	}
	if sel.Start != cursor.Pos(0, 6) || sel.End != cursor.Pos(0, 11) {
		t.Errorf("sel = %v..%v, want [0, 6]..[0, 11]", sel.Start, sel.End)
	}

	sel, found = s.FindFrom(lines, cursor.Pos(0, 7))
	if !found {
		t.Fatal("expected second match")
	}
	if sel.Start != cursor.Pos(0, 12) {
		t.Errorf("second match start = %v, want [0, 12]", sel.Start)
	}
}

func TestFindWrap(t *testing.T) {
	lines := []string{"alpha beta", "gamma delta", "alpha omega"}
	s := New("alpha", true)

	sel, found := s.FindWrap(lines, cursor.Pos(2, 1))
	if !found {
		t.Fatal("expected wrapped match")
	}
	if sel.Start != cursor.Pos(0, 0) {
		t.Errorf("wrapped match start = %v, want [0, 0]", sel.Start)
	}
}

func TestFindWrapSeamLine(t *testing.T) {
	lines := []string{"nothing here", "alpha tail"}
	s := New("alpha", true)

	// At the origin the forward pass sees the match directly.
	sel, found := s.FindWrap(lines, cursor.Pos(1, 0))
	if !found || sel.Start != cursor.Pos(1, 0) {
		t.Fatalf("forward pass: found=%v start=%v, want start [1, 0]", found, sel.Start)
	}

	// One column past it only the wrap pass can see it again.
	sel, found = s.FindWrap(lines, cursor.Pos(1, 1))
	if !found || sel.Start != cursor.Pos(1, 0) {
		t.Errorf("wrap pass: found=%v start=%v, want start [1, 0]", found, sel.Start)
	}
}

func TestFindWrapNoMatch(t *testing.T) {
	s := New("absent", false)
	if _, found := s.FindWrap([]string{"abc", "def"}, cursor.Pos(1, 2)); found {
		t.Error("expected no match")
	}
}

func TestCount(t *testing.T) {
	lines := []string{"word and word", "WORD", "wordword"}

	if got := New("word", true).Count(lines); got != 4 {
		t.Errorf("case-sensitive count = %d, want 4", got)
	}
	if got := New("word", false).Count(lines); got != 5 {
		t.Errorf("case-insensitive count = %d, want 5", got)
	}
	if got := New("", true).Count(lines); got != 0 {
		t.Errorf("empty term count = %d, want 0", got)
	}
}
