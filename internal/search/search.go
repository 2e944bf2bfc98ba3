package search

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	textsearch "golang.org/x/text/search"

	"github.com/dshills/textforge/internal/engine/cursor"
)

// Searcher finds occurrences of a fixed term in line-oriented text.
type Searcher struct {
	term          string
	caseSensitive bool
	pattern       *textsearch.Pattern
}

// New creates a Searcher for term. Case-insensitive searchers match
// under Unicode case folding.
func New(term string, caseSensitive bool) *Searcher {
	s := &Searcher{
		term:          term,
		caseSensitive: caseSensitive,
	}
	if !caseSensitive && term != "" {
		m := textsearch.New(language.Und, textsearch.IgnoreCase)
		s.pattern = m.CompileString(term)
	}
	return s
}

// Term returns the search term.
func (s *Searcher) Term() string {
	return s.term
}

// CaseSensitive reports whether matching is case-sensitive.
func (s *Searcher) CaseSensitive() bool {
	return s.caseSensitive
}

// indexInLine returns the rune start and end of the first occurrence in
// line at or after rune column from.
func (s *Searcher) indexInLine(line string, from int) (start, end int, ok bool) {
	if s.term == "" {
		return 0, 0, false
	}
	runes := []rune(line)
	if from < 0 {
		from = 0
	}
	if from >= len(runes) {
		return 0, 0, false
	}
	tail := string(runes[from:])

	var bstart, bend int
	if s.pattern != nil {
		bstart, bend = s.pattern.IndexString(tail)
	} else {
		bstart = strings.Index(tail, s.term)
		bend = bstart + len(s.term)
	}
	if bstart < 0 {
		return 0, 0, false
	}
	start = from + utf8.RuneCountInString(tail[:bstart])
	end = from + utf8.RuneCountInString(tail[:bend])
	return start, end, true
}

// FindFrom returns the first match at or after from, scanning to the
// end of the buffer without wrapping.
func (s *Searcher) FindFrom(lines []string, from cursor.Position) (cursor.Selection, bool) {
	if s.term == "" || len(lines) == 0 {
		return cursor.Selection{}, false
	}
	if from.Line < 0 {
		from = cursor.Position{}
	}
	for i := from.Line; i < len(lines); i++ {
		col := 0
		if i == from.Line {
			col = from.Col
		}
		if start, end, ok := s.indexInLine(lines[i], col); ok {
			return cursor.Selection{Start: cursor.Pos(i, start), End: cursor.Pos(i, end)}, true
		}
	}
	return cursor.Selection{}, false
}

// FindWrap behaves like FindFrom but wraps to the buffer start after
// reaching the end, stopping before it would revisit from.
func (s *Searcher) FindWrap(lines []string, from cursor.Position) (cursor.Selection, bool) {
	if sel, ok := s.FindFrom(lines, from); ok {
		return sel, true
	}
	if from.Line >= len(lines) {
		return cursor.Selection{}, false
	}
	for i := 0; i <= from.Line; i++ {
		start, end, ok := s.indexInLine(lines[i], 0)
		if !ok {
			continue
		}
		// Matches at or past the origin on the seam line were already
		// covered by the forward pass.
		if i == from.Line && start >= from.Col {
			continue
		}
		return cursor.Selection{Start: cursor.Pos(i, start), End: cursor.Pos(i, end)}, true
	}
	return cursor.Selection{}, false
}

// Count returns the number of non-overlapping occurrences in lines.
func (s *Searcher) Count(lines []string) int {
	if s.term == "" {
		return 0
	}
	n := 0
	for _, line := range lines {
		col := 0
		for {
			start, end, ok := s.indexInLine(line, col)
			if !ok {
				break
			}
			n++
			if end <= start {
				end = start + 1
			}
			col = end
		}
	}
	return n
}
