package history

import (
	"fmt"

	"github.com/dshills/textforge/internal/engine/cursor"
	"github.com/dshills/textforge/internal/engine/editor"
	"github.com/dshills/textforge/internal/search"
)

// maxReplaceIterations bounds the replace-all loop against patterns
// whose replacement keeps producing new matches.
const maxReplaceIterations = 10000

// Search finds the next occurrence of a term, selects it, and places
// the cursor at the match end. Repeated executions of the same instance
// continue from the end of the previous match, wrapping once at the
// buffer end. Undo restores the cursor and selection from before the
// first execution. A fruitless search is a guaranteed no-op.
type Search struct {
	searcher *search.Searcher

	applied   bool
	snapshot  bool
	prev      caretState
	haveMatch bool
	lastSel   cursor.Selection
}

// NewSearch creates a search command for term.
func NewSearch(term string, caseSensitive bool) *Search {
	return &Search{searcher: search.New(term, caseSensitive)}
}

func (c *Search) Kind() Kind { return KindSearch }

func (c *Search) Describe() string {
	mode := "case-insensitive"
	if c.searcher.CaseSensitive() {
		mode = "case-sensitive"
	}
	return fmt.Sprintf("Search for %q (%s)", c.searcher.Term(), mode)
}

// Match returns the most recent match range.
func (c *Search) Match() (cursor.Selection, bool) {
	return c.lastSel, c.haveMatch
}

func (c *Search) execute(ed *editor.Editor) error {
	if c.searcher.Term() == "" {
		return ErrNoOp
	}
	from := ed.Cursor()
	if c.haveMatch {
		from = c.lastSel.End
	}
	sel, ok := c.searcher.FindWrap(ed.Buffer().Lines(), from)
	if !ok {
		return ErrNoOp
	}
	if !c.snapshot {
		c.prev = captureCaret(ed)
		c.snapshot = true
	}
	ed.SetSelection(sel)
	ed.SetCursor(sel.End)
	c.haveMatch = true
	c.lastSel = sel
	c.applied = true
	return nil
}

func (c *Search) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	c.prev.restore(ed)
	c.applied = false
	c.snapshot = false
	c.haveMatch = false
	c.lastSel = cursor.Selection{}
	return nil
}

// Replace finds the next occurrence of a term from the cursor, wrapping
// once, and replaces it. The replacement is selected with the cursor at
// its end. Undo removes the replacement, re-inserts the matched text,
// and restores the prior cursor and selection. A failed match is a safe
// no-op.
type Replace struct {
	searcher *search.Searcher
	repl     string

	applied    bool
	prev       caretState
	matchStart cursor.Position
	original   string
}

// NewReplace creates a single search-and-replace command.
func NewReplace(term, repl string, caseSensitive bool) *Replace {
	return &Replace{searcher: search.New(term, caseSensitive), repl: repl}
}

func (c *Replace) Kind() Kind { return KindReplace }

func (c *Replace) Describe() string {
	return fmt.Sprintf("Replace %q with %q", c.searcher.Term(), c.repl)
}

// Location returns where the replacement was applied.
func (c *Replace) Location() (cursor.Position, bool) {
	return c.matchStart, c.applied
}

func (c *Replace) execute(ed *editor.Editor) error {
	if c.searcher.Term() == "" {
		return ErrNoOp
	}
	sel, ok := c.searcher.FindWrap(ed.Buffer().Lines(), ed.Cursor())
	if !ok {
		return ErrNoOp
	}
	prev := captureCaret(ed)
	original, err := ed.TextInRange(sel)
	if err != nil {
		return ErrNoOp
	}
	if _, err := ed.DeleteRange(sel); err != nil {
		return ErrNoOp
	}
	end, err := ed.InsertTextAt(sel.Start, c.repl)
	if err != nil {
		return err
	}
	ed.SetSelection(cursor.Selection{Start: sel.Start, End: end})
	ed.SetCursor(end)
	c.prev = prev
	c.matchStart = sel.Start
	c.original = original
	c.applied = true
	return nil
}

func (c *Replace) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	replEnd := endOfText(c.matchStart, c.repl)
	if _, err := ed.DeleteRange(cursor.Selection{Start: c.matchStart, End: replEnd}); err != nil {
		return err
	}
	if _, err := ed.InsertTextAt(c.matchStart, c.original); err != nil {
		return err
	}
	c.prev.restore(ed)
	c.applied = false
	return nil
}

// ReplaceAll replaces every occurrence of a term, scanning from the
// buffer start. Iteration is bounded and the scan position is forced
// forward so a replacement containing its own term cannot loop. Undo
// restores the entire buffer from a whole-content snapshot.
type ReplaceAll struct {
	searcher *search.Searcher
	repl     string

	applied bool
	prev    caretState
	orig    []string
	count   int
}

// NewReplaceAll creates a replace-every-occurrence command.
func NewReplaceAll(term, repl string, caseSensitive bool) *ReplaceAll {
	return &ReplaceAll{searcher: search.New(term, caseSensitive), repl: repl}
}

func (c *ReplaceAll) Kind() Kind { return KindReplaceAll }

func (c *ReplaceAll) Describe() string {
	d := fmt.Sprintf("Replace all %q with %q", c.searcher.Term(), c.repl)
	if c.count > 0 {
		d += fmt.Sprintf(" (%d replacements)", c.count)
	}
	return d
}

// Count returns the number of replacements performed.
func (c *ReplaceAll) Count() int {
	return c.count
}

func (c *ReplaceAll) execute(ed *editor.Editor) error {
	if c.searcher.Term() == "" {
		return ErrNoOp
	}
	prev := captureCaret(ed)
	orig := ed.Buffer().Lines()

	count := 0
	pos := cursor.Position{}
	for iter := 0; iter < maxReplaceIterations; iter++ {
		sel, ok := c.searcher.FindFrom(ed.Buffer().Lines(), pos)
		if !ok {
			break
		}
		if _, err := ed.DeleteRange(sel); err != nil {
			break
		}
		end, err := ed.InsertTextAt(sel.Start, c.repl)
		if err != nil {
			break
		}
		count++
		if !end.After(pos) {
			end = cursor.Pos(pos.Line, pos.Col+1)
		}
		pos = end
	}
	if count == 0 {
		return ErrNoOp
	}
	ed.ClearSelection()
	ed.SetCursor(pos)
	c.prev = prev
	c.orig = orig
	c.count = count
	c.applied = true
	return nil
}

func (c *ReplaceAll) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	ed.Buffer().SetLines(c.orig)
	ed.InvalidateHighlight()
	c.prev.restore(ed)
	c.applied = false
	return nil
}
