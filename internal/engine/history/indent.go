package history

import (
	"strings"

	"github.com/dshills/textforge/internal/engine/cursor"
	"github.com/dshills/textforge/internal/engine/editor"
)

// DefaultTabWidth is the indent width used when none is configured.
const DefaultTabWidth = 4

// IncreaseIndent prepends spaces to every non-empty line in a range.
// Cursor and selection endpoint columns on affected lines shift by the
// characters actually added to their line. Undo restores the original
// lines verbatim.
type IncreaseIndent struct {
	first    int
	last     int
	tabWidth int

	applied  bool
	prev     caretState
	effFirst int
	orig     []string
}

// NewIncreaseIndent creates an indent command for lines first through
// last inclusive. A non-positive tabWidth falls back to the default.
func NewIncreaseIndent(first, last, tabWidth int) *IncreaseIndent {
	if first > last {
		first, last = last, first
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &IncreaseIndent{first: first, last: last, tabWidth: tabWidth}
}

func (c *IncreaseIndent) Kind() Kind       { return KindIncreaseIndent }
func (c *IncreaseIndent) Describe() string { return "Increase indent" }

func (c *IncreaseIndent) execute(ed *editor.Editor) error {
	prev := captureCaret(ed)
	buf := ed.Buffer()

	first, last, ok := clampLineRange(c.first, c.last, buf.LineCount())
	if !ok {
		return ErrNoOp
	}

	indent := strings.Repeat(" ", c.tabWidth)
	orig := make([]string, 0, last-first+1)
	modified := false
	for i := first; i <= last; i++ {
		line, err := buf.GetLine(i)
		if err != nil {
			return ErrNoOp
		}
		orig = append(orig, line)
		if line == "" {
			continue
		}
		if err := buf.ReplaceLine(i, indent+line); err != nil {
			return ErrNoOp
		}
		modified = true
	}
	if !modified {
		return ErrNoOp
	}

	c.prev = prev
	c.effFirst = first
	c.orig = orig
	shiftCaretByLineDelta(ed, first, orig)
	ed.InvalidateHighlight()
	c.applied = true
	return nil
}

func (c *IncreaseIndent) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	return restoreIndentLines(ed, c.effFirst, c.orig, &c.applied, c.prev)
}

// DecreaseIndent removes leading indentation from every line in a
// range: one tab if the line starts with a tab, otherwise up to
// tabWidth characters of the leading whitespace run. Lines without
// leading whitespace are untouched. Undo restores the original lines
// verbatim.
type DecreaseIndent struct {
	first    int
	last     int
	tabWidth int

	applied  bool
	prev     caretState
	effFirst int
	orig     []string
}

// NewDecreaseIndent creates an unindent command for lines first through
// last inclusive. A non-positive tabWidth falls back to the default.
func NewDecreaseIndent(first, last, tabWidth int) *DecreaseIndent {
	if first > last {
		first, last = last, first
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &DecreaseIndent{first: first, last: last, tabWidth: tabWidth}
}

func (c *DecreaseIndent) Kind() Kind       { return KindDecreaseIndent }
func (c *DecreaseIndent) Describe() string { return "Decrease indent" }

func (c *DecreaseIndent) execute(ed *editor.Editor) error {
	prev := captureCaret(ed)
	buf := ed.Buffer()

	first, last, ok := clampLineRange(c.first, c.last, buf.LineCount())
	if !ok {
		return ErrNoOp
	}

	orig := make([]string, 0, last-first+1)
	modified := false
	for i := first; i <= last; i++ {
		line, err := buf.GetLine(i)
		if err != nil {
			return ErrNoOp
		}
		orig = append(orig, line)

		runes := []rune(line)
		run := 0
		for run < len(runes) && (runes[run] == ' ' || runes[run] == '\t') {
			run++
		}
		if run == 0 {
			continue
		}
		remove := c.tabWidth
		if runes[0] == '\t' {
			remove = 1
		} else if run < remove {
			remove = run
		}
		if err := buf.ReplaceLine(i, string(runes[remove:])); err != nil {
			return ErrNoOp
		}
		modified = true
	}
	if !modified {
		return ErrNoOp
	}

	c.prev = prev
	c.effFirst = first
	c.orig = orig
	shiftCaretByLineDelta(ed, first, orig)
	ed.InvalidateHighlight()
	c.applied = true
	return nil
}

func (c *DecreaseIndent) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	return restoreIndentLines(ed, c.effFirst, c.orig, &c.applied, c.prev)
}

// clampLineRange intersects [first, last] with the buffer. ok is false
// when the range misses the buffer entirely.
func clampLineRange(first, last, lineCount int) (int, int, bool) {
	if last < 0 || first >= lineCount {
		return 0, 0, false
	}
	if first < 0 {
		first = 0
	}
	if last >= lineCount {
		last = lineCount - 1
	}
	return first, last, true
}

// shiftCaretByLineDelta moves the cursor and selection endpoints by the
// per-line length change between orig and the current buffer content,
// clamping columns at zero.
func shiftCaretByLineDelta(ed *editor.Editor, first int, orig []string) {
	last := first + len(orig) - 1
	shift := func(p cursor.Position) cursor.Position {
		if p.Line < first || p.Line > last {
			return p
		}
		now := lineLen(ed, p.Line)
		was := len([]rune(orig[p.Line-first]))
		p.Col += now - was
		if p.Col < 0 {
			p.Col = 0
		}
		return p
	}
	if ed.HasSelection() {
		sel := ed.Selection()
		ed.SetSelection(cursor.Selection{Start: shift(sel.Start), End: shift(sel.End)})
	}
	ed.SetCursor(shift(ed.Cursor()))
}

// restoreIndentLines puts the recorded original lines back and restores
// the caret snapshot.
func restoreIndentLines(ed *editor.Editor, first int, orig []string, applied *bool, prev caretState) error {
	buf := ed.Buffer()
	for i, line := range orig {
		if err := buf.ReplaceLine(first+i, line); err != nil {
			return err
		}
	}
	ed.InvalidateHighlight()
	prev.restore(ed)
	*applied = false
	return nil
}
