package history

import (
	"fmt"

	"github.com/dshills/textforge/internal/engine/cursor"
	"github.com/dshills/textforge/internal/engine/editor"
)

// InsertText inserts text at the cursor or at a fixed position. The
// text may contain line breaks. Undo deletes the exact inserted span
// and restores the prior cursor and selection.
type InsertText struct {
	text string
	at   *cursor.Position

	applied bool
	prev    caretState
	start   cursor.Position
	end     cursor.Position
}

// NewInsertText creates a command inserting text at the cursor.
func NewInsertText(text string) *InsertText {
	return &InsertText{text: text}
}

// NewInsertTextAt creates a command inserting text at a fixed position.
func NewInsertTextAt(pos cursor.Position, text string) *InsertText {
	return &InsertText{text: text, at: &pos}
}

func (c *InsertText) Kind() Kind { return KindInsertText }

func (c *InsertText) Describe() string {
	return fmt.Sprintf("Insert text: %s", c.text)
}

func (c *InsertText) execute(ed *editor.Editor) error {
	if c.text == "" {
		return ErrNoOp
	}
	prev := captureCaret(ed)
	start := ed.Cursor()
	if c.at != nil {
		start = *c.at
	}
	end, err := ed.InsertTextAt(start, c.text)
	if err != nil {
		return ErrNoOp
	}
	ed.SetCursor(end)
	c.prev = prev
	c.start = start
	c.end = end
	c.applied = true
	return nil
}

func (c *InsertText) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	if _, err := ed.DeleteRange(cursor.Selection{Start: c.start, End: c.end}); err != nil {
		return err
	}
	c.prev.restore(ed)
	c.applied = false
	return nil
}

// NewLine splits the current line at the cursor, leaving the cursor at
// the start of the new line. On a buffer holding one empty line the
// result is two empty lines.
type NewLine struct {
	applied bool
	prev    caretState
	at      cursor.Position
}

// NewNewLine creates a line-split command.
func NewNewLine() *NewLine {
	return &NewLine{}
}

func (c *NewLine) Kind() Kind       { return KindNewLine }
func (c *NewLine) Describe() string { return "New line" }

func (c *NewLine) execute(ed *editor.Editor) error {
	prev := captureCaret(ed)
	at := ed.Cursor()
	end, err := ed.InsertTextAt(at, "\n")
	if err != nil {
		return ErrNoOp
	}
	ed.SetCursor(end)
	c.prev = prev
	c.at = at
	c.applied = true
	return nil
}

func (c *NewLine) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	end := cursor.Pos(c.at.Line+1, 0)
	if _, err := ed.DeleteRange(cursor.Selection{Start: c.at, End: end}); err != nil {
		return err
	}
	c.prev.restore(ed)
	c.applied = false
	return nil
}

// DeleteChar removes one character at the cursor: backwards for
// backspace, forwards for delete. At a line boundary the two adjacent
// lines are joined instead. Undo re-inserts the removed text, a line
// break included, at the recorded position.
type DeleteChar struct {
	backspace bool

	applied bool
	prev    caretState
	start   cursor.Position
	removed string
}

// NewDeleteChar creates a single-character deletion. With backspace the
// character before the cursor is removed, otherwise the one under it.
func NewDeleteChar(backspace bool) *DeleteChar {
	return &DeleteChar{backspace: backspace}
}

func (c *DeleteChar) Kind() Kind { return KindDeleteChar }

func (c *DeleteChar) Describe() string {
	if c.backspace {
		return "Delete character (backspace)"
	}
	return "Delete character (forward delete)"
}

func (c *DeleteChar) execute(ed *editor.Editor) error {
	prev := captureCaret(ed)
	cur := ed.Cursor()

	var rng cursor.Selection
	if c.backspace {
		switch {
		case cur.Col > 0:
			rng = cursor.Selection{Start: cursor.Pos(cur.Line, cur.Col-1), End: cur}
		case cur.Line > 0:
			seam := cursor.Pos(cur.Line-1, lineLen(ed, cur.Line-1))
			rng = cursor.Selection{Start: seam, End: cursor.Pos(cur.Line, 0)}
		default:
			return ErrNoOp
		}
	} else {
		max := lineLen(ed, cur.Line)
		switch {
		case cur.Col < max:
			rng = cursor.Selection{Start: cur, End: cursor.Pos(cur.Line, cur.Col+1)}
		case cur.Line < ed.Buffer().LineCount()-1:
			rng = cursor.Selection{Start: cursor.Pos(cur.Line, max), End: cursor.Pos(cur.Line+1, 0)}
		default:
			return ErrNoOp
		}
	}

	removed, err := ed.DeleteRange(rng)
	if err != nil {
		return ErrNoOp
	}
	c.prev = prev
	c.start = rng.Start
	c.removed = removed
	c.applied = true
	return nil
}

func (c *DeleteChar) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	if _, err := ed.InsertTextAt(c.start, c.removed); err != nil {
		return err
	}
	c.prev.restore(ed)
	c.applied = false
	return nil
}
