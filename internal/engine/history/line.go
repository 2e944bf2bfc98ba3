package history

import (
	"fmt"
	"slices"

	"github.com/dshills/textforge/internal/engine/cursor"
	"github.com/dshills/textforge/internal/engine/editor"
)

// AddLine appends a line at the end of the buffer, or replaces the sole
// empty line of an empty buffer. The cursor moves to the start of the
// new line.
type AddLine struct {
	text string

	applied      bool
	prev         caretState
	replacedSole bool
	index        int
}

// NewAddLine creates an append-line command.
func NewAddLine(text string) *AddLine {
	return &AddLine{text: text}
}

func (c *AddLine) Kind() Kind       { return KindAddLine }
func (c *AddLine) Describe() string { return "Add new line" }

func (c *AddLine) execute(ed *editor.Editor) error {
	c.prev = captureCaret(ed)
	buf := ed.Buffer()

	if buf.IsEmpty() {
		if err := buf.ReplaceLine(0, c.text); err != nil {
			return ErrNoOp
		}
		c.replacedSole = true
		c.index = 0
	} else {
		buf.AddLine(c.text)
		c.replacedSole = false
		c.index = buf.LineCount() - 1
	}
	ed.SetCursor(cursor.Pos(c.index, 0))
	ed.InvalidateHighlight()
	c.applied = true
	return nil
}

func (c *AddLine) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	buf := ed.Buffer()
	if c.replacedSole {
		if err := buf.ReplaceLine(0, ""); err != nil {
			return err
		}
	} else {
		if err := buf.DeleteLine(c.index); err != nil {
			return err
		}
	}
	ed.InvalidateHighlight()
	c.prev.restore(ed)
	c.applied = false
	return nil
}

// InsertLine inserts a whole line at an index, shifting later lines
// down. An out-of-range index is a safe no-op.
type InsertLine struct {
	index int
	text  string

	applied bool
	prev    caretState
}

// NewInsertLine creates an insert-line command. The index may equal the
// line count to append.
func NewInsertLine(index int, text string) *InsertLine {
	return &InsertLine{index: index, text: text}
}

func (c *InsertLine) Kind() Kind { return KindInsertLine }

func (c *InsertLine) Describe() string {
	return fmt.Sprintf("Insert line at %d", c.index)
}

func (c *InsertLine) execute(ed *editor.Editor) error {
	c.prev = captureCaret(ed)
	if err := ed.Buffer().InsertLine(c.index, c.text); err != nil {
		return ErrNoOp
	}
	ed.InvalidateHighlight()
	c.applied = true
	return nil
}

func (c *InsertLine) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	if err := ed.Buffer().DeleteLine(c.index); err != nil {
		return err
	}
	ed.InvalidateHighlight()
	c.prev.restore(ed)
	c.applied = false
	return nil
}

// DeleteLine removes the line at an index. Deleting the only line
// leaves one empty line. An out-of-range index is a safe no-op.
type DeleteLine struct {
	index int

	applied  bool
	prev     caretState
	original string
	wasSole  bool
}

// NewDeleteLine creates a delete-line command.
func NewDeleteLine(index int) *DeleteLine {
	return &DeleteLine{index: index}
}

func (c *DeleteLine) Kind() Kind { return KindDeleteLine }

func (c *DeleteLine) Describe() string {
	return fmt.Sprintf("Delete line %d", c.index)
}

func (c *DeleteLine) execute(ed *editor.Editor) error {
	c.prev = captureCaret(ed)
	buf := ed.Buffer()

	original, err := buf.GetLine(c.index)
	if err != nil {
		return ErrNoOp
	}
	c.wasSole = buf.LineCount() == 1
	if err := buf.DeleteLine(c.index); err != nil {
		return ErrNoOp
	}
	ed.SetCursor(ed.Cursor())
	ed.InvalidateHighlight()
	c.original = original
	c.applied = true
	return nil
}

func (c *DeleteLine) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	buf := ed.Buffer()
	if c.wasSole {
		if err := buf.ReplaceLine(0, c.original); err != nil {
			return err
		}
	} else {
		if err := buf.InsertLine(c.index, c.original); err != nil {
			return err
		}
	}
	ed.InvalidateHighlight()
	c.prev.restore(ed)
	c.applied = false
	return nil
}

// ReplaceLine replaces the content of one line. An out-of-range index
// is a safe no-op.
type ReplaceLine struct {
	index int
	text  string

	applied  bool
	prev     caretState
	original string
}

// NewReplaceLine creates a replace-line command.
func NewReplaceLine(index int, text string) *ReplaceLine {
	return &ReplaceLine{index: index, text: text}
}

func (c *ReplaceLine) Kind() Kind { return KindReplaceLine }

func (c *ReplaceLine) Describe() string {
	return fmt.Sprintf("Replace line %d", c.index)
}

func (c *ReplaceLine) execute(ed *editor.Editor) error {
	c.prev = captureCaret(ed)
	buf := ed.Buffer()

	original, err := buf.GetLine(c.index)
	if err != nil {
		return ErrNoOp
	}
	if err := buf.ReplaceLine(c.index, c.text); err != nil {
		return ErrNoOp
	}
	ed.SetCursor(ed.Cursor())
	ed.InvalidateHighlight()
	c.original = original
	c.applied = true
	return nil
}

func (c *ReplaceLine) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	if err := ed.Buffer().ReplaceLine(c.index, c.original); err != nil {
		return err
	}
	ed.InvalidateHighlight()
	c.prev.restore(ed)
	c.applied = false
	return nil
}

// JoinLines joins a line with the one below it, placing the cursor at
// the seam. Undo splits at the joined line's recorded length.
type JoinLines struct {
	index int

	applied   bool
	prev      caretState
	joinedLen int
}

// NewJoinLines creates a join-lines command for index and index+1.
func NewJoinLines(index int) *JoinLines {
	return &JoinLines{index: index}
}

func (c *JoinLines) Kind() Kind { return KindJoinLines }

func (c *JoinLines) Describe() string {
	return fmt.Sprintf("Join line %d with next", c.index)
}

func (c *JoinLines) execute(ed *editor.Editor) error {
	c.prev = captureCaret(ed)
	buf := ed.Buffer()

	if c.index < 0 || c.index+1 >= buf.LineCount() {
		return ErrNoOp
	}
	seam := lineLen(ed, c.index)
	c.joinedLen = lineLen(ed, c.index+1)
	if err := buf.JoinLines(c.index); err != nil {
		return ErrNoOp
	}
	ed.SetCursor(cursor.Pos(c.index, seam))
	ed.InvalidateHighlight()
	c.applied = true
	return nil
}

func (c *JoinLines) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	split := lineLen(ed, c.index) - c.joinedLen
	if split < 0 {
		split = 0
	}
	if err := ed.Buffer().SplitLine(c.index, split); err != nil {
		return err
	}
	ed.InvalidateHighlight()
	c.prev.restore(ed)
	c.applied = false
	return nil
}

// SetContent replaces the whole buffer in one step. It backs loading a
// file and clearing the buffer, so the entire change is a single undo
// unit restoring the previous content verbatim.
type SetContent struct {
	lines []string
	label string

	applied bool
	prev    caretState
	orig    []string
}

// NewSetContent creates a whole-buffer replacement command. The label
// names the operation in history listings.
func NewSetContent(lines []string, label string) *SetContent {
	copied := make([]string, len(lines))
	copy(copied, lines)
	return &SetContent{lines: copied, label: label}
}

func (c *SetContent) Kind() Kind { return KindSetContent }

func (c *SetContent) Describe() string {
	if c.label != "" {
		return c.label
	}
	return "Set buffer content"
}

func (c *SetContent) execute(ed *editor.Editor) error {
	orig := ed.Buffer().Lines()
	next := c.lines
	if len(next) == 0 {
		next = []string{""}
	}
	if slices.Equal(orig, next) {
		return ErrNoOp
	}
	c.prev = captureCaret(ed)
	c.orig = orig
	ed.SetContent(c.lines)
	c.applied = true
	return nil
}

func (c *SetContent) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	ed.SetContent(c.orig)
	c.prev.restore(ed)
	c.applied = false
	return nil
}
