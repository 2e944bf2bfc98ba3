package history

import (
	"fmt"

	"github.com/dshills/textforge/internal/engine/cursor"
	"github.com/dshills/textforge/internal/engine/editor"
)

// ReplaceSelection deletes the text in a range and inserts replacement
// text, which may span lines. The cursor ends after the inserted text.
// Undo removes the inserted span, re-inserts the original text, and
// selects it again. An empty range is a safe no-op.
type ReplaceSelection struct {
	sel     cursor.Selection
	newText string

	applied  bool
	original string
}

// NewReplaceSelection creates a range replacement command. Deleting a
// range is expressed with an empty newText.
func NewReplaceSelection(sel cursor.Selection, newText string) *ReplaceSelection {
	return &ReplaceSelection{sel: sel.Normalize(), newText: newText}
}

func (c *ReplaceSelection) Kind() Kind { return KindReplaceSelection }

func (c *ReplaceSelection) Describe() string {
	if c.newText == "" {
		return "Delete selection"
	}
	return fmt.Sprintf("Replace selection with: %s", c.newText)
}

func (c *ReplaceSelection) execute(ed *editor.Editor) error {
	if c.sel.IsEmpty() {
		return ErrNoOp
	}
	original, err := ed.TextInRange(c.sel)
	if err != nil {
		return ErrNoOp
	}
	if _, err := ed.DeleteRange(c.sel); err != nil {
		return ErrNoOp
	}
	end, err := ed.InsertTextAt(c.sel.Start, c.newText)
	if err != nil {
		return err
	}
	ed.ClearSelection()
	ed.SetCursor(end)
	c.original = original
	c.applied = true
	return nil
}

func (c *ReplaceSelection) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	insEnd := endOfText(c.sel.Start, c.newText)
	if _, err := ed.DeleteRange(cursor.Selection{Start: c.sel.Start, End: insEnd}); err != nil {
		return err
	}
	end, err := ed.InsertTextAt(c.sel.Start, c.original)
	if err != nil {
		return err
	}
	ed.SetSelection(cursor.Selection{Start: c.sel.Start, End: end})
	ed.SetCursor(end)
	c.applied = false
	return nil
}

// Copy stores the selected text on the clipboard. The buffer and
// selection stay untouched; undo restores the prior clipboard value.
type Copy struct {
	applied  bool
	prevClip string
}

// NewCopy creates a copy command.
func NewCopy() *Copy {
	return &Copy{}
}

func (c *Copy) Kind() Kind       { return KindCopy }
func (c *Copy) Describe() string { return "Copy selected text" }

func (c *Copy) execute(ed *editor.Editor) error {
	if !ed.HasSelection() {
		return ErrNoOp
	}
	c.prevClip = ed.Clipboard()
	if !ed.CopySelection() {
		return ErrNoOp
	}
	c.applied = true
	return nil
}

func (c *Copy) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	ed.SetClipboard(c.prevClip)
	c.applied = false
	return nil
}

// Cut copies the selected text to the clipboard and deletes it. Undo
// restores the clipboard, the deleted text, and the selection over it.
type Cut struct {
	applied  bool
	prev     caretState
	prevClip string
	start    cursor.Position
	text     string
}

// NewCut creates a cut command.
func NewCut() *Cut {
	return &Cut{}
}

func (c *Cut) Kind() Kind       { return KindCut }
func (c *Cut) Describe() string { return "Cut selected text" }

func (c *Cut) execute(ed *editor.Editor) error {
	if !ed.HasSelection() {
		return ErrNoOp
	}
	prev := captureCaret(ed)
	sel := ed.Selection()
	text, ok := ed.SelectedText()
	if !ok {
		return ErrNoOp
	}
	c.prevClip = ed.Clipboard()
	ed.SetClipboard(text)
	if _, err := ed.DeleteRange(sel); err != nil {
		ed.SetClipboard(c.prevClip)
		return ErrNoOp
	}
	ed.ClearSelection()
	c.prev = prev
	c.start = sel.Start
	c.text = text
	c.applied = true
	return nil
}

func (c *Cut) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	ed.SetClipboard(c.prevClip)
	if _, err := ed.InsertTextAt(c.start, c.text); err != nil {
		return err
	}
	c.prev.restore(ed)
	c.applied = false
	return nil
}

// Paste inserts the clipboard content at the cursor, line breaks
// included, leaving the cursor after the inserted text. An empty
// clipboard is a safe no-op. Undo deletes the inserted span.
type Paste struct {
	applied bool
	prev    caretState
	at      cursor.Position
	text    string
}

// NewPaste creates a paste command.
func NewPaste() *Paste {
	return &Paste{}
}

func (c *Paste) Kind() Kind       { return KindPaste }
func (c *Paste) Describe() string { return "Paste text from clipboard" }

func (c *Paste) execute(ed *editor.Editor) error {
	text := ed.Clipboard()
	if text == "" {
		return ErrNoOp
	}
	prev := captureCaret(ed)
	at := ed.Cursor()
	end, err := ed.InsertTextAt(at, text)
	if err != nil {
		return ErrNoOp
	}
	ed.SetCursor(end)
	c.prev = prev
	c.at = at
	c.text = text
	c.applied = true
	return nil
}

func (c *Paste) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	end := endOfText(c.at, c.text)
	if _, err := ed.DeleteRange(cursor.Selection{Start: c.at, End: end}); err != nil {
		return err
	}
	c.prev.restore(ed)
	c.applied = false
	return nil
}
