package editor

import "github.com/dshills/textforge/internal/engine/cursor"

// Selection operations. A selection is anchored with StartSelection,
// extended with EndSelection after moving the cursor, and covers the
// half-open range between its normalized endpoints.

// StartSelection anchors a new selection at the cursor. Both endpoints
// start out equal, so the selection is empty until extended.
func (e *Editor) StartSelection() {
	e.selStart = e.cursor
	e.selEnd = e.cursor
	e.selecting = true
}

// EndSelection sets the selection end to the cursor. If the end comes
// before the anchor the endpoints are swapped so the selection always
// runs forward.
func (e *Editor) EndSelection() {
	e.selEnd = e.cursor
	if e.selEnd.Before(e.selStart) {
		e.selStart, e.selEnd = e.selEnd, e.selStart
	}
}

// SetSelection activates sel directly, normalized. An empty range
// clears the selection instead.
func (e *Editor) SetSelection(sel cursor.Selection) {
	sel = sel.Normalize()
	if sel.IsEmpty() {
		e.ClearSelection()
		return
	}
	e.selStart = sel.Start
	e.selEnd = sel.End
	e.selecting = true
}

// ClearSelection deactivates the selection.
func (e *Editor) ClearSelection() {
	e.selecting = false
	e.selStart = cursor.Position{}
	e.selEnd = cursor.Position{}
}

// HasSelection reports whether an active, non-empty selection exists.
func (e *Editor) HasSelection() bool {
	return e.selecting && e.selStart != e.selEnd
}

// Selection returns the current selection range. It is the zero range
// when no selection is active.
func (e *Editor) Selection() cursor.Selection {
	if !e.HasSelection() {
		return cursor.Selection{}
	}
	return cursor.Selection{Start: e.selStart, End: e.selEnd}
}

// SelectedText returns the text covered by the active selection. The
// second result is false when no selection is active.
func (e *Editor) SelectedText() (string, bool) {
	if !e.HasSelection() {
		return "", false
	}
	text, err := e.TextInRange(e.Selection())
	if err != nil {
		return "", false
	}
	return text, true
}

// DeleteSelectedText removes the selected text, moves the cursor to the
// selection start, and clears the selection. It reports whether a
// selection was present to delete.
func (e *Editor) DeleteSelectedText() bool {
	if !e.HasSelection() {
		return false
	}
	if _, err := e.DeleteRange(e.Selection()); err != nil {
		return false
	}
	e.ClearSelection()
	return true
}
