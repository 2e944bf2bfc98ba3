package editor

import "github.com/dshills/textforge/internal/engine/cursor"

// Movement operations. All of them leave the cursor on a valid
// position; moves past a boundary are absorbed silently.

// MoveUp moves the cursor one line up, clamping the column to the new
// line's length. At the first line it does nothing.
func (e *Editor) MoveUp() {
	if e.cursor.Line == 0 {
		return
	}
	e.cursor.Line--
	e.clampCol()
}

// MoveDown moves the cursor one line down, clamping the column to the
// new line's length. At the last line it does nothing.
func (e *Editor) MoveDown() {
	if e.cursor.Line >= e.buf.LineCount()-1 {
		return
	}
	e.cursor.Line++
	e.clampCol()
}

// MoveLeft moves the cursor one column left. At the start of a line it
// wraps to the end of the previous line; at [0, 0] it does nothing.
func (e *Editor) MoveLeft() {
	if e.cursor.Col > 0 {
		e.cursor.Col--
		return
	}
	if e.cursor.Line > 0 {
		e.cursor.Line--
		e.cursor.Col = e.lineLen(e.cursor.Line)
	}
}

// MoveRight moves the cursor one column right. At the end of a line it
// wraps to the start of the next line; at the end of the buffer it does
// nothing.
func (e *Editor) MoveRight() {
	if e.cursor.Col < e.lineLen(e.cursor.Line) {
		e.cursor.Col++
		return
	}
	if e.cursor.Line < e.buf.LineCount()-1 {
		e.cursor.Line++
		e.cursor.Col = 0
	}
}

// MoveToLineStart moves the cursor to column 0 of the current line.
func (e *Editor) MoveToLineStart() {
	e.cursor.Col = 0
}

// MoveToLineEnd moves the cursor past the last character of the current
// line.
func (e *Editor) MoveToLineEnd() {
	e.cursor.Col = e.lineLen(e.cursor.Line)
}

// MoveToStart moves the cursor to the beginning of the buffer.
func (e *Editor) MoveToStart() {
	e.cursor = cursor.Position{}
}

// MoveToEnd moves the cursor past the last character of the last line.
func (e *Editor) MoveToEnd() {
	e.cursor.Line = e.buf.LineCount() - 1
	e.cursor.Col = e.lineLen(e.cursor.Line)
}

// clampCol caps the column at the current line's length after a
// vertical move.
func (e *Editor) clampCol() {
	if max := e.lineLen(e.cursor.Line); e.cursor.Col > max {
		e.cursor.Col = max
	}
}
