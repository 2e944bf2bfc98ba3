package editor

import (
	"unicode"

	"github.com/dshills/textforge/internal/engine/cursor"
)

// isWordChar reports whether r belongs to a word: letters, digits, and
// underscore.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// NextWordPosition returns the position of the next word boundary after
// the cursor: past the current word run, then past any separators. At
// the end of a line it is the start of the next line; at the end of the
// buffer the cursor position itself.
func (e *Editor) NextWordPosition() cursor.Position {
	line, err := e.buf.GetLine(e.cursor.Line)
	if err != nil {
		return e.cursor
	}
	runes := []rune(line)
	pos := e.cursor.Col

	if pos >= len(runes) && e.cursor.Line < e.buf.LineCount()-1 {
		return cursor.Position{Line: e.cursor.Line + 1, Col: 0}
	}
	for pos < len(runes) && isWordChar(runes[pos]) {
		pos++
	}
	for pos < len(runes) && !isWordChar(runes[pos]) {
		pos++
	}
	return cursor.Position{Line: e.cursor.Line, Col: pos}
}

// PrevWordPosition returns the start of the word run before the cursor.
// At column 0 it is the end of the previous line; at [0, 0] the cursor
// position itself.
func (e *Editor) PrevWordPosition() cursor.Position {
	if e.cursor.Col == 0 {
		if e.cursor.Line > 0 {
			return cursor.Position{Line: e.cursor.Line - 1, Col: e.lineLen(e.cursor.Line - 1)}
		}
		return e.cursor
	}
	line, err := e.buf.GetLine(e.cursor.Line)
	if err != nil {
		return e.cursor
	}
	runes := []rune(line)
	pos := e.cursor.Col - 1

	for pos > 0 && !isWordChar(runes[pos]) {
		pos--
	}
	for pos > 0 && isWordChar(runes[pos-1]) {
		pos--
	}
	return cursor.Position{Line: e.cursor.Line, Col: pos}
}

// MoveNextWord moves the cursor to the next word boundary.
func (e *Editor) MoveNextWord() {
	e.cursor = e.NextWordPosition()
	e.clampCursor()
}

// MovePrevWord moves the cursor to the previous word start.
func (e *Editor) MovePrevWord() {
	e.cursor = e.PrevWordPosition()
	e.clampCursor()
}

// WordDeleteRange returns the range a word deletion at the cursor would
// remove: from the cursor to the next word boundary, or the line break
// alone when the cursor sits at the end of a line. The second result is
// false when there is nothing to delete.
func (e *Editor) WordDeleteRange() (cursor.Selection, bool) {
	if e.cursor.Col >= e.lineLen(e.cursor.Line) {
		if e.cursor.Line >= e.buf.LineCount()-1 {
			return cursor.Selection{}, false
		}
		end := cursor.Position{Line: e.cursor.Line + 1, Col: 0}
		return cursor.Selection{Start: e.cursor, End: end}, true
	}
	end := e.NextWordPosition()
	if end == e.cursor {
		return cursor.Selection{}, false
	}
	return cursor.Selection{Start: e.cursor, End: end}, true
}

// SelectWord selects the word run under the cursor and moves the cursor
// to its end. It reports false without changing anything when the
// cursor is at the end of a line or not on a word character.
func (e *Editor) SelectWord() bool {
	line, err := e.buf.GetLine(e.cursor.Line)
	if err != nil {
		return false
	}
	runes := []rune(line)
	col := e.cursor.Col
	if col >= len(runes) || !isWordChar(runes[col]) {
		return false
	}

	start := col
	for start > 0 && isWordChar(runes[start-1]) {
		start--
	}
	end := col
	for end < len(runes) && isWordChar(runes[end]) {
		end++
	}

	e.selStart = cursor.Position{Line: e.cursor.Line, Col: start}
	e.selEnd = cursor.Position{Line: e.cursor.Line, Col: end}
	e.selecting = true
	e.cursor = e.selEnd
	return true
}
