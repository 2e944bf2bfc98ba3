package editor

import (
	"github.com/google/uuid"

	"github.com/dshills/textforge/internal/engine/buffer"
	"github.com/dshills/textforge/internal/engine/cursor"
)

// Invalidator receives a signal whenever the buffer content changes so
// that derived caches (syntax highlighting spans, in practice) can be
// discarded. Implementations must tolerate bursts of calls.
type Invalidator interface {
	InvalidateCache()
}

// Editor combines a text buffer with cursor, selection, and clipboard
// state and exposes the primitive operations the command layer and the
// interactive verbs are built from.
type Editor struct {
	id  string
	buf *buffer.Buffer

	cursor    cursor.Position
	selStart  cursor.Position
	selEnd    cursor.Position
	selecting bool

	clipboard string

	invalidator Invalidator
}

// New creates an Editor with a single empty line unless options provide
// a buffer. The cursor starts at [0, 0].
func New(opts ...Option) *Editor {
	e := &Editor{
		id:  uuid.New().String(),
		buf: buffer.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.clampCursor()
	return e
}

// ID returns the editor's unique identifier.
func (e *Editor) ID() string {
	return e.id
}

// Buffer returns the underlying text buffer.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// Cursor returns the current cursor position.
func (e *Editor) Cursor() cursor.Position {
	return e.cursor
}

// SetCursor moves the cursor to pos, clamped to the nearest valid
// position in the buffer.
func (e *Editor) SetCursor(pos cursor.Position) {
	e.cursor = pos
	e.clampCursor()
}

// SetInvalidator attaches the cache invalidation target. A nil value
// detaches it.
func (e *Editor) SetInvalidator(inv Invalidator) {
	e.invalidator = inv
}

// InvalidateHighlight signals the attached invalidator, if any. It is
// called automatically after every buffer mutation performed through
// the Editor.
func (e *Editor) InvalidateHighlight() {
	if e.invalidator != nil {
		e.invalidator.InvalidateCache()
	}
}

// clampCursor heals a zero-line buffer and forces the cursor back into
// the valid range: line within the buffer, column at most the line
// length. Every mutating operation ends with a clamp.
func (e *Editor) clampCursor() {
	if e.buf.LineCount() == 0 {
		e.buf.AddLine("")
	}
	if e.cursor.Line < 0 {
		e.cursor.Line = 0
	}
	if e.cursor.Line >= e.buf.LineCount() {
		e.cursor.Line = e.buf.LineCount() - 1
	}
	if e.cursor.Col < 0 {
		e.cursor.Col = 0
	}
	if max := e.lineLen(e.cursor.Line); e.cursor.Col > max {
		e.cursor.Col = max
	}
}

// lineLen returns the rune length of line i, or 0 for an invalid index.
func (e *Editor) lineLen(i int) int {
	n, err := e.buf.LineLength(i)
	if err != nil {
		return 0
	}
	return n
}

// clampPos returns pos clamped to a valid buffer position. Ranges held
// across direct buffer mutations can go stale; clamping absorbs them
// the same way movement absorbs boundary moves.
func (e *Editor) clampPos(pos cursor.Position) cursor.Position {
	if pos.Line < 0 {
		return cursor.Position{}
	}
	if last := e.buf.LineCount() - 1; pos.Line > last {
		pos.Line = last
	}
	if pos.Col < 0 {
		pos.Col = 0
	} else if max := e.lineLen(pos.Line); pos.Col > max {
		pos.Col = max
	}
	return pos
}

// clampRange normalizes sel and clamps both endpoints to valid buffer
// positions. Clamping is monotone, so the result stays ordered.
func (e *Editor) clampRange(sel cursor.Selection) cursor.Selection {
	sel = sel.Normalize()
	return cursor.Selection{Start: e.clampPos(sel.Start), End: e.clampPos(sel.End)}
}

// Edit Primitives
//
// These mutate the buffer directly with no undo tracking and form the
// substrate the command layer snapshots around.

// InsertTextAt inserts text at pos and returns the position immediately
// after the inserted text. Embedded newlines split lines. The cursor is
// not moved, only re-clamped.
func (e *Editor) InsertTextAt(pos cursor.Position, text string) (cursor.Position, error) {
	end, err := e.buf.InsertString(pos.Line, pos.Col, text)
	if err != nil {
		return pos, err
	}
	e.clampCursor()
	e.InvalidateHighlight()
	return end, nil
}

// TextInRange returns the text covered by the half-open range sel
// without modifying the buffer. Endpoints are clamped to the buffer;
// line breaks inside the range are represented as "\n".
func (e *Editor) TextInRange(sel cursor.Selection) (string, error) {
	sel = e.clampRange(sel)
	start, end := sel.Start, sel.End

	if start.Line == end.Line {
		return e.buf.GetLineSegment(start.Line, start.Col, end.Col)
	}

	first, err := e.buf.GetLineSegment(start.Line, start.Col, e.lineLen(start.Line))
	if err != nil {
		return "", err
	}
	var b []byte
	b = append(b, first...)
	for line := start.Line + 1; line < end.Line; line++ {
		s, err := e.buf.GetLine(line)
		if err != nil {
			return "", err
		}
		b = append(b, '\n')
		b = append(b, s...)
	}
	last, err := e.buf.GetLineSegment(end.Line, 0, end.Col)
	if err != nil {
		return "", err
	}
	b = append(b, '\n')
	b = append(b, last...)
	return string(b), nil
}

// DeleteRange removes the text covered by the half-open range sel and
// returns it. Endpoints are clamped to the buffer; the cursor moves to
// the start of the range. Deleting across lines joins the surviving
// head and tail of the boundary lines.
func (e *Editor) DeleteRange(sel cursor.Selection) (string, error) {
	sel = e.clampRange(sel)
	removed, err := e.TextInRange(sel)
	if err != nil {
		return "", err
	}
	start, end := sel.Start, sel.End

	if start.Line == end.Line {
		line, err := e.buf.GetLine(start.Line)
		if err != nil {
			return "", err
		}
		runes := []rune(line)
		replaced := string(runes[:start.Col]) + string(runes[end.Col:])
		if err := e.buf.ReplaceLine(start.Line, replaced); err != nil {
			return "", err
		}
	} else {
		head, err := e.buf.GetLineSegment(start.Line, 0, start.Col)
		if err != nil {
			return "", err
		}
		lastLine, err := e.buf.GetLine(end.Line)
		if err != nil {
			return "", err
		}
		tail := string([]rune(lastLine)[end.Col:])
		if err := e.buf.ReplaceLine(start.Line, head+tail); err != nil {
			return "", err
		}
		// Delete trailing lines last-to-first so indices stay stable.
		for line := end.Line; line > start.Line; line-- {
			if err := e.buf.DeleteLine(line); err != nil {
				return "", err
			}
		}
	}

	e.cursor = start
	e.clampCursor()
	e.InvalidateHighlight()
	return removed, nil
}

// SetContent replaces the entire buffer with lines, resets the cursor
// to [0, 0], and clears any selection. An empty slice produces a single
// empty line.
func (e *Editor) SetContent(lines []string) {
	e.buf.SetLines(lines)
	e.cursor = cursor.Position{}
	e.ClearSelection()
	e.clampCursor()
	e.InvalidateHighlight()
}
