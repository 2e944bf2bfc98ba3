package buffer

import (
	"errors"
	"strings"
)

// Errors returned by buffer operations.
var (
	ErrOutOfRange   = errors.New("index out of range")
	ErrInvalidRange = errors.New("invalid range")
)

// Buffer is an ordered sequence of lines. Lines never contain newline
// characters; line breaks exist only between elements.
type Buffer struct {
	lines      []string
	lineEnding LineEnding
}

// New creates a buffer. Without options the buffer holds zero lines.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromString creates a buffer from text, splitting on line breaks.
// The line ending style is detected from the content and recorded for
// later serialization. An empty string yields a single empty line.
func NewFromString(text string, opts ...Option) *Buffer {
	b := New(opts...)
	b.lineEnding = DetectLineEnding(text)
	b.lines = splitLines(text)
	return b
}

// NewFromLines creates a buffer from a copy of the given lines.
func NewFromLines(lines []string, opts ...Option) *Buffer {
	b := New(opts...)
	b.lines = make([]string, len(lines))
	copy(b.lines, lines)
	return b
}

// splitLines converts raw text to lines, normalizing CRLF and CR breaks.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Read Operations

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// IsEmpty reports whether the buffer holds no content: either zero lines
// or exactly one empty line.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0 || (len(b.lines) == 1 && b.lines[0] == "")
}

// GetLine returns the line at index i.
func (b *Buffer) GetLine(i int) (string, error) {
	if i < 0 || i >= len(b.lines) {
		return "", ErrOutOfRange
	}
	return b.lines[i], nil
}

// LineLength returns the rune length of the line at index i.
func (b *Buffer) LineLength(i int) (int, error) {
	line, err := b.GetLine(i)
	if err != nil {
		return 0, err
	}
	return len([]rune(line)), nil
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text returns the buffer content joined with "\n". Serialization with
// the recorded line ending style belongs to the file layer.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// GetLineSegment returns the runes of line i in [start, end). The end
// column is clamped to the line length; the start column must be within
// [0, length] and not exceed end.
func (b *Buffer) GetLineSegment(i, start, end int) (string, error) {
	line, err := b.GetLine(i)
	if err != nil {
		return "", err
	}
	runes := []rune(line)
	if start < 0 || start > len(runes) {
		return "", ErrOutOfRange
	}
	if end < start {
		return "", ErrInvalidRange
	}
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end]), nil
}

// LineEnding returns the recorded line ending style.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// SetLineEnding records the line ending style used when serializing.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.lineEnding = le
}

// Line Operations

// AddLine appends a line at the end of the buffer.
func (b *Buffer) AddLine(text string) {
	b.lines = append(b.lines, text)
}

// InsertLine inserts a line at index i, shifting later lines down.
// The index may equal LineCount to append.
func (b *Buffer) InsertLine(i int, text string) error {
	if i < 0 || i > len(b.lines) {
		return ErrOutOfRange
	}
	b.lines = append(b.lines, "")
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = text
	return nil
}

// DeleteLine removes the line at index i. Deleting the sole line of the
// buffer replaces it with an empty line so the line count stays at one.
func (b *Buffer) DeleteLine(i int) error {
	if i < 0 || i >= len(b.lines) {
		return ErrOutOfRange
	}
	if len(b.lines) == 1 {
		b.lines[0] = ""
		return nil
	}
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	return nil
}

// ReplaceLine replaces the content of the line at index i.
func (b *Buffer) ReplaceLine(i int, text string) error {
	if i < 0 || i >= len(b.lines) {
		return ErrOutOfRange
	}
	b.lines[i] = text
	return nil
}

// SetLines replaces the entire content with a copy of lines. Empty input
// yields a single empty line.
func (b *Buffer) SetLines(lines []string) {
	if len(lines) == 0 {
		b.lines = []string{""}
		return
	}
	b.lines = make([]string, len(lines))
	copy(b.lines, lines)
}

// Clear removes all lines. With addEmptyLine the buffer is left holding
// one empty line instead of zero lines.
func (b *Buffer) Clear(addEmptyLine bool) {
	if addEmptyLine {
		b.lines = []string{""}
		return
	}
	b.lines = nil
}

// Character Operations

// InsertChar inserts a single rune at (line, col).
func (b *Buffer) InsertChar(line, col int, ch rune) error {
	_, err := b.InsertString(line, col, string(ch))
	return err
}

// InsertString inserts text at (line, col) and returns the position
// immediately after the inserted content. Text containing newlines is
// split across new lines, as if by repeated SplitLine and insert.
func (b *Buffer) InsertString(line, col int, text string) (Position, error) {
	if line < 0 || line >= len(b.lines) {
		return Position{}, ErrOutOfRange
	}
	runes := []rune(b.lines[line])
	if col < 0 || col > len(runes) {
		return Position{}, ErrOutOfRange
	}

	before := string(runes[:col])
	after := string(runes[col:])

	if !strings.Contains(text, "\n") {
		b.lines[line] = before + text + after
		return Position{Line: line, Col: col + len([]rune(text))}, nil
	}

	segs := strings.Split(text, "\n")
	b.lines[line] = before + segs[0]

	tail := make([]string, len(segs)-1)
	copy(tail, segs[1:])
	last := len(tail) - 1
	endCol := len([]rune(tail[last]))
	tail[last] += after

	rest := make([]string, len(b.lines[line+1:]))
	copy(rest, b.lines[line+1:])
	b.lines = append(b.lines[:line+1], append(tail, rest...)...)

	return Position{Line: line + last + 1, Col: endCol}, nil
}

// DeleteChar deletes the rune before (line, col), backspace semantics.
// At column zero of a line other than the first, the line is joined with
// the previous one. Deleting before the start of the buffer is out of
// range.
func (b *Buffer) DeleteChar(line, col int) error {
	if line < 0 || line >= len(b.lines) {
		return ErrOutOfRange
	}
	runes := []rune(b.lines[line])
	if col < 0 || col > len(runes) {
		return ErrOutOfRange
	}
	if col == 0 {
		if line == 0 {
			return ErrOutOfRange
		}
		return b.JoinLines(line - 1)
	}
	b.lines[line] = string(runes[:col-1]) + string(runes[col:])
	return nil
}

// DeleteCharForward deletes the rune at (line, col), delete-key
// semantics. At the end of a line other than the last, the next line is
// joined onto this one. Deleting at the end of the buffer is out of
// range.
func (b *Buffer) DeleteCharForward(line, col int) error {
	if line < 0 || line >= len(b.lines) {
		return ErrOutOfRange
	}
	runes := []rune(b.lines[line])
	if col < 0 || col > len(runes) {
		return ErrOutOfRange
	}
	if col == len(runes) {
		if line == len(b.lines)-1 {
			return ErrOutOfRange
		}
		return b.JoinLines(line)
	}
	b.lines[line] = string(runes[:col]) + string(runes[col+1:])
	return nil
}

// SplitLine splits the line at (line, col): text before the column stays,
// text from the column on becomes a new line at line+1.
func (b *Buffer) SplitLine(line, col int) error {
	if line < 0 || line >= len(b.lines) {
		return ErrOutOfRange
	}
	runes := []rune(b.lines[line])
	if col < 0 || col > len(runes) {
		return ErrOutOfRange
	}
	before := string(runes[:col])
	after := string(runes[col:])
	b.lines[line] = before
	return b.InsertLine(line+1, after)
}

// JoinLines concatenates line and line+1 with no separator, removing
// line+1.
func (b *Buffer) JoinLines(line int) error {
	if line < 0 || line >= len(b.lines)-1 {
		return ErrOutOfRange
	}
	b.lines[line] += b.lines[line+1]
	b.lines = append(b.lines[:line+1], b.lines[line+2:]...)
	return nil
}
