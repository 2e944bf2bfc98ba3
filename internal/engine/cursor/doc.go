// Package cursor provides the position and selection value types used by
// the editor engine.
//
// Position addresses a (line, column) coordinate; columns are rune
// indices and may equal the line length (one past the last character).
// Selection is an ordered pair of positions; a selection whose endpoints
// are equal represents no selection.
//
// Both types are immutable values. Methods return new values rather than
// mutating the receiver.
package cursor
