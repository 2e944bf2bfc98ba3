// Package buffer provides a line-oriented text buffer, the storage layer
// of the editor engine. A Buffer owns an ordered sequence of lines and
// exposes primitive, cursor-agnostic mutation operations.
//
// The buffer package provides:
//
//   - Index-addressed line operations (add, insert, delete, replace)
//   - Character operations with rune-based columns (insert, delete,
//     split, join)
//   - Multi-line string insertion that splits on embedded newlines
//   - Line ending detection and preservation for round-tripping files
//   - Content statistics (characters, grapheme clusters, words)
//
// Basic usage:
//
//	buf := buffer.NewFromString("Hello\nWorld")
//	buf.InsertString(0, 5, ", Go")   // "Hello, Go" / "World"
//	buf.JoinLines(0)                 // "Hello, GoWorld"
//
// Coordinates:
//
// All columns are rune indices, not byte offsets. A column equal to the
// line's rune length addresses the end of the line and is valid for
// insertion and splitting.
//
// Bounds violations return ErrOutOfRange. A Buffer may
// transiently hold zero lines; callers that require the one-line minimum
// (the editor does) are responsible for healing it.
//
// A Buffer is owned by a single goroutine. Instances are independent and
// share no state, so distinct buffers may be used from distinct
// goroutines without locking.
package buffer
