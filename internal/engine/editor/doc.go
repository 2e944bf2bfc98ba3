// Package editor provides the Editor, the stateful center of the engine.
// An Editor owns one text buffer, the cursor position, an optional
// selection, and the clipboard, and exposes movement, selection,
// clipboard, and primitive edit operations on top of the buffer.
//
// The Editor enforces the engine's core invariants after every
// mutation: the buffer always holds at least one line as observed here
// (a zero-line buffer is healed immediately), the cursor line is always
// a valid index, the cursor column never exceeds the line's length, and
// selection endpoints are always in document order.
//
// The Editor performs no undo tracking itself. Reversible editing is
// built on top of these primitives by the history package; the
// operations here mutate directly.
//
// After any mutation the Editor signals its highlight invalidator, if
// one is attached, so a highlighting cache never serves stale spans.
//
// An Editor instance belongs to a single goroutine. Independent
// instances share no state and may be used concurrently.
package editor
