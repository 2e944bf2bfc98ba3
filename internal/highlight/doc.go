// Package highlight provides syntax highlighting for buffer lines.
//
// A Highlighter turns one line of text into category spans. The
// chroma-backed implementation covers the bundled languages; the
// Registry maps file extensions to highlighters and is the only piece
// of shared state in the system, guarded by a read-mostly lock. A
// Provider wraps a Highlighter with a per-editor line cache and acts
// as the editor's invalidation hook.
package highlight
