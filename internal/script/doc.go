// Package script embeds a Lua interpreter for editor macros. Scripts
// drive the editor through a single `editor` module whose functions
// route through the same verbs as the interactive commands, so every
// mutation a script makes participates in undo history.
//
// The interpreter opens only the safe standard libraries: base, table,
// string, and math. There is no io, os, debug, or package access. Each
// run is bounded by an execution timeout so a runaway loop cannot hang
// the editor.
package script
