// Package history implements reversible editing: a closed set of
// command variants, compound grouping, and the Manager that owns the
// undo and redo stacks.
//
// Every command snapshots the state it needs before mutating and
// restores it exactly on undo: buffer content, cursor, selection, and
// for clipboard commands the clipboard value. A command that cannot
// apply (out-of-range index, empty selection, no match, empty
// clipboard) reports ErrNoOp and leaves all state untouched; undoing a
// command that never applied is always safe and does nothing.
//
// The command set is closed: variants implement unexported execute and
// undo methods, so new commands cannot be defined outside this package.
// All execution flows through a Manager, which pushes only successfully
// applied commands, clears the redo stack on fresh execution, and folds
// commands executed inside a transaction into a single compound undo
// unit.
package history
