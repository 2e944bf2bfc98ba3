package history

import (
	"errors"

	"github.com/dshills/textforge/internal/engine/editor"
)

// DefaultMaxEntries caps the undo stack depth unless configured.
const DefaultMaxEntries = 1000

// Manager owns the undo and redo stacks and is the only entry point for
// running commands. Only commands that actually applied are recorded;
// a fresh successful execution clears the redo stack.
type Manager struct {
	undoStack  []Command
	redoStack  []Command
	maxEntries int

	tx []*Compound
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithMaxEntries sets the undo stack depth limit. Non-positive values
// keep the default.
func WithMaxEntries(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.maxEntries = n
		}
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		maxEntries: DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetMaxEntries adjusts the undo stack depth limit. Non-positive values
// are ignored. Shrinking below the current depth drops the oldest
// entries immediately.
func (m *Manager) SetMaxEntries(n int) {
	if n <= 0 {
		return
	}
	m.maxEntries = n
	if len(m.undoStack) > m.maxEntries {
		kept := copy(m.undoStack, m.undoStack[len(m.undoStack)-m.maxEntries:])
		m.undoStack = m.undoStack[:kept]
	}
}

// Execute runs cmd against ed. Commands that report ErrNoOp leave every
// stack untouched and pass the sentinel through. Inside a transaction
// the applied command joins the open compound instead of the undo
// stack.
func (m *Manager) Execute(ed *editor.Editor, cmd Command) error {
	if cmd == nil {
		return ErrNoOp
	}
	if err := cmd.execute(ed); err != nil {
		return err
	}
	if len(m.tx) > 0 {
		m.tx[len(m.tx)-1].Add(cmd)
		return nil
	}
	m.push(cmd)
	m.redoStack = m.redoStack[:0]
	return nil
}

// Undo reverses the most recent command and moves it to the redo stack.
func (m *Manager) Undo(ed *editor.Editor) error {
	if len(m.tx) > 0 {
		return ErrTransactionActive
	}
	if len(m.undoStack) == 0 {
		return ErrNothingToUndo
	}
	cmd := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	if err := cmd.undo(ed); err != nil {
		m.undoStack = append(m.undoStack, cmd)
		return err
	}
	m.redoStack = append(m.redoStack, cmd)
	return nil
}

// Redo re-applies the most recently undone command and moves it back to
// the undo stack.
func (m *Manager) Redo(ed *editor.Editor) error {
	if len(m.tx) > 0 {
		return ErrTransactionActive
	}
	if len(m.redoStack) == 0 {
		return ErrNothingToRedo
	}
	cmd := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	if err := cmd.execute(ed); err != nil && !errors.Is(err, ErrNoOp) {
		m.redoStack = append(m.redoStack, cmd)
		return err
	}
	m.undoStack = append(m.undoStack, cmd)
	return nil
}

// CanUndo reports whether the undo stack is non-empty.
func (m *Manager) CanUndo() bool {
	return len(m.undoStack) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (m *Manager) CanRedo() bool {
	return len(m.redoStack) > 0
}

// UndoDepth returns the number of undoable entries.
func (m *Manager) UndoDepth() int {
	return len(m.undoStack)
}

// RedoDepth returns the number of redoable entries.
func (m *Manager) RedoDepth() int {
	return len(m.redoStack)
}

// Clear drops both stacks. Any open transaction is abandoned without
// unwinding.
func (m *Manager) Clear() {
	m.undoStack = nil
	m.redoStack = nil
	m.tx = nil
}

// UndoList returns descriptions of the undo stack entries, most recent
// first. A non-positive max returns all of them.
func (m *Manager) UndoList(max int) []string {
	n := len(m.undoStack)
	if max > 0 && max < n {
		n = max
	}
	out := make([]string, 0, n)
	for i := len(m.undoStack) - 1; i >= len(m.undoStack)-n; i-- {
		out = append(out, m.undoStack[i].Describe())
	}
	return out
}

// Begin opens a transaction. Commands executed until Commit accumulate
// into a single compound undo unit. Transactions nest; an inner commit
// folds its compound into the enclosing transaction.
func (m *Manager) Begin(name string) {
	m.tx = append(m.tx, NewCompound(name))
}

// Commit closes the innermost transaction. An empty transaction is
// discarded without touching the stacks.
func (m *Manager) Commit() error {
	if len(m.tx) == 0 {
		return ErrNoTransaction
	}
	frame := m.tx[len(m.tx)-1]
	m.tx = m.tx[:len(m.tx)-1]
	if frame.Empty() {
		return nil
	}
	frame.applied = true
	if len(m.tx) > 0 {
		m.tx[len(m.tx)-1].Add(frame)
		return nil
	}
	m.push(frame)
	m.redoStack = m.redoStack[:0]
	return nil
}

// Cancel closes the innermost transaction and unwinds its already
// applied commands in reverse order.
func (m *Manager) Cancel(ed *editor.Editor) error {
	if len(m.tx) == 0 {
		return ErrNoTransaction
	}
	frame := m.tx[len(m.tx)-1]
	m.tx = m.tx[:len(m.tx)-1]
	frame.applied = true
	return frame.undo(ed)
}

// InTransaction reports whether a transaction is open.
func (m *Manager) InTransaction() bool {
	return len(m.tx) > 0
}

// TransactionDepth returns the nesting depth of open transactions.
func (m *Manager) TransactionDepth() int {
	return len(m.tx)
}

// push appends to the undo stack, dropping the oldest entry past the
// depth limit.
func (m *Manager) push(cmd Command) {
	m.undoStack = append(m.undoStack, cmd)
	if len(m.undoStack) > m.maxEntries {
		n := copy(m.undoStack, m.undoStack[len(m.undoStack)-m.maxEntries:])
		m.undoStack = m.undoStack[:n]
	}
}
