package script

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textforge/internal/engine/buffer"
	"github.com/dshills/textforge/internal/engine/history"
)

// Host is the editing surface scripts drive. The app session implements
// it; every mutating method goes through the command layer so script
// edits are undoable like interactive ones.
type Host interface {
	Lines() []string
	Line(i int) (string, error)
	LineCount() int
	Text() string
	Cursor() buffer.Position
	SetCursor(line, col int)
	TypeText(text string) error
	Newline() error
	Backspace() error
	DeleteForward() error
	AddLine(text string) error
	DeleteLine(i int) error
	ReplaceLine(i int, text string) error
	SelectRange(startLine, startCol, endLine, endCol int) error
	SelectionText() (string, bool)
	Cut() error
	Copy() error
	Paste() error
	Search(term string) error
	ReplaceNext(term, repl string) error
	ReplaceAll(term, repl string) (int, error)
	Undo() error
	Redo() error
	Begin(name string)
	Commit() error
	Rollback() error
	Status() string
}

// editorModule exposes Host to Lua as the global `editor` table. All
// line and column indices are zero-based, matching the editor's own
// coordinate space.
type editorModule struct {
	host Host
}

func registerEditorModule(L *lua.LState, host Host) {
	m := &editorModule{host: host}

	mod := L.NewTable()
	L.SetField(mod, "lines", L.NewFunction(m.lines))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "line_count", L.NewFunction(m.lineCount))
	L.SetField(mod, "text", L.NewFunction(m.text))
	L.SetField(mod, "cursor", L.NewFunction(m.cursor))
	L.SetField(mod, "set_cursor", L.NewFunction(m.setCursor))
	L.SetField(mod, "insert", L.NewFunction(m.insert))
	L.SetField(mod, "newline", L.NewFunction(m.newline))
	L.SetField(mod, "backspace", L.NewFunction(m.backspace))
	L.SetField(mod, "delete", L.NewFunction(m.deleteForward))
	L.SetField(mod, "add_line", L.NewFunction(m.addLine))
	L.SetField(mod, "delete_line", L.NewFunction(m.deleteLine))
	L.SetField(mod, "replace_line", L.NewFunction(m.replaceLine))
	L.SetField(mod, "select_range", L.NewFunction(m.selectRange))
	L.SetField(mod, "selection", L.NewFunction(m.selection))
	L.SetField(mod, "cut", L.NewFunction(m.cut))
	L.SetField(mod, "copy", L.NewFunction(m.copy))
	L.SetField(mod, "paste", L.NewFunction(m.paste))
	L.SetField(mod, "search", L.NewFunction(m.search))
	L.SetField(mod, "replace_next", L.NewFunction(m.replaceNext))
	L.SetField(mod, "replace_all", L.NewFunction(m.replaceAll))
	L.SetField(mod, "undo", L.NewFunction(m.undo))
	L.SetField(mod, "redo", L.NewFunction(m.redo))
	L.SetField(mod, "begin", L.NewFunction(m.begin))
	L.SetField(mod, "commit", L.NewFunction(m.commit))
	L.SetField(mod, "rollback", L.NewFunction(m.rollback))
	L.SetField(mod, "status", L.NewFunction(m.status))

	L.SetGlobal("editor", mod)
}

// isNoOp reports whether err means "nothing to do" rather than failure.
func isNoOp(err error) bool {
	return errors.Is(err, history.ErrNoOp) ||
		errors.Is(err, history.ErrNothingToUndo) ||
		errors.Is(err, history.ErrNothingToRedo)
}

// pushApplied translates a verb result for Lua: nil and no-op both
// return a boolean, anything else raises.
func (m *editorModule) pushApplied(L *lua.LState, op string, err error) int {
	if err == nil {
		L.Push(lua.LTrue)
		return 1
	}
	if isNoOp(err) {
		L.Push(lua.LFalse)
		return 1
	}
	L.RaiseError("%s: %v", op, err)
	return 0
}

// lines() -> table
// Returns all buffer lines as an array.
func (m *editorModule) lines(L *lua.LState) int {
	t := L.NewTable()
	for i, line := range m.host.Lines() {
		t.RawSetInt(i+1, lua.LString(line))
	}
	L.Push(t)
	return 1
}

// line(i) -> string
// Returns the text of line i.
func (m *editorModule) line(L *lua.LState) int {
	i := L.CheckInt(1)
	text, err := m.host.Line(i)
	if err != nil {
		L.RaiseError("line: %v", err)
		return 0
	}
	L.Push(lua.LString(text))
	return 1
}

// line_count() -> number
func (m *editorModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.host.LineCount()))
	return 1
}

// text() -> string
// Returns the full buffer joined with newlines.
func (m *editorModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.host.Text()))
	return 1
}

// cursor() -> line, col
func (m *editorModule) cursor(L *lua.LState) int {
	pos := m.host.Cursor()
	L.Push(lua.LNumber(pos.Line))
	L.Push(lua.LNumber(pos.Col))
	return 2
}

// set_cursor(line, col)
// Moves the cursor, clamped to the buffer.
func (m *editorModule) setCursor(L *lua.LState) int {
	m.host.SetCursor(L.CheckInt(1), L.CheckInt(2))
	return 0
}

// insert(text) -> bool
// Types text at the cursor. Embedded newlines break lines.
func (m *editorModule) insert(L *lua.LState) int {
	return m.pushApplied(L, "insert", m.host.TypeText(L.CheckString(1)))
}

// newline() -> bool
func (m *editorModule) newline(L *lua.LState) int {
	return m.pushApplied(L, "newline", m.host.Newline())
}

// backspace() -> bool
func (m *editorModule) backspace(L *lua.LState) int {
	return m.pushApplied(L, "backspace", m.host.Backspace())
}

// delete() -> bool
// Forward delete at the cursor.
func (m *editorModule) deleteForward(L *lua.LState) int {
	return m.pushApplied(L, "delete", m.host.DeleteForward())
}

// add_line(text) -> bool
// Appends a line at the end of the buffer.
func (m *editorModule) addLine(L *lua.LState) int {
	return m.pushApplied(L, "add_line", m.host.AddLine(L.CheckString(1)))
}

// delete_line(i) -> bool
func (m *editorModule) deleteLine(L *lua.LState) int {
	return m.pushApplied(L, "delete_line", m.host.DeleteLine(L.CheckInt(1)))
}

// replace_line(i, text) -> bool
func (m *editorModule) replaceLine(L *lua.LState) int {
	return m.pushApplied(L, "replace_line",
		m.host.ReplaceLine(L.CheckInt(1), L.CheckString(2)))
}

// select_range(start_line, start_col, end_line, end_col) -> bool
func (m *editorModule) selectRange(L *lua.LState) int {
	return m.pushApplied(L, "select_range",
		m.host.SelectRange(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4)))
}

// selection() -> string | nil
// Returns the selected text, or nil when nothing is selected.
func (m *editorModule) selection(L *lua.LState) int {
	text, ok := m.host.SelectionText()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(text))
	return 1
}

// cut() -> bool
func (m *editorModule) cut(L *lua.LState) int {
	return m.pushApplied(L, "cut", m.host.Cut())
}

// copy() -> bool
func (m *editorModule) copy(L *lua.LState) int {
	return m.pushApplied(L, "copy", m.host.Copy())
}

// paste() -> bool
func (m *editorModule) paste(L *lua.LState) int {
	return m.pushApplied(L, "paste", m.host.Paste())
}

// search(term) -> bool
// Selects the next match after the cursor, wrapping around.
func (m *editorModule) search(L *lua.LState) int {
	return m.pushApplied(L, "search", m.host.Search(L.CheckString(1)))
}

// replace_next(term, repl) -> bool
func (m *editorModule) replaceNext(L *lua.LState) int {
	return m.pushApplied(L, "replace_next",
		m.host.ReplaceNext(L.CheckString(1), L.CheckString(2)))
}

// replace_all(term, repl) -> count
func (m *editorModule) replaceAll(L *lua.LState) int {
	n, err := m.host.ReplaceAll(L.CheckString(1), L.CheckString(2))
	if err != nil && !isNoOp(err) {
		L.RaiseError("replace_all: %v", err)
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

// undo() -> bool
func (m *editorModule) undo(L *lua.LState) int {
	return m.pushApplied(L, "undo", m.host.Undo())
}

// redo() -> bool
func (m *editorModule) redo(L *lua.LState) int {
	return m.pushApplied(L, "redo", m.host.Redo())
}

// begin(name?)
// Opens a transaction; edits until commit() form one undo step.
func (m *editorModule) begin(L *lua.LState) int {
	m.host.Begin(L.OptString(1, "script"))
	return 0
}

// commit() -> bool
func (m *editorModule) commit(L *lua.LState) int {
	return m.pushApplied(L, "commit", m.host.Commit())
}

// rollback() -> bool
// Unwinds the open transaction.
func (m *editorModule) rollback(L *lua.LState) int {
	return m.pushApplied(L, "rollback", m.host.Rollback())
}

// status() -> string
func (m *editorModule) status(L *lua.LState) int {
	L.Push(lua.LString(m.host.Status()))
	return 1
}
