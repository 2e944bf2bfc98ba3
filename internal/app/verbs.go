package app

import (
	"errors"

	"github.com/dshills/textforge/internal/diff"
	"github.com/dshills/textforge/internal/engine/buffer"
	"github.com/dshills/textforge/internal/engine/cursor"
	"github.com/dshills/textforge/internal/engine/history"
	"github.com/dshills/textforge/internal/fileio"
)

// isNoOp reports whether err means "nothing to do" rather than failure.
func isNoOp(err error) bool {
	return errors.Is(err, history.ErrNoOp) ||
		errors.Is(err, history.ErrNothingToUndo) ||
		errors.Is(err, history.ErrNothingToRedo)
}

// Buffer reads

// Lines returns all buffer lines.
func (s *Session) Lines() []string { return s.ed.Buffer().Lines() }

// Line returns the text of line i.
func (s *Session) Line(i int) (string, error) { return s.ed.Buffer().GetLine(i) }

// LineCount returns the number of lines.
func (s *Session) LineCount() int { return s.ed.Buffer().LineCount() }

// Text returns the whole buffer joined with newlines.
func (s *Session) Text() string { return s.ed.Buffer().Text() }

// Cursor and movement

// Cursor returns the cursor position.
func (s *Session) Cursor() buffer.Position { return s.ed.Cursor() }

// SetCursor moves the cursor, clamped to the buffer.
func (s *Session) SetCursor(line, col int) { s.ed.SetCursor(buffer.Pos(line, col)) }

// MoveUp moves the cursor one line up.
func (s *Session) MoveUp() { s.ed.MoveUp() }

// MoveDown moves the cursor one line down.
func (s *Session) MoveDown() { s.ed.MoveDown() }

// MoveLeft moves the cursor one column left, wrapping to the previous
// line end.
func (s *Session) MoveLeft() { s.ed.MoveLeft() }

// MoveRight moves the cursor one column right, wrapping to the next
// line start.
func (s *Session) MoveRight() { s.ed.MoveRight() }

// MoveLineStart moves the cursor to column zero.
func (s *Session) MoveLineStart() { s.ed.MoveToLineStart() }

// MoveLineEnd moves the cursor past the last character of the line.
func (s *Session) MoveLineEnd() { s.ed.MoveToLineEnd() }

// MoveTop moves the cursor to the start of the buffer.
func (s *Session) MoveTop() { s.ed.MoveToStart() }

// MoveBottom moves the cursor to the end of the buffer.
func (s *Session) MoveBottom() { s.ed.MoveToEnd() }

// MoveNextWord moves the cursor to the next word boundary.
func (s *Session) MoveNextWord() { s.ed.MoveNextWord() }

// MovePrevWord moves the cursor to the previous word boundary.
func (s *Session) MovePrevWord() { s.ed.MovePrevWord() }

// Text editing

// TypeText inserts text at the cursor, replacing the active selection
// if one exists. Embedded newlines split lines.
func (s *Session) TypeText(text string) error {
	if text == "" {
		return history.ErrNoOp
	}
	if s.ed.HasSelection() {
		if sel := s.ed.Selection(); !sel.IsEmpty() {
			return s.history.Execute(s.ed, history.NewReplaceSelection(sel, text))
		}
	}
	return s.history.Execute(s.ed, history.NewInsertText(text))
}

// Newline splits the current line at the cursor.
func (s *Session) Newline() error {
	return s.history.Execute(s.ed, history.NewNewLine())
}

// Backspace deletes the character before the cursor, joining lines at
// column zero.
func (s *Session) Backspace() error {
	return s.history.Execute(s.ed, history.NewDeleteChar(true))
}

// DeleteForward deletes the character under the cursor, joining lines
// at the line end.
func (s *Session) DeleteForward() error {
	return s.history.Execute(s.ed, history.NewDeleteChar(false))
}

// DeleteWord deletes from the cursor to the next word boundary, or the
// line break alone at the end of a line.
func (s *Session) DeleteWord() error {
	sel, ok := s.ed.WordDeleteRange()
	if !ok {
		return history.ErrNoOp
	}
	return s.history.Execute(s.ed, history.NewReplaceSelection(sel, ""))
}

// Line editing

// AddLine appends a line at the end of the buffer.
func (s *Session) AddLine(text string) error {
	return s.history.Execute(s.ed, history.NewAddLine(text))
}

// InsertLine inserts a line before index i.
func (s *Session) InsertLine(i int, text string) error {
	return s.history.Execute(s.ed, history.NewInsertLine(i, text))
}

// DeleteLine removes line i.
func (s *Session) DeleteLine(i int) error {
	return s.history.Execute(s.ed, history.NewDeleteLine(i))
}

// ReplaceLine replaces the text of line i.
func (s *Session) ReplaceLine(i int, text string) error {
	return s.history.Execute(s.ed, history.NewReplaceLine(i, text))
}

// JoinLines joins the cursor line with the one below it.
func (s *Session) JoinLines() error {
	return s.history.Execute(s.ed, history.NewJoinLines(s.ed.Cursor().Line))
}

// Clear replaces the buffer with a single empty line.
func (s *Session) Clear() error {
	return s.history.Execute(s.ed, history.NewSetContent([]string{""}, "Clear buffer"))
}

// Selection

// StartSelection anchors a selection at the cursor.
func (s *Session) StartSelection() { s.ed.StartSelection() }

// EndSelection closes the selection at the cursor.
func (s *Session) EndSelection() { s.ed.EndSelection() }

// ClearSelection drops the selection.
func (s *Session) ClearSelection() { s.ed.ClearSelection() }

// SelectRange selects the half-open range between two positions.
func (s *Session) SelectRange(startLine, startCol, endLine, endCol int) error {
	s.ed.SetSelection(cursor.Selection{
		Start: buffer.Pos(startLine, startCol),
		End:   buffer.Pos(endLine, endCol),
	})
	return nil
}

// SelectionText returns the selected text, if any.
func (s *Session) SelectionText() (string, bool) { return s.ed.SelectedText() }

// SelectWord selects the word under the cursor.
func (s *Session) SelectWord() bool { return s.ed.SelectWord() }

// ReplaceSelectionWith replaces the active selection with text.
func (s *Session) ReplaceSelectionWith(text string) error {
	if !s.ed.HasSelection() {
		return history.ErrNoOp
	}
	sel := s.ed.Selection()
	if sel.IsEmpty() {
		return history.ErrNoOp
	}
	return s.history.Execute(s.ed, history.NewReplaceSelection(sel, text))
}

// Clipboard

// Cut moves the selected text to the clipboard.
func (s *Session) Cut() error {
	return s.history.Execute(s.ed, history.NewCut())
}

// Copy stores the selected text on the clipboard.
func (s *Session) Copy() error {
	return s.history.Execute(s.ed, history.NewCopy())
}

// Paste inserts the clipboard at the cursor, replacing the active
// selection if one exists.
func (s *Session) Paste() error {
	if s.ed.Clipboard() == "" {
		return history.ErrNoOp
	}
	if s.ed.HasSelection() {
		if sel := s.ed.Selection(); !sel.IsEmpty() {
			return s.history.Execute(s.ed, history.NewCompound("Paste over selection",
				history.NewReplaceSelection(sel, ""),
				history.NewPaste(),
			))
		}
	}
	return s.history.Execute(s.ed, history.NewPaste())
}

// Search and replace

// CaseSensitive reports whether search and replace match case.
func (s *Session) CaseSensitive() bool { return s.caseSensitive }

// SetCaseSensitive toggles case-sensitive search and replace.
func (s *Session) SetCaseSensitive(on bool) { s.caseSensitive = on }

// SearchTerm returns the term of the live search, or "".
func (s *Session) SearchTerm() string { return s.searchTerm }

// Search selects the next match of term after the cursor, wrapping at
// the buffer end. The search stays live for SearchNext.
func (s *Session) Search(term string) error {
	cmd := history.NewSearch(term, s.caseSensitive)
	if err := s.history.Execute(s.ed, cmd); err != nil {
		return err
	}
	s.search = cmd
	s.searchTerm = term
	return nil
}

// SearchNext continues the live search from the last match.
func (s *Session) SearchNext() error {
	if s.search == nil {
		return ErrNoSearch
	}
	return s.history.Execute(s.ed, s.search)
}

// ReplaceNext replaces the next match of term after the cursor.
func (s *Session) ReplaceNext(term, repl string) error {
	return s.history.Execute(s.ed, history.NewReplace(term, repl, s.caseSensitive))
}

// ReplaceAll replaces every match of term and reports how many.
func (s *Session) ReplaceAll(term, repl string) (int, error) {
	cmd := history.NewReplaceAll(term, repl, s.caseSensitive)
	err := s.history.Execute(s.ed, cmd)
	return cmd.Count(), err
}

// Indentation

// Indent increases the indentation of lines first through last by one
// tab stop.
func (s *Session) Indent(first, last int) error {
	return s.history.Execute(s.ed, history.NewIncreaseIndent(first, last, s.cfg.Editor.TabWidth))
}

// Unindent removes up to one tab stop of indentation from lines first
// through last.
func (s *Session) Unindent(first, last int) error {
	return s.history.Execute(s.ed, history.NewDecreaseIndent(first, last, s.cfg.Editor.TabWidth))
}

// indentRange resolves the default line range for indent commands: the
// selected lines when a selection is active, else the cursor line.
func (s *Session) indentRange() (first, last int) {
	if s.ed.HasSelection() {
		if sel := s.ed.Selection(); !sel.IsEmpty() {
			last = sel.End.Line
			if sel.End.Col == 0 && last > sel.Start.Line {
				last--
			}
			return sel.Start.Line, last
		}
	}
	line := s.ed.Cursor().Line
	return line, line
}

// History

// Undo reverses the most recent command.
func (s *Session) Undo() error { return s.history.Undo(s.ed) }

// Redo re-applies the most recently undone command.
func (s *Session) Redo() error { return s.history.Redo(s.ed) }

// Begin opens a transaction; commands until Commit form one undo step.
func (s *Session) Begin(name string) { s.history.Begin(name) }

// Commit closes the innermost transaction.
func (s *Session) Commit() error { return s.history.Commit() }

// Rollback unwinds and discards the innermost transaction.
func (s *Session) Rollback() error { return s.history.Cancel(s.ed) }

// Diff, patch, merge

// DiffAgainst computes the changed spans between the buffer and the
// file at path.
func (s *Session) DiffAgainst(path string) ([]diff.OpSpan, error) {
	target, _, err := fileio.LoadLines(path)
	if err != nil {
		return nil, NewOperationError("diff", path, err)
	}
	return diff.Changes(s.ed.Buffer().Lines(), target), nil
}

// PatchFrom transforms the buffer into the content of the file at path
// as a single undo unit, returning the number of changed spans.
func (s *Session) PatchFrom(path string) (int, error) {
	target, _, err := fileio.LoadLines(path)
	if err != nil {
		return 0, NewOperationError("patch", path, err)
	}
	n, err := diff.Apply(s.ed, s.history, target)
	if err != nil {
		return n, NewOperationError("patch", path, err)
	}
	s.logger.Debug("patched from %s (%d spans)", path, n)
	return n, nil
}

// MergeWith merges the buffer (ours) with the given base and theirs
// files. The merged result replaces the buffer as one undo unit;
// conflicts keep the buffer's lines and are reported for inspection.
func (s *Session) MergeWith(basePath, theirsPath string) (*diff.MergeResult, error) {
	base, _, err := fileio.LoadLines(basePath)
	if err != nil {
		return nil, NewOperationError("merge", basePath, err)
	}
	theirs, _, err := fileio.LoadLines(theirsPath)
	if err != nil {
		return nil, NewOperationError("merge", theirsPath, err)
	}

	res := diff.Merge(base, s.ed.Buffer().Lines(), theirs)
	err = s.history.Execute(s.ed, history.NewSetContent(res.Lines, "Merge"))
	if err != nil && !errors.Is(err, history.ErrNoOp) {
		return nil, err
	}
	s.logger.Debug("merged %s + %s (%d conflicts)", basePath, theirsPath, len(res.Conflicts))
	return res, nil
}
