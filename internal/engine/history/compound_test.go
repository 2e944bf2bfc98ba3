package history

import (
	"errors"
	"testing"

	"github.com/dshills/textforge/internal/engine/cursor"
	"github.com/dshills/textforge/internal/engine/editor"
)

type failingCommand struct {
	err error
}

func (f *failingCommand) Kind() Kind       { return KindCompound }
func (f *failingCommand) Describe() string { return "failing command" }

func (f *failingCommand) execute(ed *editor.Editor) error { return f.err }
func (f *failingCommand) undo(ed *editor.Editor) error    { return nil }

func TestCompoundExecutesInOrder(t *testing.T) {
	ed := newEditor("")
	m := NewManager()

	c := NewCompound("type ab")
	c.Add(NewInsertText("a"))
	c.Add(NewInsertText("b"))
	if err := m.Execute(ed, c); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	wantLines(t, ed, "ab")
	wantCursor(t, ed, cursor.Pos(0, 2))
	if got := m.UndoDepth(); got != 1 {
		t.Errorf("undo depth = %d, want 1", got)
	}

	if err := m.Undo(ed); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	wantLines(t, ed, "")
	wantCursor(t, ed, cursor.Pos(0, 0))
}

func TestCompoundUndoReversesOrder(t *testing.T) {
	ed := newEditor("orig")
	m := NewManager()

	c := NewCompound("rewrite twice")
	c.Add(NewReplaceLine(0, "first"))
	c.Add(NewReplaceLine(0, "second"))
	if err := m.Execute(ed, c); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	wantLines(t, ed, "second")

	// Undoing in execution order would leave "first" behind.
	if err := m.Undo(ed); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	wantLines(t, ed, "orig")
}

func TestCompoundSkipsNoOpSubcommands(t *testing.T) {
	ed := newEditor("")
	m := NewManager()

	c := NewCompound("mixed")
	c.Add(NewDeleteChar(true)) // backspace at origin: no effect
	c.Add(NewInsertText("x"))
	if err := m.Execute(ed, c); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	wantLines(t, ed, "x")

	if err := m.Undo(ed); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	wantLines(t, ed, "")
}

func TestCompoundAllNoOpIsNoOp(t *testing.T) {
	ed := newEditor("")
	m := NewManager()

	c := NewCompound("nothing")
	c.Add(NewDeleteChar(true))
	c.Add(NewDeleteChar(false))
	if err := m.Execute(ed, c); !errors.Is(err, ErrNoOp) {
		t.Fatalf("expected ErrNoOp, got %v", err)
	}
	if m.CanUndo() {
		t.Error("no-op compound must not reach the undo stack")
	}
}

func TestCompoundEmptyIsNoOp(t *testing.T) {
	ed := newEditor("abc")
	m := NewManager()

	if err := m.Execute(ed, NewCompound("empty")); !errors.Is(err, ErrNoOp) {
		t.Fatalf("expected ErrNoOp, got %v", err)
	}
}

func TestCompoundRollsBackOnError(t *testing.T) {
	ed := newEditor("keep me")
	ed.SetCursor(cursor.Pos(0, 4))
	m := NewManager()

	boom := errors.New("boom")
	c := NewCompound("doomed")
	c.Add(NewInsertText("XX"))
	c.Add(&failingCommand{err: boom})
	err := m.Execute(ed, c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	wantLines(t, ed, "keep me")
	wantCursor(t, ed, cursor.Pos(0, 4))
	if m.CanUndo() {
		t.Error("failed compound must not reach the undo stack")
	}
}

func TestCompoundLenAndDescribe(t *testing.T) {
	c := NewCompound("my group")
	if !c.Empty() {
		t.Error("new compound should be empty")
	}
	c.Add(NewInsertText("a"))
	c.Add(NewInsertText("b"))
	if got := c.Len(); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}
	if got := c.Describe(); got != "my group" {
		t.Errorf("describe = %q, want %q", got, "my group")
	}
}
