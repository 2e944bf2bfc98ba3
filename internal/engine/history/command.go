package history

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dshills/textforge/internal/engine/cursor"
	"github.com/dshills/textforge/internal/engine/editor"
)

// Errors reported by command execution and the Manager.
var (
	// ErrNoOp marks an execution that could not apply and changed
	// nothing. It is not a failure; undo remains safe.
	ErrNoOp = errors.New("command had no effect")

	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrNothingToRedo     = errors.New("nothing to redo")
	ErrNoTransaction     = errors.New("no transaction in progress")
	ErrTransactionActive = errors.New("transaction in progress")
)

// Command is one reversible edit against an Editor. The set of
// implementations is closed; commands are created through the NewXxx
// constructors in this package and run through a Manager.
type Command interface {
	// Kind identifies the concrete command variant.
	Kind() Kind
	// Describe returns a short human-readable summary for history
	// listings and logs.
	Describe() string

	execute(ed *editor.Editor) error
	undo(ed *editor.Editor) error
}

// Kind identifies a command variant.
type Kind uint8

const (
	KindInsertText Kind = iota
	KindDeleteChar
	KindNewLine
	KindAddLine
	KindInsertLine
	KindDeleteLine
	KindReplaceLine
	KindJoinLines
	KindSetContent
	KindReplaceSelection
	KindCopy
	KindCut
	KindPaste
	KindSearch
	KindReplace
	KindReplaceAll
	KindIncreaseIndent
	KindDecreaseIndent
	KindCompound
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInsertText:
		return "insert-text"
	case KindDeleteChar:
		return "delete-char"
	case KindNewLine:
		return "new-line"
	case KindAddLine:
		return "add-line"
	case KindInsertLine:
		return "insert-line"
	case KindDeleteLine:
		return "delete-line"
	case KindReplaceLine:
		return "replace-line"
	case KindJoinLines:
		return "join-lines"
	case KindSetContent:
		return "set-content"
	case KindReplaceSelection:
		return "replace-selection"
	case KindCopy:
		return "copy"
	case KindCut:
		return "cut"
	case KindPaste:
		return "paste"
	case KindSearch:
		return "search"
	case KindReplace:
		return "replace"
	case KindReplaceAll:
		return "replace-all"
	case KindIncreaseIndent:
		return "increase-indent"
	case KindDecreaseIndent:
		return "decrease-indent"
	case KindCompound:
		return "compound"
	default:
		return "unknown"
	}
}

// caretState is the cursor and selection snapshot a command captures
// before mutating and restores on undo.
type caretState struct {
	cursor cursor.Position
	sel    cursor.Selection
	hasSel bool
}

func captureCaret(ed *editor.Editor) caretState {
	return caretState{
		cursor: ed.Cursor(),
		sel:    ed.Selection(),
		hasSel: ed.HasSelection(),
	}
}

func (s caretState) restore(ed *editor.Editor) {
	if s.hasSel {
		ed.SetSelection(s.sel)
	} else {
		ed.ClearSelection()
	}
	ed.SetCursor(s.cursor)
}

// endOfText returns the position immediately after text inserted at
// start, derived from the line breaks embedded in text.
func endOfText(start cursor.Position, text string) cursor.Position {
	segs := strings.Split(text, "\n")
	if len(segs) == 1 {
		return cursor.Pos(start.Line, start.Col+utf8.RuneCountInString(text))
	}
	return cursor.Pos(start.Line+len(segs)-1, utf8.RuneCountInString(segs[len(segs)-1]))
}

// lineLen returns the rune length of line i, or 0 for an invalid index.
func lineLen(ed *editor.Editor, i int) int {
	n, err := ed.Buffer().LineLength(i)
	if err != nil {
		return 0
	}
	return n
}
