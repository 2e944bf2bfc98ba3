package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/dshills/textforge/internal/config"
	"github.com/dshills/textforge/internal/engine/history"
)

// REPL runs the interactive command loop over a reader/writer pair.
// Commands are a single word followed by optional arguments; the rest
// of the line after the first separator is taken verbatim for text
// arguments.
type REPL struct {
	sess *Session
	in   io.Reader
	out  io.Writer

	// interactive gates the prompt; it is set when in is a terminal.
	interactive bool

	// cfgUpdates carries reloaded configurations from a config watcher.
	// Nil when live reload is off.
	cfgUpdates <-chan config.Config
}

// NewREPL creates a command loop for sess.
func NewREPL(sess *Session, in io.Reader, out io.Writer) *REPL {
	r := &REPL{sess: sess, in: in, out: out}
	if f, ok := in.(*os.File); ok {
		r.interactive = term.IsTerminal(int(f.Fd()))
	}
	return r
}

// SetConfigUpdates attaches a channel of reloaded configurations.
// Deliveries are applied between commands, on the loop goroutine, so
// the session is never touched concurrently.
func (r *REPL) SetConfigUpdates(ch <-chan config.Config) {
	r.cfgUpdates = ch
}

// Run processes commands until quit, end of input, or context
// cancellation.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "--- textforge --- (type 'help' for commands)")

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(r.in)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
		close(lines)
	}()

	r.prompt()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cfg, ok := <-r.cfgUpdates:
			if !ok {
				r.cfgUpdates = nil
				continue
			}
			r.sess.ApplyConfig(cfg)
			continue
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			if err := r.dispatch(line); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
		r.prompt()
	}
}

func (r *REPL) prompt() {
	if r.interactive {
		fmt.Fprint(r.out, "> ")
	}
}

func (r *REPL) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// cursorAt renders the standard cursor status line.
func (r *REPL) cursorAt() string {
	return fmt.Sprintf("Cursor at: %s", r.sess.Cursor())
}

// dispatch executes one input line. Only ErrQuit and writer failures
// propagate; command errors become status lines.
func (r *REPL) dispatch(line string) error {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return nil
	}
	cmd, rest, _ := strings.Cut(trimmed, " ")
	r.sess.logger.Debug("repl command: %s", cmd)

	switch cmd {
	case "quit", "exit":
		if r.sess.cfg.Editor.AutoSession {
			if err := r.sess.SaveSessionState(); err != nil {
				r.sess.logger.Warn("session save failed: %v", err)
			}
		}
		r.printf("Exiting editor.")
		return ErrQuit

	case "add":
		if err := r.sess.AddLine(rest); err != nil {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Line added.")

	case "insert":
		i, text, ok := splitIndex(rest)
		if !ok {
			r.printf("Error: Missing index for insert.")
			r.printf("Usage: insert <index> <text>")
			return nil
		}
		if err := r.sess.InsertLine(i, text); err != nil {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Line inserted at %d.", i)

	case "delete":
		i, _, ok := splitIndex(rest)
		if !ok {
			r.printf("Error: Missing index for delete.")
			r.printf("Usage: delete <index>")
			return nil
		}
		if err := r.sess.DeleteLine(i); err != nil {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Line %d deleted.", i)

	case "replace":
		i, text, ok := splitIndex(rest)
		if !ok {
			r.printf("Error: Missing index for replace.")
			r.printf("Usage: replace <index> <text>")
			return nil
		}
		if err := r.sess.ReplaceLine(i, text); err != nil {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Line %d replaced.", i)

	case "view":
		r.printf("--- Buffer View ---")
		r.printView()
		r.printf("-------------------")

	case "lines":
		r.printf("Total lines: %d", r.sess.LineCount())

	case "clear":
		if err := r.sess.Clear(); err != nil && !isNoOp(err) {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Buffer cleared. Cursor reset to [0,0].")

	case "save":
		name := firstField(rest)
		if name == "" && r.sess.FilePath() == "" {
			r.printf("Error: Missing filename for save.")
			r.printf("Usage: save <filename>")
			return nil
		}
		if err := r.sess.SaveFile(name); err != nil {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Buffer saved to %s.", r.sess.FilePath())

	case "load":
		name := firstField(rest)
		if name == "" {
			r.printf("Error: Missing filename for load.")
			r.printf("Usage: load <filename>")
			return nil
		}
		if err := r.sess.LoadFile(name); err != nil {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Buffer loaded from %s.", name)

	case "cursor":
		r.printf("%s", r.cursorAt())

	case "setcursor":
		fields := strings.Fields(rest)
		if len(fields) < 2 {
			r.printf("Error: Missing line and column for setcursor.")
			r.printf("Usage: setcursor <line> <col>")
			return nil
		}
		l, err1 := strconv.Atoi(fields[0])
		c, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			r.printf("Error: Missing line and column for setcursor.")
			r.printf("Usage: setcursor <line> <col>")
			return nil
		}
		r.sess.SetCursor(l, c)
		r.printf("Cursor set to: %s", r.sess.Cursor())

	case "cu":
		r.sess.MoveUp()
		r.printf("%s", r.cursorAt())
	case "cd":
		r.sess.MoveDown()
		r.printf("%s", r.cursorAt())
	case "cl":
		r.sess.MoveLeft()
		r.printf("%s", r.cursorAt())
	case "cr":
		r.sess.MoveRight()
		r.printf("%s", r.cursorAt())
	case "home":
		r.sess.MoveLineStart()
		r.printf("%s", r.cursorAt())
	case "end":
		r.sess.MoveLineEnd()
		r.printf("%s", r.cursorAt())
	case "top":
		r.sess.MoveTop()
		r.printf("%s", r.cursorAt())
	case "bottom":
		r.sess.MoveBottom()
		r.printf("%s", r.cursorAt())
	case "nextword":
		r.sess.MoveNextWord()
		r.printf("%s", r.cursorAt())
	case "prevword":
		r.sess.MovePrevWord()
		r.printf("%s", r.cursorAt())

	case "type":
		if rest == "" {
			r.printf("Error: Missing text for 'type' command.")
			r.printf("Usage: type <text>")
			return nil
		}
		if err := r.sess.TypeText(rest); err != nil && !isNoOp(err) {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Text inserted. %s", r.cursorAt())

	case "backspace":
		if err := r.sess.Backspace(); err != nil && !isNoOp(err) {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Backspace performed. %s", r.cursorAt())

	case "del":
		if err := r.sess.DeleteForward(); err != nil && !isNoOp(err) {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Delete performed. %s", r.cursorAt())

	case "newline":
		if err := r.sess.Newline(); err != nil && !isNoOp(err) {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Line split. %s", r.cursorAt())

	case "join":
		if err := r.sess.JoinLines(); err != nil && !isNoOp(err) {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Lines joined. %s", r.cursorAt())

	case "selstart":
		r.sess.StartSelection()
		r.printf("Selection started at: %s", r.sess.Cursor())

	case "selend":
		r.sess.EndSelection()
		r.printf("Selection ended at: %s", r.sess.Cursor())

	case "selclear":
		r.sess.ClearSelection()
		r.printf("Selection cleared.")

	case "selshow":
		if text, ok := r.sess.SelectionText(); ok {
			r.printf("Selected text: \"%s\"", text)
		} else {
			r.printf("No active selection.")
		}

	case "cut":
		if err := r.sess.Cut(); err != nil {
			if isNoOp(err) {
				r.printf("No active selection to cut.")
			} else {
				r.printf("Error: %v", err)
			}
			return nil
		}
		r.printf("Text cut. %s", r.cursorAt())

	case "copy":
		if err := r.sess.Copy(); err != nil {
			if isNoOp(err) {
				r.printf("No active selection to copy.")
			} else {
				r.printf("Error: %v", err)
			}
			return nil
		}
		r.printf("Text copied.")

	case "paste":
		if err := r.sess.Paste(); err != nil && !isNoOp(err) {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Text pasted. %s", r.cursorAt())

	case "delword":
		if err := r.sess.DeleteWord(); err != nil && !isNoOp(err) {
			r.printf("Error: %v", err)
			return nil
		}
		r.printf("Word deleted. %s", r.cursorAt())

	case "selword":
		if r.sess.SelectWord() {
			text, _ := r.sess.SelectionText()
			r.printf("Word selected: \"%s\"", text)
		} else {
			r.printf("No word at cursor position to select.")
		}

	case "undo":
		switch err := r.sess.Undo(); {
		case err == nil:
			r.printf("Action undone.")
		case isNoOp(err):
			r.printf("Nothing to undo.")
		default:
			r.printf("Error: %v", err)
		}

	case "redo":
		switch err := r.sess.Redo(); {
		case err == nil:
			r.printf("Action redone.")
		case isNoOp(err):
			r.printf("Nothing to redo.")
		default:
			r.printf("Error: %v", err)
		}

	case "search":
		if rest == "" {
			r.printf("Error: Missing search term.")
			r.printf("Usage: search <term>")
			return nil
		}
		if err := r.sess.Search(rest); err != nil {
			if isNoOp(err) {
				r.printf("\"%s\" not found.", rest)
			} else {
				r.printf("Error: %v", err)
			}
			return nil
		}
		r.printf("Found at: %s", r.sess.Editor().Selection().Start)

	case "searchnext":
		switch err := r.sess.SearchNext(); {
		case err == nil:
			r.printf("Found at: %s", r.sess.Editor().Selection().Start)
		case errors.Is(err, ErrNoSearch):
			r.printf("No active search.")
		case isNoOp(err):
			r.printf("\"%s\" not found.", r.sess.SearchTerm())
		default:
			r.printf("Error: %v", err)
		}

	case "replacenext":
		pat, repl, ok := splitTerm(rest)
		if !ok {
			r.printf("Usage: replacenext <term> <replacement>")
			return nil
		}
		if err := r.sess.ReplaceNext(pat, repl); err != nil {
			if isNoOp(err) {
				r.printf("\"%s\" not found.", pat)
			} else {
				r.printf("Error: %v", err)
			}
			return nil
		}
		r.printf("Replaced at: %s", r.sess.Editor().Selection().Start)

	case "replaceall":
		pat, repl, ok := splitTerm(rest)
		if !ok {
			r.printf("Usage: replaceall <term> <replacement>")
			return nil
		}
		n, err := r.sess.ReplaceAll(pat, repl)
		if err != nil {
			if isNoOp(err) {
				r.printf("\"%s\" not found.", pat)
			} else {
				r.printf("Error: %v", err)
			}
			return nil
		}
		r.printf("Replaced %d occurrences.", n)

	case "case":
		switch firstField(rest) {
		case "on":
			r.sess.SetCaseSensitive(true)
			r.printf("Case-sensitive search: on.")
		case "off":
			r.sess.SetCaseSensitive(false)
			r.printf("Case-sensitive search: off.")
		default:
			r.printf("Usage: case on|off")
		}

	case "selreplace":
		if err := r.sess.ReplaceSelectionWith(rest); err != nil {
			if isNoOp(err) {
				r.printf("No active selection to replace.")
			} else {
				r.printf("Error: %v", err)
			}
			return nil
		}
		r.printf("Selection replaced. %s", r.cursorAt())

	case "indent", "unindent":
		first, last, ok := indentArgs(r.sess, rest)
		if !ok {
			r.printf("Usage: %s [first last]", cmd)
			return nil
		}
		var err error
		if cmd == "indent" {
			err = r.sess.Indent(first, last)
		} else {
			err = r.sess.Unindent(first, last)
		}
		if err != nil && !isNoOp(err) {
			r.printf("Error: %v", err)
			return nil
		}
		if cmd == "indent" {
			r.printf("Lines %d-%d indented.", first, last)
		} else {
			r.printf("Lines %d-%d unindented.", first, last)
		}

	case "begin":
		name := strings.TrimSpace(rest)
		if name == "" {
			name = "Transaction"
		}
		r.sess.Begin(name)
		r.printf("Transaction started.")

	case "commit":
		switch err := r.sess.Commit(); {
		case err == nil:
			r.printf("Transaction committed.")
		case errors.Is(err, history.ErrNoTransaction):
			r.printf("No open transaction.")
		default:
			r.printf("Error: %v", err)
		}

	case "rollback":
		switch err := r.sess.Rollback(); {
		case err == nil:
			r.printf("Transaction rolled back.")
		case errors.Is(err, history.ErrNoTransaction):
			r.printf("No open transaction.")
		default:
			r.printf("Error: %v", err)
		}

	case "diff":
		name := firstField(rest)
		if name == "" {
			r.printf("Usage: diff <filename>")
			return nil
		}
		spans, err := r.sess.DiffAgainst(name)
		if err != nil {
			r.printf("Error: %v", err)
			return nil
		}
		if len(spans) == 0 {
			r.printf("No differences.")
			return nil
		}
		for _, s := range spans {
			r.printf("  %s", s)
		}

	case "patch":
		name := firstField(rest)
		if name == "" {
			r.printf("Usage: patch <filename>")
			return nil
		}
		n, err := r.sess.PatchFrom(name)
		if err != nil {
			r.printf("Error: %v", err)
			return nil
		}
		if n == 0 {
			r.printf("No changes to apply.")
			return nil
		}
		r.printf("Applied %d changes from %s.", n, name)

	case "merge":
		fields := strings.Fields(rest)
		if len(fields) < 2 {
			r.printf("Usage: merge <base> <theirs>")
			return nil
		}
		res, err := r.sess.MergeWith(fields[0], fields[1])
		if err != nil {
			r.printf("Error: %v", err)
			return nil
		}
		if res.HasConflicts() {
			r.printf("Merge complete (%d conflicts, ours kept).", len(res.Conflicts))
		} else {
			r.printf("Merge complete.")
		}

	case "hl":
		i, _, ok := splitIndex(rest)
		if !ok {
			r.printf("Usage: hl <index>")
			return nil
		}
		spans, err := r.sess.HighlightLine(i)
		if err != nil {
			if errors.Is(err, ErrNoHighlighter) {
				r.printf("No highlighter for this buffer.")
			} else {
				r.printf("Error: %v", err)
			}
			return nil
		}
		for _, s := range spans {
			r.printf("  %s", s)
		}

	case "stats":
		lines, chars, graphemes, words := r.sess.Stats()
		r.printf("Lines: %d", lines)
		r.printf("Characters: %d", chars)
		r.printf("Graphemes: %d", graphemes)
		r.printf("Words: %d", words)

	case "status":
		r.printf("%s", r.sess.Status())

	case "history":
		r.printf("Undo depth: %d", r.sess.Manager().UndoDepth())
		r.printf("Redo depth: %d", r.sess.Manager().RedoDepth())
		for i, desc := range r.sess.Manager().UndoList(5) {
			r.printf("%d. %s", i+1, desc)
		}

	case "help":
		r.printHelp()

	default:
		r.printf("Unknown command: %s. Type 'help' for a list of commands.", cmd)
	}
	return nil
}

// printView renders the buffer with a cursor marker on the cursor line.
func (r *REPL) printView() {
	pos := r.sess.Cursor()
	for i, line := range r.sess.Lines() {
		if i != pos.Line {
			fmt.Fprintln(r.out, line)
			continue
		}
		runes := []rune(line)
		col := pos.Col
		if col > len(runes) {
			col = len(runes)
		}
		fmt.Fprintf(r.out, "%s|%s  <-- Cursor Line (%d, %d)\n",
			string(runes[:col]), string(runes[col:]), pos.Line, pos.Col)
	}
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.out, `Commands:
  add <text>               append a line
  insert <i> <text>        insert a line at index i
  delete <i>               delete line i
  replace <i> <text>       replace line i
  view                     show the buffer with the cursor marker
  lines                    show the line count
  clear                    reset the buffer to one empty line
  save <file>              write the buffer to a file
  load <file>              load a file into the buffer
  cursor                   show the cursor position
  setcursor <l> <c>        move the cursor
  cu / cd / cl / cr        move the cursor up / down / left / right
  home / end               move to line start / line end
  top / bottom             move to buffer start / buffer end
  nextword / prevword      move by word
  type <text>              insert text at the cursor (\n splits lines)
  backspace / del          delete backward / forward
  newline                  split the line at the cursor
  join                     join the cursor line with the next
  selstart / selend        anchor / close a selection at the cursor
  selclear / selshow       drop / show the selection
  selword                  select the word under the cursor
  selreplace <text>        replace the selection
  cut / copy / paste       clipboard operations
  delword                  delete to the next word boundary
  search <term>            find the next match (wraps)
  searchnext               continue the last search
  replacenext <t> <r>      replace the next match
  replaceall <t> <r>       replace every match
  case on|off              toggle case-sensitive matching
  indent [first last]      indent lines one tab stop
  unindent [first last]    unindent lines one tab stop
  begin [name]             open a transaction
  commit / rollback        close / unwind the transaction
  undo / redo              step through history
  history                  show undo and redo depth
  diff <file>              show changed spans vs a file
  patch <file>             apply a file's content as one undo unit
  merge <base> <theirs>    three-way merge into the buffer
  hl <i>                   show highlight spans for line i
  stats                    show buffer statistics
  status                   show the session summary
  quit / exit              leave the editor
`)
}

// firstField returns the first whitespace-separated token of s.
func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// splitIndex splits rest into a leading integer and the remaining text.
func splitIndex(rest string) (int, string, bool) {
	rest = strings.TrimLeft(rest, " ")
	tok, remainder, _ := strings.Cut(rest, " ")
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, "", false
	}
	return i, remainder, true
}

// splitTerm splits rest into a term and a replacement, which may be
// empty or contain spaces.
func splitTerm(rest string) (term, repl string, ok bool) {
	rest = strings.TrimLeft(rest, " ")
	term, repl, _ = strings.Cut(rest, " ")
	if term == "" {
		return "", "", false
	}
	return term, repl, true
}

// indentArgs parses an optional "first last" pair, falling back to the
// session's selection or cursor line.
func indentArgs(sess *Session, rest string) (first, last int, ok bool) {
	fields := strings.Fields(rest)
	switch len(fields) {
	case 0:
		first, last = sess.indentRange()
		return first, last, true
	case 2:
		a, err1 := strconv.Atoi(fields[0])
		b, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return 0, 0, false
		}
		return a, b, true
	default:
		return 0, 0, false
	}
}
