package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textforge/internal/config"
	"github.com/dshills/textforge/internal/engine/buffer"
	"github.com/dshills/textforge/internal/session"
)

const banner = "--- textforge --- (type 'help' for commands)"

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(Options{Config: config.Default(), Logger: NullLogger})
}

// runREPL feeds input to a fresh command loop and returns everything it
// printed. The reader is not a terminal, so no prompts appear.
func runREPL(t *testing.T, sess *Session, input string) string {
	t.Helper()
	var out bytes.Buffer
	r := NewREPL(sess, strings.NewReader(input), &out)
	require.NoError(t, r.Run(context.Background()))
	return out.String()
}

func transcript(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestREPLAddAndView(t *testing.T) {
	out := runREPL(t, newTestSession(t), "add hello\nadd world\nview\nlines\nquit\n")

	want := transcript(
		banner,
		"Line added.",
		"Line added.",
		"--- Buffer View ---",
		"hello",
		"|world  <-- Cursor Line (1, 0)",
		"-------------------",
		"Total lines: 2",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLLineEditing(t *testing.T) {
	out := runREPL(t, newTestSession(t),
		"add alpha\ninsert 0 beta\nreplace 1 gamma\ndelete 0\nlines\nquit\n")

	want := transcript(
		banner,
		"Line added.",
		"Line inserted at 0.",
		"Line 1 replaced.",
		"Line 0 deleted.",
		"Total lines: 1",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLUsageMessages(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"insert junk", []string{"Error: Missing index for insert.", "Usage: insert <index> <text>"}},
		{"delete", []string{"Error: Missing index for delete.", "Usage: delete <index>"}},
		{"replace", []string{"Error: Missing index for replace.", "Usage: replace <index> <text>"}},
		{"setcursor 3", []string{"Error: Missing line and column for setcursor.", "Usage: setcursor <line> <col>"}},
		{"type", []string{"Error: Missing text for 'type' command.", "Usage: type <text>"}},
		{"save", []string{"Error: Missing filename for save.", "Usage: save <filename>"}},
		{"load", []string{"Error: Missing filename for load.", "Usage: load <filename>"}},
		{"search", []string{"Error: Missing search term.", "Usage: search <term>"}},
		{"merge one", []string{"Usage: merge <base> <theirs>"}},
		{"case maybe", []string{"Usage: case on|off"}},
	}

	for _, tt := range tests {
		t.Run(strings.Fields(tt.input)[0], func(t *testing.T) {
			out := runREPL(t, newTestSession(t), tt.input+"\n")
			want := transcript(append([]string{banner}, tt.want...)...)
			assert.Equal(t, want, out)
		})
	}
}

func TestREPLTypeMovesCursor(t *testing.T) {
	out := runREPL(t, newTestSession(t), "type hello\ncursor\nquit\n")

	want := transcript(
		banner,
		"Text inserted. Cursor at: [0, 5]",
		"Cursor at: [0, 5]",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLNewlineBackspaceJoin(t *testing.T) {
	out := runREPL(t, newTestSession(t),
		"type ab\nsetcursor 0 1\nnewline\nbackspace\njoin\nquit\n")

	want := transcript(
		banner,
		"Text inserted. Cursor at: [0, 2]",
		"Cursor set to: [0, 1]",
		"Line split. Cursor at: [1, 0]",
		"Backspace performed. Cursor at: [0, 1]",
		"Lines joined. Cursor at: [0, 1]",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLCursorMovement(t *testing.T) {
	out := runREPL(t, newTestSession(t),
		"add first line\nadd second\ntop\ncd\ncr\nend\nhome\nbottom\nquit\n")

	want := transcript(
		banner,
		"Line added.",
		"Line added.",
		"Cursor at: [0, 0]",
		"Cursor at: [1, 0]",
		"Cursor at: [1, 1]",
		"Cursor at: [1, 6]",
		"Cursor at: [1, 0]",
		"Cursor at: [1, 6]",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLUndoRedo(t *testing.T) {
	out := runREPL(t, newTestSession(t),
		"undo\nredo\nadd text\nundo\nlines\nredo\nlines\nquit\n")

	want := transcript(
		banner,
		"Nothing to undo.",
		"Nothing to redo.",
		"Line added.",
		"Action undone.",
		"Total lines: 1",
		"Action redone.",
		"Total lines: 1",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLSelectionClipboard(t *testing.T) {
	out := runREPL(t, newTestSession(t),
		"add hello world\ntop\nselstart\nnextword\nselend\nselshow\ncut\nend\npaste\nview\nquit\n")

	want := transcript(
		banner,
		"Line added.",
		"Cursor at: [0, 0]",
		"Selection started at: [0, 0]",
		"Cursor at: [0, 6]",
		"Selection ended at: [0, 6]",
		`Selected text: "hello "`,
		"Text cut. Cursor at: [0, 0]",
		"Cursor at: [0, 5]",
		"Text pasted. Cursor at: [0, 11]",
		"--- Buffer View ---",
		"worldhello |  <-- Cursor Line (0, 11)",
		"-------------------",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLClipboardWithoutSelection(t *testing.T) {
	out := runREPL(t, newTestSession(t), "cut\ncopy\nselshow\nselword\nquit\n")

	want := transcript(
		banner,
		"No active selection to cut.",
		"No active selection to copy.",
		"No active selection.",
		"No word at cursor position to select.",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLSelectWord(t *testing.T) {
	out := runREPL(t, newTestSession(t), "add hello world\nsetcursor 0 7\nselword\nquit\n")

	assert.Contains(t, out, `Word selected: "world"`)
}

func TestREPLSearchFlow(t *testing.T) {
	out := runREPL(t, newTestSession(t),
		"add Foo bar\nadd foo baz\ntop\nsearch zzz\nsearchnext\nsearch foo\ncase off\nsearch FOO\nquit\n")

	want := transcript(
		banner,
		"Line added.",
		"Line added.",
		"Cursor at: [0, 0]",
		`"zzz" not found.`,
		"No active search.",
		"Found at: [1, 0]",
		"Case-sensitive search: off.",
		"Found at: [0, 0]",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLReplaceAll(t *testing.T) {
	out := runREPL(t, newTestSession(t),
		"add foo foo\nadd foo\ntop\nreplaceall foo bar\nreplaceall foo x\nview\nquit\n")

	want := transcript(
		banner,
		"Line added.",
		"Line added.",
		"Cursor at: [0, 0]",
		"Replaced 3 occurrences.",
		`"foo" not found.`,
		"--- Buffer View ---",
		"bar bar",
		"bar|  <-- Cursor Line (1, 3)",
		"-------------------",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLTransactions(t *testing.T) {
	out := runREPL(t, newTestSession(t),
		"commit\nrollback\nbegin setup\nadd a\nadd b\ncommit\nlines\nundo\nlines\nbegin\nadd c\nrollback\nlines\nquit\n")

	want := transcript(
		banner,
		"No open transaction.",
		"No open transaction.",
		"Transaction started.",
		"Line added.",
		"Line added.",
		"Transaction committed.",
		"Total lines: 2",
		"Action undone.",
		"Total lines: 1",
		"Transaction started.",
		"Line added.",
		"Transaction rolled back.",
		"Total lines: 1",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	input := fmt.Sprintf("add alpha\nadd beta\nsave %s\nclear\nlines\nload %s\nlines\nquit\n", path, path)
	out := runREPL(t, newTestSession(t), input)

	want := transcript(
		banner,
		"Line added.",
		"Line added.",
		fmt.Sprintf("Buffer saved to %s.", path),
		"Buffer cleared. Cursor reset to [0,0].",
		"Total lines: 1",
		fmt.Sprintf("Buffer loaded from %s.", path),
		"Total lines: 2",
		"Exiting editor.",
	)
	require.Equal(t, want, out)
}

func TestREPLDiffAndPatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.txt")
	sess := newTestSession(t)
	input := fmt.Sprintf("add alpha\nsave %s\ndiff %s\nadd gamma\ndiff %s\npatch %s\nlines\nquit\n",
		path, path, path, path)
	out := runREPL(t, sess, input)

	assert.Contains(t, out, "No differences.")
	assert.Contains(t, out, "delete a[1:2] b[1:1]")
	assert.Contains(t, out, fmt.Sprintf("Applied 1 changes from %s.", path))
	assert.Equal(t, []string{"alpha"}, sess.Lines())
}

func TestREPLStats(t *testing.T) {
	out := runREPL(t, newTestSession(t), "add hello world\nstats\nquit\n")

	assert.Contains(t, out, "Lines: 1")
	assert.Contains(t, out, "Characters: 11")
	assert.Contains(t, out, "Graphemes: 11")
	assert.Contains(t, out, "Words: 2")
}

func TestREPLStatusLine(t *testing.T) {
	out := runREPL(t, newTestSession(t), "add one\nstatus\nquit\n")

	assert.Contains(t, out, "[no file] | 1 lines | cursor [0, 0] | undo 1 / redo 0")
}

func TestREPLHistoryListing(t *testing.T) {
	out := runREPL(t, newTestSession(t), "add one\ntype !\nhistory\nquit\n")

	assert.Contains(t, out, "Undo depth: 2")
	assert.Contains(t, out, "Redo depth: 0")
	assert.Contains(t, out, "1. Insert text: !")
	assert.Contains(t, out, "2. Add new line")
}

func TestREPLUnknownCommand(t *testing.T) {
	out := runREPL(t, newTestSession(t), "frobnicate\nquit\n")

	assert.Contains(t, out, "Unknown command: frobnicate. Type 'help' for a list of commands.")
}

func TestREPLBlankLinesIgnored(t *testing.T) {
	out := runREPL(t, newTestSession(t), "\n   \n\t\nquit\n")

	want := transcript(banner, "Exiting editor.")
	require.Equal(t, want, out)
}

func TestREPLHelp(t *testing.T) {
	out := runREPL(t, newTestSession(t), "help\nquit\n")

	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "add <text>")
	assert.Contains(t, out, "undo / redo")
	assert.Contains(t, out, "quit / exit")
}

func TestREPLEOFEndsLoop(t *testing.T) {
	out := runREPL(t, newTestSession(t), "add last\n")

	want := transcript(banner, "Line added.")
	require.Equal(t, want, out)
}

func TestREPLContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	r := NewREPL(newTestSession(t), pr, &out)

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestREPLAppliesConfigUpdates(t *testing.T) {
	sess := newTestSession(t)
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	r := NewREPL(sess, pr, &out)

	// Unbuffered, so the send returns only once the loop has taken the
	// update. The quit line is then dispatched strictly after it.
	updates := make(chan config.Config)
	r.SetConfigUpdates(updates)

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	cfg := config.Default()
	cfg.Editor.UndoLimit = 7
	updates <- cfg
	close(updates)

	_, err := io.WriteString(pw, "quit\n")
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	assert.Equal(t, 7, sess.Config().Editor.UndoLimit)
	assert.Contains(t, out.String(), "Exiting editor.")
}

func TestREPLQuitPersistsSession(t *testing.T) {
	store := session.NewStoreAt(filepath.Join(t.TempDir(), "state.json"))
	cfg := config.Default()
	cfg.Editor.AutoSession = true
	sess := NewSession(Options{Config: cfg, Logger: NullLogger, Store: store})

	runREPL(t, sess, "add hi\nsetcursor 0 1\nquit\n")

	state, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(0, 1), state.Cursor)
}
