// Package session persists lightweight editor state across runs: which
// file was open, where the cursor sat, and the clipboard content. State
// is stored as a small JSON document under the user's state directory.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/textforge/internal/engine/buffer"
)

// ErrCorrupt indicates the session file is not valid JSON.
var ErrCorrupt = errors.New("corrupt session file")

// State is the editor state captured at save time.
type State struct {
	SessionID string
	FilePath  string
	Cursor    buffer.Position
	Clipboard string
	SavedAt   time.Time
}

// NewState returns a State with a fresh session ID.
func NewState() State {
	return State{SessionID: uuid.New().String()}
}

// encode renders the state as JSON.
func (s State) encode() (string, error) {
	sets := []struct {
		path  string
		value any
	}{
		{"sessionId", s.SessionID},
		{"filePath", s.FilePath},
		{"cursor.line", s.Cursor.Line},
		{"cursor.col", s.Cursor.Col},
		{"clipboard", s.Clipboard},
		{"savedAt", s.SavedAt.Format(time.RFC3339Nano)},
	}

	out := "{}"
	var err error
	for _, set := range sets {
		if out, err = sjson.Set(out, set.path, set.value); err != nil {
			return "", fmt.Errorf("encode session: %w", err)
		}
	}
	return out, nil
}

// decodeState parses a session document. Missing fields decode to zero
// values so older session files remain loadable.
func decodeState(data []byte) (State, error) {
	if !gjson.ValidBytes(data) {
		return State{}, ErrCorrupt
	}
	doc := gjson.ParseBytes(data)

	st := State{
		SessionID: doc.Get("sessionId").String(),
		FilePath:  doc.Get("filePath").String(),
		Clipboard: doc.Get("clipboard").String(),
		Cursor: buffer.Position{
			Line: int(doc.Get("cursor.line").Int()),
			Col:  int(doc.Get("cursor.col").Int()),
		},
	}
	if ts := doc.Get("savedAt").String(); ts != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			st.SavedAt = parsed
		}
	}
	return st, nil
}

// Store reads and writes session state at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store at the default session path:
// $XDG_STATE_HOME/textforge/session.json, falling back to
// ~/.local/state/textforge/session.json.
func NewStore() (*Store, error) {
	path, err := defaultPath()
	if err != nil {
		return nil, err
	}
	return &Store{path: path}, nil
}

// NewStoreAt creates a store at an explicit path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// Save writes the state, stamping SavedAt with the current time. Parent
// directories are created as needed.
func (s *Store) Save(state State) error {
	state.SavedAt = time.Now()

	doc, err := state.encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load reads the stored state. The second return is false when no
// session has been saved yet.
func (s *Store) Load() (State, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("load session: %w", err)
	}

	st, err := decodeState(data)
	if err != nil {
		return State{}, false, fmt.Errorf("load session %s: %w", s.path, err)
	}
	return st, true, nil
}

func defaultPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "textforge", "session.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("session path: %w", err)
	}
	return filepath.Join(home, ".local", "state", "textforge", "session.json"), nil
}
