// Package app wires the editing engine to its collaborators: loaded
// configuration, syntax highlighting, file persistence, saved session
// state, and the interactive command loop.
package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dshills/textforge/internal/config"
	"github.com/dshills/textforge/internal/engine/buffer"
	"github.com/dshills/textforge/internal/engine/editor"
	"github.com/dshills/textforge/internal/engine/history"
	"github.com/dshills/textforge/internal/fileio"
	"github.com/dshills/textforge/internal/highlight"
	"github.com/dshills/textforge/internal/session"
)

// Options configures a Session.
type Options struct {
	// Config is the loaded application configuration.
	Config config.Config

	// Logger receives session logs. Defaults to the application logger.
	Logger *Logger

	// Store persists session state across runs. Nil disables
	// persistence.
	Store *session.Store

	// Registry resolves syntax highlighters by language or file
	// extension. Defaults to the built-in registry.
	Registry *highlight.Registry
}

// Session composes the editing engine with its collaborators and
// exposes the user-facing verbs. Every buffer mutation routes through
// the command layer, so each verb is a single undo unit.
type Session struct {
	ed         *editor.Editor
	history    *history.Manager
	provider   *highlight.Provider
	registry   *highlight.Registry
	store      *session.Store
	cfg        config.Config
	logger     *Logger
	baseLogger *Logger

	filePath      string
	ending        buffer.LineEnding
	caseSensitive bool

	// search is the live search continued by SearchNext.
	search     *history.Search
	searchTerm string
}

// NewSession creates a Session around a single empty line.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	cfg.Validate()

	logger := opts.Logger
	if logger == nil {
		logger = GetLogger()
	}
	registry := opts.Registry
	if registry == nil {
		registry = highlight.DefaultRegistry()
	}

	ed := editor.New()
	provider := highlight.NewProvider(nil, 0)
	if cfg.Highlight.Enabled {
		ed.SetInvalidator(provider)
	}

	s := &Session{
		ed:            ed,
		history:       history.NewManager(history.WithMaxEntries(cfg.Editor.UndoLimit)),
		provider:      provider,
		registry:      registry,
		store:         opts.Store,
		cfg:           cfg,
		logger:        logger.WithComponent("session"),
		baseLogger:    logger,
		ending:        buffer.LineEndingLF,
		caseSensitive: cfg.Editor.CaseSensitiveSearch,
	}
	s.logger.Debug("session ready (editor %s)", ed.ID())
	return s
}

// Editor returns the underlying editor.
func (s *Session) Editor() *editor.Editor { return s.ed }

// Manager returns the command history manager.
func (s *Session) Manager() *history.Manager { return s.history }

// Config returns the session configuration.
func (s *Session) Config() config.Config { return s.cfg }

// Logger returns the session logger.
func (s *Session) Logger() *Logger { return s.logger }

// FilePath returns the file bound to the buffer, or "".
func (s *Session) FilePath() string { return s.filePath }

// ApplyConfig replaces the session configuration and propagates the
// settings that can change mid-run: undo depth, log level, and
// highlighting. The search case default is not re-applied, so a
// runtime toggle survives a reload. Must be called from the goroutine
// driving the session.
func (s *Session) ApplyConfig(cfg config.Config) {
	cfg.Validate()
	s.cfg = cfg

	s.history.SetMaxEntries(cfg.Editor.UndoLimit)
	lvl := ParseLogLevel(cfg.Log.Level)
	s.baseLogger.SetLevel(lvl)
	s.logger.SetLevel(lvl)
	if cfg.Highlight.Enabled {
		s.ed.SetInvalidator(s.provider)
		s.bindHighlighter(s.filePath)
	} else {
		s.ed.SetInvalidator(nil)
		s.provider.SetHighlighter(nil)
	}
	s.logger.Info("configuration reloaded")
}

// LoadFile reads path into the buffer as one undoable operation, binds
// a highlighter for the file's extension, and restores the saved
// cursor when session persistence covers the same file.
func (s *Session) LoadFile(path string) error {
	lines, ending, err := fileio.LoadLines(path)
	if err != nil {
		return NewOperationError("load", path, err)
	}

	cmd := history.NewSetContent(lines, "Load "+filepath.Base(path))
	if err := s.history.Execute(s.ed, cmd); err != nil && !errors.Is(err, history.ErrNoOp) {
		return NewOperationError("load", path, err)
	}

	s.filePath = path
	s.ending = ending
	s.bindHighlighter(path)
	s.restoreSessionState(path)
	s.logger.Info("loaded %s (%d lines)", path, len(lines))
	return nil
}

// SaveFile writes the buffer to path, or to the bound file when path is
// empty. Saving is not undoable.
func (s *Session) SaveFile(path string) error {
	if path == "" {
		path = s.filePath
	}
	if path == "" {
		return NewOperationError("save", "", ErrNoFile)
	}
	if err := fileio.SaveLines(path, s.ed.Buffer().Lines(), s.ending); err != nil {
		return NewOperationError("save", path, err)
	}
	s.filePath = path
	s.bindHighlighter(path)
	s.logger.Info("saved %s (%d lines)", path, s.ed.Buffer().LineCount())
	return nil
}

// bindHighlighter selects a highlighter for the file's extension, or
// none when the extension is unknown.
func (s *Session) bindHighlighter(path string) {
	if !s.cfg.Highlight.Enabled {
		return
	}
	h, ok := s.registry.GetByExtension(filepath.Ext(path))
	if !ok {
		s.provider.SetHighlighter(nil)
		return
	}
	s.provider.SetHighlighter(h)
	s.logger.Debug("highlighter bound: %s", h.Language())
}

// HighlightLine returns the highlight spans for line i.
func (s *Session) HighlightLine(i int) ([]highlight.Span, error) {
	text, err := s.ed.Buffer().GetLine(i)
	if err != nil {
		return nil, err
	}
	if !s.cfg.Highlight.Enabled || s.provider.Highlighter() == nil {
		return nil, ErrNoHighlighter
	}
	return s.provider.HighlightLine(text, i), nil
}

// SaveSessionState persists cursor, clipboard, and file binding so the
// next run can restore them.
func (s *Session) SaveSessionState() error {
	if s.store == nil {
		return nil
	}
	state := session.NewState()
	state.FilePath = s.filePath
	state.Cursor = s.ed.Cursor()
	state.Clipboard = s.ed.Clipboard()
	if err := s.store.Save(state); err != nil {
		return err
	}
	s.logger.Debug("session state saved to %s", s.store.Path())
	return nil
}

// restoreSessionState re-applies the saved cursor and clipboard when
// the previous run ended on the same file.
func (s *Session) restoreSessionState(path string) {
	if s.store == nil || !s.cfg.Editor.AutoSession {
		return
	}
	state, ok, err := s.store.Load()
	if err != nil {
		s.logger.Warn("session restore failed: %v", err)
		return
	}
	if !ok || state.FilePath != path {
		return
	}
	s.ed.SetCursor(state.Cursor)
	if state.Clipboard != "" {
		s.ed.SetClipboard(state.Clipboard)
	}
	s.logger.Debug("session restored: cursor %s", state.Cursor)
}

// Status returns a one-line summary of the session.
func (s *Session) Status() string {
	name := s.filePath
	if name == "" {
		name = "[no file]"
	}
	return fmt.Sprintf("%s | %d lines | cursor %s | undo %d / redo %d",
		name, s.ed.Buffer().LineCount(), s.ed.Cursor(),
		s.history.UndoDepth(), s.history.RedoDepth())
}

// Stats reports line, character, grapheme, and word counts.
func (s *Session) Stats() (lines, chars, graphemes, words int) {
	buf := s.ed.Buffer()
	return buf.LineCount(), buf.CharacterCount(), buf.GraphemeCount(), buf.WordCount()
}
