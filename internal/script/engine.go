package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// ErrClosed is returned when running on a closed engine.
var ErrClosed = errors.New("script engine is closed")

// Engine wraps a Lua state with the editor module installed.
//
// gopher-lua's LState is not goroutine-safe; an Engine must be used
// from a single goroutine. Create one engine per script run.
type Engine struct {
	L       *lua.LState
	timeout time.Duration
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-run execution timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.timeout = d
		}
	}
}

// New creates an Engine whose editor module drives host.
func New(host Host, opts ...Option) *Engine {
	e := &Engine{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)
	registerEditorModule(L, host)
	e.L = L

	return e
}

// openSafeLibraries opens only the Lua standard libraries that cannot
// reach outside the interpreter. io, os, debug, and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// OpenBase also registers the file loaders; drop them so the only
	// way out of the interpreter is the editor module.
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
}

// RunString executes Lua source.
func (e *Engine) RunString(src string) error {
	if e.closed {
		return ErrClosed
	}
	if err := e.run(func() error { return e.L.DoString(src) }); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunFile executes the Lua file at path.
func (e *Engine) RunFile(path string) error {
	if e.closed {
		return ErrClosed
	}
	if err := e.run(func() error { return e.L.DoFile(path) }); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// run executes do under the timeout with panic recovery. A timed-out
// state must not be reused, which is why engines are per-run.
func (e *Engine) run(do func() error) error {
	if e.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		e.L.SetContext(ctx)
		defer e.L.RemoveContext()
	}
	return e.withRecovery(do)
}

func (e *Engine) withRecovery(do func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return do()
}

// Close releases the Lua state.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.L.Close()
	e.closed = true
}
