package editor

import "github.com/dshills/textforge/internal/engine/buffer"

// Option configures an Editor during construction.
type Option func(*Editor)

// WithBuffer sets the initial buffer. A nil buffer is ignored.
func WithBuffer(b *buffer.Buffer) Option {
	return func(e *Editor) {
		if b != nil {
			e.buf = b
		}
	}
}

// WithInvalidator attaches a highlight cache invalidation target.
func WithInvalidator(inv Invalidator) Option {
	return func(e *Editor) {
		e.invalidator = inv
	}
}

// WithID overrides the generated editor identifier. Used when restoring
// a persisted session.
func WithID(id string) Option {
	return func(e *Editor) {
		if id != "" {
			e.id = id
		}
	}
}
