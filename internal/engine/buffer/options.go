package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithLines sets the buffer's initial content to a copy of lines.
func WithLines(lines []string) Option {
	return func(b *Buffer) {
		b.lines = make([]string, len(lines))
		copy(b.lines, lines)
	}
}
