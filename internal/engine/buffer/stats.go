package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// CharacterCount returns the number of runes in the buffer, counting one
// character per line break.
func (b *Buffer) CharacterCount() int {
	count := 0
	for _, line := range b.lines {
		count += utf8.RuneCountInString(line)
	}
	if len(b.lines) > 1 {
		count += len(b.lines) - 1
	}
	return count
}

// GraphemeCount returns the number of user-perceived characters in the
// buffer, counting one per line break. Grapheme clusters (combining
// marks, emoji sequences) count as single characters.
func (b *Buffer) GraphemeCount() int {
	count := 0
	for _, line := range b.lines {
		count += uniseg.GraphemeClusterCount(line)
	}
	if len(b.lines) > 1 {
		count += len(b.lines) - 1
	}
	return count
}

// WordCount returns the number of whitespace-separated fields in the
// buffer. This is a display statistic; cursor word motion uses its own
// word definition.
func (b *Buffer) WordCount() int {
	count := 0
	for _, line := range b.lines {
		count += len(strings.Fields(line))
	}
	return count
}
