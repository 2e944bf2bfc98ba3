// Package fileio reads and writes buffer contents as line slices. A load
// records the file's line ending style so a later save can reproduce it,
// and saves go through a temp file rename so the target is never left
// half-written.
package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/textforge/internal/engine/buffer"
)

// ErrNotFound indicates the requested file does not exist.
var ErrNotFound = errors.New("file not found")

// LoadLines reads the file at path and splits it into lines. CRLF and CR
// breaks are normalized away; the detected ending style is returned so the
// caller can preserve it on save. The final line terminator is treated as
// a terminator, not as an empty last line, so "a\nb\n" loads as two lines.
// An empty file loads as a single empty line.
func LoadLines(path string) ([]string, buffer.LineEnding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, buffer.LineEndingLF, fmt.Errorf("load %s: %w", path, ErrNotFound)
		}
		return nil, buffer.LineEndingLF, fmt.Errorf("load %s: %w", path, err)
	}

	text := string(data)
	ending := buffer.DetectLineEnding(text)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")

	return strings.Split(text, "\n"), ending, nil
}

// SaveLines writes lines to path joined with the given ending style and a
// trailing terminator. The content is written to a temp file in the same
// directory and renamed into place, so an interrupted save leaves the
// original file intact. An empty slice is saved as a single empty line.
func SaveLines(path string, lines []string, ending buffer.LineEnding) error {
	if len(lines) == 0 {
		lines = []string{""}
	}
	sep := ending.Sequence()
	content := strings.Join(lines, sep) + sep

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}

	// CreateTemp uses 0600; saved files should be world-readable like any
	// editor-written file.
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
