package fileio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textforge/internal/engine/buffer"
)

func writeRaw(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadLinesMissingFile(t *testing.T) {
	_, _, err := LoadLines(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadLinesStripsTrailingTerminator(t *testing.T) {
	path := writeRaw(t, "alpha\nbeta\n")

	lines, ending, err := LoadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, lines)
	assert.Equal(t, buffer.LineEndingLF, ending)
}

func TestLoadLinesWithoutTrailingTerminator(t *testing.T) {
	path := writeRaw(t, "alpha\nbeta")

	lines, _, err := LoadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, lines)
}

func TestLoadLinesKeepsInteriorEmptyLines(t *testing.T) {
	path := writeRaw(t, "alpha\n\nbeta\n")

	lines, _, err := LoadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "", "beta"}, lines)
}

func TestLoadLinesEmptyFile(t *testing.T) {
	path := writeRaw(t, "")

	lines, ending, err := LoadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, lines)
	assert.Equal(t, buffer.LineEndingLF, ending)
}

func TestLoadLinesDetectsCRLF(t *testing.T) {
	path := writeRaw(t, "one\r\ntwo\r\n")

	lines, ending, err := LoadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
	assert.Equal(t, buffer.LineEndingCRLF, ending)
}

func TestLoadLinesDetectsCR(t *testing.T) {
	path := writeRaw(t, "one\rtwo\r")

	lines, ending, err := LoadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
	assert.Equal(t, buffer.LineEndingCR, ending)
}

func TestSaveLinesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	want := []string{"first", "", "third"}

	require.NoError(t, SaveLines(path, want, buffer.LineEndingLF))

	lines, ending, err := LoadLines(path)
	require.NoError(t, err)
	assert.Equal(t, want, lines)
	assert.Equal(t, buffer.LineEndingLF, ending)
}

func TestSaveLinesPreservesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, SaveLines(path, []string{"one", "two"}, buffer.LineEndingCRLF))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\r\ntwo\r\n", string(raw))
}

func TestSaveLinesEmptySlice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, SaveLines(path, nil, buffer.LineEndingLF))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\n", string(raw))
}

func TestSaveLinesReplacesExisting(t *testing.T) {
	path := writeRaw(t, "old content\n")

	require.NoError(t, SaveLines(path, []string{"new content"}, buffer.LineEndingLF))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content\n", string(raw))

	// The temp file used for the write must not survive the rename.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestSaveLinesDirectoryMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
	assert.Error(t, SaveLines(path, []string{"x"}, buffer.LineEndingLF))
}
