package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineDiffEqual(t *testing.T) {
	a := []string{"one", "two"}
	spans := LineDiff(a, []string{"one", "two"})

	require.Len(t, spans, 1)
	assert.Equal(t, OpSpan{Op: OpEqual, StartA: 0, CountA: 2, StartB: 0, CountB: 2}, spans[0])
}

func TestLineDiffReplace(t *testing.T) {
	a := []string{"a", "b", "c"}
	b := []string{"a", "x", "c"}

	spans := LineDiff(a, b)
	require.Len(t, spans, 3)
	assert.Equal(t, OpEqual, spans[0].Op)
	assert.Equal(t, OpSpan{Op: OpReplace, StartA: 1, CountA: 1, StartB: 1, CountB: 1}, spans[1])
	assert.Equal(t, OpEqual, spans[2].Op)
}

func TestLineDiffInsert(t *testing.T) {
	a := []string{"a", "c"}
	b := []string{"a", "b", "c"}

	spans := Changes(a, b)
	require.Len(t, spans, 1)
	assert.Equal(t, OpSpan{Op: OpInsert, StartA: 1, CountA: 0, StartB: 1, CountB: 1}, spans[0])
}

func TestLineDiffDelete(t *testing.T) {
	a := []string{"a", "b", "c"}
	b := []string{"a", "c"}

	spans := Changes(a, b)
	require.Len(t, spans, 1)
	assert.Equal(t, OpSpan{Op: OpDelete, StartA: 1, CountA: 1, StartB: 1, CountB: 0}, spans[0])
}

func TestChangesFiltersEqual(t *testing.T) {
	a := []string{"same", "old", "same"}
	b := []string{"same", "new", "same"}

	assert.Len(t, LineDiff(a, b), 3)
	assert.Len(t, Changes(a, b), 1)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "equal", OpEqual.String())
	assert.Equal(t, "insert", OpInsert.String())
	assert.Equal(t, "delete", OpDelete.String())
	assert.Equal(t, "replace", OpReplace.String())
}

func TestOpSpanString(t *testing.T) {
	s := OpSpan{Op: OpReplace, StartA: 1, CountA: 2, StartB: 1, CountB: 3}
	assert.Equal(t, "replace a[1:3] b[1:4]", s.String())
}
