package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeNonOverlappingChanges(t *testing.T) {
	base := []string{"a", "b", "c", "d"}
	ours := []string{"A", "b", "c", "d"}
	theirs := []string{"a", "b", "c", "D"}

	res := Merge(base, ours, theirs)
	assert.False(t, res.HasConflicts())
	assert.Equal(t, []string{"A", "b", "c", "D"}, res.Lines)
}

func TestMergeIdenticalChangesDedupe(t *testing.T) {
	base := []string{"a", "b", "c"}
	ours := []string{"a", "X", "c"}
	theirs := []string{"a", "X", "c"}

	res := Merge(base, ours, theirs)
	assert.False(t, res.HasConflicts())
	assert.Equal(t, []string{"a", "X", "c"}, res.Lines)
}

func TestMergeNoChanges(t *testing.T) {
	base := []string{"a", "b"}

	res := Merge(base, base, base)
	assert.False(t, res.HasConflicts())
	assert.Equal(t, base, res.Lines)
	assert.Equal(t, base, res.Resolved())
}

func TestMergeConflictKeepsOurs(t *testing.T) {
	base := []string{"a", "b", "c"}
	ours := []string{"a", "O", "c"}
	theirs := []string{"a", "T", "c"}

	res := Merge(base, ours, theirs)
	require.True(t, res.HasConflicts())
	require.Len(t, res.Conflicts, 1)

	c := res.Conflicts[0]
	assert.Equal(t, 1, c.BaseStart)
	assert.Equal(t, 1, c.BaseCount)
	assert.Equal(t, []string{"b"}, c.Base)
	assert.Equal(t, []string{"O"}, c.Ours)
	assert.Equal(t, []string{"T"}, c.Theirs)

	// Unresolved output carries our side.
	assert.Equal(t, []string{"a", "O", "c"}, res.Lines)
	assert.Equal(t, []string{"a", "O", "c"}, res.Resolved())
}

func TestMergeResolveSides(t *testing.T) {
	base := []string{"a", "b", "c"}
	ours := []string{"a", "O", "c"}
	theirs := []string{"a", "T", "c"}

	res := Merge(base, ours, theirs)
	require.True(t, res.HasConflicts())

	require.NoError(t, res.Resolve(0, SideTheirs))
	assert.Equal(t, []string{"a", "T", "c"}, res.Resolved())

	require.NoError(t, res.Resolve(0, SideBase))
	assert.Equal(t, []string{"a", "b", "c"}, res.Resolved())

	require.NoError(t, res.Resolve(0, SideOurs))
	assert.Equal(t, []string{"a", "O", "c"}, res.Resolved())
}

func TestMergeResolveOutOfRange(t *testing.T) {
	base := []string{"a", "b", "c"}
	res := Merge(base, []string{"a", "O", "c"}, []string{"a", "T", "c"})

	assert.ErrorIs(t, res.Resolve(5, SideTheirs), ErrNoConflict)
	assert.ErrorIs(t, res.Resolve(-1, SideOurs), ErrNoConflict)
}

func TestMergeInsertVsInsertSamePosition(t *testing.T) {
	base := []string{"a", "b"}
	ours := []string{"a", "x", "b"}
	theirs := []string{"a", "y", "b"}

	res := Merge(base, ours, theirs)
	require.True(t, res.HasConflicts())
	require.Len(t, res.Conflicts, 1)

	c := res.Conflicts[0]
	assert.Equal(t, 0, c.BaseCount)
	assert.Empty(t, c.Base)
	assert.Equal(t, []string{"x"}, c.Ours)
	assert.Equal(t, []string{"y"}, c.Theirs)

	assert.Equal(t, []string{"a", "x", "b"}, res.Lines)

	require.NoError(t, res.Resolve(0, SideTheirs))
	assert.Equal(t, []string{"a", "y", "b"}, res.Resolved())
}

func TestMergeDeleteVsEditConflict(t *testing.T) {
	base := []string{"a", "b", "c"}
	ours := []string{"a", "c"}
	theirs := []string{"a", "B", "c"}

	res := Merge(base, ours, theirs)
	require.True(t, res.HasConflicts())
	require.Len(t, res.Conflicts, 1)

	c := res.Conflicts[0]
	assert.Equal(t, []string{"b"}, c.Base)
	assert.Empty(t, c.Ours)
	assert.Equal(t, []string{"B"}, c.Theirs)

	// Ours deleted the line, so the default output omits it.
	assert.Equal(t, []string{"a", "c"}, res.Lines)

	require.NoError(t, res.Resolve(0, SideTheirs))
	assert.Equal(t, []string{"a", "B", "c"}, res.Resolved())

	require.NoError(t, res.Resolve(0, SideBase))
	assert.Equal(t, []string{"a", "b", "c"}, res.Resolved())
}

func TestMergeMultipleConflicts(t *testing.T) {
	base := []string{"a", "b", "c", "d", "e"}
	ours := []string{"a", "O1", "c", "O2", "e"}
	theirs := []string{"a", "T1", "c", "T2", "e"}

	res := Merge(base, ours, theirs)
	require.True(t, res.HasConflicts())
	require.Len(t, res.Conflicts, 2)

	require.NoError(t, res.Resolve(0, SideTheirs))
	assert.Equal(t, []string{"a", "T1", "c", "O2", "e"}, res.Resolved())

	require.NoError(t, res.Resolve(1, SideTheirs))
	assert.Equal(t, []string{"a", "T1", "c", "T2", "e"}, res.Resolved())
}

func TestMergeOnlyOursChanged(t *testing.T) {
	base := []string{"a", "b", "c"}
	ours := []string{"a", "changed", "c", "added"}

	res := Merge(base, ours, base)
	assert.False(t, res.HasConflicts())
	assert.Equal(t, ours, res.Lines)
}

func TestMergeOnlyTheirsChanged(t *testing.T) {
	base := []string{"a", "b", "c"}
	theirs := []string{"start", "a", "b", "c"}

	res := Merge(base, base, theirs)
	assert.False(t, res.HasConflicts())
	assert.Equal(t, theirs, res.Lines)
}

func TestMergeTouchingLinesMergeCleanly(t *testing.T) {
	// Ours edits line 1, theirs edits line 2. The regions share a
	// boundary but no base lines, so both changes apply.
	base := []string{"a", "b", "c"}
	ours := []string{"a", "OURS", "c"}
	theirs := []string{"a", "b", "THEIRS"}

	res := Merge(base, ours, theirs)
	assert.False(t, res.HasConflicts())
	assert.Equal(t, []string{"a", "OURS", "THEIRS"}, res.Lines)
}

func TestMergeAdjacentDistinctChanges(t *testing.T) {
	// Changes touching different base lines that sit next to each other
	// still merge cleanly when the diff spans do not overlap.
	base := []string{"a", "b", "c", "d", "e", "f"}
	ours := []string{"a", "B", "c", "d", "e", "f"}
	theirs := []string{"a", "b", "c", "d", "E", "f"}

	res := Merge(base, ours, theirs)
	assert.False(t, res.HasConflicts())
	assert.Equal(t, []string{"a", "B", "c", "d", "E", "f"}, res.Lines)
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "ours", SideOurs.String())
	assert.Equal(t, "theirs", SideTheirs.String())
	assert.Equal(t, "base", SideBase.String())
}
