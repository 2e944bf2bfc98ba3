package diff

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNoConflict is returned when resolving a conflict index that does
// not exist.
var ErrNoConflict = errors.New("no such conflict")

// Side selects which version resolves a conflict.
type Side uint8

const (
	SideOurs Side = iota
	SideTheirs
	SideBase
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideOurs:
		return "ours"
	case SideTheirs:
		return "theirs"
	case SideBase:
		return "base"
	default:
		return "unknown"
	}
}

// Conflict is one region where both descendants changed the same base
// lines differently.
type Conflict struct {
	// BaseStart and BaseCount locate the contested region in base.
	BaseStart int
	BaseCount int

	// Base, Ours, and Theirs are the competing versions of the region.
	Base   []string
	Ours   []string
	Theirs []string

	// mergedStart is where Ours was placed in MergeResult.Lines.
	mergedStart int
}

// MergeResult is the outcome of a three-way merge. Lines holds the
// merged content with the "ours" version standing in at each
// conflict; Conflicts reports the contested regions structurally.
type MergeResult struct {
	Lines     []string
	Conflicts []Conflict

	choices []Side
}

// HasConflicts reports whether any region needs resolution.
func (r *MergeResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Resolve records which side wins conflict i.
func (r *MergeResult) Resolve(i int, side Side) error {
	if i < 0 || i >= len(r.Conflicts) {
		return fmt.Errorf("%w: %d", ErrNoConflict, i)
	}
	r.choices[i] = side
	return nil
}

// Resolved returns the final lines with every recorded choice applied.
// Unresolved conflicts keep the "ours" version.
func (r *MergeResult) Resolved() []string {
	if len(r.Conflicts) == 0 {
		return slices.Clone(r.Lines)
	}

	out := make([]string, 0, len(r.Lines))
	prev := 0
	for i, c := range r.Conflicts {
		out = append(out, r.Lines[prev:c.mergedStart]...)
		switch r.choices[i] {
		case SideTheirs:
			out = append(out, c.Theirs...)
		case SideBase:
			out = append(out, c.Base...)
		default:
			out = append(out, c.Ours...)
		}
		prev = c.mergedStart + len(c.Ours)
	}
	out = append(out, r.Lines[prev:]...)
	return out
}

// Merge three-way merges two descendants of base. Changes touching
// disjoint base regions combine; identical changes collapse to one;
// overlapping different changes produce a Conflict with "ours" kept in
// Lines.
func Merge(base, ours, theirs []string) *MergeResult {
	co := Changes(base, ours)
	ct := Changes(base, theirs)

	res := &MergeResult{}
	i, j := 0, 0
	basePos := 0

	for i < len(co) || j < len(ct) {
		var start int
		switch {
		case i >= len(co):
			start = ct[j].StartA
		case j >= len(ct):
			start = co[i].StartA
		default:
			start = min(co[i].StartA, ct[j].StartA)
		}

		res.Lines = append(res.Lines, base[basePos:start]...)

		// Grow the group while spans on either side overlap it.
		end := start
		usedO, usedT := 0, 0
		for grew := true; grew; {
			grew = false
			for i+usedO < len(co) && joinsGroup(co[i+usedO], start, end) {
				end = max(end, co[i+usedO].StartA+co[i+usedO].CountA)
				usedO++
				grew = true
			}
			for j+usedT < len(ct) && joinsGroup(ct[j+usedT], start, end) {
				end = max(end, ct[j+usedT].StartA+ct[j+usedT].CountA)
				usedT++
				grew = true
			}
		}

		switch {
		case usedT == 0:
			res.Lines = append(res.Lines, renderGroup(base, ours, co[i:i+usedO], start, end)...)
		case usedO == 0:
			res.Lines = append(res.Lines, renderGroup(base, theirs, ct[j:j+usedT], start, end)...)
		default:
			ov := renderGroup(base, ours, co[i:i+usedO], start, end)
			tv := renderGroup(base, theirs, ct[j:j+usedT], start, end)
			if slices.Equal(ov, tv) {
				res.Lines = append(res.Lines, ov...)
			} else {
				res.Conflicts = append(res.Conflicts, Conflict{
					BaseStart:   start,
					BaseCount:   end - start,
					Base:        slices.Clone(base[start:end]),
					Ours:        ov,
					Theirs:      tv,
					mergedStart: len(res.Lines),
				})
				res.Lines = append(res.Lines, ov...)
			}
		}

		i += usedO
		j += usedT
		basePos = end
	}

	res.Lines = append(res.Lines, base[basePos:]...)
	res.choices = make([]Side, len(res.Conflicts))
	return res
}

// joinsGroup reports whether span s belongs to the group covering base
// lines [start, end). Spans that consume base lines join only when they
// start strictly inside the group (or seed an empty one), so changes to
// adjacent lines stay separate. Insertions consume no base lines and
// join whenever their point touches the group, so competing insertions
// at the same spot conflict instead of interleaving.
func joinsGroup(s OpSpan, start, end int) bool {
	if s.CountA == 0 {
		return s.StartA >= start && s.StartA <= end
	}
	return s.StartA < end || (end == start && s.StartA == start)
}

// renderGroup produces one side's version of base[start:end) by
// splicing that side's replacement lines into the unchanged base
// lines of the region.
func renderGroup(base, side []string, spans []OpSpan, start, end int) []string {
	out := []string{}
	pos := start
	for _, s := range spans {
		out = append(out, base[pos:s.StartA]...)
		out = append(out, side[s.StartB:s.StartB+s.CountB]...)
		pos = s.StartA + s.CountA
	}
	out = append(out, base[pos:end]...)
	return out
}
