package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Op is the kind of one diff operation.
type Op uint8

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// OpSpan is one diff operation over line ranges: lines
// [StartA, StartA+CountA) of the first sequence correspond to lines
// [StartB, StartB+CountB) of the second.
type OpSpan struct {
	Op     Op
	StartA int
	CountA int
	StartB int
	CountB int
}

// String renders the span for diff listings.
func (s OpSpan) String() string {
	return fmt.Sprintf("%s a[%d:%d] b[%d:%d]",
		s.Op, s.StartA, s.StartA+s.CountA, s.StartB, s.StartB+s.CountB)
}

// LineDiff computes the operations that convert lines a into lines b.
// Spans arrive in ascending order and cover both sequences completely.
func LineDiff(a, b []string) []OpSpan {
	m := difflib.NewMatcherWithJunk(a, b, false, nil)
	codes := m.GetOpCodes()

	spans := make([]OpSpan, 0, len(codes))
	for _, c := range codes {
		span := OpSpan{
			StartA: c.I1,
			CountA: c.I2 - c.I1,
			StartB: c.J1,
			CountB: c.J2 - c.J1,
		}
		switch c.Tag {
		case 'e':
			span.Op = OpEqual
		case 'i':
			span.Op = OpInsert
		case 'd':
			span.Op = OpDelete
		case 'r':
			span.Op = OpReplace
		default:
			continue
		}
		spans = append(spans, span)
	}
	return spans
}

// Changes returns only the non-equal spans of LineDiff.
func Changes(a, b []string) []OpSpan {
	all := LineDiff(a, b)
	out := make([]OpSpan, 0, len(all))
	for _, s := range all {
		if s.Op != OpEqual {
			out = append(out, s)
		}
	}
	return out
}
