package diff

import (
	"fmt"

	"github.com/dshills/textforge/internal/engine/editor"
	"github.com/dshills/textforge/internal/engine/history"
)

// Apply edits the buffer into target, expressing the diff as line
// commands inside one transaction: the whole patch is a single undo
// unit. Spans run in descending line order so earlier indices stay
// valid while later lines shift. Returns the number of changed spans.
// An empty target yields one empty line, since a buffer is never
// truly empty.
func Apply(ed *editor.Editor, m *history.Manager, target []string) (int, error) {
	spans := Changes(ed.Buffer().Lines(), target)
	if len(spans) == 0 {
		return 0, nil
	}

	m.Begin("apply patch")
	for i := len(spans) - 1; i >= 0; i-- {
		if err := applySpan(ed, m, spans[i], target); err != nil {
			if cerr := m.Cancel(ed); cerr != nil {
				return 0, fmt.Errorf("apply patch: %v (rollback: %w)", err, cerr)
			}
			return 0, fmt.Errorf("apply patch: %w", err)
		}
	}
	if err := m.Commit(); err != nil {
		return 0, fmt.Errorf("apply patch: %w", err)
	}
	return len(spans), nil
}

func applySpan(ed *editor.Editor, m *history.Manager, s OpSpan, target []string) error {
	switch s.Op {
	case OpReplace:
		overlap := s.CountA
		if s.CountB < overlap {
			overlap = s.CountB
		}
		for i := 0; i < overlap; i++ {
			if err := m.Execute(ed, history.NewReplaceLine(s.StartA+i, target[s.StartB+i])); err != nil {
				return err
			}
		}
		for i := overlap; i < s.CountB; i++ {
			if err := m.Execute(ed, history.NewInsertLine(s.StartA+i, target[s.StartB+i])); err != nil {
				return err
			}
		}
		for i := s.CountA; i > overlap; i-- {
			if err := m.Execute(ed, history.NewDeleteLine(s.StartA+overlap)); err != nil {
				return err
			}
		}
	case OpDelete:
		for i := 0; i < s.CountA; i++ {
			if err := m.Execute(ed, history.NewDeleteLine(s.StartA)); err != nil {
				return err
			}
		}
	case OpInsert:
		for i := 0; i < s.CountB; i++ {
			if err := m.Execute(ed, history.NewInsertLine(s.StartA+i, target[s.StartB+i])); err != nil {
				return err
			}
		}
	}
	return nil
}
