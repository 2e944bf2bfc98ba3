package history

import (
	"errors"
	"fmt"

	"github.com/dshills/textforge/internal/engine/editor"
)

// Compound groups commands into one undo unit. Execution runs the
// sub-commands in order, skipping ones that report no effect; a hard
// failure rolls the already-applied prefix back. Undo runs the
// sub-commands' undo in strict reverse order.
type Compound struct {
	name string
	cmds []Command

	applied bool
}

// NewCompound creates a compound command. The name labels the unit in
// history listings; sub-commands may be added now or with Add.
func NewCompound(name string, cmds ...Command) *Compound {
	return &Compound{name: name, cmds: cmds}
}

// Add appends a sub-command.
func (c *Compound) Add(cmd Command) {
	c.cmds = append(c.cmds, cmd)
}

// Len returns the number of sub-commands.
func (c *Compound) Len() int {
	return len(c.cmds)
}

// Empty reports whether the compound has no sub-commands.
func (c *Compound) Empty() bool {
	return len(c.cmds) == 0
}

func (c *Compound) Kind() Kind { return KindCompound }

func (c *Compound) Describe() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("Compound operation (%d steps)", len(c.cmds))
}

func (c *Compound) execute(ed *editor.Editor) error {
	executed := 0
	for _, cmd := range c.cmds {
		err := cmd.execute(ed)
		if err == nil {
			executed++
			continue
		}
		if errors.Is(err, ErrNoOp) {
			continue
		}
		// Roll back what already ran, in reverse.
		for i := len(c.cmds) - 1; i >= 0; i-- {
			_ = c.cmds[i].undo(ed)
		}
		return err
	}
	if executed == 0 {
		return ErrNoOp
	}
	c.applied = true
	return nil
}

func (c *Compound) undo(ed *editor.Editor) error {
	if !c.applied {
		return nil
	}
	for i := len(c.cmds) - 1; i >= 0; i-- {
		if err := c.cmds[i].undo(ed); err != nil {
			return err
		}
	}
	c.applied = false
	return nil
}
