package history

import (
	"fmt"

	"github.com/dshills/jsonforge/document"
)

// CommandState tracks a composite's position in its lifecycle.
type CommandState int

const (
	// StateCreated means no child is currently applied.
	StateCreated CommandState = iota

	// StateExecuted means every child is applied.
	StateExecuted

	// StatePartial means some children are applied and some are not,
	// after a failure partway through Execute or Undo.
	StatePartial
)

func (s CommandState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateExecuted:
		return "executed"
	case StatePartial:
		return "partial"
	default:
		return fmt.Sprintf("CommandState(%d)", int(s))
	}
}

// CompositeCommand groups commands into a single undo unit. Children
// execute in order and undo in reverse order.
//
// A failure stops the run where it is: already-applied children stay
// applied and the composite reports StatePartial. There is no
// automatic rollback; each child keeps its own executed flag, so a
// later Undo reverses exactly the children that are applied.
type CompositeCommand struct {
	name     string
	commands []Command
	state    CommandState
}

// NewComposite creates a named group of commands. The name is the
// composite's description in undo listings.
func NewComposite(name string, commands ...Command) *CompositeCommand {
	if name == "" {
		name = "Grouped edit"
	}
	return &CompositeCommand{name: name, commands: commands}
}

// Add appends a command to the group.
func (c *CompositeCommand) Add(cmd Command) {
	if cmd == nil {
		return
	}
	c.commands = append(c.commands, cmd)
}

// Len returns the number of children.
func (c *CompositeCommand) Len() int { return len(c.commands) }

// Commands returns a copy of the child list.
func (c *CompositeCommand) Commands() []Command {
	out := make([]Command, len(c.commands))
	copy(out, c.commands)
	return out
}

// State returns the composite's lifecycle state.
func (c *CompositeCommand) State() CommandState { return c.state }

// Execute implements Command. Children run in order; the first failure
// stops the run and is returned wrapped with the failing step.
func (c *CompositeCommand) Execute(doc *document.Document) error {
	applied := 0
	for i, cmd := range c.commands {
		if err := cmd.Execute(doc); err != nil {
			if applied > 0 {
				c.state = StatePartial
			}
			return fmt.Errorf("%s: step %d/%d (%s): %w", c.name, i+1, len(c.commands), cmd.Description(), err)
		}
		applied++
	}
	c.state = StateExecuted
	return nil
}

// Undo implements Command. Applied children are undone in reverse
// order; children that are not applied are skipped.
func (c *CompositeCommand) Undo(doc *document.Document) error {
	for i := len(c.commands) - 1; i >= 0; i-- {
		cmd := c.commands[i]
		if !cmd.Executed() {
			continue
		}
		if err := cmd.Undo(doc); err != nil {
			c.state = StatePartial
			return fmt.Errorf("%s: undo step %d/%d (%s): %w", c.name, i+1, len(c.commands), cmd.Description(), err)
		}
	}
	c.state = StateCreated
	return nil
}

// Description implements Command.
func (c *CompositeCommand) Description() string { return c.name }

// Executed implements Command. Only a fully applied composite counts
// as executed.
func (c *CompositeCommand) Executed() bool { return c.state == StateExecuted }
