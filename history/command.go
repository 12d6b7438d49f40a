package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/jsonforge/document"
)

// Command is an edit that can be executed against a document and
// undone again. Undo must restore the exact content Execute changed,
// assuming the document has not been edited in between; the Manager
// guarantees that ordering.
type Command interface {
	// Execute applies the command to the document.
	Execute(doc *document.Document) error

	// Undo reverses a previously executed command.
	Undo(doc *document.Document) error

	// Description returns a human-readable description of the command.
	Description() string

	// Executed reports whether the command is currently applied.
	Executed() bool
}

// InsertCommand inserts text at a rune offset.
type InsertCommand struct {
	position int
	text     string
	runes    int
	desc     string
	executed bool
}

// NewInsert creates a command that inserts text at position.
func NewInsert(position int, text string) *InsertCommand {
	return &InsertCommand{
		position: position,
		text:     text,
		runes:    utf8.RuneCountInString(text),
		desc:     describeInsert(text),
	}
}

// Execute implements Command.
func (c *InsertCommand) Execute(doc *document.Document) error {
	if err := doc.Insert(c.position, c.text); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo implements Command. It deletes the inserted range.
func (c *InsertCommand) Undo(doc *document.Document) error {
	if err := doc.Delete(c.position, c.position+c.runes); err != nil {
		return err
	}
	c.executed = false
	return nil
}

// Description implements Command.
func (c *InsertCommand) Description() string { return c.desc }

// Executed implements Command.
func (c *InsertCommand) Executed() bool { return c.executed }

// DeleteCommand deletes a rune range. The removed text is captured at
// execution so undo can restore it.
type DeleteCommand struct {
	start    int
	end      int
	deleted  string
	desc     string
	executed bool
}

// NewDelete creates a command that deletes the range [start, end).
func NewDelete(start, end int) *DeleteCommand {
	return &DeleteCommand{
		start: start,
		end:   end,
		desc:  describeDelete(end - start),
	}
}

// Execute implements Command.
func (c *DeleteCommand) Execute(doc *document.Document) error {
	deleted, err := doc.GetText(c.start, c.end)
	if err != nil {
		return err
	}
	if err := doc.Delete(c.start, c.end); err != nil {
		return err
	}
	c.deleted = deleted
	c.executed = true
	return nil
}

// Undo implements Command. It re-inserts the captured text.
func (c *DeleteCommand) Undo(doc *document.Document) error {
	if err := doc.Insert(c.start, c.deleted); err != nil {
		return err
	}
	c.executed = false
	return nil
}

// Description implements Command.
func (c *DeleteCommand) Description() string { return c.desc }

// Executed implements Command.
func (c *DeleteCommand) Executed() bool { return c.executed }

// DeletedText returns the text removed by the last execution.
func (c *DeleteCommand) DeletedText() string { return c.deleted }

// ReplaceAllCommand swaps the entire document content. The previous
// content is captured at execution so undo can restore it. Format and
// path-level edits are recorded this way.
type ReplaceAllCommand struct {
	newContent string
	oldContent string
	desc       string
	executed   bool
}

// NewReplaceAll creates a command that replaces the whole content.
// The description names the operation in undo listings ("Format JSON",
// "Set user.name"); empty falls back to a generic one.
func NewReplaceAll(newContent, description string) *ReplaceAllCommand {
	if description == "" {
		description = "Replace content"
	}
	return &ReplaceAllCommand{newContent: newContent, desc: description}
}

// Execute implements Command.
func (c *ReplaceAllCommand) Execute(doc *document.Document) error {
	old := doc.Content()
	if err := doc.SetContent(c.newContent); err != nil {
		return err
	}
	c.oldContent = old
	c.executed = true
	return nil
}

// Undo implements Command.
func (c *ReplaceAllCommand) Undo(doc *document.Document) error {
	if err := doc.SetContent(c.oldContent); err != nil {
		return err
	}
	c.executed = false
	return nil
}

// Description implements Command.
func (c *ReplaceAllCommand) Description() string { return c.desc }

// Executed implements Command.
func (c *ReplaceAllCommand) Executed() bool { return c.executed }

func describeInsert(text string) string {
	if text == "\n" {
		return "Insert newline"
	}
	if text == "\t" {
		return "Insert tab"
	}
	if n := utf8.RuneCountInString(text); n > 20 {
		return fmt.Sprintf("Insert %d characters", n)
	}
	return fmt.Sprintf("Insert %q", text)
}

func describeDelete(count int) string {
	if count == 1 {
		return "Delete 1 character"
	}
	return fmt.Sprintf("Delete %d characters", count)
}
