// Package history provides undo/redo for document edits.
//
// Edits are encapsulated as commands (the Command interface) so they
// can be executed, undone, and re-executed. Built-in commands:
//   - InsertCommand: insert text at a rune offset
//   - DeleteCommand: delete a rune range, capturing the removed text
//   - ReplaceAllCommand: swap the entire content
//   - CompositeCommand: group commands as a single undo unit
//
// # The timeline
//
// The Manager keeps a single bounded list of executed commands with a
// cursor marking the current position:
//
//	mgr := history.NewManager(100)
//
//	mgr.Execute(history.NewInsert(0, "{}"), doc)
//	mgr.Undo(doc)
//	mgr.Redo(doc)
//
// Everything at or before the cursor is undoable; everything after it
// is redoable. Executing a new command while undone commands exist
// truncates the redo branch: history is linear, never a tree.
//
// # Failure handling
//
// A command that fails to execute is never recorded. A failed undo or
// redo leaves the cursor where it was, so the timeline still matches
// what was applied to the document.
package history
