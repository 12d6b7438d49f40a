// Package jsonforge provides an embeddable JSON text editing core: a
// single in-memory document with undo/redo, change notification,
// validation, formatting, path editing, structure analysis, and Lua
// macros.
//
// The Editor type coordinates the lower-level packages:
//   - document: the rune-addressed text buffer and its event channel
//   - history: the bounded undo/redo command stack
//   - observe: the standard listeners (validation, autosave, status)
//   - validate, jsonfmt, jsonpath, analyze: the JSON operations
//   - fileio, script, config: file access, macros, and settings
//
// # Basic use
//
//	ed := jsonforge.New()
//	defer ed.Close()
//
//	_ = ed.Insert(0, "{}")
//	_ = ed.Insert(1, `"name": "demo"`)
//	_ = ed.Format(2)
//
//	if res := ed.Validate(); !res.Valid {
//	    fmt.Println(res.Summary())
//	}
//	_ = ed.SaveFile("demo.json")
//
// Every edit is an undoable command:
//
//	_ = ed.Undo() // back to {"name": "demo"} unformatted
//	_ = ed.Redo()
//
// # Positions
//
// All positions and ranges are rune offsets, so multi-byte characters
// count as one position. Ranges are half-open: [start, end).
//
// # Listeners
//
// Documents notify attached listeners after every change. The editor
// keeps the standard three attached across NewDocument and OpenFile;
// user listeners added with AttachListener carry over the same way.
// Listener failures are isolated and logged, never propagated to the
// caller that made the edit.
//
// # Macros
//
// RunMacro executes Lua against a sandboxed "editor" module:
//
//	err := ed.RunMacro(`
//	    editor.set("count", 1)
//	    editor.format(2)
//	`)
//
// The sandbox has no file, network, or process access; macros reach
// the document only through the editor module.
package jsonforge
