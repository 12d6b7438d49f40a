package jsonforge

import "github.com/dshills/jsonforge/script"

// Compile-time interface check.
var _ script.Editor = (*macroAdapter)(nil)

// macroAdapter exposes the editor to the Lua sandbox through the
// script.Editor interface. All calls route through the public editor
// methods, so macro edits are undoable and notify listeners like any
// other edit.
type macroAdapter struct {
	editor *Editor
}

func (a *macroAdapter) Insert(position int, text string) error {
	return a.editor.Insert(position, text)
}

func (a *macroAdapter) Delete(start, end int) error {
	return a.editor.Delete(start, end)
}

func (a *macroAdapter) Replace(start, end int, text string) error {
	return a.editor.Replace(start, end, text)
}

func (a *macroAdapter) Content() string { return a.editor.Content() }

func (a *macroAdapter) Length() int { return a.editor.Document().Len() }

func (a *macroAdapter) Undo() error { return a.editor.Undo() }

func (a *macroAdapter) Redo() error { return a.editor.Redo() }

func (a *macroAdapter) CanUndo() bool { return a.editor.CanUndo() }

func (a *macroAdapter) CanRedo() bool { return a.editor.CanRedo() }

func (a *macroAdapter) Format(indent int) error { return a.editor.Format(indent) }

func (a *macroAdapter) Validate() (bool, string) {
	res := a.editor.Validate()
	return res.Valid, res.Summary()
}

func (a *macroAdapter) PathValue(path string) (any, bool) {
	res, ok := a.editor.PathValue(path)
	if !ok {
		return nil, false
	}
	return res.Value(), true
}

func (a *macroAdapter) SetPathValue(path string, value any) error {
	return a.editor.SetPathValue(path, value)
}

func (a *macroAdapter) RemovePath(path string) error {
	return a.editor.RemovePath(path)
}
