package jsonforge

import "errors"

// Editor errors.
var (
	// ErrNoFilePath indicates a save was requested for a document that
	// has never been given a path.
	ErrNoFilePath = errors.New("no file path for save")

	// ErrEmptyPath indicates an operation received an empty path.
	ErrEmptyPath = errors.New("empty path")

	// ErrEditorClosed indicates the editor has been closed.
	ErrEditorClosed = errors.New("editor is closed")
)
