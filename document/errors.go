package document

import "errors"

// Sentinel errors returned by document operations. Position and range
// failures are wrapped with the offending values; match with errors.Is.
var (
	// ErrReadOnly is returned when a mutation is attempted on a
	// read-only document.
	ErrReadOnly = errors.New("document is read-only")

	// ErrPositionOutOfRange is returned when an insert position is
	// negative or beyond the end of the content.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrRangeInvalid is returned when a [start, end) range is
	// negative, inverted, or extends beyond the content.
	ErrRangeInvalid = errors.New("invalid range")

	// ErrFileBacked is returned by Reset on a document that has a
	// file path.
	ErrFileBacked = errors.New("document is file-backed")

	// ErrNoPath is returned by MarkSaved when the document has no
	// file path to record.
	ErrNoPath = errors.New("document has no file path")
)
