package document

import "github.com/dshills/jsonforge/event"

// Event types emitted by a Document. Every content mutation emits
// EventChanged; the payload identifies the specific edit.
const (
	// EventChanged is emitted after Insert, Delete, SetContent, and
	// Clear. The payload is InsertData, DeleteData, or ReplaceData.
	EventChanged event.Type = "document.changed"

	// EventLoaded is emitted after LoadFromFile. The payload is
	// LoadData.
	EventLoaded event.Type = "document.loaded"

	// EventSaved is emitted after MarkSaved. The payload is SaveData.
	EventSaved event.Type = "document.saved"

	// EventReset is emitted after Reset. The payload is ResetData.
	EventReset event.Type = "document.reset"

	// EventExternalChange is emitted when the backing file changes on
	// disk outside this process. The payload is ExternalChangeData.
	EventExternalChange event.Type = "document.external_change"
)

// InsertData is the payload for an insert edit.
type InsertData struct {
	// Doc is the document that changed.
	Doc *Document

	// Position is the rune offset the text was inserted at.
	Position int

	// Text is the inserted text.
	Text string

	// Length is the inserted length in runes.
	Length int
}

// DeleteData is the payload for a delete edit.
type DeleteData struct {
	// Doc is the document that changed.
	Doc *Document

	// Start is the first deleted rune offset (inclusive).
	Start int

	// End is the offset one past the last deleted rune (exclusive).
	End int

	// DeletedText is the removed text.
	DeletedText string

	// Length is the removed length in runes.
	Length int
}

// ReplaceData is the payload for a whole-content replacement.
type ReplaceData struct {
	// Doc is the document that changed.
	Doc *Document

	// OldContent is the content before the replacement.
	OldContent string

	// NewContent is the content after the replacement.
	NewContent string

	// FullReplace reports that the entire content was swapped rather
	// than a sub-range edited.
	FullReplace bool
}

// LoadData is the payload for a file load.
type LoadData struct {
	// Doc is the document that was loaded into.
	Doc *Document

	// Path is the file the content came from.
	Path string

	// Size is the loaded length in runes.
	Size int
}

// SaveData is the payload for a save.
type SaveData struct {
	// Doc is the document that was saved.
	Doc *Document

	// Path is the file the content was written to.
	Path string
}

// ResetData is the payload for a reset.
type ResetData struct {
	// Doc is the document that was reset.
	Doc *Document
}

// ExternalChangeData is the payload for an on-disk change to the
// backing file.
type ExternalChangeData struct {
	// Doc is the document whose backing file changed.
	Doc *Document

	// Path is the file that changed.
	Path string
}

// FromEvent extracts the document from a document event payload. It
// returns false for events that did not originate from a Document.
func FromEvent(evt event.Event) (*Document, bool) {
	switch data := evt.Data.(type) {
	case InsertData:
		return data.Doc, true
	case DeleteData:
		return data.Doc, true
	case ReplaceData:
		return data.Doc, true
	case LoadData:
		return data.Doc, true
	case SaveData:
		return data.Doc, true
	case ResetData:
		return data.Doc, true
	case ExternalChangeData:
		return data.Doc, true
	default:
		return nil, false
	}
}
