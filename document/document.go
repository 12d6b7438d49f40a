// Package document implements the in-memory text document at the core
// of the editor. A Document owns its content, addressed in rune
// offsets, plus the identity and bookkeeping that travel with it: file
// path, modified flag, edit counter, timestamps, and the most recent
// validation verdict.
//
// Every document owns an event.Channel. Mutations notify the channel
// synchronously, after the document's own state is updated, so
// listeners always observe the post-edit content. Mutators validate
// before touching state: a rejected call leaves the document unchanged
// and emits nothing.
package document

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/dshills/jsonforge/event"
	"github.com/dshills/jsonforge/validate"
)

// Document is an in-memory text document with change notification.
type Document struct {
	mu sync.RWMutex

	id       uuid.UUID
	path     string
	content  []rune
	modified bool
	readOnly bool

	editCount  uint64
	createdAt  time.Time
	modifiedAt time.Time

	lastValidation *validate.Result

	channel *event.Channel
}

// New creates a document. Without options it is empty, untitled,
// writable, and unmodified.
func New(opts ...Option) *Document {
	now := time.Now()
	d := &Document{
		id:         uuid.New(),
		createdAt:  now,
		modifiedAt: now,
		channel:    event.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Insert inserts text at the given rune offset. Position 0 is before
// the first rune; position Len() appends.
func (d *Document) Insert(position int, text string) error {
	d.mu.Lock()
	if d.readOnly {
		d.mu.Unlock()
		return ErrReadOnly
	}
	if position < 0 || position > len(d.content) {
		length := len(d.content)
		d.mu.Unlock()
		return fmt.Errorf("insert at %d: %w (content length %d)", position, ErrPositionOutOfRange, length)
	}

	runes := []rune(text)
	next := make([]rune, 0, len(d.content)+len(runes))
	next = append(next, d.content[:position]...)
	next = append(next, runes...)
	next = append(next, d.content[position:]...)
	d.content = next
	d.touch()
	d.mu.Unlock()

	d.channel.Notify(EventChanged, InsertData{
		Doc:      d,
		Position: position,
		Text:     text,
		Length:   len(runes),
	})
	return nil
}

// Delete removes the rune range [start, end). An empty range is a
// valid edit that removes nothing.
func (d *Document) Delete(start, end int) error {
	d.mu.Lock()
	if d.readOnly {
		d.mu.Unlock()
		return ErrReadOnly
	}
	if err := d.checkRange(start, end); err != nil {
		d.mu.Unlock()
		return err
	}

	deleted := string(d.content[start:end])
	next := make([]rune, 0, len(d.content)-(end-start))
	next = append(next, d.content[:start]...)
	next = append(next, d.content[end:]...)
	d.content = next
	d.touch()
	d.mu.Unlock()

	d.channel.Notify(EventChanged, DeleteData{
		Doc:         d,
		Start:       start,
		End:         end,
		DeletedText: deleted,
		Length:      end - start,
	})
	return nil
}

// GetText returns the text in the rune range [start, end).
func (d *Document) GetText(start, end int) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if err := d.checkRange(start, end); err != nil {
		return "", err
	}
	return string(d.content[start:end]), nil
}

// SetContent replaces the entire content. The replacement is a single
// edit; undo support for it lives in the history package, not here.
func (d *Document) SetContent(text string) error {
	d.mu.Lock()
	if d.readOnly {
		d.mu.Unlock()
		return ErrReadOnly
	}
	old := string(d.content)
	d.content = []rune(text)
	d.touch()
	d.mu.Unlock()

	d.channel.Notify(EventChanged, ReplaceData{
		Doc:         d,
		OldContent:  old,
		NewContent:  text,
		FullReplace: true,
	})
	return nil
}

// Clear replaces the content with the empty string. The document
// keeps its path and identity; only the text is dropped.
func (d *Document) Clear() error {
	return d.SetContent("")
}

// LoadFromFile replaces the content with text read from path. The
// document becomes file-backed and unmodified, and the edit counter
// restarts; loading begins a new editing session on the same document.
func (d *Document) LoadFromFile(path, text string) error {
	d.mu.Lock()
	if d.readOnly {
		d.mu.Unlock()
		return ErrReadOnly
	}
	d.path = path
	d.content = []rune(text)
	d.modified = false
	d.editCount = 0
	d.modifiedAt = time.Now()
	d.lastValidation = nil
	size := len(d.content)
	d.mu.Unlock()

	d.channel.Notify(EventLoaded, LoadData{Doc: d, Path: path, Size: size})
	return nil
}

// MarkSaved records that the content was written to path and clears
// the modified flag. An empty path keeps the current one; a document
// with no path at all cannot be marked saved.
func (d *Document) MarkSaved(path string) error {
	d.mu.Lock()
	if path == "" && d.path == "" {
		d.mu.Unlock()
		return ErrNoPath
	}
	if path != "" {
		d.path = path
	}
	d.modified = false
	saved := d.path
	d.mu.Unlock()

	d.channel.Notify(EventSaved, SaveData{Doc: d, Path: saved})
	return nil
}

// Reset returns an untitled document to its pristine state: empty
// content, unmodified, zero edits, no validation verdict. File-backed
// documents refuse with ErrFileBacked; reopen the file instead.
func (d *Document) Reset() error {
	d.mu.Lock()
	if d.readOnly {
		d.mu.Unlock()
		return ErrReadOnly
	}
	if d.path != "" {
		d.mu.Unlock()
		return fmt.Errorf("reset %s: %w", d.path, ErrFileBacked)
	}
	d.content = nil
	d.modified = false
	d.editCount = 0
	d.modifiedAt = time.Now()
	d.lastValidation = nil
	d.mu.Unlock()

	d.channel.Notify(EventReset, ResetData{Doc: d})
	return nil
}

// Content returns the full content as a string.
func (d *Document) Content() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return string(d.content)
}

// Len returns the content length in runes.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.content)
}

// Lines returns the number of lines. An empty document has zero.
func (d *Document) Lines() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.content) == 0 {
		return 0
	}
	return strings.Count(string(d.content), "\n") + 1
}

// Graphemes returns the content length in grapheme clusters, the
// user-perceived character count.
func (d *Document) Graphemes() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return uniseg.GraphemeClusterCount(string(d.content))
}

// ID returns the document's unique identifier.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Path returns the backing file path, "" for untitled documents.
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// Modified reports whether the content changed since the last load or
// save.
func (d *Document) Modified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modified
}

// ReadOnly reports whether mutations are refused.
func (d *Document) ReadOnly() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.readOnly
}

// SetReadOnly switches read-only mode.
func (d *Document) SetReadOnly(readOnly bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readOnly = readOnly
}

// EditCount returns how many content mutations the document has seen
// since creation or the last load. Undoing an edit mutates the content
// again, so it increments the counter rather than rolling it back.
func (d *Document) EditCount() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.editCount
}

// CreatedAt returns when the document was created.
func (d *Document) CreatedAt() time.Time {
	return d.createdAt
}

// ModifiedAt returns when the content last changed.
func (d *Document) ModifiedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modifiedAt
}

// LastValidation returns the most recent validation verdict, nil when
// the document has not been validated.
func (d *Document) LastValidation() *validate.Result {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastValidation
}

// SetValidationResult records a validation verdict on the document.
// Only the latest verdict is kept.
func (d *Document) SetValidationResult(res *validate.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastValidation = res
}

// Attach registers a listener on the document's event channel.
func (d *Document) Attach(l event.Listener) {
	d.channel.Attach(l)
}

// Detach removes a listener from the document's event channel.
func (d *Document) Detach(l event.Listener) {
	d.channel.Detach(l)
}

// Listeners returns the number of attached listeners.
func (d *Document) Listeners() int {
	return d.channel.Len()
}

// Notify emits an event on the document's channel. Document mutators
// emit their own events; Notify exists for surrounding machinery such
// as file watchers injecting EventExternalChange.
func (d *Document) Notify(t event.Type, data any) {
	d.channel.Notify(t, data)
}

// Channel returns the document's event channel.
func (d *Document) Channel() *event.Channel {
	return d.channel
}

// Info is a point-in-time snapshot of document state.
type Info struct {
	ID         uuid.UUID
	Path       string
	Length     int
	Lines      int
	Graphemes  int
	Modified   bool
	ReadOnly   bool
	EditCount  uint64
	CreatedAt  time.Time
	ModifiedAt time.Time
	Validation string
}

// Info returns a snapshot of the document's state.
func (d *Document) Info() Info {
	d.mu.RLock()
	defer d.mu.RUnlock()

	text := string(d.content)
	lines := 0
	if len(text) > 0 {
		lines = strings.Count(text, "\n") + 1
	}
	return Info{
		ID:         d.id,
		Path:       d.path,
		Length:     len(d.content),
		Lines:      lines,
		Graphemes:  uniseg.GraphemeClusterCount(text),
		Modified:   d.modified,
		ReadOnly:   d.readOnly,
		EditCount:  d.editCount,
		CreatedAt:  d.createdAt,
		ModifiedAt: d.modifiedAt,
		Validation: d.lastValidation.Summary(),
	}
}

// touch records a content mutation. Callers hold the write lock.
func (d *Document) touch() {
	d.modified = true
	d.modifiedAt = time.Now()
	d.editCount++
}

// checkRange validates a [start, end) rune range. Callers hold a lock.
func (d *Document) checkRange(start, end int) error {
	if start < 0 || end < start || end > len(d.content) {
		return fmt.Errorf("range [%d, %d): %w (content length %d)", start, end, ErrRangeInvalid, len(d.content))
	}
	return nil
}
