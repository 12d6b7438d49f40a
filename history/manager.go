package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/jsonforge/document"
)

// DefaultMaxEntries bounds the timeline when NewManager is given a
// non-positive limit.
const DefaultMaxEntries = 100

var (
	// ErrNothingToUndo is returned by Undo on an empty undo side.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo on an empty redo side.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// entry is one executed command on the timeline.
type entry struct {
	cmd Command
	at  time.Time
}

// Manager executes commands against a document and keeps the linear
// undo/redo timeline. The cursor indexes the most recent applied
// command; -1 means nothing is applied.
//
// The lock is released while commands run so listeners that re-enter
// the document do not deadlock.
type Manager struct {
	mu         sync.Mutex
	entries    []*entry
	cursor     int
	maxEntries int
}

// NewManager creates a Manager bounded to maxEntries commands. A
// non-positive limit selects DefaultMaxEntries.
func NewManager(maxEntries int) *Manager {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Manager{cursor: -1, maxEntries: maxEntries}
}

// Execute runs cmd against doc and records it. A command that fails is
// not recorded. Executing while undone commands exist discards the
// redo branch before the new command is appended.
func (m *Manager) Execute(cmd Command, doc *document.Document) error {
	if err := cmd.Execute(doc); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = m.entries[:m.cursor+1]
	m.entries = append(m.entries, &entry{cmd: cmd, at: time.Now()})
	m.cursor++

	if len(m.entries) > m.maxEntries {
		excess := len(m.entries) - m.maxEntries
		m.entries = m.entries[excess:]
		m.cursor -= excess
	}
	return nil
}

// Undo reverses the command at the cursor. On failure the cursor is
// unchanged, so the entry stays undoable.
func (m *Manager) Undo(doc *document.Document) error {
	m.mu.Lock()
	if m.cursor < 0 {
		m.mu.Unlock()
		return ErrNothingToUndo
	}
	e := m.entries[m.cursor]
	m.mu.Unlock()

	if err := e.cmd.Undo(doc); err != nil {
		return err
	}

	m.mu.Lock()
	m.cursor--
	m.mu.Unlock()
	return nil
}

// Redo re-executes the command just past the cursor. On failure the
// cursor is unchanged.
func (m *Manager) Redo(doc *document.Document) error {
	m.mu.Lock()
	if m.cursor+1 >= len(m.entries) {
		m.mu.Unlock()
		return ErrNothingToRedo
	}
	e := m.entries[m.cursor+1]
	m.mu.Unlock()

	if err := e.cmd.Execute(doc); err != nil {
		return err
	}

	m.mu.Lock()
	m.cursor++
	m.mu.Unlock()
	return nil
}

// CanUndo reports whether an applied command exists.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor >= 0
}

// CanRedo reports whether an undone command exists.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor+1 < len(m.entries)
}

// OperationInfo describes the command an Undo or Redo would act on.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// UndoInfo describes the command Undo would reverse.
func (m *Manager) UndoInfo() (OperationInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor < 0 {
		return OperationInfo{}, false
	}
	e := m.entries[m.cursor]
	return OperationInfo{Description: e.cmd.Description(), Timestamp: e.at}, true
}

// RedoInfo describes the command Redo would re-execute.
func (m *Manager) RedoInfo() (OperationInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor+1 >= len(m.entries) {
		return OperationInfo{}, false
	}
	e := m.entries[m.cursor+1]
	return OperationInfo{Description: e.cmd.Description(), Timestamp: e.at}, true
}

// Clear drops the whole timeline.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.cursor = -1
}

// Len returns the number of recorded commands, applied or undone.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Cursor returns the index of the most recent applied command, -1 when
// nothing is applied.
func (m *Manager) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// MaxEntries returns the timeline bound.
func (m *Manager) MaxEntries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxEntries
}

// SetMaxEntries changes the timeline bound, evicting oldest entries as
// needed. A non-positive limit selects DefaultMaxEntries.
func (m *Manager) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxEntries = n
	if len(m.entries) > n {
		excess := len(m.entries) - n
		m.entries = m.entries[excess:]
		m.cursor -= excess
		if m.cursor < -1 {
			m.cursor = -1
		}
	}
}

// Info is a snapshot of the timeline's shape.
type Info struct {
	// Total is the number of recorded commands.
	Total int

	// Cursor is the index of the most recent applied command, -1 when
	// nothing is applied.
	Cursor int

	CanUndo bool
	CanRedo bool

	// UndoCount is how many commands Undo can walk back through.
	UndoCount int

	// RedoCount is how many commands Redo can walk forward through.
	RedoCount int

	// MaxEntries is the timeline bound.
	MaxEntries int
}

// Info returns a snapshot of the timeline's shape.
func (m *Manager) Info() Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Info{
		Total:      len(m.entries),
		Cursor:     m.cursor,
		CanUndo:    m.cursor >= 0,
		CanRedo:    m.cursor+1 < len(m.entries),
		UndoCount:  m.cursor + 1,
		RedoCount:  len(m.entries) - m.cursor - 1,
		MaxEntries: m.maxEntries,
	}
}

// EntryInfo describes one timeline entry in List output.
type EntryInfo struct {
	// Description is the command's description.
	Description string

	// Timestamp is when the command was recorded.
	Timestamp time.Time

	// Current marks the entry at the cursor.
	Current bool
}

// List returns the timeline oldest-first.
func (m *Manager) List() []EntryInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EntryInfo, len(m.entries))
	for i, e := range m.entries {
		out[i] = EntryInfo{
			Description: e.cmd.Description(),
			Timestamp:   e.at,
			Current:     i == m.cursor,
		}
	}
	return out
}
