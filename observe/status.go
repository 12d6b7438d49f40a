package observe

import (
	"fmt"
	"sync"
	"time"

	"github.com/rivo/uniseg"

	"github.com/dshills/jsonforge/document"
	"github.com/dshills/jsonforge/event"
)

// MaxEventHistory bounds the status feed; older entries are dropped.
const MaxEventHistory = 20

// Entry is one line of the status feed.
type Entry struct {
	// Type is the event that produced the entry.
	Type event.Type

	// Time is when it was observed.
	Time time.Time

	// Message is the human-readable line.
	Message string
}

// Status turns document events into human-readable status lines and
// keeps a short bounded history of them. Character counts are grapheme
// counts, matching what a user would call a character.
type Status struct {
	event.Toggle

	mu      sync.Mutex
	message string
	entries []Entry
	perType map[event.Type]int
}

// NewStatus creates a status listener. The initial message is "Ready".
func NewStatus() *Status {
	return &Status{
		message: "Ready",
		perType: make(map[event.Type]int),
	}
}

// Name implements event.Listener.
func (s *Status) Name() string { return "status" }

// Update implements event.Listener.
func (s *Status) Update(evt event.Event) error {
	msg := describe(evt)

	s.mu.Lock()
	s.message = msg
	s.perType[evt.Type]++
	s.entries = append(s.entries, Entry{Type: evt.Type, Time: evt.Time, Message: msg})
	if len(s.entries) > MaxEventHistory {
		s.entries = s.entries[len(s.entries)-MaxEventHistory:]
	}
	s.mu.Unlock()
	return nil
}

// describe renders a status line for a document event.
func describe(evt event.Event) string {
	switch data := evt.Data.(type) {
	case document.InsertData:
		return fmt.Sprintf("Inserted %d characters", uniseg.GraphemeClusterCount(data.Text))
	case document.DeleteData:
		return fmt.Sprintf("Deleted %d characters", uniseg.GraphemeClusterCount(data.DeletedText))
	case document.ReplaceData:
		return "Content replaced"
	case document.SaveData:
		return fmt.Sprintf("Saved: %s", data.Path)
	case document.LoadData:
		return fmt.Sprintf("Loaded: %s (%d characters)", data.Path, data.Size)
	case document.ResetData:
		return "Document reset"
	case document.ExternalChangeData:
		return fmt.Sprintf("File changed on disk: %s", data.Path)
	default:
		return fmt.Sprintf("Event: %s", evt.Type)
	}
}

// Current returns the most recent status line.
func (s *Status) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Recent returns the last n entries, oldest first. When fewer exist,
// all are returned.
func (s *Status) Recent(n int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]Entry, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

// History returns a copy of the whole feed, oldest first.
func (s *Status) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear empties the feed and resets the message to "Ready". Per-type
// counters survive; they describe the document's life, not the feed.
func (s *Status) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.message = "Ready"
}

// StatusStats is a snapshot of status activity.
type StatusStats struct {
	Enabled bool
	Current string
	Entries int
	PerType map[event.Type]int
}

// Stats returns a snapshot of status activity.
func (s *Status) Stats() StatusStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	perType := make(map[event.Type]int, len(s.perType))
	for k, v := range s.perType {
		perType[k] = v
	}
	return StatusStats{
		Enabled: s.Enabled(),
		Current: s.message,
		Entries: len(s.entries),
		PerType: perType,
	}
}
