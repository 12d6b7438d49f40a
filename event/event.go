package event

import (
	"sync/atomic"
	"time"
)

// Type identifies a kind of event. Types use dot notation
// (e.g. "document.changed") and are declared by the emitting package.
type Type string

// Event is a single notification delivered to listeners.
type Event struct {
	// Type is the event type.
	Type Type

	// Data is the event payload. Emitters document the concrete
	// payload type for each event type they declare.
	Data any

	// Time is when the event was created.
	Time time.Time
}

// Listener receives events from a Channel.
//
// Update is called synchronously on the goroutine that triggered the
// notification. A returned error is reported to the channel's error
// handler and never stops delivery to other listeners.
type Listener interface {
	// Name identifies the listener in logs and error reports.
	Name() string

	// Enabled reports whether the listener currently wants events.
	// Disabled listeners are skipped without error.
	Enabled() bool

	// Update handles a single event.
	Update(evt Event) error
}

// Toggle is an embeddable enabled flag for listeners.
// The zero value is enabled.
type Toggle struct {
	disabled atomic.Bool
}

// Enable turns event delivery on.
func (t *Toggle) Enable() {
	t.disabled.Store(false)
}

// Disable turns event delivery off.
func (t *Toggle) Disable() {
	t.disabled.Store(true)
}

// Enabled reports whether delivery is on.
func (t *Toggle) Enabled() bool {
	return !t.disabled.Load()
}
