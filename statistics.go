package jsonforge

import (
	"github.com/dshills/jsonforge/document"
	"github.com/dshills/jsonforge/event"
	"github.com/dshills/jsonforge/history"
	"github.com/dshills/jsonforge/observe"
)

// Statistics is a point-in-time snapshot across the editor's
// components. Each section comes from the component's own stats or
// info accessor; none of the numbers reset when the snapshot is taken.
type Statistics struct {
	// Document describes the current document.
	Document document.Info

	// History describes the undo stack.
	History history.Info

	// Validator reports on-change validation activity.
	Validator observe.ValidatorStats

	// Autosave reports background save activity.
	Autosave observe.AutosaveStats

	// Status reports the event history kept for status messages.
	Status observe.StatusStats

	// Channel reports notification delivery for the current document.
	// The counters restart when a new document is created or opened.
	Channel event.Stats
}

// Statistics gathers a snapshot of the document, history, listeners,
// and the notification channel.
func (e *Editor) Statistics() Statistics {
	doc, hist := e.parts()
	return Statistics{
		Document:  doc.Info(),
		History:   hist.Info(),
		Validator: e.validator.Stats(),
		Autosave:  e.autosave.Stats(),
		Status:    e.status.Stats(),
		Channel:   doc.Channel().Stats(),
	}
}
