package observe

import (
	"sync"
	"time"

	"github.com/dshills/jsonforge/document"
	"github.com/dshills/jsonforge/event"
	"github.com/dshills/jsonforge/validate"
)

// Validator re-validates a document's full content on every change
// event and records the verdict on the document itself.
type Validator struct {
	event.Toggle

	mu       sync.Mutex
	strategy validate.Strategy
	runs     uint64
	lastRun  time.Time
	last     *validate.Result
}

// NewValidator creates a validator using the given strategy. A nil
// strategy selects validate.NewSimple().
func NewValidator(strategy validate.Strategy) *Validator {
	if strategy == nil {
		strategy = validate.NewSimple()
	}
	return &Validator{strategy: strategy}
}

// Name implements event.Listener.
func (v *Validator) Name() string { return "validator" }

// Update implements event.Listener. Only content changes trigger a
// run; loads, saves, and resets are ignored.
func (v *Validator) Update(evt event.Event) error {
	if evt.Type != document.EventChanged {
		return nil
	}
	doc, ok := document.FromEvent(evt)
	if !ok {
		return nil
	}
	v.ValidateDocument(doc)
	return nil
}

// ValidateDocument validates doc's content with the configured
// strategy, stores the verdict on the document, and returns it. An
// invalid document is a verdict, not an error.
func (v *Validator) ValidateDocument(doc *document.Document) *validate.Result {
	v.mu.Lock()
	strategy := v.strategy
	v.mu.Unlock()

	res := strategy.Validate(doc.Content())
	doc.SetValidationResult(res)

	v.mu.Lock()
	v.runs++
	v.lastRun = time.Now()
	v.last = res
	v.mu.Unlock()
	return res
}

// SetStrategy replaces the validation strategy. A nil strategy is
// ignored.
func (v *Validator) SetStrategy(strategy validate.Strategy) {
	if strategy == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.strategy = strategy
}

// Strategy returns the current strategy.
func (v *Validator) Strategy() validate.Strategy {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.strategy
}

// Count returns how many validation runs have happened.
func (v *Validator) Count() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.runs
}

// LastResult returns the most recent verdict, nil before the first
// run.
func (v *Validator) LastResult() *validate.Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.last
}

// ValidatorStats is a snapshot of validator activity.
type ValidatorStats struct {
	Enabled     bool
	Strategy    string
	Runs        uint64
	LastRun     time.Time
	LastVerdict string
}

// Stats returns a snapshot of validator activity.
func (v *Validator) Stats() ValidatorStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ValidatorStats{
		Enabled:     v.Enabled(),
		Strategy:    v.strategy.Name(),
		Runs:        v.runs,
		LastRun:     v.lastRun,
		LastVerdict: v.last.Summary(),
	}
}
