package observe

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/jsonforge/document"
	"github.com/dshills/jsonforge/event"
	"github.com/dshills/jsonforge/fileio"
)

// DefaultInterval is the autosave gate used when none is configured.
const DefaultInterval = 5 * time.Second

// Autosave writes periodic snapshots of a changing document. Snapshots
// go to hidden companion files in the autosave directory, never to the
// document's own path; a crash can lose at most one interval of edits
// without autosave ever clobbering the real file.
type Autosave struct {
	event.Toggle

	mu               sync.Mutex
	dir              string
	interval         time.Duration
	lastSave         time.Time
	lastPath         string
	changesSinceSave int
	totalSaves       uint64
}

// NewAutosave creates an autosave listener writing into dir. An empty
// dir selects "autosave" under the working directory; a non-positive
// interval selects DefaultInterval. The interval clock starts at
// creation, so a fresh listener does not save on the first change.
func NewAutosave(dir string, interval time.Duration) *Autosave {
	if dir == "" {
		dir = "autosave"
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Autosave{
		dir:      dir,
		interval: interval,
		lastSave: time.Now(),
	}
}

// Name implements event.Listener.
func (a *Autosave) Name() string { return "autosave" }

// Update implements event.Listener. Every content change counts; a
// snapshot is written once the interval has elapsed since the last
// one. Write failures are returned so the channel reports them.
func (a *Autosave) Update(evt event.Event) error {
	if evt.Type != document.EventChanged {
		return nil
	}
	doc, ok := document.FromEvent(evt)
	if !ok {
		return nil
	}

	a.mu.Lock()
	a.changesSinceSave++
	due := time.Since(a.lastSave) >= a.interval
	a.mu.Unlock()

	if !due {
		return nil
	}
	return a.save(doc)
}

// ForceSave writes a snapshot immediately, regardless of the interval.
func (a *Autosave) ForceSave(doc *document.Document) error {
	return a.save(doc)
}

func (a *Autosave) save(doc *document.Document) error {
	path := a.target(doc)
	if err := fileio.Write(path, doc.Content()); err != nil {
		return fmt.Errorf("autosave: %w", err)
	}

	a.mu.Lock()
	a.lastSave = time.Now()
	a.lastPath = path
	a.changesSinceSave = 0
	a.totalSaves++
	a.mu.Unlock()
	return nil
}

// target names the snapshot file for doc. File-backed documents reuse
// their base name; untitled ones get a stable name from the document
// ID.
func (a *Autosave) target(doc *document.Document) string {
	a.mu.Lock()
	dir := a.dir
	a.mu.Unlock()

	if p := doc.Path(); p != "" {
		return filepath.Join(dir, ".autosave_"+filepath.Base(p))
	}
	return filepath.Join(dir, fmt.Sprintf(".autosave_untitled_%s.json", doc.ID().String()[:8]))
}

// SetInterval changes the autosave gate. Non-positive values select
// DefaultInterval.
func (a *Autosave) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.interval = interval
}

// Interval returns the autosave gate.
func (a *Autosave) Interval() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.interval
}

// Dir returns the autosave directory.
func (a *Autosave) Dir() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dir
}

// AutosaveStats is a snapshot of autosave activity.
type AutosaveStats struct {
	Enabled          bool
	Dir              string
	Interval         time.Duration
	TotalSaves       uint64
	ChangesSinceSave int
	LastSave         time.Time
	LastPath         string
}

// Stats returns a snapshot of autosave activity.
func (a *Autosave) Stats() AutosaveStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AutosaveStats{
		Enabled:          a.Enabled(),
		Dir:              a.dir,
		Interval:         a.interval,
		TotalSaves:       a.totalSaves,
		ChangesSinceSave: a.changesSinceSave,
		LastSave:         a.lastSave,
		LastPath:         a.lastPath,
	}
}
