package fileio

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher errors.
var (
	// ErrWatcherClosed is returned by operations on a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")

	// ErrPathNotExist is returned when watching a path that does not
	// exist.
	ErrPathNotExist = errors.New("path does not exist")

	// ErrAlreadyWatching is returned when a path is watched twice.
	ErrAlreadyWatching = errors.New("already watching path")

	// ErrNotWatching is returned when unwatching an unwatched path.
	ErrNotWatching = errors.New("not watching path")
)

// Op is a bitmask of file operations observed on a watched path.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Has reports whether o contains flag.
func (o Op) Has(flag Op) bool { return o&flag != 0 }

func (o Op) String() string {
	var parts []string
	if o.Has(OpCreate) {
		parts = append(parts, "create")
	}
	if o.Has(OpWrite) {
		parts = append(parts, "write")
	}
	if o.Has(OpRemove) {
		parts = append(parts, "remove")
	}
	if o.Has(OpRename) {
		parts = append(parts, "rename")
	}
	if o.Has(OpChmod) {
		parts = append(parts, "chmod")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Event is a change observed on a watched path.
type Event struct {
	// Path is the file that changed.
	Path string

	// Op is what happened to it.
	Op Op

	// Timestamp is when the event was observed.
	Timestamp time.Time
}

// Handler receives watch events. It is called from the watcher's
// goroutine; handlers that touch shared state must synchronize.
type Handler func(Event)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatchErrorHandler sets a callback for errors reported by the
// underlying notification machinery.
func WithWatchErrorHandler(h func(error)) WatcherOption {
	return func(w *Watcher) {
		if h != nil {
			w.onError = h
		}
	}
}

// Watcher reports on-disk changes to registered paths through a
// Handler callback. It watches individual files, matching the
// editor's one-open-document model.
type Watcher struct {
	mu      sync.RWMutex
	watcher *fsnotify.Watcher
	handler Handler
	onError func(error)
	paths   map[string]bool

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher that invokes handler for every change
// to a watched path. The watcher runs until Close is called.
func NewWatcher(handler Handler, opts ...WatcherOption) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watcher requires a handler")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		handler: handler,
		onError: func(error) {},
		paths:   make(map[string]bool),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Watch starts watching a path. The path must exist.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}
	if w.paths[absPath] {
		return ErrAlreadyWatching
	}

	if err := w.watcher.Add(absPath); err != nil {
		return err
	}
	w.paths[absPath] = true
	return nil
}

// Unwatch stops watching a path.
func (w *Watcher) Unwatch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if !w.paths[absPath] {
		return ErrNotWatching
	}

	if err := w.watcher.Remove(absPath); err != nil {
		return err
	}
	delete(w.paths, absPath)
	return nil
}

// IsWatching reports whether path is being watched.
func (w *Watcher) IsWatching(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return w.paths[absPath]
}

// Watched returns the watched paths, sorted.
func (w *Watcher) Watched() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	paths := make([]string, 0, len(w.paths))
	for p := range w.paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Close stops the watcher. Further calls are no-ops.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.watcher.Close()
}

// processLoop converts fsnotify traffic into Handler calls.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			op := convertOp(fsEvent.Op)
			if op == 0 {
				continue
			}
			w.handler(Event{Path: fsEvent.Name, Op: op, Timestamp: time.Now()})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

// convertOp maps fsnotify operations onto the package's Op bitmask.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}
