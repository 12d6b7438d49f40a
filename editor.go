package jsonforge

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/dshills/jsonforge/analyze"
	"github.com/dshills/jsonforge/config"
	"github.com/dshills/jsonforge/document"
	"github.com/dshills/jsonforge/event"
	"github.com/dshills/jsonforge/fileio"
	"github.com/dshills/jsonforge/history"
	"github.com/dshills/jsonforge/jsonfmt"
	"github.com/dshills/jsonforge/jsonpath"
	"github.com/dshills/jsonforge/observe"
	"github.com/dshills/jsonforge/script"
	"github.com/dshills/jsonforge/validate"
)

// Editor is the central coordinator for a single JSON document. It
// wires the document, the undo history, and the standard listeners
// together, and adds formatting, path editing, analysis, validation,
// file watching, and Lua macros on top.
//
// All methods are safe for concurrent use. The document and history
// carry their own locks; the editor lock only guards component wiring,
// so listeners may call back into the editor.
type Editor struct {
	mu sync.RWMutex

	cfg    *config.Config
	logger *Logger

	doc  *document.Document
	hist *history.Manager

	validator *observe.Validator
	autosave  *observe.Autosave
	status    *observe.Status
	extra     []event.Listener

	analyzers []analyze.Analyzer

	watcher   *fileio.Watcher
	watchPath string

	engine *script.Engine

	// Option state, resolved against the config during New.
	strategy         validate.Strategy
	maxHistory       int
	autosaveDir      string
	autosaveInterval time.Duration
	autosaveForce    bool
	autosaveOff      bool
	watchFiles       bool
	readOnly         bool

	closed bool
}

// New creates an editor holding an empty untitled document. Unset
// options fall back to the configuration, which itself defaults to
// config.Default().
func New(opts ...Option) *Editor {
	e := &Editor{}
	for _, opt := range opts {
		opt(e)
	}

	if e.cfg == nil {
		e.cfg = config.Default()
	}
	if e.logger == nil {
		e.logger = NewLogger(LoggerConfig{
			Level:  ParseLogLevel(e.cfg.Logging.Level),
			Prefix: e.cfg.Logging.Prefix,
		})
	}
	if e.strategy == nil {
		e.strategy = validate.NewSimple(validate.WithAllowEmpty(e.cfg.Validation.AllowEmpty))
	}
	if e.maxHistory <= 0 {
		e.maxHistory = e.cfg.Editor.MaxUndoHistory
	}
	if e.autosaveDir == "" {
		e.autosaveDir = e.cfg.Files.AutosaveDir
	}
	if e.autosaveInterval <= 0 {
		e.autosaveInterval = time.Duration(e.cfg.Files.AutosaveInterval) * time.Second
	}
	if e.cfg.Files.WatchFile {
		e.watchFiles = true
	}
	if len(e.analyzers) == 0 {
		e.analyzers = []analyze.Analyzer{analyze.NewBasic(), analyze.NewStatistics()}
	}

	e.hist = history.NewManager(e.maxHistory)

	e.validator = observe.NewValidator(e.strategy)
	if !e.cfg.Validation.OnChange {
		e.validator.Disable()
	}

	e.autosave = observe.NewAutosave(e.autosaveDir, e.autosaveInterval)
	saving := e.cfg.Files.Autosave || e.autosaveForce
	if e.autosaveOff || !saving {
		e.autosave.Disable()
	}

	e.status = observe.NewStatus()

	doc := e.newDoc()
	doc.SetReadOnly(e.readOnly)
	e.doc = doc
	return e
}

// newDoc creates a document with the standard and user listeners
// attached.
func (e *Editor) newDoc() *document.Document {
	doc := document.New(document.WithChannelOptions(event.WithErrorHandler(e.listenerError)))
	doc.Attach(e.validator)
	doc.Attach(e.autosave)
	doc.Attach(e.status)
	for _, l := range e.extra {
		doc.Attach(l)
	}
	return doc
}

// listenerError logs listener failures surfaced by the document
// channel. Autosave write errors arrive here.
func (e *Editor) listenerError(listener string, evt event.Event, err error) {
	e.logger.WithComponent(listener).Warn("event %s: %v", evt.Type, err)
}

// parts returns the current document and history under a short read
// lock. Operations run without holding the editor lock so listeners
// may call back in.
func (e *Editor) parts() (*document.Document, *history.Manager) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc, e.hist
}

// Document lifecycle.

// NewDocument discards the current document and starts an empty
// untitled one. The undo history is cleared; listeners carry over to
// the new document.
func (e *Editor) NewDocument() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.hist.Clear()
	doc := e.newDoc()
	doc.SetReadOnly(e.readOnly)
	e.doc = doc
	e.rearmWatcher("")
	e.logger.Debug("new document %s", doc.ID())
}

// OpenFile loads path into a fresh document. The previous document and
// its entire undo history are discarded; the standard and user
// listeners are re-attached to the new document before it loads, so
// they see the load event.
func (e *Editor) OpenFile(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	content, err := fileio.Read(path)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.hist.Clear()
	doc := e.newDoc()
	e.doc = doc
	if err := doc.LoadFromFile(path, content); err != nil {
		return err
	}
	doc.SetReadOnly(e.readOnly)
	e.rearmWatcher(path)
	e.logger.Info("opened %s (%d characters)", path, doc.Len())
	return nil
}

// SaveFile writes the document to path, or to its current path when
// path is empty. Saving an untitled document without an explicit path
// returns ErrNoFilePath. Parent directories are created as needed.
func (e *Editor) SaveFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := e.doc
	if path == "" {
		path = doc.Path()
	}
	if path == "" {
		return ErrNoFilePath
	}

	// Quiet the watcher so our own write is not reported back as an
	// external change.
	unwatched := false
	if e.watcher != nil && e.watchPath != "" && samePath(e.watchPath, path) {
		_ = e.watcher.Unwatch(e.watchPath)
		e.watchPath = ""
		unwatched = true
	}

	if err := fileio.Write(path, doc.Content()); err != nil {
		if unwatched {
			e.rearmWatcher(path)
		}
		return err
	}
	if err := doc.MarkSaved(path); err != nil {
		return err
	}
	e.rearmWatcher(path)
	e.logger.Info("saved %s (%d characters)", path, doc.Len())
	return nil
}

// Close releases the file watcher and the macro engine. The document
// and its history remain readable afterwards; only watching and macro
// execution stop. Close is idempotent.
func (e *Editor) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	watcher := e.watcher
	engine := e.engine
	e.watcher = nil
	e.engine = nil
	e.watchPath = ""
	e.mu.Unlock()

	// The watcher waits for its goroutine, which may be calling back
	// into the editor; close it outside the lock.
	var first error
	if engine != nil {
		if err := engine.Close(); err != nil {
			first = err
		}
	}
	if watcher != nil {
		if err := watcher.Close(); err != nil && first == nil {
			first = err
		}
	}
	e.logger.Debug("editor closed")
	return first
}

// Editing.

// Insert adds text at a rune position as an undoable command.
func (e *Editor) Insert(position int, text string) error {
	doc, hist := e.parts()
	return hist.Execute(history.NewInsert(position, text), doc)
}

// Delete removes the rune range [start, end) as an undoable command.
func (e *Editor) Delete(start, end int) error {
	doc, hist := e.parts()
	return hist.Execute(history.NewDelete(start, end), doc)
}

// Replace swaps the rune range [start, end) for text. The delete and
// insert run as one composite command, so a single Undo restores the
// original range.
func (e *Editor) Replace(start, end int, text string) error {
	doc, hist := e.parts()
	cmd := history.NewComposite(describeReplace(end-start, text),
		history.NewDelete(start, end),
		history.NewInsert(start, text),
	)
	return hist.Execute(cmd, doc)
}

// SetContent replaces the whole content without recording history.
// Prefer Replace or the JSON operations when undo matters.
func (e *Editor) SetContent(text string) error {
	doc, _ := e.parts()
	return doc.SetContent(text)
}

// Undo reverts the most recent command.
func (e *Editor) Undo() error {
	doc, hist := e.parts()
	return hist.Undo(doc)
}

// Redo re-applies the most recently undone command.
func (e *Editor) Redo() error {
	doc, hist := e.parts()
	return hist.Redo(doc)
}

// CanUndo reports whether Undo would succeed.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// UndoDescription returns the label of the command Undo would revert.
func (e *Editor) UndoDescription() (string, bool) {
	info, ok := e.hist.UndoInfo()
	return info.Description, ok
}

// RedoDescription returns the label of the command Redo would re-apply.
func (e *Editor) RedoDescription() (string, bool) {
	info, ok := e.hist.RedoInfo()
	return info.Description, ok
}

// History lists the undo stack, oldest first.
func (e *Editor) History() []history.EntryInfo { return e.hist.List() }

// ClearHistory drops all undo and redo entries.
func (e *Editor) ClearHistory() { e.hist.Clear() }

// JSON operations.

// Format pretty-prints the content with indent spaces per level, as
// one undoable operation. Key order is preserved.
func (e *Editor) Format(indent int) error {
	doc, hist := e.parts()
	formatted, err := jsonfmt.Format(doc.Content(), indent)
	if err != nil {
		return err
	}
	return hist.Execute(history.NewReplaceAll(formatted, "Format JSON"), doc)
}

// CompactContent rewrites the content with all insignificant
// whitespace removed, as one undoable operation.
func (e *Editor) CompactContent() error {
	doc, hist := e.parts()
	compacted, err := jsonfmt.Compact(doc.Content())
	if err != nil {
		return err
	}
	return hist.Execute(history.NewReplaceAll(compacted, "Compact JSON"), doc)
}

// SetPathValue sets the value at a dot path, creating intermediate
// objects as needed. The edit is one undoable operation.
func (e *Editor) SetPathValue(path string, value any) error {
	doc, hist := e.parts()
	updated, err := jsonpath.Set(doc.Content(), path, value)
	if err != nil {
		return err
	}
	return hist.Execute(history.NewReplaceAll(updated, "Set "+path), doc)
}

// RemovePath deletes the value at a dot path as one undoable
// operation. Missing paths report jsonpath.ErrPathNotFound.
func (e *Editor) RemovePath(path string) error {
	doc, hist := e.parts()
	updated, err := jsonpath.Remove(doc.Content(), path)
	if err != nil {
		return err
	}
	return hist.Execute(history.NewReplaceAll(updated, "Remove "+path), doc)
}

// PathValue resolves a dot path against the current content.
func (e *Editor) PathValue(path string) (gjson.Result, bool) {
	doc, _ := e.parts()
	return jsonpath.Lookup(doc.Content(), path)
}

// Analyze runs the configured analyzers over the current content.
func (e *Editor) Analyze() (*analyze.Result, error) {
	doc, _ := e.parts()
	return analyze.Run(doc.Content(), e.analyzers...)
}

// Validation.

// Validate runs the current strategy on demand and stores the result
// on the document.
func (e *Editor) Validate() *validate.Result {
	doc, _ := e.parts()
	return e.validator.ValidateDocument(doc)
}

// SetStrategy replaces the validation strategy for on-change and
// on-demand runs. Schema strategies pick up the configured violation
// cap.
func (e *Editor) SetStrategy(s validate.Strategy) {
	if ss, ok := s.(*validate.SchemaStrategy); ok {
		ss.SetMaxErrors(e.cfg.Validation.MaxErrors)
	}
	e.validator.SetStrategy(s)
}

// ValidationResult returns the most recent verdict stored on the
// document, nil when none has run.
func (e *Editor) ValidationResult() *validate.Result {
	doc, _ := e.parts()
	return doc.LastValidation()
}

// Listeners.

// AttachListener subscribes a listener to document events. Listeners
// survive NewDocument and OpenFile; they are re-attached to each new
// document.
func (e *Editor) AttachListener(l event.Listener) {
	if l == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.extra = append(e.extra, l)
	e.doc.Attach(l)
}

// DetachListener removes a previously attached listener.
func (e *Editor) DetachListener(l event.Listener) {
	if l == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, x := range e.extra {
		if x == l {
			e.extra = append(e.extra[:i], e.extra[i+1:]...)
			break
		}
	}
	e.doc.Detach(l)
}

// EnableAutosave turns background autosaving on.
func (e *Editor) EnableAutosave() { e.autosave.Enable() }

// DisableAutosave turns background autosaving off.
func (e *Editor) DisableAutosave() { e.autosave.Disable() }

// EnableAutoValidate turns validation-on-change on.
func (e *Editor) EnableAutoValidate() { e.validator.Enable() }

// DisableAutoValidate turns validation-on-change off.
func (e *Editor) DisableAutoValidate() { e.validator.Disable() }

// StatusMessage returns the human-readable message for the most
// recent document event.
func (e *Editor) StatusMessage() string { return e.status.Current() }

// Macros.

// RunMacro executes a Lua chunk against this editor. The sandboxed
// engine is created on first use and reused until Close.
func (e *Editor) RunMacro(src string) error {
	eng, err := e.scriptEngine()
	if err != nil {
		return err
	}
	return eng.Run(src)
}

// RunMacroFile executes a Lua file against this editor.
func (e *Editor) RunMacroFile(path string) error {
	eng, err := e.scriptEngine()
	if err != nil {
		return err
	}
	e.logger.Debug("running macro %s", path)
	return eng.RunFile(path)
}

// scriptEngine lazily builds the macro engine.
func (e *Editor) scriptEngine() (*script.Engine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrEditorClosed
	}
	if e.engine == nil {
		eng, err := script.NewEngine(&macroAdapter{editor: e})
		if err != nil {
			return nil, err
		}
		e.engine = eng
	}
	return e.engine, nil
}

// File watching.

// rearmWatcher points the file watcher at path, or stops watching when
// path is empty. Watcher failures log and degrade to no watching.
// Callers hold e.mu.
func (e *Editor) rearmWatcher(path string) {
	if !e.watchFiles {
		return
	}
	if e.watcher == nil {
		w, err := fileio.NewWatcher(e.handleFileEvent, fileio.WithWatchErrorHandler(e.watchError))
		if err != nil {
			e.logger.WithComponent("watcher").Warn("file watching unavailable: %v", err)
			e.watchFiles = false
			return
		}
		e.watcher = w
	}
	if e.watchPath != "" {
		_ = e.watcher.Unwatch(e.watchPath)
		e.watchPath = ""
	}
	if path == "" {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if err := e.watcher.Watch(abs); err != nil && !errors.Is(err, fileio.ErrAlreadyWatching) {
		e.logger.WithComponent("watcher").Warn("cannot watch %s: %v", path, err)
		return
	}
	e.watchPath = abs
}

// handleFileEvent reports on-disk writes to the open file as external
// changes. It runs on the watcher goroutine.
func (e *Editor) handleFileEvent(evt fileio.Event) {
	if !evt.Op.Has(fileio.OpWrite) {
		return
	}
	e.mu.RLock()
	doc := e.doc
	watched := e.watchPath
	e.mu.RUnlock()

	if watched == "" || evt.Path != watched {
		return
	}
	e.logger.Debug("external change to %s", doc.Path())
	doc.Notify(document.EventExternalChange, document.ExternalChangeData{Doc: doc, Path: doc.Path()})
}

// watchError logs errors reported by the underlying watcher.
func (e *Editor) watchError(err error) {
	e.logger.WithComponent("watcher").Warn("watch error: %v", err)
}

// Accessors.

// Document returns the current document.
func (e *Editor) Document() *document.Document {
	doc, _ := e.parts()
	return doc
}

// Content returns the full document text.
func (e *Editor) Content() string {
	doc, _ := e.parts()
	return doc.Content()
}

// Path returns the document's file path, empty for untitled documents.
func (e *Editor) Path() string {
	doc, _ := e.parts()
	return doc.Path()
}

// Modified reports whether the document has unsaved changes.
func (e *Editor) Modified() bool {
	doc, _ := e.parts()
	return doc.Modified()
}

// Config returns the editor's configuration.
func (e *Editor) Config() *config.Config { return e.cfg }

// Logger returns the editor's logger.
func (e *Editor) Logger() *Logger { return e.logger }

// Validator returns the on-change validation listener.
func (e *Editor) Validator() *observe.Validator { return e.validator }

// Autosave returns the autosave listener.
func (e *Editor) Autosave() *observe.Autosave { return e.autosave }

// Status returns the status listener.
func (e *Editor) Status() *observe.Status { return e.status }

// samePath reports whether two paths refer to the same file after
// normalization.
func samePath(abs, path string) bool {
	other, err := filepath.Abs(path)
	if err != nil {
		return abs == path
	}
	return abs == other
}

// describeReplace labels a composite replace the way insert and delete
// commands label themselves.
func describeReplace(count int, text string) string {
	if n := utf8.RuneCountInString(text); n > 20 {
		return fmt.Sprintf("Replace %d characters", count)
	}
	return fmt.Sprintf("Replace with %q", text)
}
