package jsonforge

import (
	"time"

	"github.com/dshills/jsonforge/analyze"
	"github.com/dshills/jsonforge/config"
	"github.com/dshills/jsonforge/validate"
)

// Option configures an Editor at construction time.
type Option func(*Editor)

// WithConfig supplies the configuration the editor derives its
// defaults from. A nil config is ignored.
func WithConfig(cfg *config.Config) Option {
	return func(e *Editor) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

// WithLogger sets the logger. Pass NullLogger to silence the editor.
func WithLogger(l *Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxHistory bounds the undo history, overriding the configured
// value. Non-positive values keep the configuration.
func WithMaxHistory(n int) Option {
	return func(e *Editor) { e.maxHistory = n }
}

// WithStrategy sets the validation strategy used for both on-change
// and on-demand validation.
func WithStrategy(s validate.Strategy) Option {
	return func(e *Editor) { e.strategy = s }
}

// WithAutosave enables autosaving into dir at the given interval,
// overriding the configuration. An empty dir or non-positive interval
// keeps the configured value.
func WithAutosave(dir string, interval time.Duration) Option {
	return func(e *Editor) {
		e.autosaveDir = dir
		e.autosaveInterval = interval
		e.autosaveForce = true
	}
}

// WithoutAutosave starts the editor with autosaving disabled. The
// listener stays attached; EnableAutosave turns it back on.
func WithoutAutosave() Option {
	return func(e *Editor) { e.autosaveOff = true }
}

// WithFileWatch reports on-disk changes to the open file as
// document.EventExternalChange events.
func WithFileWatch() Option {
	return func(e *Editor) { e.watchFiles = true }
}

// WithAnalyzers replaces the default Basic and Statistics analyzers
// used by Analyze.
func WithAnalyzers(analyzers ...analyze.Analyzer) Option {
	return func(e *Editor) { e.analyzers = analyzers }
}

// WithReadOnly opens documents in read-only mode. Loading still works;
// edits are rejected with document.ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Editor) { e.readOnly = true }
}
