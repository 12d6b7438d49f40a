// Package config loads editor settings from TOML files with
// environment variable overrides. A missing file is not an error;
// callers get the defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// JSONFORGE_TAB_WIDTH.
const EnvPrefix = "JSONFORGE_"

// EditorConfig holds core editing settings.
type EditorConfig struct {
	// TabWidth is the indent width for formatting, in spaces.
	TabWidth int `toml:"tab_width"`

	// MaxUndoHistory bounds the undo timeline.
	MaxUndoHistory int `toml:"max_undo_history"`
}

// FilesConfig holds file handling settings.
type FilesConfig struct {
	// Autosave enables periodic snapshots of modified documents.
	Autosave bool `toml:"autosave"`

	// AutosaveInterval is the minimum seconds between snapshots.
	AutosaveInterval int `toml:"autosave_interval"`

	// AutosaveDir is where snapshots are written.
	AutosaveDir string `toml:"autosave_dir"`

	// WatchFile enables change notifications for the open file.
	WatchFile bool `toml:"watch_file"`
}

// ValidationConfig holds validation settings.
type ValidationConfig struct {
	// OnChange runs validation after every edit.
	OnChange bool `toml:"on_change"`

	// AllowEmpty treats an empty document as valid.
	AllowEmpty bool `toml:"allow_empty"`

	// MaxErrors caps reported schema violations.
	MaxErrors int `toml:"max_errors"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Prefix is prepended to every log line.
	Prefix string `toml:"prefix"`
}

// Config is the full settings tree.
type Config struct {
	Editor     EditorConfig     `toml:"editor"`
	Files      FilesConfig      `toml:"files"`
	Validation ValidationConfig `toml:"validation"`
	Logging    LoggingConfig    `toml:"logging"`
}

// Default returns the standard settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:       4,
			MaxUndoHistory: 100,
		},
		Files: FilesConfig{
			Autosave:         true,
			AutosaveInterval: 5,
			AutosaveDir:      "autosave",
			WatchFile:        false,
		},
		Validation: ValidationConfig{
			OnChange:   true,
			AllowEmpty: true,
			MaxErrors:  100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Prefix: "jsonforge",
		},
	}
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadFile reads a TOML file over the defaults, so a sparse file only
// overrides what it names. A missing file returns the defaults.
// Malformed TOML returns a *ParseError with position information.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			perr.Line, perr.Column = de.Position()
		}
		return nil, perr
	}
	return cfg, nil
}

// Load reads path, applies environment overrides, and validates the
// result.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := FromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings for sane bounds.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width %d out of range [1, 16]", c.Editor.TabWidth)
	}
	if c.Editor.MaxUndoHistory < 1 {
		return fmt.Errorf("editor.max_undo_history %d must be positive", c.Editor.MaxUndoHistory)
	}
	if c.Files.AutosaveInterval < 1 {
		return fmt.Errorf("files.autosave_interval %d must be positive", c.Files.AutosaveInterval)
	}
	if c.Validation.MaxErrors < 1 {
		return fmt.Errorf("validation.max_errors %d must be positive", c.Validation.MaxErrors)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}
