package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FromEnv overlays JSONFORGE_-prefixed environment variables onto cfg.
// Unset variables leave the corresponding setting untouched; a set but
// malformed value is an error.
func FromEnv(cfg *Config) error {
	lookupString(EnvPrefix+"LOG_LEVEL", &cfg.Logging.Level)
	lookupString(EnvPrefix+"LOG_PREFIX", &cfg.Logging.Prefix)
	lookupString(EnvPrefix+"AUTOSAVE_DIR", &cfg.Files.AutosaveDir)

	if err := lookupInt(EnvPrefix+"TAB_WIDTH", &cfg.Editor.TabWidth); err != nil {
		return err
	}
	if err := lookupInt(EnvPrefix+"MAX_UNDO_HISTORY", &cfg.Editor.MaxUndoHistory); err != nil {
		return err
	}
	if err := lookupInt(EnvPrefix+"AUTOSAVE_INTERVAL", &cfg.Files.AutosaveInterval); err != nil {
		return err
	}

	if err := lookupBool(EnvPrefix+"AUTOSAVE", &cfg.Files.Autosave); err != nil {
		return err
	}
	if err := lookupBool(EnvPrefix+"WATCH_FILE", &cfg.Files.WatchFile); err != nil {
		return err
	}
	if err := lookupBool(EnvPrefix+"VALIDATE_ON_CHANGE", &cfg.Validation.OnChange); err != nil {
		return err
	}
	return nil
}

func lookupString(name string, dst *string) {
	if val, ok := os.LookupEnv(name); ok {
		*dst = val
	}
}

func lookupInt(name string, dst *int) error {
	val, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fmt.Errorf("%s: %q is not an integer", name, val)
	}
	*dst = n
	return nil
}

func lookupBool(name string, dst *bool) error {
	val, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "yes", "on", "1":
		*dst = true
	case "false", "no", "off", "0":
		*dst = false
	default:
		return fmt.Errorf("%s: %q is not a boolean", name, val)
	}
	return nil
}
