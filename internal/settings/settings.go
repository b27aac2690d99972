// Package settings reads the UI settings file the feedback form and the
// fallback choice policy consume. The file is owned by the user (or the
// form's own preference writes); this package only ever reads it, and a
// missing or unparseable file yields zero-value settings rather than an
// error so a broken settings file can never take the tool down.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const fileName = "ui_settings.json"

// Settings is the subset of ui_settings.json the server cares about.
type Settings struct {
	// DefaultChoiceFallbackEnabled gates the synthesized default choice
	// set. Nil means "not configured", which counts as enabled.
	DefaultChoiceFallbackEnabled *bool

	// DefaultChoiceFallbackOptions, when non-empty, replaces the built-in
	// fallback options. Entries may be any shape the normalizer accepts.
	DefaultChoiceFallbackOptions []any

	// Language selects the localization of the built-in fallback options,
	// e.g. "zh-TW", "zh-CN", "en".
	Language string

	// EnableBase64Detail switches the feedback text to include full
	// data: URIs for attached images.
	EnableBase64Detail bool
}

// FallbackEnabled reports whether the default choice fallback may run.
// Only an explicit false disables it.
func (s Settings) FallbackEnabled() bool {
	return s.DefaultChoiceFallbackEnabled == nil || *s.DefaultChoiceFallbackEnabled
}

// Path returns the settings file location under dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, fileName)
}

// Load reads the settings file under dataDir. Absence or malformed content
// returns zero-value settings, never an error.
func Load(dataDir string) Settings {
	return LoadFile(Path(dataDir))
}

// LoadFile reads a settings file from an explicit path.
func LoadFile(path string) Settings {
	var s Settings

	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s
	}

	if v, ok := fields["defaultChoiceFallbackEnabled"].(bool); ok {
		s.DefaultChoiceFallbackEnabled = &v
	}
	if v, ok := fields["defaultChoiceFallbackOptions"].([]any); ok {
		s.DefaultChoiceFallbackOptions = v
	}
	if v, ok := fields["language"].(string); ok {
		s.Language = v
	}
	// Both spellings appear in the wild; the camelCase one wins.
	if v, ok := fields["enable_base64_detail"].(bool); ok {
		s.EnableBase64Detail = v
	}
	if v, ok := fields["enableBase64Detail"].(bool); ok {
		s.EnableBase64Detail = v
	}

	return s
}
