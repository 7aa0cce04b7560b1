package settings

import (
	"encoding/json"

	"codeberg.org/snonux/selectrans/internal/provider"
)

// Storage keys.
const (
	KeySourceLang      = "sourceLang"
	KeyTargetLanguages = "targetLanguages"
	KeyProvider        = "provider"
	KeyOpenMode        = "openMode"
	KeyPreviewEnabled  = "previewEnabled"
	KeySaveHistory     = "saveHistory"
	KeyThemeMode       = "themeMode"
	KeyHistory         = "history"

	// KeyLegacyTargetLang held a single target language before lists
	// were supported. It is only read during migration.
	KeyLegacyTargetLang = "targetLang"
)

// OpenMode controls where the translator page is opened.
type OpenMode string

const (
	NewTab     OpenMode = "newTab"
	CurrentTab OpenMode = "currentTab"
)

// Valid reports whether m is a known open mode.
func (m OpenMode) Valid() bool {
	return m == NewTab || m == CurrentTab
}

// Theme modes. The theme only matters to UIs rendering the options.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings is the user configuration record.
type Settings struct {
	SourceLang      string            `json:"sourceLang" yaml:"source_lang"`
	TargetLanguages []string          `json:"targetLanguages" yaml:"target_languages"`
	Provider        provider.Provider `json:"provider" yaml:"provider"`
	OpenMode        OpenMode          `json:"openMode" yaml:"open_mode"`
	PreviewEnabled  bool              `json:"previewEnabled" yaml:"preview_enabled"`
	SaveHistory     bool              `json:"saveHistory" yaml:"save_history"`
	ThemeMode       string            `json:"themeMode" yaml:"theme_mode"`
}

// Defaults returns the configuration used on first install.
func Defaults() Settings {
	return Settings{
		SourceLang:      "auto",
		TargetLanguages: []string{"en", "es", "pl"},
		Provider:        provider.Default,
		OpenMode:        NewTab,
		PreviewEnabled:  true,
		SaveHistory:     true,
		ThemeMode:       ThemeAuto,
	}
}

// PrimaryTarget returns the first configured target language, or "en".
func (s Settings) PrimaryTarget() string {
	if len(s.TargetLanguages) > 0 && s.TargetLanguages[0] != "" {
		return s.TargetLanguages[0]
	}
	return "en"
}

// Values returns the record as storage key/value pairs.
func (s Settings) Values() map[string]any {
	targets := s.TargetLanguages
	if targets == nil {
		targets = []string{}
	}
	return map[string]any{
		KeySourceLang:      s.SourceLang,
		KeyTargetLanguages: targets,
		KeyProvider:        string(s.Provider),
		KeyOpenMode:        string(s.OpenMode),
		KeyPreviewEnabled:  s.PreviewEnabled,
		KeySaveHistory:     s.SaveHistory,
		KeyThemeMode:       s.ThemeMode,
	}
}

// Migrate builds a Settings record from raw stored values. It never fails:
// missing or undecodable fields take their default. Target languages come
// from the list field when it is populated, else from the legacy single
// target field, else from the defaults.
func Migrate(raw Raw) Settings {
	s := Defaults()

	if v, ok := decodeString(raw, KeySourceLang); ok && v != "" {
		s.SourceLang = v
	}

	var targets []string
	if data, ok := raw[KeyTargetLanguages]; ok && json.Unmarshal(data, &targets) == nil {
		targets = compact(targets)
	}
	if len(targets) > 0 {
		s.TargetLanguages = targets
	} else if legacy, ok := decodeString(raw, KeyLegacyTargetLang); ok && legacy != "" {
		s.TargetLanguages = []string{legacy}
	}

	if v, ok := decodeString(raw, KeyProvider); ok {
		if p, known := provider.Parse(v); known {
			s.Provider = p
		}
	}
	if v, ok := decodeString(raw, KeyOpenMode); ok && OpenMode(v).Valid() {
		s.OpenMode = OpenMode(v)
	}
	if v, ok := decodeBool(raw, KeyPreviewEnabled); ok {
		s.PreviewEnabled = v
	}
	if v, ok := decodeBool(raw, KeySaveHistory); ok {
		s.SaveHistory = v
	}
	if v, ok := decodeString(raw, KeyThemeMode); ok {
		switch v {
		case ThemeAuto, ThemeLight, ThemeDark:
			s.ThemeMode = v
		}
	}

	return s
}

func decodeString(raw Raw, key string) (string, bool) {
	data, ok := raw[key]
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return "", false
	}
	return v, true
}

func decodeBool(raw Raw, key string) (bool, bool) {
	data, ok := raw[key]
	if !ok {
		return false, false
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return false, false
	}
	return v, true
}

// compact drops empty and duplicate codes, keeping the first occurrence.
func compact(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := codes[:0:0]
	for _, c := range codes {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
