package settings

import (
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/snonux/selectrans/internal/lang"
	"codeberg.org/snonux/selectrans/internal/provider"
)

// Keys lists the user editable settings keys.
func Keys() []string {
	return []string{
		KeySourceLang,
		KeyTargetLanguages,
		KeyProvider,
		KeyOpenMode,
		KeyPreviewEnabled,
		KeySaveHistory,
		KeyThemeMode,
	}
}

// Apply parses value and assigns it to the field stored under key.
// Target languages are given comma separated. Invalid values are
// rejected and leave s unchanged.
func Apply(s *Settings, key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeySourceLang:
		code := lang.Normalize(value)
		if code != lang.Auto && !lang.Valid(code) {
			return fmt.Errorf("invalid source language: %q", value)
		}
		s.SourceLang = code

	case KeyTargetLanguages, KeyLegacyTargetLang:
		var codes []string
		for _, part := range strings.Split(value, ",") {
			code := lang.Normalize(strings.TrimSpace(part))
			if code == "" {
				continue
			}
			if !lang.Valid(code) {
				return fmt.Errorf("invalid target language: %q", part)
			}
			codes = append(codes, code)
		}
		codes = compact(codes)
		if len(codes) == 0 {
			return fmt.Errorf("at least one target language is required")
		}
		s.TargetLanguages = codes

	case KeyProvider:
		p, ok := provider.Parse(value)
		if !ok {
			return fmt.Errorf("unknown provider: %q", value)
		}
		s.Provider = p

	case KeyOpenMode:
		if !OpenMode(value).Valid() {
			return fmt.Errorf("invalid open mode: %q (want %s or %s)", value, NewTab, CurrentTab)
		}
		s.OpenMode = OpenMode(value)

	case KeyPreviewEnabled, KeySaveHistory:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q", key, value)
		}
		if key == KeyPreviewEnabled {
			s.PreviewEnabled = b
		} else {
			s.SaveHistory = b
		}

	case KeyThemeMode:
		switch value {
		case ThemeAuto, ThemeLight, ThemeDark:
			s.ThemeMode = value
		default:
			return fmt.Errorf("invalid theme mode: %q", value)
		}

	default:
		return fmt.Errorf("unknown setting: %q", key)
	}

	return nil
}
