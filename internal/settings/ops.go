package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"codeberg.org/snonux/selectrans/internal/history"
)

var recordKeys = []string{
	KeySourceLang,
	KeyTargetLanguages,
	KeyLegacyTargetLang,
	KeyProvider,
	KeyOpenMode,
	KeyPreviewEnabled,
	KeySaveHistory,
	KeyThemeMode,
}

// Load reads and migrates the settings record.
func Load(ctx context.Context, store Store) (Settings, error) {
	raw, err := store.Get(ctx, recordKeys...)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return Migrate(raw), nil
}

// Save writes the full settings record.
func Save(ctx context.Context, store Store, s Settings) error {
	if err := store.Set(ctx, s.Values()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Install merges stored values with the defaults and writes the result
// back, so later reads see a complete record. Values the user already set
// are kept, and a legacy single target language becomes the target list.
func Install(ctx context.Context, store Store) (Settings, error) {
	s, err := Load(ctx, store)
	if err != nil {
		return Settings{}, err
	}
	if err := Save(ctx, store, s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadHistory returns the stored history, newest first.
func LoadHistory(ctx context.Context, store Store) ([]history.Entry, error) {
	raw, err := store.Get(ctx, KeyHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	data, ok := raw[KeyHistory]
	if !ok {
		return nil, nil
	}

	var entries []history.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return entries, nil
}

// AppendHistory adds e to the front of the stored history, keeping at
// most max entries. The read and the write are separate store calls; a
// concurrent append may be lost.
func AppendHistory(ctx context.Context, store Store, e history.Entry, max int) error {
	entries, err := LoadHistory(ctx, store)
	if err != nil {
		return err
	}
	entries = history.Append(entries, e, max)
	if err := store.Set(ctx, map[string]any{KeyHistory: entries}); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// ClearHistory removes every history entry.
func ClearHistory(ctx context.Context, store Store) error {
	if err := store.Remove(ctx, KeyHistory); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// ReplaceHistory stores entries as the whole history, newest first,
// keeping at most max entries.
func ReplaceHistory(ctx context.Context, store Store, entries []history.Entry, max int) error {
	if max <= 0 {
		max = history.DefaultMax
	}
	if len(entries) > max {
		entries = entries[:max]
	}
	if len(entries) == 0 {
		return ClearHistory(ctx, store)
	}
	if err := store.Set(ctx, map[string]any{KeyHistory: entries}); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}
