// Package archive keeps copies of the translation history before it is
// cleared.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/snonux/selectrans/internal/history"
	"codeberg.org/snonux/selectrans/internal/settings"
)

// ArchiveHistory writes s and entries to a timestamped YAML file in dir
// and returns its path.
func ArchiveHistory(dir string, s settings.Settings, entries []history.Entry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("history is empty, nothing to archive")
	}

	// Create archive directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(dir, fmt.Sprintf("history-%s.yaml", timestamp))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(dir, fmt.Sprintf("history-%s.yaml", timestamp))
	}

	f, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create archive file: %w", err)
	}
	defer f.Close()

	if err := settings.Export(f, s, entries); err != nil {
		os.Remove(archivePath)
		return "", fmt.Errorf("failed to write archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}
	return archivePath, nil
}

// List returns the archive files in dir, oldest first.
func List(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "history-*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}
	return matches, nil
}
