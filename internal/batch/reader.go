// Package batch reads translation requests from a text file.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/snonux/selectrans/internal/lang"
)

// Entry is one line of a batch file.
type Entry struct {
	Text string
	// TargetLang is empty when the line does not name a language.
	TargetLang string
}

// ReadBatchFile reads entries from filename. Supported line formats:
// - Text only: "Guten Morgen" (translated to the primary target)
// - With target: "pl = Guten Morgen" (translated to pl)
// Blank lines and lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses batch entries from r.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if entry, ok := parseLine(line); ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}

func parseLine(line string) (Entry, bool) {
	code, text, found := strings.Cut(line, "=")
	if found {
		code = strings.TrimSpace(code)
		text = strings.TrimSpace(text)
		// Only a language code left of '=' makes it a target; otherwise
		// the '=' belongs to the text.
		if lang.Valid(code) {
			if text == "" {
				return Entry{}, false
			}
			return Entry{Text: text, TargetLang: lang.Normalize(code)}, true
		}
	}
	return Entry{Text: line}, true
}
