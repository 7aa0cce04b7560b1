package history

import (
	"sort"
	"time"
)

const (
	// DefaultMax is the number of entries kept in the log.
	DefaultMax = 20

	// DefaultRankLimit is how many languages the menu offers.
	// A limit <= 0 disables truncation.
	DefaultRankLimit = 6
)

// Entry is one completed translation request.
type Entry struct {
	Text       string    `json:"text" yaml:"text"`
	SourceLang string    `json:"sourceLang" yaml:"source_lang"`
	TargetLang string    `json:"targetLang" yaml:"target_lang"`
	Provider   string    `json:"provider" yaml:"provider"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
}

// Append returns a new log with e in front, truncated to max entries.
// The input slice is not modified. A max <= 0 means DefaultMax.
func Append(log []Entry, e Entry, max int) []Entry {
	if max <= 0 {
		max = DefaultMax
	}

	n := len(log) + 1
	if n > max {
		n = max
	}

	out := make([]Entry, 0, n)
	out = append(out, e)
	for _, old := range log {
		if len(out) == n {
			break
		}
		out = append(out, old)
	}
	return out
}

// Rank merges fallback with the target languages found in entries.
// fallback comes first in its given order, followed by historical codes
// ordered by how often they were used (first seen wins ties). Duplicates
// are dropped and the result is cut to limit codes (limit <= 0: no cut).
// If anything goes wrong fallback is returned unchanged.
func Rank(entries []Entry, fallback []string, limit int) (ranked []string) {
	defer func() {
		if r := recover(); r != nil {
			ranked = fallback
		}
	}()

	counts := make(map[string]int)
	var seen []string
	for _, e := range entries {
		if e.TargetLang == "" {
			continue
		}
		if counts[e.TargetLang] == 0 {
			seen = append(seen, e.TargetLang)
		}
		counts[e.TargetLang]++
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return counts[seen[i]] > counts[seen[j]]
	})

	present := make(map[string]bool, len(fallback)+len(seen))
	ranked = make([]string, 0, len(fallback)+len(seen))
	for _, code := range append(append([]string{}, fallback...), seen...) {
		if code == "" || present[code] {
			continue
		}
		present[code] = true
		ranked = append(ranked, code)
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
