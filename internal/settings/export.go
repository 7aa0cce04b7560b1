package settings

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/selectrans/internal/history"
)

// Snapshot is the YAML document written by Export.
type Snapshot struct {
	Settings Settings        `yaml:"settings"`
	History  []history.Entry `yaml:"history,omitempty"`
}

// Export writes s and entries as YAML.
func Export(w io.Writer, s Settings, entries []history.Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Snapshot{Settings: s, History: entries}); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return enc.Close()
}

// Import reads a snapshot produced by Export. The settings are passed
// through Migrate so invalid values fall back to defaults.
func Import(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	raw, err := toRaw(snap.Settings.Values())
	if err != nil {
		return Snapshot{}, err
	}
	snap.Settings = Migrate(raw)
	return snap, nil
}

func toRaw(values map[string]any) (Raw, error) {
	encoded, err := encodeValues(values)
	if err != nil {
		return nil, err
	}
	raw := make(Raw, len(encoded))
	for k, v := range encoded {
		raw[k] = v
	}
	return raw, nil
}
