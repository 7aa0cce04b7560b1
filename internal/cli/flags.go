package cli

import (
	"time"

	"codeberg.org/snonux/selectrans/internal/history"
	"codeberg.org/snonux/selectrans/internal/preview"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	StorePath   string
	RankLimit   int
	HistoryMax  int
	Locale      string
	OpenCommand string
	DryRun      bool

	// Preview flags
	PreviewBackend  string
	PreviewEndpoint string
	PreviewTimeout  time.Duration
	NoPreview       bool

	// translate flags
	To        string
	ItemID    string
	TabID     int
	BatchFile string

	// command flags
	Selection string

	// history flags
	Clear      bool
	Archive    bool
	ArchiveDir string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		RankLimit:       history.DefaultRankLimit,
		HistoryMax:      history.DefaultMax,
		Locale:          "en",
		PreviewBackend:  preview.BackendMyMemory,
		PreviewEndpoint: preview.DefaultEndpoint,
		PreviewTimeout:  10 * time.Second,
	}
}
