package host

import (
	"context"
	"fmt"
	"io"
	"sync"

	"codeberg.org/snonux/selectrans/internal/settings"
)

// Console prints notifications to a writer.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a notifier writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Notify prints title and message.
func (c *Console) Notify(ctx context.Context, title, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.w, "%s\n  %s\n", title, message)
	return err
}

// StaticSelection serves a fixed selection from a single pseudo tab.
type StaticSelection struct {
	Text string
}

// ActiveTab always reports tab 0.
func (s StaticSelection) ActiveTab(ctx context.Context) (int, bool, error) {
	return 0, true, nil
}

// Selection returns the fixed text.
func (s StaticSelection) Selection(ctx context.Context, tabID int) (string, error) {
	return s.Text, nil
}

// OptionsPrinter shows the options page as the current settings in YAML.
type OptionsPrinter struct {
	W     io.Writer
	Store settings.Store
}

// OpenOptions prints the settings.
func (o OptionsPrinter) OpenOptions(ctx context.Context) error {
	s, err := settings.Load(ctx, o.Store)
	if err != nil {
		return err
	}
	return settings.Export(o.W, s, nil)
}
