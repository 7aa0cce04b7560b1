package host

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// DefaultOpenCommand returns the system URL opener for goos.
func DefaultOpenCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// Browser opens translator pages with an external command. A desktop
// opener cannot address tabs, so Update opens the page like Create.
type Browser struct {
	command []string
	run     func(ctx context.Context, name string, args ...string) error
}

// NewBrowser creates a browser running command (e.g. "firefox
// --new-tab") with the URL appended. An empty command uses the system
// opener.
func NewBrowser(command string) *Browser {
	args := strings.Fields(command)
	if len(args) == 0 {
		args = DefaultOpenCommand(runtime.GOOS)
	}
	return &Browser{command: args, run: startCommand}
}

// Command returns the opener command line.
func (b *Browser) Command() []string {
	return append([]string(nil), b.command...)
}

// Create opens url.
func (b *Browser) Create(ctx context.Context, url string) error {
	return b.open(ctx, url)
}

// Update opens url. tabID is ignored.
func (b *Browser) Update(ctx context.Context, tabID int, url string) error {
	return b.open(ctx, url)
}

func (b *Browser) open(ctx context.Context, url string) error {
	args := append(b.command[1:len(b.command):len(b.command)], url)
	if err := b.run(ctx, b.command[0], args...); err != nil {
		return fmt.Errorf("failed to run %s: %w", b.command[0], err)
	}
	return nil
}

func startCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// URLPrinter writes translator URLs instead of opening them.
type URLPrinter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewURLPrinter creates a printer writing to w.
func NewURLPrinter(w io.Writer) *URLPrinter {
	return &URLPrinter{w: w}
}

// Create prints url.
func (p *URLPrinter) Create(ctx context.Context, url string) error {
	return p.print("new tab", url)
}

// Update prints url with the tab it would replace.
func (p *URLPrinter) Update(ctx context.Context, tabID int, url string) error {
	return p.print(fmt.Sprintf("tab %d", tabID), url)
}

func (p *URLPrinter) print(where, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintf(p.w, "open (%s): %s\n", where, url)
	return err
}
