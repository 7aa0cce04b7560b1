package dispatch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/selectrans/internal"
	"codeberg.org/snonux/selectrans/internal/history"
	"codeberg.org/snonux/selectrans/internal/lang"
	"codeberg.org/snonux/selectrans/internal/locale"
	"codeberg.org/snonux/selectrans/internal/preview"
	"codeberg.org/snonux/selectrans/internal/provider"
	"codeberg.org/snonux/selectrans/internal/settings"
)

// PreviewMaxRunes caps the preview notification message.
const PreviewMaxRunes = 180

// Tabs opens translator pages.
type Tabs interface {
	// Update replaces the location of tab tabID.
	Update(ctx context.Context, tabID int, url string) error

	// Create opens url in a new tab.
	Create(ctx context.Context, url string) error
}

// Notifier shows preview notifications.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Logger receives non-fatal failures.
type Logger interface {
	Printf(format string, v ...any)
}

// Request is a single translation request.
type Request struct {
	Text string

	// TargetLang is the language to translate into. Empty means the
	// first configured target language.
	TargetLang string

	// TabID is the tab the selection came from; only valid with HasTab.
	TabID  int
	HasTab bool
}

// Config configures a Dispatcher.
type Config struct {
	// HistoryMax caps the stored history.
	HistoryMax int

	// Labels renders the preview notification title.
	Labels *locale.Labels

	Logger Logger

	// Now returns the history timestamp. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		HistoryMax: history.DefaultMax,
		Labels:     locale.New(""),
		Logger:     log.Default(),
		Now:        time.Now,
	}
}

// Dispatcher executes translation requests.
type Dispatcher struct {
	store    settings.Store
	tabs     Tabs
	notifier Notifier
	fetcher  preview.Fetcher
	config   *Config

	previews sync.WaitGroup
}

// New creates a dispatcher. A nil fetcher or notifier disables previews.
func New(store settings.Store, tabs Tabs, notifier Notifier, fetcher preview.Fetcher, config *Config) *Dispatcher {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}
	if config.HistoryMax <= 0 {
		config.HistoryMax = defaults.HistoryMax
	}
	if config.Labels == nil {
		config.Labels = defaults.Labels
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}
	if config.Now == nil {
		config.Now = defaults.Now
	}

	return &Dispatcher{
		store:    store,
		tabs:     tabs,
		notifier: notifier,
		fetcher:  fetcher,
		config:   config,
	}
}

// Dispatch opens the translator page for req. Text that is empty after
// trimming is ignored. A preview is fetched in the background; use Wait
// to block until it is shown.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Result{}
	}

	s, err := settings.Load(ctx, d.store)
	if err != nil {
		d.config.Logger.Printf("dispatch: %v", err)
		return Result{Navigation: failed(err)}
	}

	target := req.TargetLang
	if target == "" {
		target = s.PrimaryTarget()
	}

	res := Result{
		URL:        provider.BuildURL(s.Provider, s.SourceLang, target, provider.EncodeText(text)),
		TargetLang: target,
	}

	res.Preview = d.startPreview(ctx, s, text, target)
	res.Navigation = d.navigate(ctx, s.OpenMode, req, res.URL)

	switch {
	case !s.SaveHistory || res.Navigation.Status != OK:
		res.History = skipped()
	default:
		res.History = d.record(ctx, s, text, target)
	}

	return res
}

// Wait blocks until every preview started by Dispatch has finished.
func (d *Dispatcher) Wait() {
	d.previews.Wait()
}

func (d *Dispatcher) navigate(ctx context.Context, mode settings.OpenMode, req Request, url string) Outcome {
	var err error
	if mode == settings.CurrentTab && req.HasTab {
		err = d.tabs.Update(ctx, req.TabID, url)
	} else {
		err = d.tabs.Create(ctx, url)
	}
	if err != nil {
		err = fmt.Errorf("failed to open translator page: %w", err)
		d.config.Logger.Printf("dispatch: %v", err)
		return failed(err)
	}
	return ok()
}

func (d *Dispatcher) record(ctx context.Context, s settings.Settings, text, target string) Outcome {
	entry := history.Entry{
		Text:       text,
		SourceLang: s.SourceLang,
		TargetLang: target,
		Provider:   string(s.Provider),
		Timestamp:  d.config.Now(),
	}
	if err := settings.AppendHistory(ctx, d.store, entry, d.config.HistoryMax); err != nil {
		d.config.Logger.Printf("dispatch: %v", err)
		return failed(err)
	}
	return ok()
}

func (d *Dispatcher) startPreview(ctx context.Context, s settings.Settings, text, target string) Outcome {
	if !s.PreviewEnabled || d.fetcher == nil || d.notifier == nil {
		return skipped()
	}

	title := d.config.Labels.PreviewTitle(s.Provider.Label(), lang.DisplayName(target))

	d.previews.Add(1)
	go func() {
		defer d.previews.Done()

		out, err := d.fetcher.Fetch(ctx, text, s.SourceLang, target)
		if err != nil {
			d.config.Logger.Printf("dispatch: preview skipped: %v", err)
			return
		}
		msg := internal.Truncate(internal.CollapseSpace(out), PreviewMaxRunes)
		if err := d.notifier.Notify(ctx, title, msg); err != nil {
			d.config.Logger.Printf("dispatch: failed to show preview: %v", err)
		}
	}()

	return pending()
}
