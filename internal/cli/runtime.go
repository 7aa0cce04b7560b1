package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"codeberg.org/snonux/selectrans/internal/app"
	"codeberg.org/snonux/selectrans/internal/dispatch"
	"codeberg.org/snonux/selectrans/internal/host"
	"codeberg.org/snonux/selectrans/internal/locale"
	"codeberg.org/snonux/selectrans/internal/preview"
	"codeberg.org/snonux/selectrans/internal/settings"
)

// Runtime is an opened store with the app and hosts wired to it.
type Runtime struct {
	Store  settings.Store
	Menu   *host.MenuTree // nil when opened with OpenWith
	App    *app.App
	Logger *log.Logger

	stopWatch func()
}

// openStore opens the SQLite store at path, or an in-memory store.
func openStore(path string) (settings.Store, error) {
	if path == MemoryStore {
		return settings.NewMemoryStore(), nil
	}
	store, err := settings.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// newFetcher creates the preview backend; nil disables previews.
func newFetcher(config *Config, logger *log.Logger) preview.Fetcher {
	if config.PreviewDisabled {
		return nil
	}
	fetcher, err := preview.New(&config.Preview)
	if err != nil {
		logger.Printf("previews disabled: %v", err)
		return nil
	}
	return fetcher
}

// NewTabs returns the tab host for config: a URL printer on dry runs,
// the system browser otherwise.
func NewTabs(config *Config, out io.Writer) dispatch.Tabs {
	if config.DryRun {
		return host.NewURLPrinter(out)
	}
	return host.NewBrowser(config.OpenCommand)
}

// Open wires a Runtime for config. Output goes to out, log messages to
// errOut. The settings store is watched for changes until Close.
func Open(ctx context.Context, config *Config, selection string, out, errOut io.Writer) (*Runtime, error) {
	tree := host.NewMenuTree()
	sel := host.StaticSelection{Text: selection}

	rt, err := OpenWith(ctx, config, errOut, func(store settings.Store) app.Hosts {
		return app.Hosts{
			Menu:      tree,
			Tabs:      NewTabs(config, out),
			Notifier:  host.NewConsole(out),
			ActiveTab: sel,
			Selection: sel,
			Options:   host.OptionsPrinter{W: out, Store: store},
		}
	})
	if err != nil {
		return nil, err
	}
	rt.Menu = tree
	return rt, nil
}

// OpenWith is like Open but takes the hosts from newHosts, which gets
// the opened store. Runtime.Menu is left nil.
func OpenWith(ctx context.Context, config *Config, errOut io.Writer, newHosts func(store settings.Store) app.Hosts) (*Runtime, error) {
	logger := log.New(errOut, "selectrans: ", 0)

	store, err := openStore(config.StorePath)
	if err != nil {
		return nil, err
	}

	a := app.New(ctx, store, newHosts(store), &app.Config{
		RankLimit:  config.RankLimit,
		HistoryMax: config.HistoryMax,
		Labels:     locale.New(config.Locale),
		Logger:     logger,
		Fetcher:    newFetcher(config, logger),
	})

	return &Runtime{
		Store:     store,
		App:       a,
		Logger:    logger,
		stopWatch: a.Watch(ctx),
	}, nil
}

// Close waits for previews, stops the app and closes the store.
func (r *Runtime) Close() error {
	r.stopWatch()
	r.App.Close()
	if err := r.Store.Close(); err != nil {
		return fmt.Errorf("failed to close settings store: %w", err)
	}
	return nil
}
