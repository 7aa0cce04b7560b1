package app

import (
	"context"
	"fmt"
	"log"

	"codeberg.org/snonux/selectrans/internal/dispatch"
	"codeberg.org/snonux/selectrans/internal/history"
	"codeberg.org/snonux/selectrans/internal/locale"
	"codeberg.org/snonux/selectrans/internal/menu"
	"codeberg.org/snonux/selectrans/internal/preview"
	"codeberg.org/snonux/selectrans/internal/settings"
)

// CommandTranslateSelection translates the selection of the active tab.
const CommandTranslateSelection = "translate-selection"

// TabQuery finds the active tab.
type TabQuery interface {
	ActiveTab(ctx context.Context) (tabID int, ok bool, err error)
}

// SelectionReader reads the selected text of a tab.
type SelectionReader interface {
	Selection(ctx context.Context, tabID int) (string, error)
}

// OptionsOpener shows the options page.
type OptionsOpener interface {
	OpenOptions(ctx context.Context) error
}

// Hosts are the host APIs the app talks to. Notifier and Options may be
// nil; ActiveTab and Selection are only needed for commands.
type Hosts struct {
	Menu      menu.Host
	Tabs      dispatch.Tabs
	Notifier  dispatch.Notifier
	ActiveTab TabQuery
	Selection SelectionReader
	Options   OptionsOpener
}

// Config configures an App.
type Config struct {
	RankLimit  int
	HistoryMax int
	Labels     *locale.Labels
	Logger     dispatch.Logger

	// Fetcher produces previews; nil disables them.
	Fetcher preview.Fetcher

	// OnRebuild is passed to the menu synchronizer.
	OnRebuild func(err error)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RankLimit:  history.DefaultRankLimit,
		HistoryMax: history.DefaultMax,
		Labels:     locale.New(""),
		Logger:     log.Default(),
	}
}

// App handles host events.
type App struct {
	store      settings.Store
	hosts      Hosts
	logger     dispatch.Logger
	sync       *menu.Synchronizer
	dispatcher *dispatch.Dispatcher
}

// New creates an App. The menu synchronizer runs until ctx is done or
// Close is called.
func New(ctx context.Context, store settings.Store, hosts Hosts, config *Config) *App {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Labels == nil {
		config.Labels = locale.New("")
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	return &App{
		store:  store,
		hosts:  hosts,
		logger: config.Logger,
		sync: menu.NewSynchronizer(ctx, store, hosts.Menu, &menu.Config{
			RankLimit: config.RankLimit,
			Labels:    config.Labels,
			Logger:    config.Logger,
			OnRebuild: config.OnRebuild,
		}),
		dispatcher: dispatch.New(store, hosts.Tabs, hosts.Notifier, config.Fetcher, &dispatch.Config{
			HistoryMax: config.HistoryMax,
			Labels:     config.Labels,
			Logger:     config.Logger,
		}),
	}
}

// Install writes the default settings, keeping what the user already
// configured, and builds the menu.
func (a *App) Install(ctx context.Context) (settings.Settings, error) {
	s, err := settings.Install(ctx, a.store)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to install settings: %w", err)
	}
	if err := a.sync.Rebuild(ctx); err != nil {
		return s, fmt.Errorf("failed to build menu: %w", err)
	}
	return s, nil
}

// Startup builds the menu.
func (a *App) Startup(ctx context.Context) error {
	return a.sync.Rebuild(ctx)
}

// Rebuild schedules a menu rebuild without waiting for it.
func (a *App) Rebuild() {
	a.sync.ScheduleRebuild()
}

// Watch rebuilds the menu whenever a setting it depends on changes. The
// subscription is active when Watch returns; it ends when ctx is done,
// the store is closed or the returned stop function is called.
func (a *App) Watch(ctx context.Context) (stop func()) {
	changes, unsubscribe := a.store.Subscribe()
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case change, ok := <-changes:
				if !ok {
					return
				}
				if change.Area == settings.AreaSync && menu.Relevant(change.Keys) {
					a.sync.ScheduleRebuild()
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// Click is a context menu click.
type Click struct {
	ItemID        string
	SelectionText string
	TabID         int
	HasTab        bool
}

// HandleMenuClick opens the options page or translates the selection.
// Clicks on items of other menus are ignored.
func (a *App) HandleMenuClick(ctx context.Context, click Click) dispatch.Result {
	if !menu.Owns(click.ItemID) {
		return dispatch.Result{}
	}

	if click.ItemID == menu.OptionsID {
		if a.hosts.Options == nil {
			return dispatch.Result{}
		}
		if err := a.hosts.Options.OpenOptions(ctx); err != nil {
			a.logger.Printf("app: failed to open options: %v", err)
		}
		return dispatch.Result{}
	}

	s, err := settings.Load(ctx, a.store)
	if err != nil {
		a.logger.Printf("app: %v", err)
		return dispatch.Result{Navigation: dispatch.Outcome{Status: dispatch.Failed, Err: err}}
	}

	return a.dispatcher.Dispatch(ctx, dispatch.Request{
		Text:       click.SelectionText,
		TargetLang: menu.TargetFor(click.ItemID, s),
		TabID:      click.TabID,
		HasTab:     click.HasTab,
	})
}

// HandleCommand runs a keyboard command. Unknown commands are ignored.
func (a *App) HandleCommand(ctx context.Context, name string) dispatch.Result {
	if name != CommandTranslateSelection {
		return dispatch.Result{}
	}
	if a.hosts.ActiveTab == nil || a.hosts.Selection == nil {
		return dispatch.Result{}
	}

	tabID, ok, err := a.hosts.ActiveTab.ActiveTab(ctx)
	if err != nil {
		a.logger.Printf("app: failed to query active tab: %v", err)
		return dispatch.Result{}
	}
	if !ok {
		return dispatch.Result{}
	}

	text, err := a.hosts.Selection.Selection(ctx, tabID)
	if err != nil {
		a.logger.Printf("app: failed to read selection: %v", err)
		return dispatch.Result{}
	}

	return a.dispatcher.Dispatch(ctx, dispatch.Request{Text: text, TabID: tabID, HasTab: true})
}

// Translate dispatches req without a menu click.
func (a *App) Translate(ctx context.Context, req dispatch.Request) dispatch.Result {
	return a.dispatcher.Dispatch(ctx, req)
}

// Wait blocks until running previews are shown.
func (a *App) Wait() {
	a.dispatcher.Wait()
}

// Close waits for previews and stops the menu synchronizer.
func (a *App) Close() {
	a.dispatcher.Wait()
	a.sync.Close()
}
