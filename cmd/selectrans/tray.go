package main

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/selectrans/internal/app"
	"codeberg.org/snonux/selectrans/internal/cli"
	"codeberg.org/snonux/selectrans/internal/host"
	"codeberg.org/snonux/selectrans/internal/locale"
	"codeberg.org/snonux/selectrans/internal/settings"
	"codeberg.org/snonux/selectrans/internal/tray"
)

const trayAppID = "org.codeberg.snonux.selectrans"

func newTrayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tray",
		Short: "Run the translation menu in the system tray",
		Long: `Shows the translation menu in the system tray. Clicking a language
translates the clipboard content; previews appear as desktop notifications.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray(cmd, cli.LoadConfig())
		},
	}
}

func runTray(cmd *cobra.Command, config *cli.Config) (err error) {
	fa := fyneapp.NewWithID(trayAppID)
	desk, ok := fa.(desktop.App)
	if !ok {
		return fmt.Errorf("system tray is not supported on this platform")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	labels := locale.New(config.Locale)
	trayMenu := tray.NewMenu("selectrans", func(m *fyne.Menu) {
		fyne.Do(func() { desk.SetSystemTrayMenu(m) })
	})
	// Hidden window, only used for clipboard access.
	clipboard := tray.ClipboardSelection{Clipboard: fa.NewWindow("selectrans").Clipboard()}

	rt, err := cli.OpenWith(ctx, config, cmd.ErrOrStderr(), func(store settings.Store) app.Hosts {
		return app.Hosts{
			Menu:      trayMenu,
			Tabs:      cli.NewTabs(config, cmd.OutOrStdout()),
			Notifier:  tray.NewNotifier(fa),
			ActiveTab: host.StaticSelection{},
			Selection: clipboard,
			Options:   tray.NewOptionsWindow(fa, store, "selectrans: "+labels.Options()),
		}
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	trayMenu.OnClick(func(id string) {
		go func() {
			text, _ := clipboard.Selection(ctx, 0)
			rt.App.HandleMenuClick(ctx, app.Click{ItemID: id, SelectionText: text})
		}()
	})

	fa.Lifecycle().SetOnStarted(func() {
		go func() {
			if err := rt.App.Startup(ctx); err != nil {
				rt.Logger.Printf("tray: %v", err)
			}
		}()
	})
	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(fa.Quit)
		case <-stopped:
		}
	}()

	fa.Run()
	close(stopped)
	return nil
}
