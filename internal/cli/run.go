package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/selectrans/internal"
	"codeberg.org/snonux/selectrans/internal/app"
	"codeberg.org/snonux/selectrans/internal/archive"
	"codeberg.org/snonux/selectrans/internal/batch"
	"codeberg.org/snonux/selectrans/internal/dispatch"
	"codeberg.org/snonux/selectrans/internal/history"
	"codeberg.org/snonux/selectrans/internal/host"
	"codeberg.org/snonux/selectrans/internal/settings"
)

func openRuntime(cmd *cobra.Command, config *Config, selection string) (*Runtime, error) {
	return Open(cmd.Context(), config, selection, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func runInstall(cmd *cobra.Command, config *Config) (err error) {
	rt, err := openRuntime(cmd, config, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt, &err)

	s, err := rt.App.Install(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Settings installed: translating to %s with %s\n\n",
		strings.Join(s.TargetLanguages, ", "), s.Provider.Label())
	return rt.Menu.Render(out)
}

func runMenu(cmd *cobra.Command, config *Config) (err error) {
	rt, err := openRuntime(cmd, config, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt, &err)

	if err := rt.App.Startup(cmd.Context()); err != nil {
		return fmt.Errorf("failed to build menu: %w", err)
	}
	return rt.Menu.Render(cmd.OutOrStdout())
}

func runTranslate(cmd *cobra.Command, args []string, flags *Flags, config *Config) (err error) {
	ctx := cmd.Context()

	requests, err := translateRequests(cmd, args, flags)
	if err != nil {
		return err
	}

	rt, err := openRuntime(cmd, config, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt, &err)

	var failed int
	for _, req := range requests {
		var res dispatch.Result
		if flags.ItemID != "" {
			res = rt.App.HandleMenuClick(ctx, app.Click{
				ItemID:        flags.ItemID,
				SelectionText: req.Text,
				TabID:         req.TabID,
				HasTab:        req.HasTab,
			})
		} else {
			res = rt.App.Translate(ctx, req)
		}
		if !printResult(cmd.ErrOrStderr(), req, res) {
			failed++
		}
	}
	rt.App.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d translations failed", failed, len(requests))
	}
	return nil
}

// translateRequests collects the requests from the batch file, the
// arguments or standard input.
func translateRequests(cmd *cobra.Command, args []string, flags *Flags) ([]dispatch.Request, error) {
	tabID, hasTab := flags.TabID, cmd.Flags().Changed("tab")

	if flags.BatchFile != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("text arguments cannot be combined with --batch")
		}
		entries, err := batch.ReadBatchFile(flags.BatchFile)
		if err != nil {
			return nil, err
		}
		requests := make([]dispatch.Request, 0, len(entries))
		for _, e := range entries {
			target := e.TargetLang
			if target == "" {
				target = flags.To
			}
			requests = append(requests, dispatch.Request{Text: e.Text, TargetLang: target, TabID: tabID, HasTab: hasTab})
		}
		return requests, nil
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read text from stdin: %w", err)
		}
		text = string(data)
	}
	return []dispatch.Request{{Text: text, TargetLang: flags.To, TabID: tabID, HasTab: hasTab}}, nil
}

// printResult reports a dispatch and returns false when it failed.
func printResult(w io.Writer, req dispatch.Request, res dispatch.Result) bool {
	text := internal.Truncate(internal.CollapseSpace(req.Text), 40)

	switch res.Navigation.Status {
	case dispatch.OK:
		fmt.Fprintf(w, "Translating %q to %s (history: %s, preview: %s)\n",
			text, res.TargetLang, res.History.Status, res.Preview.Status)
		return true
	case dispatch.Failed:
		fmt.Fprintf(w, "Error translating %q: %v\n", text, res.Navigation.Err)
		return false
	default:
		fmt.Fprintf(w, "Skipping %q: nothing to translate\n", text)
		return true
	}
}

func runCommandShortcut(cmd *cobra.Command, name string, flags *Flags, config *Config) (err error) {
	rt, err := openRuntime(cmd, config, flags.Selection)
	if err != nil {
		return err
	}
	defer closeRuntime(rt, &err)

	res := rt.App.HandleCommand(cmd.Context(), name)
	rt.App.Wait()

	if name != app.CommandTranslateSelection {
		fmt.Fprintf(cmd.ErrOrStderr(), "Ignoring unknown command %q\n", name)
		return nil
	}

	req := dispatch.Request{Text: flags.Selection}
	if !printResult(cmd.ErrOrStderr(), req, res) {
		return fmt.Errorf("command %s failed", name)
	}
	return nil
}

func runSettingsShow(cmd *cobra.Command, config *Config) (err error) {
	rt, err := openRuntime(cmd, config, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt, &err)

	return host.OptionsPrinter{W: cmd.OutOrStdout(), Store: rt.Store}.OpenOptions(cmd.Context())
}

func runSettingsSet(cmd *cobra.Command, args []string, config *Config) (err error) {
	rt, err := openRuntime(cmd, config, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt, &err)

	ctx := cmd.Context()
	s, err := settings.Load(ctx, rt.Store)
	if err != nil {
		return err
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q, want key=value", arg)
		}
		if err := settings.Apply(&s, strings.TrimSpace(key), value); err != nil {
			return err
		}
	}

	if err := settings.Save(ctx, rt.Store, s); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Settings saved\n")
	return nil
}

func runSettingsExport(cmd *cobra.Command, args []string, config *Config) (err error) {
	rt, err := openRuntime(cmd, config, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt, &err)

	ctx := cmd.Context()
	s, err := settings.Load(ctx, rt.Store)
	if err != nil {
		return err
	}
	entries, err := settings.LoadHistory(ctx, rt.Store)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return settings.Export(cmd.OutOrStdout(), s, entries)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := settings.Export(f, s, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Settings exported to: %s\n", args[0])
	return nil
}

func runSettingsImport(cmd *cobra.Command, path string, config *Config) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	snap, err := settings.Import(f)
	f.Close()
	if err != nil {
		return err
	}

	rt, err := openRuntime(cmd, config, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt, &err)

	ctx := cmd.Context()
	if err := settings.Save(ctx, rt.Store, snap.Settings); err != nil {
		return err
	}
	if err := settings.ReplaceHistory(ctx, rt.Store, snap.History, config.HistoryMax); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported settings and %d history entries\n", len(snap.History))
	return nil
}

func runHistory(cmd *cobra.Command, flags *Flags, config *Config) (err error) {
	if flags.Archive && !flags.Clear {
		return fmt.Errorf("--archive requires --clear")
	}

	rt, err := openRuntime(cmd, config, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt, &err)

	ctx := cmd.Context()
	entries, err := settings.LoadHistory(ctx, rt.Store)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if !flags.Clear {
		return printHistory(out, entries)
	}

	if flags.Archive && len(entries) > 0 {
		s, err := settings.Load(ctx, rt.Store)
		if err != nil {
			return err
		}
		dir := config.ArchiveDir
		if dir == "" {
			dir = filepath.Join(stateDir(), "archive")
		}
		path, err := archive.ArchiveHistory(dir, s, entries)
		if err != nil {
			return fmt.Errorf("failed to archive history: %w", err)
		}
		fmt.Fprintf(out, "History archived to: %s\n", path)
	}

	if err := settings.ClearHistory(ctx, rt.Store); err != nil {
		return err
	}
	fmt.Fprintf(out, "Cleared %d history entries\n", len(entries))
	return nil
}

func printHistory(w io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "History is empty")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tPROVIDER\tLANGUAGES\tTEXT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s → %s\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			e.Provider,
			e.SourceLang, e.TargetLang,
			internal.Truncate(internal.CollapseSpace(e.Text), 50))
	}
	return tw.Flush()
}

func closeRuntime(rt *Runtime, err *error) {
	if cerr := rt.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
