package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"codeberg.org/snonux/selectrans/internal/history"
	"codeberg.org/snonux/selectrans/internal/settings"
)

// recordingHost records every call and can hold the first Create call
// until released, keeping a rebuild in flight.
type recordingHost struct {
	mu        sync.Mutex
	calls     []string
	items     map[string]Item
	createErr map[string]error
	removeErr error

	hold    chan struct{}
	entered chan struct{}
	once    sync.Once
}

func newRecordingHost() *recordingHost {
	return &recordingHost{items: make(map[string]Item), createErr: make(map[string]error)}
}

func (h *recordingHost) RemoveAll(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, "removeAll")
	if h.removeErr != nil {
		return h.removeErr
	}
	h.items = make(map[string]Item)
	return nil
}

func (h *recordingHost) Create(ctx context.Context, item Item) error {
	if h.hold != nil {
		h.once.Do(func() {
			close(h.entered)
			<-h.hold
		})
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, "create:"+item.ID)
	if err := h.createErr[item.ID]; err != nil {
		return err
	}
	if _, exists := h.items[item.ID]; exists {
		return fmt.Errorf("duplicate id %s", item.ID)
	}
	h.items[item.ID] = item
	return nil
}

func (h *recordingHost) snapshot() ([]string, map[string]Item) {
	h.mu.Lock()
	defer h.mu.Unlock()
	items := make(map[string]Item, len(h.items))
	for k, v := range h.items {
		items[k] = v
	}
	return append([]string(nil), h.calls...), items
}

type bufLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *bufLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *bufLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

func newTestSynchronizer(t *testing.T, store settings.Store, host Host) (*Synchronizer, *bufLogger) {
	t.Helper()
	logger := &bufLogger{}
	config := DefaultConfig()
	config.Logger = logger
	s := NewSynchronizer(context.Background(), store, host, config)
	t.Cleanup(s.Close)
	return s, logger
}

func TestSynchronizer_Rebuild(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	defer store.Close()
	if _, err := settings.Install(ctx, store); err != nil {
		t.Fatal(err)
	}
	for _, code := range []string{"fr", "fr", "ja"} {
		if err := settings.AppendHistory(ctx, store, history.Entry{TargetLang: code}, 0); err != nil {
			t.Fatal(err)
		}
	}

	host := newRecordingHost()
	s, _ := newTestSynchronizer(t, store, host)

	if err := s.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	calls, items := host.snapshot()
	want := []string{
		"removeAll",
		"create:" + RootID,
		"create:" + LanguageItemID("en"),
		"create:" + LanguageItemID("es"),
		"create:" + LanguageItemID("pl"),
		"create:" + LanguageItemID("fr"),
		"create:" + LanguageItemID("ja"),
		"create:" + OptionsID,
	}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v\nwant    %v", calls, want)
	}
	if root := items[RootID]; !strings.Contains(root.Title, "en") || !strings.Contains(root.Title, "Google") {
		t.Errorf("root title = %q", root.Title)
	}
}

func TestSynchronizer_RankLimit(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	defer store.Close()
	s0 := settings.Defaults()
	s0.TargetLanguages = []string{"en", "es", "pl", "fr", "de", "it", "ja"}
	if err := settings.Save(ctx, store, s0); err != nil {
		t.Fatal(err)
	}

	host := newRecordingHost()
	config := DefaultConfig()
	config.RankLimit = 3
	config.Logger = &bufLogger{}
	s := NewSynchronizer(ctx, store, host, config)
	defer s.Close()

	if err := s.Rebuild(ctx); err != nil {
		t.Fatal(err)
	}
	_, items := host.snapshot()
	if len(items) != 3+2 {
		t.Errorf("got %d items, want 5", len(items))
	}
	if _, ok := items[LanguageItemID("fr")]; ok {
		t.Error("fr should have been cut by the rank limit")
	}
}

func TestSynchronizer_UnreadableHistory(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	defer store.Close()
	s0 := settings.Defaults()
	s0.TargetLanguages = []string{"en", "es", "pl", "fr", "de", "it", "ja", "ko"}
	if err := settings.Save(ctx, store, s0); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, map[string]any{settings.KeyHistory: "bad"}); err != nil {
		t.Fatal(err)
	}

	host := newRecordingHost()
	s, logger := newTestSynchronizer(t, store, host)

	if err := s.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	_, items := host.snapshot()
	if len(items) != len(s0.TargetLanguages)+2 {
		t.Errorf("got %d items, want %d", len(items), len(s0.TargetLanguages)+2)
	}
	for _, code := range s0.TargetLanguages {
		if _, ok := items[LanguageItemID(code)]; !ok {
			t.Errorf("missing item for %s", code)
		}
	}
	if !strings.Contains(logger.String(), "ignoring history") {
		t.Errorf("log = %q, want history warning", logger.String())
	}
}

func TestSynchronizer_Serialized(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	defer store.Close()
	if _, err := settings.Install(ctx, store); err != nil {
		t.Fatal(err)
	}

	host := newRecordingHost()
	host.hold = make(chan struct{})
	host.entered = make(chan struct{})
	s, _ := newTestSynchronizer(t, store, host)

	s.ScheduleRebuild()
	select {
	case <-host.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first rebuild never reached Create")
	}

	// The first rebuild is now blocked inside Create. Change the settings
	// and queue more rebuilds behind it.
	changed := settings.Defaults()
	changed.TargetLanguages = []string{"de"}
	if err := settings.Save(ctx, store, changed); err != nil {
		t.Fatal(err)
	}
	s.ScheduleRebuild()
	s.ScheduleRebuild()

	close(host.hold)
	if err := s.Rebuild(ctx); err != nil {
		t.Fatal(err)
	}

	calls, items := host.snapshot()

	// Every removeAll must be followed by a complete set of creates for
	// the rebuild it belongs to before the next removeAll.
	var rounds [][]string
	for _, c := range calls {
		if c == "removeAll" {
			rounds = append(rounds, nil)
			continue
		}
		if len(rounds) == 0 {
			t.Fatalf("create before first removeAll: %v", calls)
		}
		rounds[len(rounds)-1] = append(rounds[len(rounds)-1], c)
	}
	if len(rounds) < 2 {
		t.Fatalf("expected at least 2 rebuilds, got %d: %v", len(rounds), calls)
	}
	first := rounds[0]
	if len(first) != 5 || first[len(first)-1] != "create:"+OptionsID {
		t.Errorf("first rebuild incomplete before the next began: %v", first)
	}
	for i, r := range rounds[1:] {
		if r[0] != "create:"+RootID || r[len(r)-1] != "create:"+OptionsID {
			t.Errorf("rebuild %d torn: %v", i+1, r)
		}
	}

	if root := items[RootID]; !strings.Contains(root.Title, "→ de") {
		t.Errorf("final root title = %q, later rebuild did not see new settings", root.Title)
	}
	if _, ok := items[LanguageItemID("en")]; ok {
		t.Error("stale item from first rebuild survived")
	}
}

func TestSynchronizer_CreateErrorsSwallowed(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	defer store.Close()

	host := newRecordingHost()
	host.createErr[LanguageItemID("es")] = errors.New("duplicate id")
	s, logger := newTestSynchronizer(t, store, host)

	if err := s.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild() error = %v, want nil", err)
	}
	_, items := host.snapshot()
	if _, ok := items[OptionsID]; !ok {
		t.Error("rebuild stopped after a failed create")
	}
	if !strings.Contains(logger.String(), "failed to create") {
		t.Errorf("create failure not logged: %q", logger.String())
	}
}

func TestSynchronizer_StoreErrorKeepsQueueAlive(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	host := newRecordingHost()
	s, logger := newTestSynchronizer(t, store, host)

	store.Close()
	if err := s.Rebuild(ctx); err == nil {
		t.Error("expected error from closed store")
	}
	if !strings.Contains(logger.String(), "menu rebuild skipped") {
		t.Errorf("failure not logged: %q", logger.String())
	}
	calls, _ := host.snapshot()
	if len(calls) != 0 {
		t.Errorf("host touched after failed read: %v", calls)
	}

	// The worker is still alive.
	if err := s.Rebuild(ctx); err == nil {
		t.Error("expected second error")
	}
}

func TestSynchronizer_RemoveAllError(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	defer store.Close()
	host := newRecordingHost()
	host.removeErr = errors.New("host gone")
	s, _ := newTestSynchronizer(t, store, host)

	if err := s.Rebuild(ctx); err == nil {
		t.Error("expected error")
	}
	calls, _ := host.snapshot()
	if len(calls) != 1 {
		t.Errorf("creates issued after failed removeAll: %v", calls)
	}
}

func TestSynchronizer_Closed(t *testing.T) {
	store := settings.NewMemoryStore()
	defer store.Close()
	s := NewSynchronizer(context.Background(), store, newRecordingHost(), nil)
	s.Close()

	if err := s.Rebuild(context.Background()); !errors.Is(err, ErrStopped) {
		t.Errorf("Rebuild() after Close = %v, want ErrStopped", err)
	}
	s.ScheduleRebuild()
}

func TestSynchronizer_OnRebuild(t *testing.T) {
	store := settings.NewMemoryStore()
	defer store.Close()

	done := make(chan error, 1)
	config := DefaultConfig()
	config.Logger = &bufLogger{}
	config.OnRebuild = func(err error) { done <- err }
	s := NewSynchronizer(context.Background(), store, newRecordingHost(), config)
	defer s.Close()

	s.ScheduleRebuild()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("OnRebuild got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("OnRebuild not called")
	}
}
