package settings

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/selectrans/internal/history"
	"codeberg.org/snonux/selectrans/internal/provider"
)

func TestInstall_MigratesLegacyTarget(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	if err := store.Set(ctx, map[string]any{"targetLang": "fr", "openMode": "currentTab"}); err != nil {
		t.Fatal(err)
	}

	s, err := Install(ctx, store)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if !reflect.DeepEqual(s.TargetLanguages, []string{"fr"}) {
		t.Errorf("TargetLanguages = %v, want [fr]", s.TargetLanguages)
	}

	raw, err := store.Get(ctx, KeyTargetLanguages, KeyOpenMode, KeyProvider)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(raw[KeyTargetLanguages]); got != `["fr"]` {
		t.Errorf("stored targetLanguages = %s, want [\"fr\"]", got)
	}
	if got := string(raw[KeyOpenMode]); got != `"currentTab"` {
		t.Errorf("stored openMode = %s, user value lost", got)
	}
	if got := string(raw[KeyProvider]); got != `"google"` {
		t.Errorf("stored provider = %s, default not written", got)
	}
}

func TestInstall_FreshStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	s, err := Install(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s, Defaults()) {
		t.Errorf("Install() = %+v, want defaults", s)
	}
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	s := Defaults()
	s.Provider = provider.Bing
	s.TargetLanguages = []string{"uk"}
	if err := Save(ctx, store, s); err != nil {
		t.Fatal(err)
	}

	got, err := Load(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("Load() = %+v, want %+v", got, s)
	}
}

func TestLoad_StoreError(t *testing.T) {
	store := NewMemoryStore()
	store.Close()

	if _, err := Load(context.Background(), store); err == nil {
		t.Error("expected error from closed store")
	}
}

func TestAppendHistory(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		e := history.Entry{
			Text:       fmt.Sprintf("t%d", i),
			TargetLang: "en",
			Timestamp:  base.Add(time.Duration(i) * time.Second),
		}
		if err := AppendHistory(ctx, store, e, history.DefaultMax); err != nil {
			t.Fatalf("AppendHistory() error = %v", err)
		}
	}

	entries, err := LoadHistory(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != history.DefaultMax {
		t.Fatalf("len = %d, want %d", len(entries), history.DefaultMax)
	}
	if entries[0].Text != "t24" || entries[len(entries)-1].Text != "t5" {
		t.Errorf("got first %q last %q, want t24 and t5", entries[0].Text, entries[len(entries)-1].Text)
	}
	if !entries[0].Timestamp.Equal(base.Add(24 * time.Second)) {
		t.Errorf("timestamp not preserved: %v", entries[0].Timestamp)
	}

	if err := ClearHistory(ctx, store); err != nil {
		t.Fatal(err)
	}
	entries, err = LoadHistory(ctx, store)
	if err != nil || len(entries) != 0 {
		t.Errorf("after clear: %v, %v", entries, err)
	}
}

func TestLoadHistory_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	if err := store.Set(ctx, map[string]any{KeyHistory: "not a list"}); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHistory(ctx, store); err == nil {
		t.Error("expected decode error")
	}
}

func TestExportImport(t *testing.T) {
	s := Defaults()
	s.TargetLanguages = []string{"de", "fr"}
	s.Provider = provider.DeepL
	entries := []history.Entry{{
		Text:       "hallo",
		SourceLang: "auto",
		TargetLang: "de",
		Provider:   "deepl",
		Timestamp:  time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC),
	}}

	var buf bytes.Buffer
	if err := Export(&buf, s, entries); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(buf.String(), "target_languages:") {
		t.Errorf("export missing target_languages:\n%s", buf.String())
	}

	snap, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !reflect.DeepEqual(snap.Settings, s) {
		t.Errorf("settings = %+v, want %+v", snap.Settings, s)
	}
	if len(snap.History) != 1 || snap.History[0].Text != "hallo" || !snap.History[0].Timestamp.Equal(entries[0].Timestamp) {
		t.Errorf("history = %+v", snap.History)
	}
}

func TestImport_InvalidValuesFallBack(t *testing.T) {
	doc := `settings:
  provider: babelfish
  open_mode: popup
  target_languages: []
`
	snap, err := Import(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := Defaults()
	if snap.Settings.Provider != want.Provider || snap.Settings.OpenMode != want.OpenMode {
		t.Errorf("invalid values kept: %+v", snap.Settings)
	}
	if !reflect.DeepEqual(snap.Settings.TargetLanguages, want.TargetLanguages) {
		t.Errorf("TargetLanguages = %v, want defaults", snap.Settings.TargetLanguages)
	}
}
