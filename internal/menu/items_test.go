package menu

import (
	"strings"
	"testing"

	"codeberg.org/snonux/selectrans/internal/locale"
	"codeberg.org/snonux/selectrans/internal/provider"
	"codeberg.org/snonux/selectrans/internal/settings"
)

func TestBuild(t *testing.T) {
	s := settings.Defaults()
	s.TargetLanguages = []string{"fr", "de"}
	s.Provider = provider.DeepL

	items := Build(s, []string{"fr", "de", "xx"}, locale.New("en"))

	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}

	root := items[0]
	if root.ID != RootID || root.ParentID != "" {
		t.Errorf("root = %+v", root)
	}
	if !strings.Contains(root.Title, "fr") || !strings.Contains(root.Title, "DeepL") {
		t.Errorf("root title %q does not mention primary target and provider", root.Title)
	}

	wantTitles := []string{"Translate to French", "Translate to German", "Translate to xx"}
	for i, want := range wantTitles {
		item := items[i+1]
		if item.Title != want {
			t.Errorf("child %d title = %q, want %q", i, item.Title, want)
		}
		if item.ParentID != RootID {
			t.Errorf("child %d parent = %q", i, item.ParentID)
		}
	}

	last := items[len(items)-1]
	if last.ID != OptionsID || last.ParentID != RootID {
		t.Errorf("last item = %+v, want options", last)
	}
	for _, item := range items {
		if len(item.Contexts) != 1 || item.Contexts[0] != ContextSelection {
			t.Errorf("item %s contexts = %v", item.ID, item.Contexts)
		}
	}
}

func TestBuild_PrimaryTitleProperty(t *testing.T) {
	labels := locale.New("en")
	for _, p := range provider.All() {
		for _, targets := range [][]string{{"en"}, {"pt-BR", "en"}, {"zh-CN"}} {
			s := settings.Defaults()
			s.Provider = p
			s.TargetLanguages = targets

			title := Build(s, targets, labels)[0].Title
			if !strings.Contains(title, targets[0]) || !strings.Contains(title, p.Label()) {
				t.Errorf("title %q missing %s or %s", title, targets[0], p.Label())
			}
		}
	}
}

func TestLanguageItemID(t *testing.T) {
	for _, code := range []string{"en", "zh-CN", "pt-BR", "a b"} {
		id := LanguageItemID(code)
		got, ok := ParseLanguageItem(id)
		if !ok || got != code {
			t.Errorf("ParseLanguageItem(%q) = %q, %v, want %q", id, got, ok, code)
		}
	}

	for _, id := range []string{RootID, OptionsID, "selectrans:lang:", "other", "selectrans:lang:%zz"} {
		if _, ok := ParseLanguageItem(id); ok {
			t.Errorf("ParseLanguageItem(%q) succeeded", id)
		}
	}
}

func TestTargetFor(t *testing.T) {
	s := settings.Defaults()
	s.TargetLanguages = []string{"ko", "en"}

	tests := []struct {
		itemID string
		want   string
	}{
		{LanguageItemID("fr"), "fr"},
		{RootID, "ko"},
		{"something-else", "ko"},
	}
	for _, tt := range tests {
		if got := TargetFor(tt.itemID, s); got != tt.want {
			t.Errorf("TargetFor(%q) = %q, want %q", tt.itemID, got, tt.want)
		}
	}

	s.TargetLanguages = nil
	if got := TargetFor(RootID, s); got != "en" {
		t.Errorf("TargetFor without targets = %q, want en", got)
	}
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		keys []string
		want bool
	}{
		{[]string{"targetLanguages"}, true},
		{[]string{"targetLang"}, true},
		{[]string{"openMode"}, true},
		{[]string{"provider"}, true},
		{[]string{"history"}, true},
		{[]string{"themeMode"}, false},
		{[]string{"previewEnabled", "saveHistory", "sourceLang"}, false},
		{[]string{"themeMode", "provider"}, true},
		{nil, false},
	}
	for _, tt := range tests {
		if got := Relevant(tt.keys); got != tt.want {
			t.Errorf("Relevant(%v) = %v, want %v", tt.keys, got, tt.want)
		}
	}
}

func TestOwns(t *testing.T) {
	tests := map[string]bool{
		RootID:                 true,
		OptionsID:              true,
		LanguageItemID("de"):   true,
		"selectransfoo":        false,
		"other-extension:item": false,
		"":                     false,
	}
	for id, want := range tests {
		if got := Owns(id); got != want {
			t.Errorf("Owns(%q) = %v, want %v", id, got, want)
		}
	}
}
