package menu

import (
	"net/url"
	"strings"

	"codeberg.org/snonux/selectrans/internal/lang"
	"codeberg.org/snonux/selectrans/internal/locale"
	"codeberg.org/snonux/selectrans/internal/settings"
)

// Item ids.
const (
	RootID    = "selectrans"
	OptionsID = RootID + ":options"

	languagePrefix = RootID + ":lang:"
)

// ContextSelection shows an item only when text is selected.
const ContextSelection = "selection"

// Item describes one context menu entry.
type Item struct {
	ID       string
	ParentID string
	Title    string
	Contexts []string
}

// Owns reports whether id belongs to this menu.
func Owns(id string) bool {
	return id == RootID || strings.HasPrefix(id, RootID+":")
}

// LanguageItemID returns the id of the child item translating into code.
func LanguageItemID(code string) string {
	return languagePrefix + url.PathEscape(code)
}

// ParseLanguageItem extracts the language code from a child item id.
func ParseLanguageItem(id string) (string, bool) {
	encoded, ok := strings.CutPrefix(id, languagePrefix)
	if !ok || encoded == "" {
		return "", false
	}
	code, err := url.PathUnescape(encoded)
	if err != nil {
		return "", false
	}
	return code, true
}

// TargetFor resolves the target language for a click on itemID: a
// per-language item yields its code, anything else the primary target.
func TargetFor(itemID string, s settings.Settings) string {
	if code, ok := ParseLanguageItem(itemID); ok {
		return code
	}
	return s.PrimaryTarget()
}

// relevantKeys are the settings keys whose change requires a rebuild.
var relevantKeys = map[string]bool{
	settings.KeyTargetLanguages:  true,
	settings.KeyLegacyTargetLang: true,
	settings.KeyOpenMode:         true,
	settings.KeyProvider:         true,
	settings.KeyHistory:          true,
}

// Relevant reports whether a change of keys affects the menu.
func Relevant(keys []string) bool {
	for _, k := range keys {
		if relevantKeys[k] {
			return true
		}
	}
	return false
}

// Build returns the full item list for s and the ranked languages: the
// root item, one child per language and the trailing options item.
func Build(s settings.Settings, ranked []string, labels *locale.Labels) []Item {
	contexts := []string{ContextSelection}

	items := make([]Item, 0, len(ranked)+2)
	items = append(items, Item{
		ID:       RootID,
		Title:    labels.MenuTitle(s.PrimaryTarget(), s.Provider.Label()),
		Contexts: contexts,
	})
	for _, code := range ranked {
		items = append(items, Item{
			ID:       LanguageItemID(code),
			ParentID: RootID,
			Title:    labels.TranslateTo(lang.DisplayName(code)),
			Contexts: contexts,
		})
	}
	items = append(items, Item{
		ID:       OptionsID,
		ParentID: RootID,
		Title:    labels.Options(),
		Contexts: contexts,
	})
	return items
}
