// Package locale renders the user-visible labels of menus and
// notifications in the configured UI language.
package locale

import (
	"embed"
	"log"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Message ids.
const (
	MenuTranslate   = "MenuTranslate"
	MenuTranslateTo = "MenuTranslateTo"
	MenuOptions     = "MenuOptions"
	PreviewTitle    = "PreviewTitle"
)

// Labels renders messages for one locale, falling back to English.
type Labels struct {
	localizer *i18n.Localizer
}

var bundle = newBundle()

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.de.toml", "active.pl.toml"} {
		if _, err := b.LoadMessageFileFS(localeFS, file); err != nil {
			log.Printf("locale: failed to load %s: %v", file, err)
		}
	}
	return b
}

// New returns Labels for locale (e.g. "de", "pl-PL"). Unknown or empty
// locales render English.
func New(locale string) *Labels {
	langs := []string{}
	if locale != "" {
		langs = append(langs, locale)
	}
	langs = append(langs, language.English.String())
	return &Labels{localizer: i18n.NewLocalizer(bundle, langs...)}
}

// Supported lists the locales with a message catalog.
func Supported() []string {
	tags := bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// T renders the message id with data. A missing message renders the id.
func (l *Labels) T(id string, data map[string]any) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil && msg == "" {
		return id
	}
	return msg
}

// MenuTitle is the root menu title for the primary target and provider.
func (l *Labels) MenuTitle(target, provider string) string {
	return l.T(MenuTranslate, map[string]any{"Target": target, "Provider": provider})
}

// TranslateTo is the title of a per-language child item.
func (l *Labels) TranslateTo(languageName string) string {
	return l.T(MenuTranslateTo, map[string]any{"Language": languageName})
}

// Options is the title of the options item.
func (l *Labels) Options() string {
	return l.T(MenuOptions, nil)
}

// PreviewTitle is the title of the preview notification.
func (l *Labels) PreviewTitle(provider, languageName string) string {
	return l.T(PreviewTitle, map[string]any{"Provider": provider, "Language": languageName})
}
