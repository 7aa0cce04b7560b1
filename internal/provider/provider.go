package provider

import (
	"net/url"
	"strings"
)

// Provider identifies an external translation web service.
type Provider string

const (
	Google    Provider = "google"
	DeepL     Provider = "deepl"
	Bing      Provider = "bing"
	Yandex    Provider = "yandex"
	Microsoft Provider = "microsoft"

	// Default is used whenever a provider is missing or unknown.
	Default = Google
)

const (
	googleTemplate = "https://translate.google.com/?sl={s}&tl={t}&text={q}&op=translate"
	deeplTemplate  = "https://www.deepl.com/translator#{s}/{t}/{q}"
	bingTemplate   = "https://www.bing.com/translator?from={s}&to={t}&text={q}"
	yandexTemplate = "https://translate.yandex.com/?source_lang={s}&target_lang={t}&text={q}"
)

var templates = map[Provider]string{
	Google:    googleTemplate,
	DeepL:     deeplTemplate,
	Bing:      bingTemplate,
	Yandex:    yandexTemplate,
	Microsoft: bingTemplate,
}

var labels = map[Provider]string{
	Google:    "Google",
	DeepL:     "DeepL",
	Bing:      "Bing",
	Yandex:    "Yandex",
	Microsoft: "Microsoft",
}

// All lists the supported providers in display order.
func All() []Provider {
	return []Provider{Google, DeepL, Bing, Yandex, Microsoft}
}

// Known reports whether p has a URL template.
func (p Provider) Known() bool {
	_, ok := templates[p]
	return ok
}

// Label returns the human readable provider name. Unknown providers are
// labelled like the default provider, since that is whose page they open.
func (p Provider) Label() string {
	if label, ok := labels[p]; ok {
		return label
	}
	return labels[Default]
}

// Parse converts user input to a Provider. It is case-insensitive and
// returns false for unknown names.
func Parse(s string) (Provider, bool) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Known()
}

// BuildURL returns the translator URL for the given language pair.
// encodedText must already be URL-encoded (see EncodeText) and is inserted
// as is. An empty source language means "auto". Unknown providers fall
// back to the default provider's template.
func BuildURL(p Provider, sourceLang, targetLang, encodedText string) string {
	tmpl, ok := templates[p]
	if !ok {
		tmpl = templates[Default]
	}
	if sourceLang == "" {
		sourceLang = "auto"
	}

	r := strings.NewReplacer(
		"{s}", url.QueryEscape(sourceLang),
		"{t}", url.QueryEscape(targetLang),
		"{q}", encodedText,
	)
	return r.Replace(tmpl)
}

// EncodeText escapes text the way encodeURIComponent does: spaces become
// %20 rather than '+', so the result is safe both in a query string and in
// a URL fragment.
func EncodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
