package lang

import (
	"regexp"
	"sort"

	"golang.org/x/text/language"
)

// Auto is the pseudo code asking the provider to detect the source language.
const Auto = "auto"

// Language describes a catalog entry.
type Language struct {
	Code string
	Name string
}

var catalog = map[string]string{
	Auto:    "Auto-detect",
	"ar":    "Arabic",
	"bg":    "Bulgarian",
	"cs":    "Czech",
	"da":    "Danish",
	"de":    "German",
	"el":    "Greek",
	"en":    "English",
	"es":    "Spanish",
	"fi":    "Finnish",
	"fr":    "French",
	"hi":    "Hindi",
	"hu":    "Hungarian",
	"it":    "Italian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"nl":    "Dutch",
	"pl":    "Polish",
	"pt":    "Portuguese",
	"pt-BR": "Portuguese (Brazil)",
	"ro":    "Romanian",
	"ru":    "Russian",
	"sv":    "Swedish",
	"tr":    "Turkish",
	"uk":    "Ukrainian",
	"zh-CN": "Chinese (Simplified)",
	"zh-TW": "Chinese (Traditional)",
}

var codePattern = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

// DisplayName returns the English display name for code.
// Unknown codes are returned unchanged.
func DisplayName(code string) string {
	if name, ok := catalog[code]; ok {
		return name
	}
	return code
}

// Known reports whether code is in the catalog.
func Known(code string) bool {
	_, ok := catalog[code]
	return ok
}

// Valid reports whether code looks like a usable target language code
// ("en", "pt-BR", "zh-CN"). The pseudo code "auto" is not a valid target.
func Valid(code string) bool {
	if !codePattern.MatchString(code) {
		return false
	}
	_, err := language.Parse(code)
	return err == nil
}

// Normalize canonicalizes user input such as "PT-br" or "pt_br" to "pt-BR".
// Input that cannot be parsed is returned as given.
func Normalize(code string) string {
	if code == "" || code == Auto {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf == language.Exact {
		return base.String() + "-" + region.String()
	}
	return base.String()
}

// All returns the catalog sorted by code. When includeAuto is false the
// "auto" pseudo language is left out.
func All(includeAuto bool) []Language {
	langs := make([]Language, 0, len(catalog))
	for code, name := range catalog {
		if code == Auto && !includeAuto {
			continue
		}
		langs = append(langs, Language{Code: code, Name: name})
	}
	sort.Slice(langs, func(i, j int) bool {
		return langs[i].Code < langs[j].Code
	})
	return langs
}
