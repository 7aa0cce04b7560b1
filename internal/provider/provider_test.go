package provider

import "testing"

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		source   string
		target   string
		text     string
		want     string
	}{
		{
			name:     "google",
			provider: Google,
			source:   "auto",
			target:   "en",
			text:     "hola",
			want:     "https://translate.google.com/?sl=auto&tl=en&text=hola&op=translate",
		},
		{
			name:     "deepl keeps auto literal",
			provider: DeepL,
			source:   "auto",
			target:   "de",
			text:     "hallo",
			want:     "https://www.deepl.com/translator#auto/de/hallo",
		},
		{
			name:     "bing",
			provider: Bing,
			source:   "fr",
			target:   "en",
			text:     "bonjour",
			want:     "https://www.bing.com/translator?from=fr&to=en&text=bonjour",
		},
		{
			name:     "yandex",
			provider: Yandex,
			source:   "auto",
			target:   "ru",
			text:     "hello",
			want:     "https://translate.yandex.com/?source_lang=auto&target_lang=ru&text=hello",
		},
		{
			name:     "microsoft aliases bing",
			provider: Microsoft,
			source:   "auto",
			target:   "pl",
			text:     "hello",
			want:     "https://www.bing.com/translator?from=auto&to=pl&text=hello",
		},
		{
			name:     "empty source defaults to auto",
			provider: Google,
			source:   "",
			target:   "es",
			text:     "hello",
			want:     "https://translate.google.com/?sl=auto&tl=es&text=hello&op=translate",
		},
		{
			name:     "unknown provider falls back to google",
			provider: Provider("babelfish"),
			source:   "auto",
			target:   "es",
			text:     "hello",
			want:     "https://translate.google.com/?sl=auto&tl=es&text=hello&op=translate",
		},
		{
			name:     "text inserted verbatim",
			provider: Google,
			source:   "auto",
			target:   "zh-CN",
			text:     "a%20b%26c",
			want:     "https://translate.google.com/?sl=auto&tl=zh-CN&text=a%20b%26c&op=translate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildURL(tt.provider, tt.source, tt.target, tt.text)
			if got != tt.want {
				t.Errorf("BuildURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello world", "hello%20world"},
		{"a&b=c", "a%26b%3Dc"},
		{"1+1", "1%2B1"},
		{"ябълка", "%D1%8F%D0%B1%D1%8A%D0%BB%D0%BA%D0%B0"},
	}

	for _, tt := range tests {
		if got := EncodeText(tt.in); got != tt.want {
			t.Errorf("EncodeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := DeepL.Label(); got != "DeepL" {
		t.Errorf("DeepL.Label() = %q", got)
	}
	if got := Microsoft.Label(); got != "Microsoft" {
		t.Errorf("Microsoft.Label() = %q", got)
	}
	if got := Provider("nope").Label(); got != "Google" {
		t.Errorf("unknown Label() = %q, want Google", got)
	}
}

func TestParse(t *testing.T) {
	p, ok := Parse(" DeepL ")
	if !ok || p != DeepL {
		t.Errorf("Parse(DeepL) = %q, %v", p, ok)
	}
	if _, ok := Parse("babelfish"); ok {
		t.Error("Parse accepted an unknown provider")
	}
	if len(All()) != 5 {
		t.Errorf("All() returned %d providers, want 5", len(All()))
	}
}
