package preview

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// mockFetcher implements Fetcher for testing
type mockFetcher struct {
	name  string
	out   string
	err   error
	calls int
}

func (m *mockFetcher) Fetch(ctx context.Context, text, source, target string) (string, error) {
	m.calls++
	return m.out, m.err
}

func (m *mockFetcher) Name() string {
	return m.name
}

func TestWithFallback(t *testing.T) {
	tests := []struct {
		name          string
		primary       *mockFetcher
		fallback      *mockFetcher
		want          string
		wantErr       bool
		fallbackCalls int
	}{
		{
			name:          "primary succeeds",
			primary:       &mockFetcher{name: "p", out: "one"},
			fallback:      &mockFetcher{name: "f", out: "two"},
			want:          "one",
			fallbackCalls: 0,
		},
		{
			name:          "primary fails",
			primary:       &mockFetcher{name: "p", err: errors.New("down")},
			fallback:      &mockFetcher{name: "f", out: "two"},
			want:          "two",
			fallbackCalls: 1,
		},
		{
			name:          "both fail",
			primary:       &mockFetcher{name: "p", err: errors.New("down")},
			fallback:      &mockFetcher{name: "f", err: errors.New("also down")},
			wantErr:       true,
			fallbackCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := WithFallback(tt.primary, tt.fallback)
			got, err := f.Fetch(context.Background(), "x", "auto", "en")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fetch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Fetch() = %q, want %q", got, tt.want)
			}
			if tt.fallback.calls != tt.fallbackCalls {
				t.Errorf("fallback called %d times, want %d", tt.fallback.calls, tt.fallbackCalls)
			}
		})
	}
}

func TestWithFallback_Name(t *testing.T) {
	f := WithFallback(&mockFetcher{name: "openai"}, &mockFetcher{name: "mymemory"})
	if got := f.Name(); got != "openai (fallback: mymemory)" {
		t.Errorf("Name() = %q", got)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		wantName string
		errMsg   string
	}{
		{"nil config", nil, "mymemory", ""},
		{"mymemory", &Config{Backend: "mymemory"}, "mymemory", ""},
		{"openai without key", &Config{Backend: "openai"}, "", "OpenAI API key is required"},
		{"openai", &Config{Backend: "openai", OpenAIKey: "k"}, "openai (fallback: mymemory)", ""},
		{"gemini without key", &Config{Backend: "gemini"}, "", "Gemini API key is required"},
		{"gemini", &Config{Backend: "gemini", GeminiKey: "k"}, "gemini (fallback: mymemory)", ""},
		{"unknown", &Config{Backend: "babelfish"}, "", "unknown preview backend: babelfish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.config)
			if tt.errMsg != "" {
				if err == nil || err.Error() != tt.errMsg {
					t.Fatalf("New() error = %v, want %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if f.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", f.Name(), tt.wantName)
			}
		})
	}
}

func TestPrompt(t *testing.T) {
	p := prompt("hola", "auto", "en")
	if !strings.Contains(p, "detected source language") || !strings.HasSuffix(p, "hola") {
		t.Errorf("prompt = %q", p)
	}
	p = prompt("hola", "es", "en")
	if !strings.Contains(p, "'es'") || !strings.Contains(p, "'en'") {
		t.Errorf("prompt = %q", p)
	}
}

func TestOpenAI_NoAPIKey(t *testing.T) {
	_, err := NewOpenAI("", "").Fetch(context.Background(), "hola", "auto", "en")
	if err == nil || err.Error() != "OpenAI API key not found" {
		t.Errorf("Fetch() error = %v", err)
	}
}

func TestGemini_NoAPIKey(t *testing.T) {
	_, err := NewGemini("", "").Fetch(context.Background(), "hola", "auto", "en")
	if err == nil || err.Error() != "Gemini API key not found" {
		t.Errorf("Fetch() error = %v", err)
	}
}

func TestOpenAI_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	got, err := NewOpenAI(apiKey, "").Fetch(context.Background(), "ябълка", "bg", "en")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	t.Logf("Preview of 'ябълка': %s", got)
}
