package preview

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoPreview is returned when a backend answered without a usable text.
var ErrNoPreview = errors.New("no preview available")

// Fetcher translates text for a preview.
type Fetcher interface {
	// Fetch translates text from source ("auto" when unknown) to target.
	Fetch(ctx context.Context, text, source, target string) (string, error)

	// Name returns the backend name.
	Name() string
}

// Backend names.
const (
	BackendMyMemory = "mymemory"
	BackendOpenAI   = "openai"
	BackendGemini   = "gemini"
)

// Config selects and configures the preview backend.
type Config struct {
	Backend string
	Timeout time.Duration

	// MyMemory
	Endpoint string

	// OpenAI
	OpenAIKey   string
	OpenAIModel string

	// Gemini
	GeminiKey   string
	GeminiModel string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend:     BackendMyMemory,
		Timeout:     10 * time.Second,
		Endpoint:    DefaultEndpoint,
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
	}
}

// New creates the configured backend. The AI backends fall back to
// MyMemory when their request fails.
func New(config *Config) (Fetcher, error) {
	if config == nil {
		config = DefaultConfig()
	}

	mymemory := NewMyMemory(config.Endpoint, config.Timeout)

	switch config.Backend {
	case "", BackendMyMemory:
		return mymemory, nil

	case BackendOpenAI:
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return WithFallback(NewOpenAI(config.OpenAIKey, config.OpenAIModel), mymemory), nil

	case BackendGemini:
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return WithFallback(NewGemini(config.GeminiKey, config.GeminiModel), mymemory), nil

	default:
		return nil, fmt.Errorf("unknown preview backend: %s", config.Backend)
	}
}

func prompt(text, source, target string) string {
	from := "the detected source language"
	if source != "" && source != "auto" {
		from = fmt.Sprintf("language code '%s'", source)
	}
	return fmt.Sprintf("Translate the following text from %s to language code '%s'. Respond with only the translation, nothing else.\n\n%s", from, target, text)
}
