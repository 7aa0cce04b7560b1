package preview

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Gemini fetches previews through the Gemini API.
type Gemini struct {
	apiKey string
	model  string
}

// NewGemini creates a Gemini backend. An empty model uses gemini-2.0-flash.
func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Gemini{apiKey: apiKey, model: model}
}

// Name returns the backend name.
func (g *Gemini) Name() string {
	return BackendGemini
}

// Fetch translates text with a single content generation call.
func (g *Gemini) Fetch(ctx context.Context, text, source, target string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("Gemini API key not found")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	temperature := float32(0.2)
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt(text, source, target)), &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 200,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		return "", ErrNoPreview
	}
	return translated, nil
}
