package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultEndpoint is the public MyMemory translation API.
const DefaultEndpoint = "https://api.mymemory.translated.net/get"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// MyMemory fetches previews from the MyMemory HTTP API. Requests go
// through a circuit breaker so a failing endpoint is left alone for a
// while instead of being hit on every selection.
type MyMemory struct {
	endpoint   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus json.Number `json:"responseStatus"`
}

// NewMyMemory creates a client for endpoint (DefaultEndpoint when empty).
func NewMyMemory(endpoint string, timeout time.Duration) *MyMemory {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &MyMemory{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "mymemory",
			Timeout: time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// Name returns the backend name.
func (m *MyMemory) Name() string {
	return BackendMyMemory
}

// Fetch requests a translation of text for the language pair source|target.
func (m *MyMemory) Fetch(ctx context.Context, text, source, target string) (string, error) {
	if source == "" {
		source = "auto"
	}

	out, err := m.breaker.Execute(func() (interface{}, error) {
		return m.fetch(ctx, text, source, target)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (m *MyMemory) fetch(ctx context.Context, text, source, target string) (string, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", source+"|"+target)

	sep := "?"
	if strings.Contains(m.endpoint, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+sep+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("preview request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return "", fmt.Errorf("preview endpoint returned %s", resp.Status)
	}

	var body myMemoryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode preview: %w", err)
	}

	if status := body.ResponseStatus.String(); status != "" && status != "200" {
		return "", fmt.Errorf("preview endpoint status %s: %w", status, ErrNoPreview)
	}
	translated := strings.TrimSpace(body.ResponseData.TranslatedText)
	if translated == "" {
		return "", ErrNoPreview
	}
	return translated, nil
}
