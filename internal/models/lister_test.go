package models

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}

	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("")

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{}, "")
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if !strings.HasPrefix(err.Error(), "OpenAI API key not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFilterChatModels(t *testing.T) {
	ids := []string{
		"gpt-4o-mini", "tts-1", "dall-e-3", "gpt-4o-mini-tts", "gpt-4o",
		"text-embedding-3-small", "gpt-4o-realtime-preview", "chatgpt-4o-latest",
		"gpt-4o-audio-preview", "gpt-image-1", "gpt-4o-transcribe", "whisper-1",
	}
	want := []string{"chatgpt-4o-latest", "gpt-4o", "gpt-4o-mini"}
	if got := FilterChatModels(ids); !reflect.DeepEqual(got, want) {
		t.Errorf("FilterChatModels() = %v, want %v", got, want)
	}
}

func TestListAvailableModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models") {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[
			{"id":"gpt-4o","object":"model","owned_by":"openai"},
			{"id":"tts-1","object":"model","owned_by":"openai"},
			{"id":"gpt-4o-mini","object":"model","owned_by":"openai"}]}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	lister := NewListerWithBaseURL("test-key", srv.URL+"/v1")
	if err := lister.ListAvailableModels(context.Background(), &buf, "gpt-4o-mini"); err != nil {
		t.Fatalf("ListAvailableModels() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, " * gpt-4o-mini") || !strings.Contains(out, "   gpt-4o\n") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "tts-1") {
		t.Errorf("speech model listed: %q", out)
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	var buf bytes.Buffer
	if err := NewLister(apiKey).ListAvailableModels(context.Background(), &buf, ""); err != nil {
		t.Fatalf("ListAvailableModels failed: %v", err)
	}
	t.Log(buf.String())
}
