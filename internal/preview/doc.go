// Package preview fetches a short machine translation of a selection,
// shown in a notification before the provider page loads. Backends are
// the MyMemory HTTP API, OpenAI and Gemini.
package preview
